package exchange

// amountMode determines how amounts and types are extracted from a row.
type amountMode int

const (
	// amountTyped means an explicit type column next to a positive amount.
	amountTyped amountMode = iota
	// amountSplit means separate expense and income columns.
	amountSplit
	// amountSigned means one signed column; negative values are expenses.
	amountSigned
)

// Profile describes the column layout of a CSV format.
type Profile struct {
	Name        string
	DateCol     string
	CategoryCol string // optional; unknown labels fall back to the default category
	AmountMode  amountMode
	TypeCol     string // used when AmountMode == amountTyped
	AmountCol   string // used when AmountMode == amountTyped or amountSigned
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol}

	switch p.AmountMode {
	case amountTyped:
		cols = append(cols, p.TypeCol, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	case amountSigned:
		cols = append(cols, p.AmountCol)
	}

	return cols
}

// profiles is tried in order during detection; more specific layouts first.
var profiles = []Profile{
	{
		Name:        "kakeibo",
		DateCol:     colDate,
		CategoryCol: colCategory,
		AmountMode:  amountTyped,
		TypeCol:     colType,
		AmountCol:   colAmount,
	},
	{
		Name:        "split",
		DateCol:     colDate,
		CategoryCol: colCategory,
		AmountMode:  amountSplit,
		DebitCol:    "支出",
		CreditCol:   "収入",
	},
	{
		Name:        "signed",
		DateCol:     colDate,
		CategoryCol: colCategory,
		AmountMode:  amountSigned,
		AmountCol:   colAmount,
	},
}
