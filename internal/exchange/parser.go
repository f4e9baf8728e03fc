package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/kakeibo/internal/encoding"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

const (
	colID       = "ID"
	colDate     = "日付"
	colType     = "種別"
	colCategory = "カテゴリ"
	colAmount   = "金額"
)

var ErrUnknownFormat = errors.New("no matching CSV format found: expected 日付 with 種別/金額, 支出/収入 or a signed 金額 column")

var dateLayouts = []string{transaction.DateLayout, "2006/01/02", "2006-01-02", "2006-1-2", "2006年1月2日"}

// Parse reads a household-ledger CSV in any supported layout and encoding and
// returns one AddParams per data row. Rows without a parseable date or amount
// are skipped; amount validation is left to the ledger.
func Parse(r io.Reader) ([]transaction.AddParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return parseRows(profile, cols, rows[headerIdx+1:]), nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string) []transaction.AddParams {
	categoryIdx := -1
	if idx, ok := cols[p.CategoryCol]; ok {
		categoryIdx = idx
	}

	var params []transaction.AddParams

	for _, row := range rows {
		date, ok := parseDate(cellValue(row, cols[p.DateCol]))
		if !ok {
			continue
		}

		amount, txType, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		category := transaction.Category(cellValue(row, categoryIdx))
		if !category.BelongsTo(txType) {
			category = ""
		}

		params = append(params, transaction.AddParams{
			Type:     txType,
			Amount:   amount,
			Category: category,
			Date:     date,
		})
	}

	return params
}

// parseDate normalizes the supported date spellings to transaction.DateLayout.
func parseDate(s string) (string, bool) {
	if s == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(transaction.DateLayout), true
		}
	}

	return "", false
}

func parseAmount(p *Profile, cols colIndex, row []string) (int64, transaction.Type, bool) {
	switch p.AmountMode {
	case amountTyped:
		return parseTypedAmount(row, cols[p.TypeCol], cols[p.AmountCol])
	case amountSplit:
		return parseSplitAmount(row, cols[p.DebitCol], cols[p.CreditCol])
	case amountSigned:
		return parseSignedAmount(row, cols[p.AmountCol])
	}

	return 0, "", false
}

func parseTypedAmount(row []string, typeIdx, amountIdx int) (int64, transaction.Type, bool) {
	txType, err := transaction.ParseType(cellValue(row, typeIdx))
	if err != nil {
		return 0, "", false
	}

	amount, err := parseYen(cellValue(row, amountIdx))
	if err != nil {
		return 0, "", false
	}

	return amount, txType, true
}

func parseSplitAmount(row []string, debitIdx, creditIdx int) (int64, transaction.Type, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		amount, err := parseYen(s)
		if err == nil && amount != 0 {
			return abs(amount), transaction.TypeDebit, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		amount, err := parseYen(s)
		if err == nil && amount != 0 {
			return abs(amount), transaction.TypeCredit, true
		}
	}

	return 0, "", false
}

func parseSignedAmount(row []string, idx int) (int64, transaction.Type, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, "", false
	}

	amount, err := parseYen(s)
	if err != nil || amount == 0 {
		return 0, "", false
	}

	if amount < 0 {
		return -amount, transaction.TypeDebit, true
	}

	return amount, transaction.TypeCredit, true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
