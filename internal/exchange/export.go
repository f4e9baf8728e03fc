package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var exportHeader = []string{colID, colDate, colType, colCategory, colAmount}

// WriteCSV writes the snapshot's transactions in insertion order. The output
// starts with a UTF-8 BOM so spreadsheet applications pick the right charset,
// and it can be read back by Parse.
func WriteCSV(w io.Writer, s transaction.Snapshot) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range s.Transactions {
		if err := cw.Write(exportRow(tx)); err != nil {
			return fmt.Errorf("writing transaction %d: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func exportRow(tx transaction.Transaction) []string {
	return []string{
		strconv.FormatInt(tx.ID, 10),
		tx.Date,
		string(tx.Type),
		string(tx.Category),
		strconv.FormatInt(tx.Amount, 10),
	}
}
