package exchange

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/kakeibo/internal/metrics"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

const (
	sheetTransactions = "取引履歴"
	sheetSummary      = "集計"
)

// WriteXLSX writes a workbook with the transaction rows on one sheet and the
// metrics summary with its category breakdown on another.
func WriteXLSX(w io.Writer, s transaction.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with a default sheet; rename it instead of adding one.
	if err := f.SetSheetName(f.GetSheetName(0), sheetTransactions); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := writeTransactionSheet(f, s); err != nil {
		return err
	}

	if err := writeSummarySheet(f, metrics.Summarize(s)); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeTransactionSheet(f *excelize.File, s transaction.Snapshot) error {
	if err := f.SetSheetRow(sheetTransactions, "A1", &exportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range s.Transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []any{tx.ID, tx.Date, string(tx.Type), string(tx.Category), tx.Amount}
		if err := f.SetSheetRow(sheetTransactions, cell, &row); err != nil {
			return fmt.Errorf("writing transaction %d: %w", tx.ID, err)
		}
	}

	widths := map[string]float64{"A": 16, "B": 12, "C": 8, "D": 14, "E": 12}
	for col, width := range widths {
		if err := f.SetColWidth(sheetTransactions, col, col, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	return nil
}

func writeSummarySheet(f *excelize.File, sum metrics.Summary) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	rows := [][]any{
		{"項目", colAmount},
		{"予算", sum.Budget},
		{"収入合計", sum.TotalIncome},
		{"支出合計", sum.TotalExpense},
		{"残高", sum.CurrentBalance},
		{"残り予算", sum.RemainingBudget},
		{},
		{colCategory, "支出"},
	}

	for _, ca := range sum.Breakdown {
		rows = append(rows, []any{string(ca.Category), ca.Amount})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	return f.SetColWidth(sheetSummary, "A", "A", 16)
}
