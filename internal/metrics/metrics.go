// Package metrics derives reporting values from a ledger snapshot. Every
// function is pure and recomputes from the full transaction sequence.
package metrics

import (
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

// TotalExpense sums the amounts of all debit transactions.
func TotalExpense(s transaction.Snapshot) int64 {
	var total int64

	for _, tx := range s.Transactions {
		if tx.Type == transaction.TypeDebit {
			total += tx.Amount
		}
	}

	return total
}

// TotalIncome sums the amounts of all credit transactions.
func TotalIncome(s transaction.Snapshot) int64 {
	var total int64

	for _, tx := range s.Transactions {
		if tx.Type == transaction.TypeCredit {
			total += tx.Amount
		}
	}

	return total
}

// CurrentBalance adds credits and subtracts debits.
func CurrentBalance(s transaction.Snapshot) int64 {
	var balance int64

	for _, tx := range s.Transactions {
		switch tx.Type {
		case transaction.TypeCredit:
			balance += tx.Amount
		case transaction.TypeDebit:
			balance -= tx.Amount
		}
	}

	return balance
}

// RemainingBudget is the budget minus total expense. A negative result means
// the budget is exceeded.
func RemainingBudget(s transaction.Snapshot) int64 {
	return s.Budget - TotalExpense(s)
}

// CategoryBreakdown sums debit amounts per category. Categories whose sum is
// zero are left out of the result.
func CategoryBreakdown(s transaction.Snapshot, categories []transaction.Category) map[transaction.Category]int64 {
	out := make(map[transaction.Category]int64)

	for _, ca := range OrderedBreakdown(s, categories) {
		out[ca.Category] = ca.Amount
	}

	return out
}

// CategoryAmount is one entry of an ordered breakdown.
type CategoryAmount struct {
	Category transaction.Category
	Amount   int64
}

// OrderedBreakdown is CategoryBreakdown in the order of categories.
func OrderedBreakdown(s transaction.Snapshot, categories []transaction.Category) []CategoryAmount {
	sums := make(map[transaction.Category]int64, len(categories))

	for _, tx := range s.Transactions {
		if tx.Type != transaction.TypeDebit {
			continue
		}

		sums[tx.Category] += tx.Amount
	}

	out := make([]CategoryAmount, 0, len(categories))

	for _, c := range categories {
		if sums[c] == 0 {
			continue
		}

		out = append(out, CategoryAmount{Category: c, Amount: sums[c]})
	}

	return out
}

// Summary bundles every derived value of a snapshot.
type Summary struct {
	Budget          int64
	TotalIncome     int64
	TotalExpense    int64
	CurrentBalance  int64
	RemainingBudget int64
	OverBudget      bool
	Breakdown       []CategoryAmount
}

// Summarize computes a Summary using the expense category set for the
// breakdown.
func Summarize(s transaction.Snapshot) Summary {
	remaining := RemainingBudget(s)

	return Summary{
		Budget:          s.Budget,
		TotalIncome:     TotalIncome(s),
		TotalExpense:    TotalExpense(s),
		CurrentBalance:  CurrentBalance(s),
		RemainingBudget: remaining,
		OverBudget:      remaining < 0,
		Breakdown:       OrderedBreakdown(s, transaction.Categories(transaction.TypeDebit)),
	}
}
