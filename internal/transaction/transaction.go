package transaction

import (
	"errors"
	"slices"
	"strings"
)

// Type represents the direction of a transaction (income or expense).
type Type string

const (
	TypeCredit Type = "入金"
	TypeDebit  Type = "出金"
)

// Category is a label from the closed set belonging to a transaction's Type.
type Category string

// DateLayout is the display format of Transaction.Date.
const DateLayout = "2006/1/2"

// MaxAmount is the largest amount a single transaction may carry. Sums of
// thousands of such amounts still fit in an int64.
const MaxAmount int64 = 1_000_000_000_000_000

var (
	ErrInvalidAmount    = errors.New("amount must be positive and at most 10^15 yen")
	ErrInvalidType      = errors.New("unknown transaction type")
	ErrCategoryMismatch = errors.New("category does not belong to transaction type")
	ErrMalformedState   = errors.New("malformed persisted state")
)

var (
	debitCategories = []Category{
		"食費", "日用品", "交通費", "交際費", "趣味・娯楽",
		"住居費", "水道・光熱費", "通信費", "医療費", "その他",
	}
	creditCategories = []Category{
		"給料", "ボーナス", "副業", "臨時収入", "その他収入",
	}
)

// Transaction is a single recorded credit or debit. It is never modified after
// creation; a delete removes it wholesale.
type Transaction struct {
	ID       int64    `json:"id"`
	Type     Type     `json:"type"`
	Category Category `json:"category,omitempty"`
	Amount   int64    `json:"amount"` // whole yen
	Date     string   `json:"date"`
}

// Valid reports whether t is one of the known variants.
func (t Type) Valid() bool {
	return t == TypeCredit || t == TypeDebit
}

// ParseType accepts the stored labels as well as English aliases.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TypeCredit), "credit", "income":
		return TypeCredit, nil
	case string(TypeDebit), "debit", "expense":
		return TypeDebit, nil
	}

	return "", ErrInvalidType
}

// Categories returns the category enumeration for t in display order.
func Categories(t Type) []Category {
	switch t {
	case TypeCredit:
		return slices.Clone(creditCategories)
	case TypeDebit:
		return slices.Clone(debitCategories)
	}

	return nil
}

// DefaultCategory is the first category of t's enumeration.
func DefaultCategory(t Type) Category {
	switch t {
	case TypeCredit:
		return creditCategories[0]
	case TypeDebit:
		return debitCategories[0]
	}

	return ""
}

// BelongsTo reports whether c is part of t's enumeration.
func (c Category) BelongsTo(t Type) bool {
	switch t {
	case TypeCredit:
		return slices.Contains(creditCategories, c)
	case TypeDebit:
		return slices.Contains(debitCategories, c)
	}

	return false
}

// AddParams carries the user's input for a new transaction.
type AddParams struct {
	Type     Type
	Amount   int64
	Category Category // empty means DefaultCategory(Type)
	Date     string   // empty means the ledger clock's current date
}

// Validate reports why a ledger would refuse to record p.
func (p AddParams) Validate() error {
	if p.Amount <= 0 || p.Amount > MaxAmount {
		return ErrInvalidAmount
	}

	if !p.Type.Valid() {
		return ErrInvalidType
	}

	if p.Category != "" && !p.Category.BelongsTo(p.Type) {
		return ErrCategoryMismatch
	}

	return nil
}

// Snapshot is an inert copy of a ledger's state.
type Snapshot struct {
	Transactions []Transaction
	Budget       int64
}
