package transaction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

// fixedClock returns the same instant on every call, which forces the ledger
// to fall back to lastID+1 for uniqueness.
func fixedClock() func() time.Time {
	t := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestLedger_Add(t *testing.T) {
	type testCase struct {
		name    string
		params  transaction.AddParams
		wantOK  bool
		wantCat transaction.Category
	}

	tests := []testCase{
		{
			name:    "Debit",
			params:  transaction.AddParams{Type: transaction.TypeDebit, Amount: 1000, Category: "食費"},
			wantOK:  true,
			wantCat: "食費",
		},
		{
			name:    "CreditDefaultCategory",
			params:  transaction.AddParams{Type: transaction.TypeCredit, Amount: 5000},
			wantOK:  true,
			wantCat: "給料",
		},
		{
			name:    "DebitDefaultCategory",
			params:  transaction.AddParams{Type: transaction.TypeDebit, Amount: 1},
			wantOK:  true,
			wantCat: "食費",
		},
		{
			name:   "ZeroAmount",
			params: transaction.AddParams{Type: transaction.TypeDebit, Amount: 0, Category: "食費"},
		},
		{
			name:   "NegativeAmount",
			params: transaction.AddParams{Type: transaction.TypeCredit, Amount: -10},
		},
		{
			name:   "AboveMaxAmount",
			params: transaction.AddParams{Type: transaction.TypeDebit, Amount: transaction.MaxAmount + 1},
		},
		{
			name:    "MaxAmount",
			params:  transaction.AddParams{Type: transaction.TypeDebit, Amount: transaction.MaxAmount},
			wantOK:  true,
			wantCat: "食費",
		},
		{
			name:   "UnknownType",
			params: transaction.AddParams{Type: "transfer", Amount: 10},
		},
		{
			name:   "CategoryFromOtherType",
			params: transaction.AddParams{Type: transaction.TypeDebit, Amount: 10, Category: "給料"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := transaction.NewLedger(transaction.WithClock(fixedClock()))
			before := l.Len()

			tx, ok := l.Add(tt.params)

			if !tt.wantOK {
				assert.False(t, ok)
				assert.Equal(t, before, l.Len())

				return
			}

			require.True(t, ok)
			assert.Equal(t, before+1, l.Len())
			assert.Equal(t, tt.params.Amount, tx.Amount)
			assert.Positive(t, tx.Amount)
			assert.Equal(t, tt.wantCat, tx.Category)
			assert.Equal(t, "2026/1/15", tx.Date)
			assert.NotZero(t, tx.ID)
		})
	}
}

func TestLedger_IDsUniqueUnderFrozenClock(t *testing.T) {
	l := transaction.NewLedger(transaction.WithClock(fixedClock()))

	seen := map[int64]struct{}{}

	for range 50 {
		tx, ok := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 100})
		require.True(t, ok)

		_, dup := seen[tx.ID]
		require.False(t, dup, "duplicate id %d", tx.ID)

		seen[tx.ID] = struct{}{}
	}
}

func TestLedger_IDsNotReusedAfterDelete(t *testing.T) {
	l := transaction.NewLedger(transaction.WithClock(fixedClock()))

	first, _ := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 100})
	second, _ := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 200})

	require.True(t, l.Delete(second.ID))

	third, ok := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 300})
	require.True(t, ok)
	assert.Greater(t, third.ID, second.ID)
	assert.NotEqual(t, first.ID, third.ID)
}

func TestLedger_AddPreservesInsertionOrder(t *testing.T) {
	l := transaction.NewLedger()

	for _, amount := range []int64{10, 20, 30} {
		_, ok := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: amount})
		require.True(t, ok)
	}

	txs := l.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, []int64{10, 20, 30}, []int64{txs[0].Amount, txs[1].Amount, txs[2].Amount})

	rev := l.Reversed()
	assert.Equal(t, int64(30), rev[0].Amount)

	// Display reversal never touches stored order.
	assert.Equal(t, int64(10), l.Transactions()[0].Amount)
}

func TestLedger_Delete(t *testing.T) {
	l := transaction.NewLedger()
	tx, _ := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 500})

	t.Run("UnknownID", func(t *testing.T) {
		before := l.Transactions()
		assert.False(t, l.Delete(tx.ID+12345))
		assert.Equal(t, before, l.Transactions())
	})

	t.Run("OnlyTransaction", func(t *testing.T) {
		assert.True(t, l.Delete(tx.ID))
		assert.Zero(t, l.Len())
		assert.Empty(t, l.Transactions())
	})

	t.Run("Idempotent", func(t *testing.T) {
		assert.False(t, l.Delete(tx.ID))
		assert.Zero(t, l.Len())
	})
}

func TestLedger_DeleteDoesNotAffectEarlierSnapshot(t *testing.T) {
	l := transaction.NewLedger()
	a, _ := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 1})
	l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 2})

	snap := l.Save()
	l.Delete(a.ID)

	require.Len(t, snap.Transactions, 2)
	assert.Equal(t, a.ID, snap.Transactions[0].ID)
}

func TestLedger_SetBudget(t *testing.T) {
	l := transaction.NewLedger()

	for _, v := range []int64{3000, 0, -500} {
		l.SetBudget(v)
		assert.Equal(t, v, l.Budget())
	}
}

func TestLedger_SaveLoadRoundTrip(t *testing.T) {
	src := transaction.NewLedger(transaction.WithClock(fixedClock()))
	src.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 1000, Category: "食費"})
	src.Add(transaction.AddParams{Type: transaction.TypeCredit, Amount: 5000, Category: "給料"})
	src.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 320, Category: "交通費"})
	src.SetBudget(-42)

	dst := transaction.NewLedger()
	dropped := dst.Load(src.Save())

	assert.Zero(t, dropped)
	assert.Equal(t, src.Transactions(), dst.Transactions())
	assert.Equal(t, src.Budget(), dst.Budget())
}

func TestLedger_LoadSanitizes(t *testing.T) {
	l := transaction.NewLedger(transaction.WithClock(fixedClock()))

	dropped := l.Load(transaction.Snapshot{
		Transactions: []transaction.Transaction{
			{ID: 1, Type: transaction.TypeDebit, Amount: 100, Category: "食費"},
			{ID: 2, Type: transaction.TypeDebit, Amount: 0},
			{ID: 3, Type: "unknown", Amount: 100},
			{ID: 1, Type: transaction.TypeCredit, Amount: 100},
			{ID: 4, Type: transaction.TypeCredit, Amount: 100, Category: "食費"},
			{ID: 5, Type: transaction.TypeCredit, Amount: 100},
			{ID: 6, Type: transaction.TypeDebit, Amount: transaction.MaxAmount + 1},
		},
		Budget: 7000,
	})

	assert.Equal(t, 4, dropped)

	txs := l.Transactions()
	require.Len(t, txs, 3)
	assert.Equal(t, int64(1), txs[0].ID)
	assert.Equal(t, transaction.Category(""), txs[1].Category)
	assert.Equal(t, transaction.Category(""), txs[2].Category)
	assert.Equal(t, int64(7000), l.Budget())
}

func TestLedger_LoadAdvancesIDs(t *testing.T) {
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	l := transaction.NewLedger(transaction.WithClock(fixedClock()))
	l.Load(transaction.Snapshot{
		Transactions: []transaction.Transaction{
			{ID: future, Type: transaction.TypeDebit, Amount: 100},
		},
	})

	tx, ok := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 1})
	require.True(t, ok)
	assert.Greater(t, tx.ID, future)
}

func TestParseType(t *testing.T) {
	for _, in := range []string{"入金", "credit", "Income"} {
		got, err := transaction.ParseType(in)
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeCredit, got)
	}

	for _, in := range []string{"出金", "debit", " EXPENSE "} {
		got, err := transaction.ParseType(in)
		require.NoError(t, err)
		assert.Equal(t, transaction.TypeDebit, got)
	}

	_, err := transaction.ParseType("transfer")
	assert.ErrorIs(t, err, transaction.ErrInvalidType)
}

func TestCategories_Disjoint(t *testing.T) {
	for _, c := range transaction.Categories(transaction.TypeDebit) {
		assert.True(t, c.BelongsTo(transaction.TypeDebit))
		assert.False(t, c.BelongsTo(transaction.TypeCredit), "category %q in both sets", c)
	}

	for _, c := range transaction.Categories(transaction.TypeCredit) {
		assert.True(t, c.BelongsTo(transaction.TypeCredit))
	}

	assert.Equal(t, transaction.Categories(transaction.TypeDebit)[0], transaction.DefaultCategory(transaction.TypeDebit))
	assert.Equal(t, transaction.Categories(transaction.TypeCredit)[0], transaction.DefaultCategory(transaction.TypeCredit))
}
