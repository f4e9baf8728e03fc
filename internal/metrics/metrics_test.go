package metrics_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kakeibo/internal/metrics"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

var expenseCategories = transaction.Categories(transaction.TypeDebit)

func TestScenario_FoodAndSalary(t *testing.T) {
	l := transaction.NewLedger()

	_, ok := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 1000, Category: "食費"})
	require.True(t, ok)
	_, ok = l.Add(transaction.AddParams{Type: transaction.TypeCredit, Amount: 5000, Category: "給料"})
	require.True(t, ok)
	l.SetBudget(3000)

	s := l.Save()

	assert.Equal(t, int64(1000), metrics.TotalExpense(s))
	assert.Equal(t, int64(4000), metrics.CurrentBalance(s))
	assert.Equal(t, int64(2000), metrics.RemainingBudget(s))
	assert.Equal(t,
		map[transaction.Category]int64{"食費": 1000},
		metrics.CategoryBreakdown(s, expenseCategories))
}

func TestScenario_DeleteOnlyTransaction(t *testing.T) {
	l := transaction.NewLedger()
	tx, _ := l.Add(transaction.AddParams{Type: transaction.TypeCredit, Amount: 900})

	require.True(t, l.Delete(tx.ID))

	s := l.Save()
	assert.Empty(t, s.Transactions)
	assert.Zero(t, metrics.CurrentBalance(s))
}

func TestEmptySnapshot(t *testing.T) {
	s := transaction.Snapshot{}

	assert.Zero(t, metrics.TotalExpense(s))
	assert.Zero(t, metrics.TotalIncome(s))
	assert.Zero(t, metrics.CurrentBalance(s))
	assert.Zero(t, metrics.RemainingBudget(s))
	assert.Empty(t, metrics.CategoryBreakdown(s, expenseCategories))
}

func TestRemainingBudget(t *testing.T) {
	txs := []transaction.Transaction{
		{ID: 1, Type: transaction.TypeDebit, Amount: 700, Category: "食費"},
		{ID: 2, Type: transaction.TypeCredit, Amount: 10000, Category: "給料"},
		{ID: 3, Type: transaction.TypeDebit, Amount: 300, Category: "交通費"},
	}

	for _, budget := range []int64{5000, 1000, 0, -200} {
		s := transaction.Snapshot{Transactions: txs, Budget: budget}
		assert.Equal(t, budget-metrics.TotalExpense(s), metrics.RemainingBudget(s))
	}

	over := metrics.Summarize(transaction.Snapshot{Transactions: txs, Budget: 500})
	assert.Equal(t, int64(-500), over.RemainingBudget)
	assert.True(t, over.OverBudget)
}

func TestCurrentBalance_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for range 20 {
		txs := randomTransactions(rng, 1+rng.IntN(40))

		var credits, debits int64

		for _, tx := range txs {
			if tx.Type == transaction.TypeCredit {
				credits += tx.Amount
			} else {
				debits += tx.Amount
			}
		}

		want := credits - debits
		require.Equal(t, want, metrics.CurrentBalance(transaction.Snapshot{Transactions: txs}))

		rng.Shuffle(len(txs), func(i, j int) { txs[i], txs[j] = txs[j], txs[i] })
		assert.Equal(t, want, metrics.CurrentBalance(transaction.Snapshot{Transactions: txs}))
	}
}

func TestCategoryBreakdown_Sparse(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	txs := randomTransactions(rng, 60)
	s := transaction.Snapshot{Transactions: txs}

	want := map[transaction.Category]int64{}

	for _, tx := range txs {
		if tx.Type == transaction.TypeDebit {
			want[tx.Category] += tx.Amount
		}
	}

	got := metrics.CategoryBreakdown(s, expenseCategories)

	for c, v := range got {
		assert.Positive(t, v, "category %q reported with zero sum", c)
		assert.Equal(t, want[c], v)
	}

	for c, v := range want {
		if v > 0 {
			assert.Contains(t, got, c)
		}
	}
}

func TestCategoryBreakdown_IgnoresCreditsAndUnlisted(t *testing.T) {
	s := transaction.Snapshot{Transactions: []transaction.Transaction{
		{ID: 1, Type: transaction.TypeCredit, Amount: 5000, Category: "給料"},
		{ID: 2, Type: transaction.TypeDebit, Amount: 200, Category: "通信費"},
		{ID: 3, Type: transaction.TypeDebit, Amount: 50},
	}}

	got := metrics.CategoryBreakdown(s, []transaction.Category{"食費", "通信費", "給料"})
	assert.Equal(t, map[transaction.Category]int64{"通信費": 200}, got)
}

func TestOrderedBreakdown_FollowsEnumeration(t *testing.T) {
	s := transaction.Snapshot{Transactions: []transaction.Transaction{
		{ID: 1, Type: transaction.TypeDebit, Amount: 10, Category: "医療費"},
		{ID: 2, Type: transaction.TypeDebit, Amount: 20, Category: "食費"},
		{ID: 3, Type: transaction.TypeDebit, Amount: 30, Category: "医療費"},
	}}

	got := metrics.OrderedBreakdown(s, expenseCategories)
	assert.Equal(t, []metrics.CategoryAmount{
		{Category: "食費", Amount: 20},
		{Category: "医療費", Amount: 40},
	}, got)
}

func TestMetrics_DoNotMutateSnapshot(t *testing.T) {
	txs := []transaction.Transaction{
		{ID: 1, Type: transaction.TypeDebit, Amount: 10, Category: "食費"},
		{ID: 2, Type: transaction.TypeCredit, Amount: 20},
	}
	s := transaction.Snapshot{Transactions: txs, Budget: 100}
	before := append([]transaction.Transaction(nil), txs...)

	first := metrics.Summarize(s)
	second := metrics.Summarize(s)

	assert.Equal(t, first, second)
	assert.Equal(t, before, s.Transactions)
}

func randomTransactions(rng *rand.Rand, n int) []transaction.Transaction {
	txs := make([]transaction.Transaction, n)

	for i := range txs {
		typ := transaction.TypeDebit
		if rng.IntN(3) == 0 {
			typ = transaction.TypeCredit
		}

		cats := transaction.Categories(typ)
		txs[i] = transaction.Transaction{
			ID:       int64(i + 1),
			Type:     typ,
			Category: cats[rng.IntN(len(cats))],
			Amount:   1 + rng.Int64N(100000),
		}
	}

	return txs
}

func TestTotals_LargestAmountsDoNotWrap(t *testing.T) {
	l := transaction.NewLedger()

	for range 2 {
		_, ok := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: transaction.MaxAmount})
		require.True(t, ok)
	}

	_, ok := l.Add(transaction.AddParams{Type: transaction.TypeDebit, Amount: 5_000_000_000_000_000_000})
	require.False(t, ok)

	s := l.Save()

	assert.Equal(t, 2*transaction.MaxAmount, metrics.TotalExpense(s))
	assert.Equal(t, -2*transaction.MaxAmount, metrics.CurrentBalance(s))
	assert.Equal(t, -2*transaction.MaxAmount, metrics.RemainingBudget(s))
}
