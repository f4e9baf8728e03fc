package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

// SnapshotFunc returns the ledger state to report.
type SnapshotFunc func() transaction.Snapshot

// Collector exposes the derived ledger values as Prometheus gauges. Values
// are recomputed from a fresh snapshot on every scrape.
type Collector struct {
	snapshot SnapshotFunc

	balance         *prometheus.Desc
	expense         *prometheus.Desc
	income          *prometheus.Desc
	budget          *prometheus.Desc
	remaining       *prometheus.Desc
	transactions    *prometheus.Desc
	categoryExpense *prometheus.Desc
}

func NewCollector(snapshot SnapshotFunc) *Collector {
	return &Collector{
		snapshot: snapshot,

		balance: prometheus.NewDesc(
			"kakeibo_balance_yen",
			"Current balance: credits minus debits.",
			nil, nil,
		),
		expense: prometheus.NewDesc(
			"kakeibo_expense_yen",
			"Sum of all debit transactions.",
			nil, nil,
		),
		income: prometheus.NewDesc(
			"kakeibo_income_yen",
			"Sum of all credit transactions.",
			nil, nil,
		),
		budget: prometheus.NewDesc(
			"kakeibo_budget_yen",
			"Budget target.",
			nil, nil,
		),
		remaining: prometheus.NewDesc(
			"kakeibo_budget_remaining_yen",
			"Budget minus expense; negative when over budget.",
			nil, nil,
		),
		transactions: prometheus.NewDesc(
			"kakeibo_transactions",
			"Number of recorded transactions.",
			nil, nil,
		),
		categoryExpense: prometheus.NewDesc(
			"kakeibo_category_expense_yen",
			"Debit sum per expense category, non-zero categories only.",
			[]string{"category"}, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.balance
	ch <- c.expense
	ch <- c.income
	ch <- c.budget
	ch <- c.remaining
	ch <- c.transactions
	ch <- c.categoryExpense
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.snapshot()
	sum := Summarize(snap)

	gauge := func(desc *prometheus.Desc, v int64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(v), labels...)
	}

	gauge(c.balance, sum.CurrentBalance)
	gauge(c.expense, sum.TotalExpense)
	gauge(c.income, sum.TotalIncome)
	gauge(c.budget, sum.Budget)
	gauge(c.remaining, sum.RemainingBudget)
	gauge(c.transactions, int64(len(snap.Transactions)))

	for _, ca := range sum.Breakdown {
		gauge(c.categoryExpense, ca.Amount, string(ca.Category))
	}
}
