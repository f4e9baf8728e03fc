package transaction

import (
	"slices"
	"time"
)

// Ledger is the aggregate root: the ordered transaction sequence plus the
// budget target. It is not safe for concurrent use; Service provides the
// single-writer discipline.
type Ledger struct {
	txs    []Transaction
	budget int64
	lastID int64
	now    func() time.Time
}

type LedgerOption func(*Ledger)

// WithClock replaces time.Now as the source of ids and dates.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Add records a new transaction. It returns false and leaves the ledger
// untouched when p does not pass Validate.
func (l *Ledger) Add(p AddParams) (Transaction, bool) {
	if err := p.Validate(); err != nil {
		return Transaction{}, false
	}

	now := l.now()

	category := p.Category
	if category == "" {
		category = DefaultCategory(p.Type)
	}

	date := p.Date
	if date == "" {
		date = now.Format(DateLayout)
	}

	tx := Transaction{
		ID:       l.nextID(now),
		Type:     p.Type,
		Category: category,
		Amount:   p.Amount,
		Date:     date,
	}

	txs := make([]Transaction, len(l.txs), len(l.txs)+1)
	copy(txs, l.txs)
	l.txs = append(txs, tx)

	return tx, true
}

// nextID derives ids from the clock in milliseconds but never hands out an id
// at or below one already seen.
func (l *Ledger) nextID(now time.Time) int64 {
	id := max(now.UnixMilli(), l.lastID+1)
	l.lastID = id

	return id
}

// Delete removes the transaction with the given id. Unknown ids are ignored.
func (l *Ledger) Delete(id int64) bool {
	idx := slices.IndexFunc(l.txs, func(tx Transaction) bool { return tx.ID == id })
	if idx < 0 {
		return false
	}

	l.txs = slices.Concat(l.txs[:idx], l.txs[idx+1:])

	return true
}

// SetBudget replaces the budget target. Zero and negative values are allowed.
func (l *Ledger) SetBudget(v int64) {
	l.budget = v
}

func (l *Ledger) Budget() int64 { return l.budget }

func (l *Ledger) Len() int { return len(l.txs) }

// Transactions returns a copy of the sequence in insertion order.
func (l *Ledger) Transactions() []Transaction {
	return slices.Clone(l.txs)
}

// Reversed returns a copy of the sequence, newest first.
func (l *Ledger) Reversed() []Transaction {
	txs := slices.Clone(l.txs)
	slices.Reverse(txs)

	return txs
}

// Save exports the current state.
func (l *Ledger) Save() Snapshot {
	return Snapshot{
		Transactions: slices.Clone(l.txs),
		Budget:       l.budget,
	}
}

// Load replaces the ledger state with s. Records that break the ledger
// invariants are dropped, and a category that does not match its type is
// cleared. It returns the number of dropped records.
func (l *Ledger) Load(s Snapshot) int {
	seen := make(map[int64]struct{}, len(s.Transactions))
	txs := make([]Transaction, 0, len(s.Transactions))
	dropped := 0

	var lastID int64

	for _, tx := range s.Transactions {
		if tx.Amount <= 0 || tx.Amount > MaxAmount || !tx.Type.Valid() {
			dropped++
			continue
		}

		if _, dup := seen[tx.ID]; dup {
			dropped++
			continue
		}

		seen[tx.ID] = struct{}{}

		if tx.Category != "" && !tx.Category.BelongsTo(tx.Type) {
			tx.Category = ""
		}

		lastID = max(lastID, tx.ID)
		txs = append(txs, tx)
	}

	l.txs = txs
	l.budget = s.Budget
	l.lastID = max(l.lastID, lastID)

	return dropped
}
