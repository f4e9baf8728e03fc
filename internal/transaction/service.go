package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// Load returns the stored values for keys; absent keys are omitted.
	Load(ctx context.Context, keys ...string) (map[string][]byte, error)
	// Save writes all entries in a single atomic operation.
	Save(ctx context.Context, entries map[string][]byte) error
}

// Service owns a Ledger and persists it after every applied mutation.
// Mutations are serialized and each write happens before the next mutation
// is applied, so the store never sees a partial or reordered state.
type Service struct {
	mu     sync.Mutex
	repo   Repository
	ledger *Ledger
	logger *slog.Logger
}

type ServiceOption func(*Service)

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithLedger(l *Ledger) ServiceOption {
	return func(s *Service) {
		s.ledger = l
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		ledger: NewLedger(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Open restores the ledger from the repository. Malformed stored content is
// logged and replaced by the empty ledger; only repository failures are
// returned.
func (s *Service) Open(ctx context.Context) error {
	entries, err := s.repo.Load(ctx, KeyTransactions, KeyBudget)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	snap, err := DecodeSnapshot(entries)
	if err != nil {
		s.logger.Warn("discarding malformed ledger state", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dropped := s.ledger.Load(snap); dropped > 0 {
		s.logger.Warn("dropped invalid stored transactions", "count", dropped)
	}

	s.logger.Info("ledger opened",
		"transactions", s.ledger.Len(),
		"budget", s.ledger.Budget())

	return nil
}

// Add records a transaction. ok is false when the ledger refused the input;
// nothing is written in that case. A non-nil error means the transaction was
// recorded but could not be persisted.
func (s *Service) Add(ctx context.Context, params AddParams) (Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.ledger.Add(params)
	if !ok {
		s.logger.Debug("transaction rejected", "type", params.Type, "amount", params.Amount)
		return Transaction{}, false, nil
	}

	return tx, true, s.persist(ctx)
}

// AddBatch records every acceptable entry of params and persists once.
func (s *Service) AddBatch(ctx context.Context, params []AddParams) ([]Transaction, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		added    []Transaction
		rejected int
	)

	for _, p := range params {
		tx, ok := s.ledger.Add(p)
		if !ok {
			rejected++
			continue
		}

		added = append(added, tx)
	}

	if len(added) == 0 {
		return nil, rejected, nil
	}

	return added, rejected, s.persist(ctx)
}

// Delete removes the transaction with id. Unknown ids are not an error.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.Delete(id) {
		return false, nil
	}

	return true, s.persist(ctx)
}

func (s *Service) SetBudget(ctx context.Context, v int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger.SetBudget(v)

	return s.persist(ctx)
}

// Snapshot returns a consistent copy of the current state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Save()
}

// Reversed returns the transactions newest first.
func (s *Service) Reversed() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ledger.Reversed()
}

// persist must be called with s.mu held.
func (s *Service) persist(ctx context.Context) error {
	entries, err := EncodeSnapshot(s.ledger.Save())
	if err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}

	if err := s.repo.Save(ctx, entries); err != nil {
		s.logger.Error("failed to persist ledger", "error", err)
		return fmt.Errorf("saving ledger: %w", err)
	}

	return nil
}

// IsValidation reports whether err explains a refused ledger input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrCategoryMismatch)
}
