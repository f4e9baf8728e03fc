package exchange

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

// ImportResult reports the outcome of one import.
type ImportResult struct {
	BatchID  uuid.UUID `json:"batch_id"`
	Parsed   int       `json:"parsed"`
	Added    int       `json:"added"`
	Rejected int       `json:"rejected"`
}

// Service moves ledger data in and out of spreadsheet formats.
type Service struct {
	ledger *transaction.Service
}

func NewService(ledger *transaction.Service) *Service {
	return &Service{ledger: ledger}
}

// Import parses a CSV and records every row the ledger accepts. Rows go
// through the same validation as interactive input.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	params, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}

	result := &ImportResult{
		BatchID: uuid.New(),
		Parsed:  len(params),
	}

	added, rejected, err := s.ledger.AddBatch(ctx, params)
	result.Added = len(added)
	result.Rejected = rejected

	if err != nil {
		return result, fmt.Errorf("recording batch: %w", err)
	}

	slog.Info("import completed",
		"batch_id", result.BatchID,
		"added", result.Added,
		"rejected", result.Rejected)

	return result, nil
}

func (s *Service) ExportCSV(w io.Writer) error {
	return WriteCSV(w, s.ledger.Snapshot())
}

func (s *Service) ExportXLSX(w io.Writer) error {
	return WriteXLSX(w, s.ledger.Snapshot())
}
