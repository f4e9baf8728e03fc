package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Keys under which a snapshot is written to a key-value store.
const (
	KeyTransactions = "transactions"
	KeyBudget       = "budget"
)

// EncodeSnapshot serializes s into the persisted key-value form: the
// transactions as a JSON array and the budget as a decimal string.
func EncodeSnapshot(s Snapshot) (map[string][]byte, error) {
	txs := s.Transactions
	if txs == nil {
		txs = []Transaction{}
	}

	raw, err := json.Marshal(txs)
	if err != nil {
		return nil, fmt.Errorf("encoding transactions: %w", err)
	}

	return map[string][]byte{
		KeyTransactions: raw,
		KeyBudget:       []byte(strconv.FormatInt(s.Budget, 10)),
	}, nil
}

// DecodeSnapshot is the inverse of EncodeSnapshot. It never fails: absent keys
// yield defaults and malformed values are replaced by defaults. The returned
// error only describes what had to be discarded.
func DecodeSnapshot(entries map[string][]byte) (Snapshot, error) {
	var (
		s    Snapshot
		errs []error
	)

	if raw, ok := entries[KeyTransactions]; ok {
		var txs []Transaction
		if err := json.Unmarshal(raw, &txs); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrMalformedState, KeyTransactions, err))
		} else {
			s.Transactions = txs
		}
	}

	if raw, ok := entries[KeyBudget]; ok {
		budget, err := parseBudget(string(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrMalformedState, KeyBudget, err))
		}

		s.Budget = budget
	}

	return s, errors.Join(errs...)
}

// parseBudget reads an integer budget, truncating a decimal value toward zero.
func parseBudget(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}

	return d.IntPart(), nil
}
