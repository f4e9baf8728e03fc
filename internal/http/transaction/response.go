package transaction

import (
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

type transactionResponse struct {
	ID       int64                `json:"id"`
	Type     transaction.Type     `json:"type"`
	Category transaction.Category `json:"category"`
	Amount   int64                `json:"amount"`
	Date     string               `json:"date"`
}

type categoriesResponse struct {
	Credit []transaction.Category `json:"credit"`
	Debit  []transaction.Category `json:"debit"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:       tx.ID,
		Type:     tx.Type,
		Category: tx.Category,
		Amount:   tx.Amount,
		Date:     tx.Date,
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
