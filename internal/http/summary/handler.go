package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kakeibo/internal/metrics"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

// Handler serves the budget setting and the values derived from the ledger.
type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/budget", h.getBudget)
	r.Put("/budget", h.putBudget)
	r.Get("/summary", h.summary)
}

type budgetRequest struct {
	Budget *int64 `json:"budget"`
}

type budgetResponse struct {
	Budget int64 `json:"budget"`
}

type categoryAmountResponse struct {
	Category transaction.Category `json:"category"`
	Amount   int64                `json:"amount"`
}

type summaryResponse struct {
	Budget          int64                    `json:"budget"`
	TotalIncome     int64                    `json:"total_income"`
	TotalExpense    int64                    `json:"total_expense"`
	CurrentBalance  int64                    `json:"current_balance"`
	RemainingBudget int64                    `json:"remaining_budget"`
	OverBudget      bool                     `json:"over_budget"`
	Breakdown       []categoryAmountResponse `json:"breakdown"`
}

func (h *Handler) getBudget(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, budgetResponse{Budget: h.svc.Snapshot().Budget})
}

func (h *Handler) putBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Budget == nil {
		http.Error(w, "budget is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.SetBudget(r.Context(), *req.Budget); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, budgetResponse{Budget: *req.Budget})
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	sum := metrics.Summarize(h.svc.Snapshot())

	breakdown := make([]categoryAmountResponse, len(sum.Breakdown))
	for i, ca := range sum.Breakdown {
		breakdown[i] = categoryAmountResponse{Category: ca.Category, Amount: ca.Amount}
	}

	writeJSON(w, summaryResponse{
		Budget:          sum.Budget,
		TotalIncome:     sum.TotalIncome,
		TotalExpense:    sum.TotalExpense,
		CurrentBalance:  sum.CurrentBalance,
		RemainingBudget: sum.RemainingBudget,
		OverBudget:      sum.OverBudget,
		Breakdown:       breakdown,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
