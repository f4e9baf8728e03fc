package transaction

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

// CategoryRoutes serves the category enumerations of both types.
func (h *Handler) CategoryRoutes(r chi.Router) {
	r.Get("/", h.categories)
}

type createTransactionRequest struct {
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	Category string `json:"category,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txType, err := transaction.ParseType(req.Type)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	params := transaction.AddParams{
		Type:     txType,
		Amount:   req.Amount,
		Category: transaction.Category(req.Category),
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	tx, ok, err := h.svc.Add(r.Context(), params)
	if !ok {
		http.Error(w, "transaction rejected", http.StatusUnprocessableEntity)
		return
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var txs []transaction.Transaction

	switch r.URL.Query().Get("order") {
	case "desc":
		txs = h.svc.Reversed()
	case "", "asc":
		txs = h.svc.Snapshot().Transactions
	default:
		http.Error(w, "order must be asc or desc", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(categoriesResponse{
		Credit: transaction.Categories(transaction.TypeCredit),
		Debit:  transaction.Categories(transaction.TypeDebit),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
