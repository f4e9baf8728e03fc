package export

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/kakeibo/internal/exchange"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	svc *exchange.Service
	now func() time.Time
}

func NewHandler(svc *exchange.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export.csv", h.serve(contentTypeCSV, "csv", h.svc.ExportCSV))
	r.Get("/export.xlsx", h.serve(contentTypeXLSX, "xlsx", h.svc.ExportXLSX))
}

func (h *Handler) serve(contentType, ext string, write func(io.Writer) error) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=\"kakeibo_%s.%s\"", h.now().Format("20060102"), ext))

		if err := write(w); err != nil {
			slog.Error("failed to write export", "format", ext, "error", err)
		}
	}
}
