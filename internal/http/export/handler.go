package export

import (
	"archive/zip"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/innkeeper/internal/export"
	"github.com/MrJamesThe3rd/innkeeper/internal/http/invoice"
	"github.com/MrJamesThe3rd/innkeeper/internal/http/render"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.register)
	r.Get("/download", h.download)
}

type totalsResponse struct {
	Issued      int    `json:"issued"`
	Voided      int    `json:"voided"`
	Billed      string `json:"billed"`
	Paid        string `json:"paid"`
	Outstanding string `json:"outstanding"`
}

type registerResponse struct {
	Totals  totalsResponse `json:"totals"`
	Summary string         `json:"summary"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	filter, err := invoice.ParseFilter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	items, err := h.svc.Register(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	t := export.Summarize(items)

	render.JSON(w, http.StatusOK, registerResponse{
		Totals: totalsResponse{
			Issued:      t.Issued,
			Voided:      t.Voided,
			Billed:      t.Billed.StringFixed(2),
			Paid:        t.Paid.StringFixed(2),
			Outstanding: t.Outstanding.StringFixed(2),
		},
		Summary: export.Summary(items),
	})
}

// download streams a zip with the register as CSV and the plain-text summary.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := invoice.ParseFilter(r)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	items, err := h.svc.Register(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	name := "invoices"
	if filter.Year != nil {
		name = fmt.Sprintf("invoices_%d", *filter.Year)
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".zip"))

	zw := zip.NewWriter(w)
	defer zw.Close()

	f, err := zw.Create(name + ".csv")
	if err != nil {
		slog.Error("failed to create zip entry", "error", err)
		return
	}

	if err := export.WriteCSV(f, items); err != nil {
		slog.Error("failed to write register", "error", err)
		return
	}

	f, err = zw.Create("summary.txt")
	if err != nil {
		slog.Error("failed to create zip entry", "error", err)
		return
	}

	if _, err := f.Write([]byte(export.Summary(items))); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
}
