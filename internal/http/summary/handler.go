package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/slateapp/slate/internal/bills"
	"github.com/slateapp/slate/internal/models"
	"github.com/slateapp/slate/internal/summary"
)

type Handler struct {
	svc *bills.Service
	now func() time.Time
}

func NewHandler(svc *bills.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type summaryResponse struct {
	Unpaid        []models.Bill        `json:"unpaid"`
	Paid          []models.Bill        `json:"paid"`
	TotalDue      decimal.Decimal      `json:"totalDue"`
	OverdueCount  int                  `json:"overdueCount"`
	UpcomingCount int                  `json:"upcomingCount"`
	Chart         []summary.ChartPoint `json:"chart"`
	Months        []summary.MonthGroup `json:"months"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	today := h.now().Format(models.DateFormat)

	unpaid, paid := summary.Partition(h.svc.Bills())
	resp := summaryResponse{
		Unpaid:        orEmpty(unpaid),
		Paid:          orEmpty(paid),
		TotalDue:      summary.TotalDue(unpaid),
		OverdueCount:  summary.OverdueCount(unpaid, today),
		UpcomingCount: summary.UpcomingCount(unpaid, today),
		Chart:         summary.SpendingSeries(unpaid),
		Months:        summary.MonthGroups(paid),
	}
	if resp.Months == nil {
		resp.Months = []summary.MonthGroup{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func orEmpty(bills []models.Bill) []models.Bill {
	if bills == nil {
		return []models.Bill{}
	}
	return bills
}
