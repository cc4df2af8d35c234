package receivableshttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fulingwei1/non-standard-automation-pms-sub011/internal/platform/httpx"
	"github.com/fulingwei1/non-standard-automation-pms-sub011/internal/receivables"
)

const dateLayout = "2006-01-02"

// WarmupEnqueuer schedules a background dashboard warmup. A nil
// enqueuer means the deployment runs without a worker.
type WarmupEnqueuer interface {
	EnqueueDashboardWarmup(ctx context.Context, reason string) error
}

// Handler coordinates HTTP requests for the receivables dashboard.
type Handler struct {
	logger   *slog.Logger
	service  *receivables.Service
	enqueuer WarmupEnqueuer
	validate *validator.Validate
}

// NewHandler constructs the receivables HTTP handler.
func NewHandler(logger *slog.Logger, service *receivables.Service, enqueuer WarmupEnqueuer) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:   logger,
		service:  service,
		enqueuer: enqueuer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// snapshotRequest is the payload the upstream data layer pushes.
type snapshotRequest struct {
	Payments  []paymentPayload  `json:"payments" validate:"omitempty,dive"`
	Invoices  []invoicePayload  `json:"invoices" validate:"omitempty,dive"`
	Reminders []reminderPayload `json:"reminders" validate:"omitempty,dive"`
}

type paymentPayload struct {
	ID           string  `json:"id" validate:"required"`
	CustomerID   string  `json:"customerId"`
	CustomerName string  `json:"customerName"`
	ProjectName  string  `json:"projectName"`
	ContractNo   string  `json:"contractNo"`
	Amount       float64 `json:"amount"`
	PaidAmount   float64 `json:"paidAmount"`
	DueDate      string  `json:"dueDate"`
	PaidDate     string  `json:"paidDate"`
	Status       string  `json:"status"`
	Type         string  `json:"type"`
	CreditRating string  `json:"customerCreditRating"`
}

type invoicePayload struct {
	ID        string  `json:"id" validate:"required"`
	InvoiceNo string  `json:"invoiceNo"`
	Amount    float64 `json:"amount"`
	IssuedAt  string  `json:"issuedAt"`
}

type reminderPayload struct {
	ID           string  `json:"id" validate:"required"`
	CustomerName string  `json:"customerName"`
	ContractNo   string  `json:"contractNo"`
	Amount       float64 `json:"amount"`
	DaysUntilDue int     `json:"daysUntilDue"`
	OverdueDays  int     `json:"overdueDays"`
	IsOverdue    bool    `json:"isOverdue"`
	Level        string  `json:"reminderLevel"`
}

func (h *Handler) handleReplaceSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	snap := receivables.Snapshot{
		Payments:  make([]receivables.PaymentRecord, 0, len(req.Payments)),
		Invoices:  make([]receivables.Invoice, 0, len(req.Invoices)),
		Reminders: make([]receivables.Reminder, 0, len(req.Reminders)),
	}
	for _, p := range req.Payments {
		snap.Payments = append(snap.Payments, receivables.PaymentRecord{
			ID:           p.ID,
			CustomerID:   p.CustomerID,
			CustomerName: p.CustomerName,
			ProjectName:  p.ProjectName,
			ContractNo:   p.ContractNo,
			Amount:       p.Amount,
			PaidAmount:   p.PaidAmount,
			DueDate:      h.parseDate(p.ID, "dueDate", p.DueDate),
			PaidDate:     h.parseDate(p.ID, "paidDate", p.PaidDate),
			Status:       receivables.ParsePaymentStatus(p.Status),
			Type:         receivables.ParsePaymentType(p.Type),
			Rating:       receivables.ParseCreditRating(p.CreditRating),
		})
	}
	for _, inv := range req.Invoices {
		snap.Invoices = append(snap.Invoices, receivables.Invoice{
			ID:        inv.ID,
			InvoiceNo: inv.InvoiceNo,
			Amount:    inv.Amount,
			IssuedAt:  h.parseDate(inv.ID, "issuedAt", inv.IssuedAt),
		})
	}
	for _, rem := range req.Reminders {
		level := receivables.ReminderLevel(rem.Level)
		switch level {
		case receivables.ReminderNormal, receivables.ReminderWarning, receivables.ReminderUrgent:
		default:
			level = receivables.ReminderNormal
		}
		snap.Reminders = append(snap.Reminders, receivables.Reminder{
			ID:           rem.ID,
			CustomerName: rem.CustomerName,
			ContractNo:   rem.ContractNo,
			Amount:       rem.Amount,
			DaysUntilDue: rem.DaysUntilDue,
			OverdueDays:  rem.OverdueDays,
			IsOverdue:    rem.IsOverdue,
			Level:        level,
		})
	}

	stored, err := h.service.Ingest(r.Context(), snap)
	if err != nil {
		h.logger.Error("ingest snapshot", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if h.enqueuer != nil {
		if err := h.enqueuer.EnqueueDashboardWarmup(r.Context(), "snapshot"); err != nil {
			h.logger.Warn("enqueue dashboard warmup", slog.Any("error", err))
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"snapshotId": stored.ID,
		"payments":   len(stored.Payments),
		"invoices":   len(stored.Invoices),
		"reminders":  len(stored.Reminders),
	})
}

// parseDate tolerates missing or malformed dates: the record still
// participates in every aggregate, it just carries no aging.
func (h *Handler) parseDate(recordID, field, raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		h.logger.Warn("unparseable date ignored",
			slog.String("record_id", recordID),
			slog.String("field", field),
			slog.String("value", raw),
		)
		return nil
	}
	return &t
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("load dashboard", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, dashboard)
}

func (h *Handler) handleDistributions(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Distributions(r.Context()))
}

// statsResponse adds the presentation-rounded percentage next to the
// raw ratio.
type statsResponse struct {
	receivables.PortfolioStatistics
	CollectionRatePct string `json:"collectionRatePct"`
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.service.Statistics(r.Context())
	httpx.JSON(w, http.StatusOK, statsResponse{
		PortfolioStatistics: stats,
		CollectionRatePct:   fmt.Sprintf("%.1f", stats.CollectionRate*100),
	})
}

func (h *Handler) handleTrend(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 366 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "days must be a positive integer up to 366")
			return
		}
		days = parsed
	}
	httpx.JSON(w, http.StatusOK, h.service.Trend(r.Context(), days))
}

func (h *Handler) handleReminders(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Reminders(r.Context()))
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.AnnotateRecords(r.Context()))
}
