package receivableshttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers receivables dashboard endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(30, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Put("/receivables/snapshot", h.handleReplaceSnapshot)
	r.Get("/receivables/stats", h.handleStats)
	r.Get("/receivables/distributions", h.handleDistributions)
	r.Get("/receivables/trend", h.handleTrend)
	r.Get("/receivables/reminders", h.handleReminders)
	r.Get("/receivables/records", h.handleRecords)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/receivables/dashboard", h.handleDashboard)
	})
}
