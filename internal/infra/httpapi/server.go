package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"pick_day_bot/internal/domain/calendar"
	"pick_day_bot/internal/infra/clock"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Reconciler is the trigger-facing view of the reconcile service.
type Reconciler interface {
	Reconcile(ctx context.Context, today calendar.Date) ([]string, error)
}

// Handlers exposes the external trigger surface: an idempotent "run
// reconciliation for the active group" endpoint guarded by a shared secret,
// invoked by a hosting platform's cron.
type Handlers struct {
	reconciler Reconciler
	location   *time.Location
	cronSecret string
	logger     *logrus.Entry
}

func NewHandlers(reconciler Reconciler, location *time.Location, cronSecret string, logger *logrus.Entry) *Handlers {
	return &Handlers{
		reconciler: reconciler,
		location:   location,
		cronSecret: cronSecret,
		logger:     logger,
	}
}

// Router returns a configured chi router with all routes.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", h.handleHealth)
	r.Post("/cron/daily", h.handleDailyCron)

	return r
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// cronResponse is the trigger operation summary: a human-readable list of
// actions taken, one line per decision.
type cronResponse struct {
	Success bool     `json:"success"`
	Summary []string `json:"summary"`
}

func (h *Handlers) handleDailyCron(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		h.logger.WithField("remote", r.RemoteAddr).Warn("Cron trigger rejected: bad or missing secret")
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return
	}

	today := clock.TodayIn(time.Now(), h.location)
	summary, err := h.reconciler.Reconcile(r.Context(), today)
	if err != nil {
		// Partial summaries still describe what happened before the failure.
		h.logger.WithError(err).Error("Reconciliation failed")
		writeJSON(w, http.StatusInternalServerError, cronResponse{Success: false, Summary: summary})
		return
	}

	writeJSON(w, http.StatusOK, cronResponse{Success: true, Summary: summary})
}

func (h *Handlers) authorized(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	want := "Bearer " + h.cronSecret
	return subtle.ConstantTimeCompare([]byte(auth), []byte(want)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
