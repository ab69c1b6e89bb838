package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"loomdesk/api"
	"loomdesk/services/calendar"
)

// CalendarHandler serves the calendar view and navigation endpoints.
type CalendarHandler struct {
	Service *calendar.Service

	// Limiter, when set, rate-limits the manual refresh endpoint per IP.
	Limiter *api.IPRateLimiter
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(service *calendar.Service) *CalendarHandler {
	return &CalendarHandler{Service: service}
}

// Register mounts the calendar routes on the router.
func (h *CalendarHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/calendar", h.GetView).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/calendar/status", h.GetStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/calendar/refresh", h.limited(h.TriggerRefresh)).Methods(http.MethodPost)
	r.HandleFunc("/api/calendar/next", h.Next).Methods(http.MethodPost)
	r.HandleFunc("/api/calendar/prev", h.Prev).Methods(http.MethodPost)
	r.HandleFunc("/api/calendar/today", h.Today).Methods(http.MethodPost)
	r.HandleFunc("/api/calendar/mode", h.SetMode).Methods(http.MethodPost)
	r.HandleFunc("/api/calendar/filter", h.SetFilter).Methods(http.MethodPost)
}

// GetView returns the render model for the current window. Optional anchor,
// mode, and filter query params override the controller state for this
// request only (read-only deep links), without mutating it.
func (h *CalendarHandler) GetView(w http.ResponseWriter, r *http.Request) {
	anchor := strings.TrimSpace(r.URL.Query().Get("anchor"))
	if anchor != "" {
		if _, err := time.Parse("2006-01-02", anchor); err != nil {
			writeError(w, http.StatusBadRequest, "invalid anchor date: "+anchor)
			return
		}
	}
	mode := strings.TrimSpace(r.URL.Query().Get("mode"))
	filter := strings.TrimSpace(r.URL.Query().Get("filter"))

	writeJSON(w, h.Service.View(anchor, mode, filter))
}

// GetStatus returns the background worker status.
func (h *CalendarHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.GetStatus())
}

// TriggerRefresh queues an immediate refetch of both providers.
func (h *CalendarHandler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	h.Service.Refresh()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "refresh queued"})
}

// Next advances the anchor one period and returns the re-rendered view.
func (h *CalendarHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.Service.GoToNextPeriod()
	writeJSON(w, h.Service.View("", "", ""))
}

// Prev moves the anchor one period back and returns the re-rendered view.
func (h *CalendarHandler) Prev(w http.ResponseWriter, r *http.Request) {
	h.Service.GoToPrevPeriod()
	writeJSON(w, h.Service.View("", "", ""))
}

// Today resets the anchor to the current day, preserving the mode.
func (h *CalendarHandler) Today(w http.ResponseWriter, r *http.Request) {
	h.Service.GoToToday()
	writeJSON(w, h.Service.View("", "", ""))
}

// SetMode switches the view mode.
func (h *CalendarHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	mode := strings.TrimSpace(r.URL.Query().Get("mode"))
	switch mode {
	case "month", "week", "day":
	default:
		writeError(w, http.StatusBadRequest, "invalid mode: "+mode)
		return
	}
	h.Service.SetMode(mode)
	writeJSON(w, h.Service.View("", "", ""))
}

// SetFilter switches the active event filter. Unknown values behave as
// "all", matching the engine's degradation policy.
func (h *CalendarHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	h.Service.SetFilter(strings.TrimSpace(r.URL.Query().Get("filter")))
	writeJSON(w, h.Service.View("", "", ""))
}

func (h *CalendarHandler) limited(next http.HandlerFunc) http.HandlerFunc {
	if h.Limiter == nil {
		return next
	}
	return api.RateLimitHandlerFunc(h.Limiter, next)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
