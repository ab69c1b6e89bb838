package calendar

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"loomdesk/models"
)

// OrderSource provides the full current collection of production orders.
type OrderSource interface {
	ListOrders(ctx context.Context) ([]models.OrderRecord, error)
}

// TaskSource provides the full current collection of worker tasks.
type TaskSource interface {
	ListTasks(ctx context.Context) ([]models.TaskRecord, error)
}

// Refresh cycle states.
const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
)

const fetchTimeout = 60 * time.Second

// Status holds the current state of the calendar background worker.
type Status struct {
	Running         bool      `json:"running"`
	State           string    `json:"state"` // "idle", "loading", "ready"
	LastRefreshAt   time.Time `json:"lastRefreshAt"`
	LastRefreshMs   int64     `json:"lastRefreshMs"`
	NextRefreshAt   time.Time `json:"nextRefreshAt"`
	RefreshInterval string    `json:"refreshInterval"`
	TotalEvents     int       `json:"totalEvents"`
	DroppedRecords  int       `json:"droppedRecords"`
	LastError       string    `json:"lastError,omitempty"`
}

// Service is the refresh controller for the calendar view engine. It owns
// the anchor date, view mode, filter, and the last-fetched collections; all
// projection over that state is pure. Event collections are replaced whole
// on each refresh, never mutated in place, so readers never observe a
// half-updated index.
type Service struct {
	orders OrderSource
	tasks  TaskSource

	mu           sync.RWMutex
	anchor       time.Time
	mode         string
	filterMode   string
	firstWeekday time.Weekday
	events       []models.CalendarEvent
	index        Index
	dropped      int
	refreshedAt  time.Time
	state        string
	lastError    string
	fetchSeq     uint64 // last issued request token
	applied      uint64 // highest token committed so far

	stopCh     chan struct{}
	refreshNow chan struct{} // trigger immediate refresh

	statusMu        sync.RWMutex
	running         bool
	refreshInterval time.Duration
	lastRefreshAt   time.Time
	lastRefreshMs   int64
	nextRefreshAt   time.Time

	now func() time.Time
}

// New creates a calendar service over the two providers. The anchor starts
// on the current day in month mode with no filter.
func New(orders OrderSource, tasks TaskSource, firstWeekday time.Weekday) *Service {
	s := &Service{
		orders:       orders,
		tasks:        tasks,
		firstWeekday: firstWeekday,
		mode:         models.ModeMonth,
		filterMode:   models.FilterAll,
		state:        StateIdle,
		now:          time.Now,
	}
	s.anchor = startOfDay(s.now())
	return s
}

// StartBackgroundRefresh begins async population on startup and periodic
// refresh. The timer is torn down by Stop; a manual refresh resets it so the
// next automatic run is a full interval away.
func (s *Service) StartBackgroundRefresh(interval time.Duration) {
	s.stopCh = make(chan struct{})
	s.refreshNow = make(chan struct{}, 1)

	s.statusMu.Lock()
	s.running = true
	s.refreshInterval = interval
	s.statusMu.Unlock()

	go func() {
		log.Println("[calendar] background refresh: initial population starting...")
		s.doRefresh()
		log.Println("[calendar] background refresh: initial population complete")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			s.statusMu.Lock()
			s.nextRefreshAt = s.now().Add(interval)
			s.statusMu.Unlock()

			select {
			case <-ticker.C:
				s.doRefresh()
			case <-s.refreshNow:
				s.doRefresh()
				ticker.Reset(interval)
			case <-s.stopCh:
				log.Println("[calendar] background refresh: stopped")
				s.statusMu.Lock()
				s.running = false
				s.statusMu.Unlock()
				return
			}
		}
	}()
}

// Stop tears down the background refresh loop.
func (s *Service) Stop() {
	if s.stopCh != nil {
		close(s.stopCh)
	}
}

// Refresh triggers an immediate refresh. Non-blocking; a trigger arriving
// while one is already pending is collapsed into it.
func (s *Service) Refresh() {
	if s.refreshNow == nil {
		return
	}
	select {
	case s.refreshNow <- struct{}{}:
	default:
	}
}

// doRefresh runs one refresh cycle with timing for the status endpoint.
func (s *Service) doRefresh() {
	start := s.now()
	if err := s.refresh(context.Background()); err != nil {
		log.Printf("[calendar] refresh failed: %v", err)
	}
	elapsed := s.now().Sub(start)

	s.statusMu.Lock()
	s.lastRefreshAt = s.now()
	s.lastRefreshMs = elapsed.Milliseconds()
	s.statusMu.Unlock()
}

// refresh fetches both collections in parallel and commits the result. The
// view never renders with only one source loaded: a cycle where either
// provider fails applies nothing and retains the previous data. Every cycle
// re-enters the loading state while the fetch is in flight; commit and
// recordFailure restore ready. Each cycle carries a monotonically increasing
// request token compared at commit, so a stale response resolving after a
// newer one is discarded.
func (s *Service) refresh(ctx context.Context) error {
	s.mu.Lock()
	s.fetchSeq++
	token := s.fetchSeq
	s.state = StateLoading
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var orders []models.OrderRecord
	var tasks []models.TaskRecord

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		recs, err := s.orders.ListOrders(ctx)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		orders = recs
		return nil
	})
	p.Go(func(ctx context.Context) error {
		recs, err := s.tasks.ListTasks(ctx)
		if err != nil {
			return fmt.Errorf("tasks: %w", err)
		}
		tasks = recs
		return nil
	})
	if err := p.Wait(); err != nil {
		s.recordFailure(err)
		return err
	}

	s.commit(token, orders, tasks)
	return nil
}

// commit normalizes, filters, and indexes a fetched snapshot, replacing the
// previous one. Stale tokens (an older fetch resolving after a newer commit)
// are dropped.
func (s *Service) commit(token uint64, orders []models.OrderRecord, tasks []models.TaskRecord) {
	events, dropped := Normalize(orders, tasks)
	if dropped > 0 {
		log.Printf("[calendar] dropped %d records with missing or unparsable due dates", dropped)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.applied {
		return
	}
	s.applied = token
	s.events = events
	s.dropped = dropped
	s.index = BuildIndex(Filter(events, s.filterMode))
	s.refreshedAt = s.now().UTC()
	s.state = StateReady
	s.lastError = ""
}

// recordFailure marks the cycle failed. Previously rendered data stays in
// place — stale but valid beats a blank calendar.
func (s *Service) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
	if s.events != nil {
		s.state = StateReady
	}
}

// State returns the current refresh cycle state.
func (s *Service) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Window returns the view window for the current anchor and mode.
func (s *Service) Window() models.ViewWindow {
	s.mu.RLock()
	anchor, mode, fw := s.anchor, s.mode, s.firstWeekday
	s.mu.RUnlock()
	return ComputeWindow(anchor, mode, fw)
}

// FilterMode returns the active filter.
func (s *Service) FilterMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterMode
}

// SetMode switches the view mode, keeping the anchor in place.
func (s *Service) SetMode(mode string) {
	mode = normalizeMode(mode)
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

// SetFilter switches the active filter and rebuilds the index over the
// retained events. Unknown values behave as "all".
func (s *Service) SetFilter(mode string) {
	mode = normalizeFilter(mode)
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == s.filterMode {
		return
	}
	s.filterMode = mode
	s.index = BuildIndex(Filter(s.events, mode))
}

// GoToNextPeriod advances the anchor one period for the current mode.
func (s *Service) GoToNextPeriod() models.ViewWindow { return s.navigate(1) }

// GoToPrevPeriod moves the anchor one period back for the current mode.
func (s *Service) GoToPrevPeriod() models.ViewWindow { return s.navigate(-1) }

// GoToToday resets the anchor to the current day, preserving the mode.
func (s *Service) GoToToday() models.ViewWindow {
	s.mu.Lock()
	s.anchor = startOfDay(s.now())
	anchor, mode, fw := s.anchor, s.mode, s.firstWeekday
	s.mu.Unlock()
	s.Refresh()
	return ComputeWindow(anchor, mode, fw)
}

// navigate shifts the anchor and nudges a refetch so the new window renders
// against fresh data. Only the anchor mutates; mode and filter stay put.
func (s *Service) navigate(direction int) models.ViewWindow {
	s.mu.Lock()
	s.anchor = shiftAnchor(s.anchor, s.mode, direction)
	anchor, mode, fw := s.anchor, s.mode, s.firstWeekday
	s.mu.Unlock()
	s.Refresh()
	return ComputeWindow(anchor, mode, fw)
}

// View renders the current window. Non-empty overrides apply to this request
// only and never mutate the controller's own anchor, mode, or filter.
func (s *Service) View(anchorOverride, modeOverride, filterOverride string) models.CalendarResponse {
	s.mu.RLock()
	anchor, mode, filterMode := s.anchor, s.mode, s.filterMode
	events, idx := s.events, s.index
	refreshedAt := s.refreshedAt
	fw := s.firstWeekday
	s.mu.RUnlock()

	if modeOverride != "" {
		mode = normalizeMode(modeOverride)
	}
	if filterOverride != "" {
		if override := normalizeFilter(filterOverride); override != filterMode {
			filterMode = override
			idx = BuildIndex(Filter(events, filterMode))
		}
	}
	if anchorOverride != "" {
		if t, ok := parseDueDate(anchorOverride); ok {
			anchor = t
		}
	}

	window := ComputeWindow(anchor, mode, fw)
	resp := models.CalendarResponse{
		Mode:   window.Mode,
		Anchor: window.Anchor.Format("2006-01-02"),
		Filter: filterMode,
	}
	if !refreshedAt.IsZero() {
		resp.RefreshedAt = refreshedAt.Format(time.RFC3339)
	}

	now := s.now()
	switch window.Mode {
	case models.ModeDay:
		resp.Events = ProjectDay(window, idx)
		resp.Total = len(resp.Events)
	case models.ModeWeek:
		resp.Cells = ProjectWeek(window, idx, now)
		resp.Total = countCellEvents(resp.Cells)
	default:
		resp.Cells = ProjectMonth(window, idx, now)
		resp.Total = countCellEvents(resp.Cells)
	}
	return resp
}

// GetStatus returns a snapshot of the background worker.
func (s *Service) GetStatus() Status {
	s.statusMu.RLock()
	running := s.running
	interval := s.refreshInterval
	lastRefreshAt := s.lastRefreshAt
	lastRefreshMs := s.lastRefreshMs
	nextRefreshAt := s.nextRefreshAt
	s.statusMu.RUnlock()

	s.mu.RLock()
	state := s.state
	total := len(s.events)
	dropped := s.dropped
	lastError := s.lastError
	s.mu.RUnlock()

	intervalStr := ""
	if interval > 0 {
		if interval >= time.Hour {
			intervalStr = fmt.Sprintf("%.0fh", interval.Hours())
		} else {
			intervalStr = fmt.Sprintf("%.0fm", interval.Minutes())
		}
	}

	return Status{
		Running:         running,
		State:           state,
		LastRefreshAt:   lastRefreshAt,
		LastRefreshMs:   lastRefreshMs,
		NextRefreshAt:   nextRefreshAt,
		RefreshInterval: intervalStr,
		TotalEvents:     total,
		DroppedRecords:  dropped,
		LastError:       lastError,
	}
}

func normalizeMode(mode string) string {
	switch mode {
	case models.ModeWeek, models.ModeDay:
		return mode
	default:
		return models.ModeMonth
	}
}

func normalizeFilter(mode string) string {
	switch mode {
	case models.FilterOrders, models.FilterTasks:
		return mode
	default:
		return models.FilterAll
	}
}

func countCellEvents(cells []models.DayCell) int {
	total := 0
	for _, c := range cells {
		total += len(c.Events)
	}
	return total
}
