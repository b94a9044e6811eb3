package store

import (
	"log/slog"
	"sync"

	"github.com/frahmantamala/employee-portal/internal/analytics"
	"github.com/frahmantamala/employee-portal/internal/auth"
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
	"github.com/frahmantamala/employee-portal/internal/dinner"
	"github.com/frahmantamala/employee-portal/internal/leave"
	"github.com/frahmantamala/employee-portal/internal/office"
	"github.com/frahmantamala/employee-portal/internal/salary"
)

// Persisted slice names. Only auth and dinner survive a relaunch; the
// rest is refetched.
const (
	SliceAuth   = "auth"
	SliceDinner = "dinner"
)

// Non-persisted slice names, used for change subscriptions only.
const (
	SliceLeave     = "leave"
	SliceSalary    = "salary"
	SliceAnalytics = "analytics"
	SliceOffice    = "office"
)

// State is the composed root. Each feature service may only mutate its
// own slice, enforced by handing out per-slice update methods rather
// than the root.
type State struct {
	Auth      auth.State
	Leave     leave.State
	Dinner    dinner.State
	Salary    salary.State
	Analytics analytics.State
	Office    office.State
}

// SnapshotStore persists whitelisted slice snapshots. Nil disables
// persistence, which the tests use.
type SnapshotStore interface {
	SaveSlice(name string, v any) error
	LoadSlice(name string, out any) (bool, error)
}

// Store guards the composed state. All access goes through the typed
// accessor methods; there is no way to reach the root state directly.
type Store struct {
	mu        sync.RWMutex
	state     State
	tracker   *request.Tracker
	snapshots SnapshotStore
	subs      *subscribers
	logger    *slog.Logger
}

func New(snapshots SnapshotStore, logger *slog.Logger) *Store {
	return &Store{
		tracker:   request.NewTracker(),
		snapshots: snapshots,
		subs:      newSubscribers(),
		logger:    logger,
	}
}

// Tracker returns the shared request-sequence tracker the services
// fence with.
func (s *Store) Tracker() *request.Tracker {
	return s.tracker
}

// Token implements api.TokenSource from the auth slice.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Auth.Session.Token
}

// ---- auth slice ----

func (s *Store) UpdateAuth(fn func(*auth.State)) {
	s.mu.Lock()
	fn(&s.state.Auth)
	session := s.state.Auth.Session
	s.mu.Unlock()
	s.persist(SliceAuth, session)
	s.notify(SliceAuth)
}

func (s *Store) AuthState() auth.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Auth
}

// ---- leave slice ----

func (s *Store) UpdateLeave(fn func(*leave.State)) {
	s.mu.Lock()
	fn(&s.state.Leave)
	s.mu.Unlock()
	s.notify(SliceLeave)
}

func (s *Store) LeaveState() leave.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Leave
}

// ---- dinner slice ----

func (s *Store) UpdateDinner(fn func(*dinner.State)) {
	s.mu.Lock()
	fn(&s.state.Dinner)
	selection := s.state.Dinner.Selection
	s.mu.Unlock()
	s.persist(SliceDinner, selection)
	s.notify(SliceDinner)
}

func (s *Store) DinnerState() dinner.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Dinner
}

// ---- salary slice ----

func (s *Store) UpdateSalary(fn func(*salary.State)) {
	s.mu.Lock()
	fn(&s.state.Salary)
	s.mu.Unlock()
	s.notify(SliceSalary)
}

func (s *Store) SalaryState() salary.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Salary
}

// ---- analytics slice ----

func (s *Store) UpdateAnalytics(fn func(*analytics.State)) {
	s.mu.Lock()
	fn(&s.state.Analytics)
	s.mu.Unlock()
	s.notify(SliceAnalytics)
}

func (s *Store) AnalyticsState() analytics.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Analytics
}

// ---- office slice ----

func (s *Store) UpdateOffice(fn func(*office.State)) {
	s.mu.Lock()
	fn(&s.state.Office)
	s.mu.Unlock()
	s.notify(SliceOffice)
}

func (s *Store) OfficeState() office.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Office
}

// ---- persistence ----

func (s *Store) persist(name string, v any) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.SaveSlice(name, v); err != nil {
		// the in-memory state is still correct; the snapshot is
		// retried on the next write
		s.logger.Error("failed to persist slice", "slice", name, "error", err)
	}
}

// Rehydrate restores the persisted slices before the store is handed
// to any consumer. Corruption is isolated per slice: a bad snapshot
// falls back to the slice's initial state and the rest still load.
// loadToken reads the sealed credential; the token never travels
// through the slice snapshot.
func (s *Store) Rehydrate(loadToken func() (string, bool, error)) {
	if s.snapshots == nil {
		return
	}

	var session auth.Session
	if ok, err := s.snapshots.LoadSlice(SliceAuth, &session); err != nil {
		s.logger.Warn("auth snapshot unreadable, starting unauthenticated", "error", err)
	} else if ok {
		token := ""
		if loadToken != nil {
			stored, found, err := loadToken()
			if err != nil {
				s.logger.Warn("stored credential unreadable", "error", err)
			} else if found {
				token = stored
			}
		}
		s.mu.Lock()
		s.state.Auth.Session = auth.NewSession(session.CurrentUser, token)
		s.mu.Unlock()
	}

	var selection datamodel.DinnerSelection
	if ok, err := s.snapshots.LoadSlice(SliceDinner, &selection); err != nil {
		s.logger.Warn("dinner snapshot unreadable, using defaults", "error", err)
	} else if ok {
		s.mu.Lock()
		s.state.Dinner.Selection = selection
		s.mu.Unlock()
	}
}
