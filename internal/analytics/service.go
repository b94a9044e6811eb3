package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/internal/api"
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

const (
	opStatus = "analytics.status"
	opTeam   = "analytics.team"
	opDecide = "analytics.decide"
	opHours  = "analytics.hours"
)

type statusListResponse struct {
	Data []datamodel.EmployeeStatus `json:"data"`
}

type teamResponse struct {
	Data []datamodel.TeamMemberStatus `json:"data"`
}

type statusResponse struct {
	Data    datamodel.EmployeeStatus `json:"data"`
	Message string                   `json:"message"`
}

type hoursResponse struct {
	Data datamodel.HoursReport `json:"data"`
}

// HoursQueryDTO selects the month for the hours report.
type HoursQueryDTO struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (dto HoursQueryDTO) Validate() error {
	if dto.Month < 1 || dto.Month > 12 {
		return errors.New("month must be between 1 and 12")
	}
	if dto.Year < 2000 || dto.Year > time.Now().Year() {
		return errors.New("year is out of range")
	}
	return nil
}

type Service struct {
	api      *api.Client
	store    Store
	tracker  *request.Tracker
	sessions Sessions
	logger   *slog.Logger
}

func NewService(apiClient *api.Client, store Store, tracker *request.Tracker, sessions Sessions, logger *slog.Logger) *Service {
	return &Service{
		api:      apiClient,
		store:    store,
		tracker:  tracker,
		sessions: sessions,
		logger:   logger,
	}
}

// FetchStatus loads the current user's work-status history.
func (s *Service) FetchStatus(ctx context.Context) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opStatus)
	s.store.UpdateAnalytics(func(st *State) { st.Status.Begin() })

	var resp statusListResponse
	if err := s.api.Get(ctx, "/status/employee", nil, &resp); err != nil {
		appErr := internal.Normalize(err, "could not load work status")
		if s.tracker.Latest(opStatus, seq) {
			s.store.UpdateAnalytics(func(st *State) { st.Status.FailKeep(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opStatus, seq) {
		s.store.UpdateAnalytics(func(st *State) { st.Status.Resolve(resp.Data) })
	}
	return nil
}

// FetchTeam loads the approver's team status view.
func (s *Service) FetchTeam(ctx context.Context) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opTeam)
	s.store.UpdateAnalytics(func(st *State) { st.Team.Begin() })

	var resp teamResponse
	if err := s.api.Get(ctx, "/status/team", nil, &resp); err != nil {
		appErr := internal.Normalize(err, "could not load team status")
		if s.tracker.Latest(opTeam, seq) {
			s.store.UpdateAnalytics(func(st *State) { st.Team.FailKeep(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opTeam, seq) {
		s.store.UpdateAnalytics(func(st *State) { st.Team.Resolve(resp.Data) })
	}
	return nil
}

// Decide approves or rejects a submitted work-status entry.
func (s *Service) Decide(ctx context.Context, entryID int64, approve bool) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	verb := "reject"
	if approve {
		verb = "approve"
	}

	seq := s.tracker.Begin(opDecide)
	s.store.UpdateAnalytics(func(st *State) { st.Decide.Begin() })

	path := fmt.Sprintf("/status/%d/%s", entryID, verb)
	var resp statusResponse
	if err := s.api.Post(ctx, path, nil, &resp); err != nil {
		appErr := internal.Normalize(err, "could not "+verb+" status entry")
		if s.tracker.Latest(opDecide, seq) {
			s.store.UpdateAnalytics(func(st *State) { st.Decide.Fail(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opDecide, seq) {
		s.store.UpdateAnalytics(func(st *State) { st.Decide.Resolve(resp.Data) })
	}

	s.logger.Info("status decision recorded", "entry_id", entryID, "decision", verb)
	return nil
}

// FetchHours loads the monthly hours report.
func (s *Service) FetchHours(ctx context.Context, dto HoursQueryDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opHours)
	s.store.UpdateAnalytics(func(st *State) { st.Hours.Begin() })

	query := url.Values{}
	query.Set("month", strconv.Itoa(dto.Month))
	query.Set("year", strconv.Itoa(dto.Year))

	var resp hoursResponse
	if err := s.api.Get(ctx, "/reports/hours", query, &resp); err != nil {
		appErr := internal.Normalize(err, "could not load hours report")
		if s.tracker.Latest(opHours, seq) {
			s.store.UpdateAnalytics(func(st *State) { st.Hours.Fail(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opHours, seq) {
		s.store.UpdateAnalytics(func(st *State) { st.Hours.Resolve(resp.Data) })
	}
	return nil
}

// ResetDecide clears the approve/reject operation state.
func (s *Service) ResetDecide() {
	s.store.UpdateAnalytics(func(st *State) { st.Decide.Reset() })
}
