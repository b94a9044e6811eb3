package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/internal/api"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

const (
	opList      = "leave.list"
	opAdd       = "leave.add"
	opDecide    = "leave.decide"
	opEmployees = "leave.employees"
)

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

// FetchLeaves loads the current user's leave requests. A refresh
// failure keeps the previous list visible.
func (s *Service) FetchLeaves(ctx context.Context) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opList)
	s.store.UpdateLeave(func(st *State) { st.List.Begin() })

	var resp listResponse
	if err := s.api.Get(ctx, "/leaves", nil, &resp); err != nil {
		appErr := internal.Normalize(err, "could not load leave requests")
		if s.tracker.Latest(opList, seq) {
			s.store.UpdateLeave(func(st *State) { st.List.FailKeep(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opList, seq) {
		s.store.UpdateLeave(func(st *State) { st.List.Resolve(resp.Data) })
	}
	return nil
}

// AddLeave submits a new leave request.
func (s *Service) AddLeave(ctx context.Context, dto AddLeaveDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opAdd)
	s.store.UpdateLeave(func(st *State) { st.Add.Begin() })

	var resp leaveResponse
	if err := s.api.Post(ctx, "/leaves", dto, &resp); err != nil {
		appErr := internal.Normalize(err, "could not submit leave request")
		if s.tracker.Latest(opAdd, seq) {
			s.store.UpdateLeave(func(st *State) { st.Add.Fail(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opAdd, seq) {
		s.store.UpdateLeave(func(st *State) { st.Add.Resolve(resp.Data) })
	}

	s.logger.Info("leave request submitted", "leave_id", resp.Data.ID)
	return nil
}

// Approve marks a pending leave request approved.
func (s *Service) Approve(ctx context.Context, leaveID int64) error {
	return s.decide(ctx, leaveID, "approve", nil)
}

// Reject marks a pending leave request rejected with a reason.
func (s *Service) Reject(ctx context.Context, leaveID int64, dto RejectLeaveDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	return s.decide(ctx, leaveID, "reject", dto)
}

func (s *Service) decide(ctx context.Context, leaveID int64, verb string, body any) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opDecide)
	s.store.UpdateLeave(func(st *State) { st.Decide.Begin() })

	path := fmt.Sprintf("/leaves/%d/%s", leaveID, verb)
	var resp leaveResponse
	if err := s.api.Post(ctx, path, body, &resp); err != nil {
		appErr := internal.Normalize(err, "could not "+verb+" leave request")
		if s.tracker.Latest(opDecide, seq) {
			s.store.UpdateLeave(func(st *State) { st.Decide.Fail(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opDecide, seq) {
		s.store.UpdateLeave(func(st *State) { st.Decide.Resolve(resp.Data) })
	}

	s.logger.Info("leave decision recorded", "leave_id", leaveID, "decision", verb)
	return nil
}

// FetchEmployees loads the approver's employee-leave listing.
func (s *Service) FetchEmployees(ctx context.Context) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opEmployees)
	s.store.UpdateLeave(func(st *State) { st.Employees.Begin() })

	var resp employeesResponse
	if err := s.api.Get(ctx, "/leaves/employees", nil, &resp); err != nil {
		appErr := internal.Normalize(err, "could not load employee leaves")
		if s.tracker.Latest(opEmployees, seq) {
			s.store.UpdateLeave(func(st *State) { st.Employees.FailKeep(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opEmployees, seq) {
		s.store.UpdateLeave(func(st *State) { st.Employees.Resolve(resp.Data) })
	}
	return nil
}

// ResetAdd clears the add operation so a revisited form does not show
// a stale success or error banner.
func (s *Service) ResetAdd() {
	s.store.UpdateLeave(func(st *State) { st.Add.Reset() })
}

// ResetDecide clears the approve/reject operation state.
func (s *Service) ResetDecide() {
	s.store.UpdateLeave(func(st *State) { st.Decide.Reset() })
}
