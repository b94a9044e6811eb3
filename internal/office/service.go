package office

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/internal/api"
	"github.com/frahmantamala/employee-portal/internal/core/datamodel"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

const opList = "office.list"

type listResponse struct {
	Data []datamodel.Office `json:"data"`
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

// FetchOffices loads the office directory.
func (s *Service) FetchOffices(ctx context.Context) error {
	if err := s.sessions.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opList)
	s.store.UpdateOffice(func(st *State) { st.List.Begin() })

	var resp listResponse
	if err := s.api.Get(ctx, "/offices", nil, &resp); err != nil {
		appErr := internal.Normalize(err, "could not load offices")
		if s.tracker.Latest(opList, seq) {
			s.store.UpdateOffice(func(st *State) { st.List.FailKeep(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opList, seq) {
		s.store.UpdateOffice(func(st *State) { st.List.Resolve(resp.Data) })
	}
	return nil
}
