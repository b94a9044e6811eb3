package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/internal/api"
	"github.com/frahmantamala/employee-portal/internal/core/request"
)

const (
	opLogin     = "auth.login"
	opDashboard = "auth.dashboard"
	opProfile   = "auth.profile"
)

// Service owns the auth slice operations: login, logout, dashboard
// stats and the profile refresh.
type Service struct {
	api     *api.Client
	store   Store
	tracker *request.Tracker
	vault   *Vault
	logger  *slog.Logger
}

func NewService(apiClient *api.Client, store Store, tracker *request.Tracker, vault *Vault, logger *slog.Logger) *Service {
	return &Service{
		api:     apiClient,
		store:   store,
		tracker: tracker,
		vault:   vault,
		logger:  logger,
	}
}

// Login authenticates against the portal. On success the token is
// persisted through the vault before the operation resolves, because
// the next request reads it straight back.
func (s *Service) Login(ctx context.Context, dto LoginDTO) error {
	if err := dto.Validate(); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	seq := s.tracker.Begin(opLogin)
	s.store.UpdateAuth(func(st *State) { st.Login.Begin() })

	var resp loginResponse
	if err := s.api.Post(ctx, "/auth/login", dto, &resp); err != nil {
		appErr := s.normalizeLoginError(err)
		if s.tracker.Latest(opLogin, seq) {
			s.store.UpdateAuth(func(st *State) { st.Login.Fail(appErr.Message) })
		}
		return appErr
	}

	if resp.Data.User == nil || resp.Data.Token == "" {
		appErr := internal.NewDecodeError("login response missing user or token", nil)
		if s.tracker.Latest(opLogin, seq) {
			s.store.UpdateAuth(func(st *State) { st.Login.Fail(appErr.Message) })
		}
		return appErr
	}

	// a newer login has taken over; writing this token would leave
	// device storage behind the in-memory session
	if !s.tracker.Latest(opLogin, seq) {
		s.logger.Debug("discarding stale login response")
		return nil
	}

	if err := s.vault.Save(resp.Data.Token); err != nil {
		s.logger.Error("failed to persist token", "error", err)
		appErr := &internal.AppError{
			Type:    internal.ErrorTypeAuth,
			Code:    internal.ErrCodeStorageFailed,
			Message: "could not save session",
			Cause:   err,
		}
		if s.tracker.Latest(opLogin, seq) {
			s.store.UpdateAuth(func(st *State) { st.Login.Fail(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opLogin, seq) {
		s.store.UpdateAuth(func(st *State) {
			st.Session = NewSession(resp.Data.User, resp.Data.Token)
			st.Login.Resolve(struct{}{})
		})
	}

	s.logger.Info("login successful", "user_id", resp.Data.User.ID)
	return nil
}

// Logout clears the session. The vault and the persisted auth slice
// are cleared synchronously so a relaunch starts unauthenticated even
// with no network reachable.
func (s *Service) Logout() error {
	if err := s.vault.Clear(); err != nil {
		s.logger.Error("failed to clear stored credential", "error", err)
		return &internal.AppError{
			Type:    internal.ErrorTypeAuth,
			Code:    internal.ErrCodeStorageFailed,
			Message: "could not clear session",
			Cause:   err,
		}
	}

	s.store.UpdateAuth(func(st *State) {
		st.Session = Session{}
		st.Login.Reset()
		st.Dashboard.Reset()
		st.Profile.Reset()
	})

	s.logger.Info("logged out")
	return nil
}

// FetchDashboard loads the landing statistics for the current user.
func (s *Service) FetchDashboard(ctx context.Context) error {
	if err := s.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opDashboard)
	s.store.UpdateAuth(func(st *State) { st.Dashboard.Begin() })

	var resp dashboardResponse
	if err := s.api.Get(ctx, "/dashboard", nil, &resp); err != nil {
		appErr := internal.Normalize(err, "could not load dashboard")
		if s.tracker.Latest(opDashboard, seq) {
			// keep the previous stats visible behind the error banner
			s.store.UpdateAuth(func(st *State) { st.Dashboard.FailKeep(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opDashboard, seq) {
		s.store.UpdateAuth(func(st *State) { st.Dashboard.Resolve(resp.Data) })
	}
	return nil
}

// FetchProfile refreshes the user details for the current session.
func (s *Service) FetchProfile(ctx context.Context) error {
	if err := s.EnsureSession(); err != nil {
		return err
	}

	seq := s.tracker.Begin(opProfile)
	s.store.UpdateAuth(func(st *State) { st.Profile.Begin() })

	var resp profileResponse
	if err := s.api.Get(ctx, "/users/me", nil, &resp); err != nil {
		appErr := internal.Normalize(err, "could not load profile")
		if s.tracker.Latest(opProfile, seq) {
			s.store.UpdateAuth(func(st *State) { st.Profile.Fail(appErr.Message) })
		}
		return appErr
	}

	if s.tracker.Latest(opProfile, seq) {
		user := resp.Data
		s.store.UpdateAuth(func(st *State) {
			st.Profile.Resolve(user)
			st.Session = NewSession(&user, st.Session.Token)
		})
	}
	return nil
}

// EnsureSession rejects up front when there is no session or the
// stored token is already past its expiry, saving the round trip.
func (s *Service) EnsureSession() error {
	st := s.store.AuthState()
	if !st.Session.IsAuthenticated {
		return internal.ErrNotAuthenticated
	}
	if TokenExpired(st.Session.Token, time.Now()) {
		return internal.ErrSessionExpired
	}
	return nil
}

func (s *Service) normalizeLoginError(err error) *internal.AppError {
	if internal.StatusOf(err) == http.StatusUnauthorized {
		return internal.NewAuthError(http.StatusUnauthorized, "invalid email or password", internal.ErrCodeInvalidCredentials)
	}
	return internal.Normalize(err, "unable to log in")
}
