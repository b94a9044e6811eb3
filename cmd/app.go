package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/employee-portal/internal"
	"github.com/frahmantamala/employee-portal/internal/analytics"
	"github.com/frahmantamala/employee-portal/internal/api"
	"github.com/frahmantamala/employee-portal/internal/auth"
	"github.com/frahmantamala/employee-portal/internal/dinner"
	"github.com/frahmantamala/employee-portal/internal/leave"
	"github.com/frahmantamala/employee-portal/internal/office"
	"github.com/frahmantamala/employee-portal/internal/salary"
	"github.com/frahmantamala/employee-portal/internal/store"
	"github.com/frahmantamala/employee-portal/pkg/logger"
)

// App wires config, device storage, the composed store, the HTTP
// client and the feature services. Rehydration completes inside
// initApp, before any command can read the store.
type App struct {
	Config    *internal.Config
	Store     *store.Store
	Persister *store.Persister
	Auth      *auth.Service
	Leave     *leave.Service
	Dinner    *dinner.Service
	Salary    *salary.Service
	Analytics *analytics.Service
	Office    *office.Service
	Logger    *slog.Logger
}

func initApp() (*App, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.L()

	persister, err := store.OpenPersister(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device storage: %w", err)
	}

	st := store.New(persister, log)

	var deviceKey []byte
	if cfg.Storage.DeviceKey != "" {
		deviceKey, err = cfg.Storage.GetDeviceKey()
		if err != nil {
			return nil, err
		}
	}

	vault, err := auth.NewVault(deviceKey, persister)
	if err != nil {
		return nil, err
	}

	// restore persisted slices before anything reads the store
	st.Rehydrate(vault.Load)

	apiClient := api.NewClient(api.Config{
		BaseURL:           cfg.API.NormalizedBaseURL(),
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	}, st)

	tracker := st.Tracker()
	authSvc := auth.NewService(apiClient, st, tracker, vault, log)

	docsDir := cfg.Storage.DocumentsDir
	if docsDir == "" {
		docsDir = "documents"
	}

	return &App{
		Config:    cfg,
		Store:     st,
		Persister: persister,
		Auth:      authSvc,
		Leave:     leave.NewService(apiClient, st, tracker, authSvc, log),
		Dinner:    dinner.NewService(apiClient, st, tracker, authSvc, log),
		Salary:    salary.NewService(apiClient, st, tracker, authSvc, salary.FileWriter{Dir: docsDir}, log),
		Analytics: analytics.NewService(apiClient, st, tracker, authSvc, log),
		Office:    office.NewService(apiClient, st, tracker, authSvc, log),
		Logger:    log,
	}, nil
}

func (a *App) Close() {
	if err := a.Persister.Close(); err != nil {
		a.Logger.Error("failed to close device storage", "error", err)
	}
}

// opContext bounds one portal operation with the configured timeout
// and carries the app logger for request-level logging.
func (a *App) opContext() (context.Context, context.CancelFunc) {
	ctx, cancel := internal.WithTimeout(context.Background(), a.Config.API.Timeout)
	return logger.Into(ctx, a.Logger), cancel
}
