// Package control wires configuration into a running employee gateway.
package control

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vietddude/employees/internal/api"
	"github.com/vietddude/employees/internal/directory"
	"github.com/vietddude/employees/internal/infra/remote"
	"github.com/vietddude/employees/internal/infra/retry"
	"github.com/vietddude/employees/internal/metrics"
)

// statusInterval is how often the remote monitor status is exported.
const statusInterval = 10 * time.Second

// App owns the remote client, the directory service and the HTTP server.
type App struct {
	cfg     Config
	client  *remote.Client
	service *directory.Service
	server  *api.Server
	log     *slog.Logger
}

// Config holds the application configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	Remote         remote.Config
	Retry          retry.Policy
}

// New builds the application. Nothing is started until Start.
func New(cfg Config, log *slog.Logger) (*App, error) {
	if cfg.Remote.BaseURL == "" {
		return nil, fmt.Errorf("remote base url is required")
	}
	if log == nil {
		log = slog.Default()
	}

	client := remote.NewClient(cfg.Remote, log)
	retrier := retry.New(cfg.Retry, log)
	service := directory.NewService(client, retrier, log)

	server := api.NewServer(api.RouterConfig{
		EmployeeHandler: api.NewEmployeeHandler(service, log),
		HealthHandler:   api.NewHealthHandler(client.Name(), client.Monitor),
		AllowedOrigins:  cfg.AllowedOrigins,
		Log:             log,
	}, cfg.Port)

	return &App{
		cfg:     cfg,
		client:  client,
		service: service,
		server:  server,
		log:     log,
	}, nil
}

// Service returns the directory service, for one-shot callers that do not
// need the HTTP server.
func (a *App) Service() *directory.Service {
	return a.service
}

// Server returns the HTTP server.
func (a *App) Server() *api.Server {
	return a.server
}

// Start starts the HTTP server and the status exporter.
func (a *App) Start(ctx context.Context) error {
	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Error("HTTP server failed", "error", err)
		}
	}()

	go a.runStatusUpdater(ctx)

	a.log.Info("Employee gateway started",
		"port", a.cfg.Port,
		"remote", a.client.Name(),
		"max_attempts", a.cfg.Retry.MaxAttempts,
	)
	return nil
}

// Stop shuts down the HTTP server and releases remote connections.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping employee gateway...")

	err := a.server.Stop(ctx)
	if cerr := a.client.Close(); cerr != nil {
		a.log.Warn("Failed to close remote client", "error", cerr)
	}
	return err
}

// Close releases remote connections without touching the server.
func (a *App) Close() error {
	return a.client.Close()
}

func (a *App) runStatusUpdater(ctx context.Context) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	a.exportStatus()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.exportStatus()
		}
	}
}

func (a *App) exportStatus() {
	status := a.client.Monitor.CheckStatus()
	metrics.RemoteStatus.WithLabelValues(a.client.Name()).Set(float64(status))
	a.log.Debug("Updating remote status metric", "remote", a.client.Name(), "status", status.String())
}
