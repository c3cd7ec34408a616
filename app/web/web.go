// Package web implements the JSON status API for the zbxlink daemon
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/parcinfo/zbxlink/app/schedule"
	"github.com/parcinfo/zbxlink/app/service"
	"github.com/parcinfo/zbxlink/app/store"
	syncer "github.com/parcinfo/zbxlink/app/sync"
)

//go:generate moq -out mocks/task_provider.go -pkg mocks -skip-ensure -fmt goimports . TaskProvider
//go:generate moq -out mocks/run_store.go -pkg mocks -skip-ensure -fmt goimports . RunStore
//go:generate moq -out mocks/zabbix_status.go -pkg mocks -skip-ensure -fmt goimports . ZabbixStatus
//go:generate moq -out mocks/snapshot_provider.go -pkg mocks -skip-ensure -fmt goimports . SnapshotProvider

// Server represents the status API server
type Server struct {
	taskProvider  TaskProvider
	runs          RunStore
	zabbix        ZabbixStatus
	snapshots     SnapshotProvider
	manualTrigger chan<- service.ManualTaskRequest
	version       string
	hostname      string
	startTime     time.Time

	syncLimiter *limiter.Limiter
}

// TaskProvider loads task specifications from the configured source
type TaskProvider interface {
	List() ([]schedule.Task, error)
}

// RunStore provides access to persisted run history
type RunStore interface {
	LastRuns(ctx context.Context, limit int) ([]store.Run, error)
}

// ZabbixStatus checks connectivity to the Zabbix server
type ZabbixStatus interface {
	TestConnection(ctx context.Context) (string, error)
}

// SnapshotProvider serves cached monitoring snapshots collected by the sync service
type SnapshotProvider interface {
	GetSnapshot(equipmentID int64) (syncer.Snapshot, bool)
}

// Config holds server configuration
type Config struct {
	TaskProvider  TaskProvider
	Runs          RunStore
	Zabbix        ZabbixStatus
	Snapshots     SnapshotProvider
	ManualTrigger chan<- service.ManualTaskRequest
	Version       string
	Hostname      string
}

// New creates a new status API server
func New(cfg Config) (*Server, error) {
	if cfg.TaskProvider == nil {
		return nil, fmt.Errorf("web server initialization failed: TaskProvider is required")
	}
	if cfg.Runs == nil {
		return nil, fmt.Errorf("web server initialization failed: RunStore is required")
	}

	s := &Server{
		taskProvider:  cfg.TaskProvider,
		runs:          cfg.Runs,
		zabbix:        cfg.Zabbix,
		snapshots:     cfg.Snapshots,
		manualTrigger: cfg.ManualTrigger,
		version:       cfg.Version,
		hostname:      cfg.Hostname,
		startTime:     time.Now(),
		syncLimiter:   tollbooth.NewLimiter(1, nil), // one manual trigger per second is plenty
	}
	return s, nil
}

// Run starts the web server, blocking until ctx is canceled
func (s *Server) Run(ctx context.Context, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown server: %v", err)
		}
	}()

	log.Printf("[INFO] starting web server on %s", address)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// routes returns the http.Handler with all routes configured
func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())

	// global middleware - applied to all routes
	router.Use(
		rest.RealIP,
		rest.Recoverer(log.Default()),
		rest.Throttle(1000),
		rest.AppInfo("zbxlink", "parcinfo", s.version),
		rest.Ping,
		rest.Trace,
		rest.SizeLimit(64*1024), // 64KB max request size
		logger.New(logger.Log(log.Default()), logger.Prefix("[DEBUG]")).Handler,
	)

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.HandleFunc("GET /status", s.handleStatus)
		api.HandleFunc("GET /tasks", s.handleTasks)
		api.HandleFunc("GET /runs", s.handleRuns)
		api.HandleFunc("GET /snapshots/{id}", s.handleSnapshot)
		api.With(tollbooth.HTTPMiddleware(s.syncLimiter)).HandleFunc("POST /sync", s.handleManualSync)
	})

	return router
}
