package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vitos/ig_account_mirror/internal/domain"
	"github.com/vitos/ig_account_mirror/internal/usecase"
	"go.uber.org/zap"
)

// Server exposes the mirror as read-only JSON plus the handful of
// actions the backend supports (refresh, close, cancel, reconnect).
// Errors on an action surface on that action's response only; reads of
// already-known state never fail because of them.
type Server struct {
	router    *http.ServeMux
	server    *http.Server
	store     *usecase.MirrorStore
	snapshots *usecase.SnapshotService
	backend   domain.Backend
	harvest   *usecase.HarvestService
	logger    *zap.Logger
}

func NewServer(
	port int,
	store *usecase.MirrorStore,
	snapshots *usecase.SnapshotService,
	backend domain.Backend,
	harvest *usecase.HarvestService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:    http.NewServeMux(),
		store:     store,
		snapshots: snapshots,
		backend:   backend,
		harvest:   harvest,
		logger:    logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	// Mirror reads
	s.router.HandleFunc("GET /api/account", s.handleAccount)
	s.router.HandleFunc("GET /api/positions", s.handlePositions)
	s.router.HandleFunc("GET /api/orders", s.handleOrders)
	s.router.HandleFunc("GET /api/status", s.handleStatus)
	s.router.HandleFunc("GET /api/notifications", s.handleNotifications)
	s.router.HandleFunc("GET /api/logs", s.handleLogs)
	s.router.HandleFunc("POST /api/notifications/{id}/read", s.handleMarkRead)

	// Snapshot recovery
	s.router.HandleFunc("POST /api/refresh", s.handleRefresh)

	// Backend commands
	s.router.HandleFunc("DELETE /api/positions/{id}", s.handleClosePosition)
	s.router.HandleFunc("DELETE /api/orders/{id}", s.handleCancelOrder)
	s.router.HandleFunc("POST /api/reconnect", s.handleReconnect)
	s.router.HandleFunc("GET /api/diagnostics", s.handleDiagnostics)

	// Harvest planner
	s.router.HandleFunc("GET /api/harvest/plan", s.handleHarvestPlan)
	s.router.HandleFunc("POST /api/harvest/baseline", s.handleHarvestBaseline)
	s.router.HandleFunc("GET /api/harvest/drift", s.handleHarvestDrift)
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
