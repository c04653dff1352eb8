package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	directoryservice "crossbank/contexts/accounts/directory-service"
	directoryapp "crossbank/contexts/accounts/directory-service/application"
	hierarchyservice "crossbank/contexts/accounts/hierarchy-service"
	balanceservice "crossbank/contexts/finance-core/balance-service"
	audittrailservice "crossbank/contexts/internal-ops/audit-trail-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "crossbank/internal/platform/httpserver/docs"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	mux            *http.ServeMux
	http           *http.Server
	logger         *slog.Logger
	addr           string
	defaultPerPage int
	directory      directoryservice.Module
	hierarchy      hierarchyservice.Module
	balances       balanceservice.Module
	audit          audittrailservice.Module
}

func New(
	directory directoryservice.Module,
	hierarchy hierarchyservice.Module,
	balances balanceservice.Module,
	audit audittrailservice.Module,
	logger *slog.Logger,
	addr string,
	defaultPerPage int,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if defaultPerPage <= 0 {
		defaultPerPage = 18
	}

	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		addr:           addr,
		defaultPerPage: defaultPerPage,
		directory:      directory,
		hierarchy:      hierarchy,
		balances:       balances,
		audit:          audit,
	}
	s.registerRoutes()
	s.http = &http.Server{Addr: addr, Handler: s.mux}
	return s
}

// Start serves until the listener fails or ctx is cancelled, then drains
// in-flight requests before returning.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/v1/users", s.handleListUsers)
	s.mux.HandleFunc("POST /api/v1/users/{user_id}/kyc", s.handleUpdateKYCStatus)
	s.mux.HandleFunc("DELETE /api/v1/users/{user_id}", s.handleDeleteUser)

	s.mux.HandleFunc("GET /api/v1/hierarchy/relationships", s.handleListRelationships)
	s.mux.HandleFunc("POST /api/v1/hierarchy/relationships", s.handleAssignRelationship)
	s.mux.HandleFunc("DELETE /api/v1/hierarchy/relationships/{relationship_id}", s.handleUnassignRelationship)
	s.mux.HandleFunc("POST /api/v1/users/{user_id}/roles/manager", s.handlePromoteManager)
	s.mux.HandleFunc("POST /api/v1/users/{user_id}/roles/superior-manager", s.handlePromoteSuperiorManager)

	s.mux.HandleFunc("POST /api/v1/balances/update", s.handleUpdateBalances)
	s.mux.HandleFunc("GET /api/v1/users/{user_id}/balances", s.handleGetBalances)

	s.mux.HandleFunc("GET /api/v1/audit/actions", s.handleListAuditActions)
}

// resolveActor reads the acting admin from request headers. Listing
// endpoints tolerate a missing actor; visibility resolution treats an
// empty actor as unrestricted.
func resolveActor(r *http.Request) directoryapp.Actor {
	return directoryapp.Actor{
		ID:      strings.TrimSpace(r.Header.Get("X-Actor-Id")),
		BankKey: strings.TrimSpace(r.Header.Get("X-Actor-Bank")),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
