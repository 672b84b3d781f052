package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/rpggio/mlaconnect/internal/table"
)

// MCPHandler handles MCP method dispatch.
type MCPHandler interface {
	Handle(ctx context.Context, tenantID, sessionID, method string, params json.RawMessage) (any, error)
}

// TableQuerier serves dashboard tables.
type TableQuerier interface {
	Tables() []dashboard.TableInfo
	Query(ctx context.Context, tenantID, name string, state table.State) (*dashboard.Result, error)
}

// CodedError is a domain error with a machine-readable code. It is sent as
// the JSON-RPC error data.
type CodedError interface {
	error
	ErrorCode() string
}

// Config wires the HTTP routes. Nil handlers leave their routes unmounted.
type Config struct {
	// Handler serves plain JSON-RPC tool calls at POST /rpc.
	Handler MCPHandler
	// Tables serves GET /api/tables.
	Tables TableQuerier
	// MCP is the streamable MCP endpoint mounted at /mcp. It authenticates
	// on its own.
	MCP http.Handler
	// Auth guards /rpc and /api. Use StaticTenant when auth is disabled.
	Auth   func(http.Handler) http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	handler MCPHandler
	tables  TableQuerier
	logger  *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	srv := &Server{handler: cfg.Handler, tables: cfg.Tables, logger: cfg.Logger}

	r.Get("/health", srv.handleHealth)
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	r.Group(func(r chi.Router) {
		if cfg.Auth != nil {
			r.Use(cfg.Auth)
		}
		r.Use(SessionMiddleware)

		if srv.handler != nil {
			r.Post("/rpc", srv.handleRPC)
		}
		if srv.tables != nil {
			r.Get("/api/tables", srv.handleListTables)
			r.Get("/api/tables/{name}", srv.handleQueryTable)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		writeRPCError(w, nil, requestError(err))
		return
	}

	tenantID, ok := TenantFromContext(r.Context())
	if !ok || tenantID == "" {
		http.Error(w, "missing tenant", http.StatusUnauthorized)
		return
	}

	sessionID, _ := SessionIDFromContext(r.Context())

	result, err := s.handler.Handle(r.Context(), tenantID, sessionID, req.Method, req.Params)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if rpcErr, ok := callError(err); ok {
			writeRPCError(w, req.ID, rpcErr)
			return
		}
		s.logError(r, "rpc failed", err, "method", req.Method)
		WriteError(w, req.ID, ErrInternal, "internal error", nil)
		return
	}

	WriteResult(w, req.ID, result)
}

func (s *Server) handleListTables(w http.ResponseWriter, _ *http.Request) {
	writeBody(w, http.StatusOK, map[string]any{"tables": s.tables.Tables()})
}

func (s *Server) handleQueryTable(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := TenantFromContext(r.Context())
	if !ok || tenantID == "" {
		http.Error(w, "missing tenant", http.StatusUnauthorized)
		return
	}

	res, err := s.tables.Query(r.Context(), tenantID, chi.URLParam(r, "name"), StateFromQuery(r.URL.Query()))
	switch {
	case errors.Is(err, dashboard.ErrUnknownTable):
		writeBody(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case err != nil:
		s.logError(r, "table query failed", err)
		writeBody(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	default:
		writeBody(w, http.StatusOK, res)
	}
}

func (s *Server) logError(r *http.Request, msg string, err error, attrs ...any) {
	if s.logger == nil {
		return
	}
	sessionID, _ := SessionIDFromContext(r.Context())
	attrs = append(attrs, "error", err, "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "session_id", sessionID)
	s.logger.Error(msg, attrs...)
}

func writeBody(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
