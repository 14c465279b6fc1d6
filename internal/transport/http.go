package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ganot/typeset-board/internal/domain/activity"
	"github.com/ganot/typeset-board/internal/domain/member"
	"github.com/ganot/typeset-board/internal/domain/summary"
	"github.com/ganot/typeset-board/internal/worklog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MemberService defines member operations needed by the HTTP API.
type MemberService interface {
	Create(ctx context.Context, req member.CreateRequest) (*member.Member, error)
	Get(ctx context.Context, id string) (*member.Member, error)
	List(ctx context.Context) ([]member.Member, error)
	Rename(ctx context.Context, id, name string) (*member.Member, error)
	UpdateInput(ctx context.Context, id, rawInput string) (*member.Member, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, opts member.SearchOptions) ([]member.SearchResult, error)
}

// SummaryService defines the team summary needed by the HTTP API.
type SummaryService interface {
	Get(ctx context.Context) (summary.Summary, error)
}

// GateService defines the password gate needed by the HTTP API.
type GateService interface {
	GateChecker
	Enabled() bool
	Login(ctx context.Context, password string) (bool, error)
	Logout(ctx context.Context) error
}

// ActivityService defines activity operations needed by the HTTP API.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains the domain services behind the HTTP API.
type Services struct {
	Members  MemberService
	Summary  SummaryService
	Gate     GateService
	Activity ActivityService
}

// Options tunes the router.
type Options struct {
	// ParseOptions are the grammar defaults for /api/parse.
	ParseOptions []worklog.Option
	// MCP is mounted at /mcp behind the gate when set.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	services  Services
	parseOpts []worklog.Option
	logger    *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(services Services, opts Options) *chi.Mux {
	srv := &Server{
		services:  services,
		parseOpts: opts.ParseOptions,
		logger:    opts.Logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(opts.Logger))

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", srv.handleParse)

		r.Route("/members", func(r chi.Router) {
			r.Get("/", srv.handleListMembers)
			r.Post("/", srv.handleCreateMember)
			r.Get("/search", srv.handleSearchMembers)
			r.Get("/{id}", srv.handleGetMember)
			r.Patch("/{id}", srv.handleUpdateMember)
			r.Delete("/{id}", srv.handleDeleteMember)
		})

		r.Get("/summary", srv.handleSummary)
		r.Get("/activity", srv.handleActivity)

		r.Route("/gate", func(r chi.Router) {
			r.Get("/", srv.handleGateStatus)
			r.Post("/login", srv.handleGateLogin)
			r.Post("/logout", srv.handleGateLogout)
		})
	})

	if opts.MCP != nil {
		r.Group(func(r chi.Router) {
			r.Use(GateMiddleware(services.Gate))
			r.Handle("/mcp", opts.MCP)
			r.Handle("/mcp/*", opts.MCP)
		})
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logger == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start))
		})
	}
}
