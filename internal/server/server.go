// Package server serves the incident pages, the workflow stepper and its
// JSON API over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jorge-barreto/incidentdesk/internal/fixtures"
	"github.com/jorge-barreto/incidentdesk/internal/render"
	"github.com/jorge-barreto/incidentdesk/internal/workflow"
)

// Options configures a Server.
type Options struct {
	Loader   *fixtures.Loader
	Renderer *render.Renderer
	// NewController builds the controller for a new workflow session.
	NewController func() *workflow.Controller
	SessionTTL    time.Duration
	Log           *slog.Logger
	Now           func() time.Time
}

type Server struct {
	loader   *fixtures.Loader
	renderer *render.Renderer
	sessions *Sessions
	log      *slog.Logger
	mux      *http.ServeMux
}

func New(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	newCtrl := opts.NewController
	if newCtrl == nil {
		newCtrl = func() *workflow.Controller { return workflow.NewController(workflow.Options{}) }
	}
	s := &Server{
		loader:   opts.Loader,
		renderer: opts.Renderer,
		sessions: NewSessions(newCtrl, opts.SessionTTL, opts.Now),
		log:      log,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handle(s.index))
	s.mux.HandleFunc("GET /incidents", s.handle(s.incidents))
	s.mux.HandleFunc("GET /incident", s.handle(s.incident))
	s.mux.HandleFunc("GET /incident/ticket", s.handle(s.incidentTicket))
	s.mux.HandleFunc("GET /incident/email", s.handle(s.incidentEmail))
	s.mux.HandleFunc("GET /rca", s.handle(s.rca))
	s.mux.HandleFunc("GET /runbooks", s.handle(s.runbooks))
	s.mux.HandleFunc("GET /runbooks/update", s.handle(s.runbookUpdate))
	s.mux.HandleFunc("GET /status", s.handle(s.status))
	s.mux.HandleFunc("GET /status/update", s.handle(s.statusUpdate))
	s.mux.HandleFunc("GET /security", s.handle(s.security))

	s.mux.HandleFunc("GET /workflow", s.handle(s.workflowPage))
	s.mux.HandleFunc("POST /workflow/step/{n}", s.handle(s.workflowStep))
	s.mux.HandleFunc("POST /workflow/{action}", s.handle(s.workflowAction))

	s.mux.HandleFunc("GET /api/workflow", s.handle(s.apiWorkflow))
	s.mux.HandleFunc("POST /api/workflow/{action}", s.handle(s.apiWorkflowAction))
}

// Handler returns the root handler with request logging and panic recovery.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Sessions exposes the workflow session store.
func (s *Server) Sessions() *Sessions { return s.sessions }

// Close stops every workflow session.
func (s *Server) Close() {
	s.sessions.Close()
}

// httpError carries a status code and a user-facing message out of a handler.
type httpError struct {
	status  int
	heading string
	msg     string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &httpError{status: http.StatusBadRequest, heading: "Bad request", msg: fmt.Sprintf(format, args...)}
}

// handle adapts an error-returning handler. Each handler is its own error
// boundary: fixture failures become 502, missing records 404, anything
// else 500.
func (s *Server) handle(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		err := fn(rec, r)
		if err == nil {
			return
		}
		if rec.wrote {
			// Too late for an error page.
			s.log.Error("response failed after write", "method", r.Method, "path", r.URL.Path, "status", rec.status, "err", err)
			return
		}

		status, view := http.StatusInternalServerError, render.ErrorView{Heading: "Something went wrong", Message: "The page could not be rendered."}
		var he *httpError
		var fe *fixtures.FetchError
		switch {
		case errors.As(err, &he):
			status, view = he.status, render.ErrorView{Heading: he.heading, Message: he.msg}
		case errors.As(err, &fe):
			status, view = http.StatusBadGateway, render.ErrorView{Heading: "Data unavailable", Message: fe.Error()}
		case errors.Is(err, fixtures.ErrNotFound):
			status, view = http.StatusNotFound, render.ErrorView{Heading: "Not found", Message: err.Error()}
		}
		if status >= 500 {
			s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
		} else {
			s.log.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
		}
		s.page(w, status, render.PageError, render.Page{Title: view.Heading, Data: view})
	}
}

// page renders a full page with the given status.
func (s *Server) page(w http.ResponseWriter, status int, name string, p render.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.renderer.Render(w, name, p); err != nil {
		s.log.Error("render failed", "page", name, "err", err)
	}
}

// text writes a plain-text body.
func text(w http.ResponseWriter, body string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := fmt.Fprint(w, body)
	return err
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wrote {
		r.status, r.wrote = code, true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				s.log.Error("panic serving request", "method", r.Method, "path", r.URL.Path, "panic", p)
				http.Error(rec, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
			s.log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start).Round(time.Microsecond),
			)
		}()
		next.ServeHTTP(rec, r)
	})
}

// Serve serves h on addr until ctx is cancelled, then shuts down gracefully.
// ready, if non-nil, receives the bound address once listening.
func Serve(ctx context.Context, addr string, h http.Handler, log *slog.Logger, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
