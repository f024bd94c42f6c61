// Package server exposes a read-only JSON view of the game state.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"

	"github.com/alexanderramin/questgame/internal/app"
	"github.com/alexanderramin/questgame/internal/contract"
	"github.com/alexanderramin/questgame/internal/service"
)

const (
	DefaultAddr     = "127.0.0.1:8777"
	shutdownTimeout = 5 * time.Second
	readTimeout     = 10 * time.Second
)

// Deps are the read-side use cases the server renders.
type Deps struct {
	Status   app.StatusUseCase
	Backlog  app.BacklogUseCase
	Inbox    app.InboxUseCase
	Activity app.ActivityUseCase
	Logger   *slog.Logger
}

type Server struct {
	deps    Deps
	handler http.Handler
}

func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	s := &Server{deps: deps}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.getOnly(s.handleHealth))
	mux.HandleFunc("/api/state", s.getOnly(s.handleState))
	mux.HandleFunc("/api/today", s.getOnly(s.handleToday))
	mux.HandleFunc("/api/backlog", s.getOnly(s.handleBacklog))
	mux.HandleFunc("/api/inbox", s.getOnly(s.handleInbox))
	mux.HandleFunc("/api/log", s.getOnly(s.handleLog))

	s.handler = cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: readTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("serving game state", "addr", addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) getOnly(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Status.Snapshot(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.NewStateView(snap))
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	snap, err := s.deps.Status.Snapshot(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.NewTodayView(snap.ActiveQuest))
}

func (s *Server) handleBacklog(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Backlog.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.NewBacklogView(items))
}

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	entries, err := s.deps.Inbox.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.NewInboxView(entries))
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := s.deps.Activity.Recent(r.Context(), limit)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, contract.NewActivityView(entries))
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.deps.Logger.Error("request failed", "path", r.URL.Path, "error", err)
	s.writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.deps.Logger.Warn("encode response", "error", err)
	}
}
