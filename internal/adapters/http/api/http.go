// Package api serves the local view API: a JSON surface over the open event
// views so a display layer can render picks and drive edits.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	service "github.com/okian/fightpicks/internal/app"
	"github.com/okian/fightpicks/pkg/logger"
)

// Views is the controller registry the handlers operate on.
type Views interface {
	Ensure(eventID string) (*service.Controller, bool)
	Get(eventID string) *service.Controller
	Remove(eventID string) bool
	UpdateGauges()
}

// Server wires HTTP routes for the view API.
type Server struct {
	views  Views
	logger logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a view API over views.
func NewServer(views Views, opts ...Option) *Server {
	s := &Server{views: views}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("api")
	return s
}

// Routes returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestFields)
	r.Use(Metrics)

	r.Get("/healthz", HandleHealth)
	r.Route("/events/{id}", func(r chi.Router) {
		r.Get("/", s.handleView)
		r.Delete("/", s.handleDiscard)
		r.Post("/toggle", s.handleToggle)
		r.Post("/save", s.handleSave)
		r.Post("/revert", s.handleRevert)
	})
	return r
}

// requestFields tags every log line written while serving the request with
// its request id.
func requestFields(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithFields(r.Context(), logger.String("request_id", middleware.GetReqID(r.Context())))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type toggleRequest struct {
	Fighter  string `json:"fighter"`
	Opponent string `json:"opponent"`
}

func (t toggleRequest) validate() error {
	switch {
	case strings.TrimSpace(t.Fighter) == "":
		return fmt.Errorf("%w: missing fighter", ErrBadRequest)
	case strings.TrimSpace(t.Opponent) == "":
		return fmt.Errorf("%w: missing opponent", ErrBadRequest)
	}
	return nil
}

type toggleResponse struct {
	Outcome string       `json:"outcome"`
	View    service.View `json:"view"`
}

type errorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	View    *service.View `json:"view,omitempty"`
}

// controller returns the open view for the request, opening and loading it
// on first use. A view that never loaded is not kept open, so unknown ids do
// not accumulate.
func (s *Server) controller(ctx context.Context, id string) (*service.Controller, error) {
	ctl, created := s.views.Ensure(id)
	if created {
		s.views.UpdateGauges()
	}
	if ctl.State() == service.StateLoading {
		if err := ctl.Load(ctx); err != nil {
			if st := ctl.State(); st == service.StateLoading || st == service.StateNotFound {
				s.views.Remove(id)
				s.views.UpdateGauges()
			}
			return ctl, err
		}
	}
	if ctl.State() == service.StateNotFound {
		return ctl, fmt.Errorf("%w: %s", service.ErrEventNotFound, id)
	}
	return ctl, nil
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	ctl, err := s.controller(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, ctl)
		return
	}
	writeJSON(w, http.StatusOK, ctl.View())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", ErrBadRequest, err), nil)
		return
	}
	if err := req.validate(); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	ctl, err := s.controller(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, ctl)
		return
	}
	outcome, err := ctl.Toggle(req.Fighter, req.Opponent)
	s.views.UpdateGauges()
	if err != nil {
		s.writeError(w, r, err, ctl)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Outcome: string(outcome), View: ctl.View()})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	ctl, err := s.controller(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, ctl)
		return
	}
	err = ctl.Save(r.Context())
	s.views.UpdateGauges()
	if err != nil {
		s.writeError(w, r, err, ctl)
		return
	}
	writeJSON(w, http.StatusOK, ctl.View())
}

func (s *Server) handleRevert(w http.ResponseWriter, r *http.Request) {
	ctl, err := s.controller(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, ctl)
		return
	}
	if err := ctl.Revert(); err != nil {
		s.writeError(w, r, err, ctl)
		return
	}
	s.views.UpdateGauges()
	writeJSON(w, http.StatusOK, ctl.View())
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.views.Remove(id) {
		s.writeError(w, r, fmt.Errorf("%w: %s", ErrNoView, id), nil)
		return
	}
	s.views.UpdateGauges()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with {code, message} and, when a controller is at hand,
// its current view so the caller can re-render without another round trip.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, ctl *service.Controller) {
	status, code := classify(err)
	resp := errorResponse{Code: code, Message: err.Error()}
	if ctl != nil {
		v := ctl.View()
		resp.View = &v
	}
	if status >= http.StatusInternalServerError && !errors.Is(err, service.ErrSaveFailed) {
		s.logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
	}
	writeJSON(w, status, resp)
}
