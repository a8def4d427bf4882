package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"expvar"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/ecodir/internal/assistant"
	"github.com/ajitpratap0/ecodir/internal/metrics"
	"github.com/ajitpratap0/ecodir/internal/models"
	"github.com/ajitpratap0/ecodir/internal/moderation"
	"github.com/ajitpratap0/ecodir/internal/query"
	"github.com/ajitpratap0/ecodir/internal/relations"
	"github.com/ajitpratap0/ecodir/internal/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server is an HTTP API server that exposes the directory.
type Server struct {
	store        store.Store
	workflow     *moderation.Workflow
	gateway      assistant.Gateway
	logger       *slog.Logger
	authToken    string // empty = no auth required
	similarLimit int
}

// NewServer creates a new Server with the given dependencies.
func NewServer(st store.Store, wf *moderation.Workflow, gw assistant.Gateway, logger *slog.Logger, authToken string, similarLimit int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if similarLimit <= 0 {
		similarLimit = relations.DefaultSimilarLimit
	}
	if authToken == "" {
		logger.Warn("api: no auth token configured, admin routes are open")
	}
	return &Server{
		store:        st,
		workflow:     wf,
		gateway:      gw,
		logger:       logger,
		authToken:    authToken,
		similarLimit: similarLimit,
	}
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public routes.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /v1/entities", s.handleListEntities)
	mux.HandleFunc("GET /v1/entities/{id}", s.handleGetEntity)
	mux.HandleFunc("POST /v1/submissions", s.handleSubmit)
	mux.HandleFunc("POST /v1/assistant", s.handleAssistant)
	mux.HandleFunc("GET /v1/stats", s.handleStats)
	mux.Handle("GET /debug/vars", expvar.Handler())

	// Admin routes.
	mux.HandleFunc("POST /v1/entities", s.auth(s.handleAddEntity))
	mux.HandleFunc("PUT /v1/entities/{id}", s.auth(s.handleUpdateEntity))
	mux.HandleFunc("DELETE /v1/entities/{id}", s.auth(s.handleDeleteEntity))
	mux.HandleFunc("GET /v1/submissions", s.auth(s.handleListSubmissions))
	mux.HandleFunc("POST /v1/submissions/{id}/approve", s.auth(s.handleApprove))
	mux.HandleFunc("POST /v1/submissions/{id}/reject", s.auth(s.handleReject))
	mux.HandleFunc("POST /v1/inspect", s.auth(s.handleInspect))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListEntities(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	category, ok := models.ParseCategory(params.Get("category"))
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unknown category")
		return
	}
	filter := models.NewFilterState().WithCategory(category).WithQuery(params.Get("q"))
	if tag := params.Get("tag"); tag != "" {
		filter = filter.ToggleTag(tag)
	}

	entities, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list entities", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list entities")
		return
	}

	s.writeJSON(w, http.StatusOK, query.Run(entities, filter))
}

func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	limit := s.similarLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entity, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		s.logger.Error("failed to get entity", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get entity")
		return
	}
	entities, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list entities", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list entities")
		return
	}

	s.writeJSON(w, http.StatusOK, relations.Detail(entities, entity, limit))
}

func (s *Server) handleAddEntity(w http.ResponseWriter, r *http.Request) {
	var entity models.Entity
	if !s.decode(w, r, &entity) {
		return
	}
	normalizeEntity(&entity)

	if err := s.store.Add(r.Context(), entity); err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidEntity):
			s.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrDuplicateID):
			s.writeError(w, http.StatusConflict, "entity id already exists")
		default:
			s.logger.Error("failed to add entity", "id", entity.ID, "error", err)
			s.writeError(w, http.StatusInternalServerError, "failed to add entity")
		}
		return
	}
	metrics.Inc(metrics.EntitiesAdded)
	s.logger.Info("api: entity added", "id", entity.ID, "name", entity.Name)

	s.writeJSON(w, http.StatusCreated, entity)
}

func (s *Server) handleUpdateEntity(w http.ResponseWriter, r *http.Request) {
	var entity models.Entity
	if !s.decode(w, r, &entity) {
		return
	}
	entity.ID = r.PathValue("id")
	normalizeEntity(&entity)

	updated, err := s.store.Update(r.Context(), entity)
	if err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to update entity", "id", entity.ID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to update entity")
		return
	}
	if updated {
		metrics.Inc(metrics.EntitiesUpdated)
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": updated})
}

func (s *Server) handleDeleteEntity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	n, err := s.store.Delete(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to delete entity", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete entity")
		return
	}
	metrics.Add(metrics.EntitiesDeleted, n)

	s.writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.workflow.Pending(r.Context())
	if err != nil {
		s.logger.Error("failed to list submissions", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]models.Submission{"submissions": subs})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var in moderation.SubmissionInput
	if !s.decode(w, r, &in) {
		return
	}
	sub, err := s.workflow.Submit(r.Context(), in)
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidSubmission) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("failed to queue submission", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to queue submission")
		return
	}
	s.writeJSON(w, http.StatusAccepted, sub)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	s.moderate(w, r, s.workflow.Approve)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	s.moderate(w, r, s.workflow.Reject)
}

func (s *Server) moderate(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (moderation.Outcome, error)) {
	id := r.PathValue("id")
	outcome, err := op(r.Context(), id)
	if err != nil {
		s.logger.Error("failed to moderate submission", "id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to moderate submission")
		return
	}
	s.writeJSON(w, http.StatusOK, outcome)
}

// assistantRequest is the body accepted by POST /v1/assistant.
type assistantRequest struct {
	Question string `json:"question"`
}

// assistantResponse is returned by POST /v1/assistant.
type assistantResponse struct {
	Answer     string `json:"answer"`
	Configured bool   `json:"configured"`
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	entities, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list entities", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list entities")
		return
	}

	metrics.Inc(metrics.AssistantQueries)
	answer := s.gateway.Ask(r.Context(), req.Question, models.Summarize(entities))
	if assistant.IsFallback(answer) {
		metrics.Inc(metrics.AssistantFallbacks)
	}

	s.writeJSON(w, http.StatusOK, assistantResponse{Answer: answer, Configured: s.gateway.Configured()})
}

// inspectRequest is the body accepted by POST /v1/inspect.
type inspectRequest struct {
	URL      string `json:"url"`
	Category string `json:"category"`
}

// inspectResponse is returned by POST /v1/inspect. Entity is the draft with
// defaults applied, ready to be added.
type inspectResponse struct {
	Draft  *models.EntityDraft `json:"draft"`
	Entity models.Entity       `json:"entity"`
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	var req inspectRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	var hint *models.Category
	if req.Category != "" {
		c, ok := models.ParseCategory(req.Category)
		if !ok || c == models.CategoryAll {
			s.writeError(w, http.StatusBadRequest, "unknown category")
			return
		}
		hint = &c
	}

	metrics.Inc(metrics.InspectTotal)
	draft, err := s.gateway.InspectURL(r.Context(), req.URL, hint)
	if err != nil {
		metrics.Inc(metrics.InspectFailed)
		if errors.Is(err, assistant.ErrNotConfigured) {
			s.writeError(w, http.StatusServiceUnavailable, "assistant is not configured")
			return
		}
		s.logger.Warn("url inspection failed", "url", req.URL, "error", err)
		s.writeError(w, http.StatusBadGateway, "could not inspect url, enter details manually")
		return
	}

	s.writeJSON(w, http.StatusOK, inspectResponse{
		Draft:  draft,
		Entity: draft.ToEntity("gen-"+uuid.NewString(), req.URL),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.logger.Error("failed to get stats", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

// --- helpers ---

// decode reads a size-limited JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// normalizeEntity fills the fields the directory always displays.
func normalizeEntity(e *models.Entity) {
	if e.LogoURL == "" {
		e.LogoURL = models.PlaceholderLogoURL
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
