package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/creatorlab/taskgate/internal/api/shared"
	"github.com/creatorlab/taskgate/internal/task"
)

// Dispatcher submits one unit of work and returns its uid.
// Version: 1.0
type Dispatcher interface {
	Submit(ctx context.Context, topic, taskName string, params map[string]any) (string, error)
}

// StatusReader answers per-task status queries.
// Version: 1.0
type StatusReader interface {
	GetStatus(ctx context.Context, uid string) (task.StatusResult, error)
}

// ReadinessProber reports worker-pool availability and backlog size.
// Version: 1.0
type ReadinessProber interface {
	ServerStatus(ctx context.Context) (task.ServerStatus, error)
}

// DispatchHandler handles task submission and status HTTP requests.
type DispatchHandler struct {
	dispatcher Dispatcher
	resolver   StatusReader
	prober     ReadinessProber
	logger     *slog.Logger
}

// NewDispatchHandler creates a handler over the injected core components.
func NewDispatchHandler(
	dispatcher Dispatcher,
	resolver StatusReader,
	prober ReadinessProber,
	logger *slog.Logger,
) *DispatchHandler {
	return &DispatchHandler{
		dispatcher: dispatcher,
		resolver:   resolver,
		prober:     prober,
		logger:     logger,
	}
}

// Push handles POST /push/{topic} requests.
func (h *DispatchHandler) Push(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if topic == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing topic")
		return
	}

	var req PushRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: task is required")
		return
	}

	uid, err := h.dispatcher.Submit(r.Context(), topic, req.Task, req.Params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PushResponse{UID: uid})
}

// Status handles GET /status/{uid} requests. An unknown uid is not an
// error: it reads as a freshly pending task.
func (h *DispatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	res, err := h.resolver.GetStatus(r.Context(), uid)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Status:  string(res.Status),
		Data:    res.Data,
		Pending: res.Lag,
	})
}

// ServerStatus handles GET /server_status requests.
func (h *DispatchHandler) ServerStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.prober.ServerStatus(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ServerStatusResponse{
		IsReady:    status.IsReady,
		NumPending: status.NumPending,
	})
}

// Health handles GET /health requests.
func (h *DispatchHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "alive"})
}
