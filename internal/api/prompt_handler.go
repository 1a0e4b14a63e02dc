package api

import (
	"log/slog"
	"net/http"

	"github.com/creatorlab/taskgate/internal/api/shared"
	"github.com/creatorlab/taskgate/internal/audit"
)

// PromptHandler gates prompt text through the external safety audit
// before returning it to the client.
type PromptHandler struct {
	auditor audit.Auditor
	logger  *slog.Logger
}

// NewPromptHandler creates a handler over the injected auditor.
func NewPromptHandler(auditor audit.Auditor, logger *slog.Logger) *PromptHandler {
	return &PromptHandler{auditor: auditor, logger: logger}
}

// GetPrompt handles POST /get_prompt and POST /translate requests.
func (h *PromptHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	var req PromptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: text is required")
		return
	}

	verdict, err := h.auditor.Audit(r.Context(), req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusBadGateway, "Audit service unavailable", err)
		return
	}

	if !verdict.Safe {
		h.logger.Info("prompt rejected by audit", "reason", verdict.Reason)
		shared.RespondWithJSON(w, r, http.StatusOK, PromptResponse{
			Text:    "",
			Success: false,
			Reason:  verdict.Reason,
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PromptResponse{
		Text:    req.Text,
		Success: true,
		Reason:  "",
	})
}
