package api

import "encoding/json"

// PushRequest is the body of POST /push/{topic}.
type PushRequest struct {
	Task   string         `json:"task" validate:"required,min=1"`
	Params map[string]any `json:"params"`
}

// PushResponse carries the uid assigned to a successful submission.
type PushResponse struct {
	UID string `json:"uid"`
}

// StatusResponse is the body of GET /status/{uid}. Pending is the
// task's lag: its estimated zero-based position in the pending queue.
type StatusResponse struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Pending int             `json:"pending"`
}

// ServerStatusResponse is the body of GET /server_status.
type ServerStatusResponse struct {
	IsReady    bool `json:"is_ready"`
	NumPending int  `json:"num_pending"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// PromptRequest is the body of POST /get_prompt and /translate.
type PromptRequest struct {
	Text string `json:"text" validate:"required"`
}

// PromptResponse carries the audited prompt text. On rejection Text is
// empty and Reason explains why.
type PromptResponse struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
}
