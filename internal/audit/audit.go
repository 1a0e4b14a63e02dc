// Package audit provides the text-safety gate applied to prompt text
// before it is handed to clients. The audit itself runs in an external
// service; this package only defines the contract and an HTTP client
// for it.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result is the audit verdict for a piece of text.
type Result struct {
	Safe   bool   `json:"safe"`
	Reason string `json:"reason"`
}

// Auditor decides whether text is safe to return to clients.
// Version: 1.0
type Auditor interface {
	Audit(ctx context.Context, text string) (Result, error)
}

// NopAuditor approves everything. Used when no audit endpoint is
// configured.
type NopAuditor struct{}

func (NopAuditor) Audit(ctx context.Context, text string) (Result, error) {
	return Result{Safe: true}, nil
}

// HTTPAuditor posts text to an external audit endpoint and decodes the
// verdict.
type HTTPAuditor struct {
	endpoint string
	client   *http.Client
}

// NewHTTPAuditor creates an auditor for the given endpoint URL.
func NewHTTPAuditor(endpoint string, timeout time.Duration) *HTTPAuditor {
	return &HTTPAuditor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type auditRequest struct {
	Text string `json:"text"`
}

func (a *HTTPAuditor) Audit(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(auditRequest{Text: text})
	if err != nil {
		return Result{}, fmt.Errorf("encode audit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build audit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("audit call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("audit call: unexpected status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode audit response: %w", err)
	}
	return result, nil
}
