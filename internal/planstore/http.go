package planstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/session"
)

// HTTPStore talks to a remote plan service:
//
//	GET {base}/api/v1/plans/{goalType}   -> 200 SavedPlan | 404
//	PUT {base}/api/v1/plans/{goalType}   <- GoalPlanInput, -> 200 SavedPlan
//
// The user id travels in the X-User-ID header.
type HTTPStore struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPStore creates a store for the service at baseURL
func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// StatusError is returned for unexpected responses from the plan service
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("plan service %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (h *HTTPStore) planURL(goalType domain.GoalType) string {
	return h.BaseURL + "/api/v1/plans/" + url.PathEscape(string(goalType))
}

// Load fetches a plan
func (h *HTTPStore) Load(ctx context.Context, userID string, goalType domain.GoalType) (*domain.SavedPlan, error) {
	if err := checkKey(userID, goalType); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.planURL(goalType), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return h.do(req, userID)
}

// Save uploads a plan
func (h *HTTPStore) Save(ctx context.Context, userID string, goalType domain.GoalType, in domain.GoalPlanInput) (*domain.SavedPlan, error) {
	if err := checkKey(userID, goalType); err != nil {
		return nil, err
	}
	in.GoalType = goalType
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.planURL(goalType), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return h.do(req, userID)
}

func (h *HTTPStore) do(req *http.Request, userID string) (*domain.SavedPlan, error) {
	req.Header.Set(session.Header, userID)
	req.Header.Set("Accept", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("plan service request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrPlanNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	var plan domain.SavedPlan
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	return &plan, nil
}
