// Package resolver tries ordered lists of candidate REST endpoints and
// returns the first usable response. The backend it talks to is mid-migration
// between route naming schemes, so a logical resource may live under any of
// several URLs; candidate order encodes the migration priority and is a
// correctness requirement, not an optimization.
package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/retrohunt/retro-hunter/internal/metrics"
)

// ErrNoUsableEndpoint is returned when every candidate was tried and none
// produced a usable response.
var ErrNoUsableEndpoint = errors.New("no usable endpoint")

// Resolver issues requests against candidate endpoints in order. It uses a
// plain HTTP client on purpose: a failing candidate is skipped, never
// retried, so the next candidate gets its turn immediately.
type Resolver struct {
	client *http.Client
	log    *slog.Logger
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resolver) {
		r.client = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// New creates a Resolver with a bounded request timeout per candidate.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get tries each candidate URL in order and returns the body of the first
// response with a success status, a JSON content type, and a parseable JSON
// body. Any other outcome (transport error, non-success status, HTML error
// page behind a 200) skips to the next candidate. When the list is exhausted
// the call fails with ErrNoUsableEndpoint.
func (r *Resolver) Get(ctx context.Context, candidates []string, token string) (gjson.Result, error) {
	reqID := uuid.NewString()

	for _, u := range candidates {
		body, ok := r.tryGet(ctx, u, token, reqID)
		if !ok {
			metrics.ResolverAttemptsTotal.WithLabelValues("skipped").Inc()
			continue
		}
		metrics.ResolverAttemptsTotal.WithLabelValues("accepted").Inc()
		return gjson.ParseBytes(body), nil
	}

	metrics.ResolverExhaustedTotal.Inc()
	return gjson.Result{}, fmt.Errorf("GET across %d candidates: %w", len(candidates), ErrNoUsableEndpoint)
}

// Post tries each candidate with a JSON body; the first success status wins.
func (r *Resolver) Post(ctx context.Context, candidates []string, token string, body any) ([]byte, error) {
	return r.write(ctx, http.MethodPost, candidates, token, body)
}

// Put tries each candidate with a JSON body; the first success status wins.
func (r *Resolver) Put(ctx context.Context, candidates []string, token string, body any) ([]byte, error) {
	return r.write(ctx, http.MethodPut, candidates, token, body)
}

// Delete tries each candidate; the first success status wins.
func (r *Resolver) Delete(ctx context.Context, candidates []string, token string) ([]byte, error) {
	return r.write(ctx, http.MethodDelete, candidates, token, nil)
}

// write implements the ordered-candidate semantics for mutating verbs. A
// candidate is accepted on success status alone; the response body is read
// best-effort for the caller's logging, not for success determination.
func (r *Resolver) write(
	ctx context.Context,
	method string,
	candidates []string,
	token string,
	body any,
) ([]byte, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		payload = data
	}

	reqID := uuid.NewString()

	for _, u := range candidates {
		respBody, ok := r.tryWrite(ctx, method, u, token, payload, reqID)
		if !ok {
			metrics.ResolverAttemptsTotal.WithLabelValues("skipped").Inc()
			continue
		}
		metrics.ResolverAttemptsTotal.WithLabelValues("accepted").Inc()
		return respBody, nil
	}

	metrics.ResolverExhaustedTotal.Inc()
	return nil, fmt.Errorf("%s across %d candidates: %w", method, len(candidates), ErrNoUsableEndpoint)
}

func (r *Resolver) tryGet(ctx context.Context, u, token, reqID string) ([]byte, bool) {
	resp, err := r.do(ctx, http.MethodGet, u, token, nil, reqID)
	if err != nil {
		r.log.Debug("candidate unreachable", "url", u, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.log.Debug("candidate body unreadable", "url", u, "error", err)
		return nil, false
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		r.log.Debug("candidate skipped", "url", u, "status", resp.StatusCode)
		return nil, false
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		r.log.Debug("candidate returned non-JSON", "url", u,
			"content_type", resp.Header.Get("Content-Type"))
		return nil, false
	}

	if !gjson.ValidBytes(body) {
		r.log.Debug("candidate returned invalid JSON", "url", u)
		return nil, false
	}

	return body, true
}

func (r *Resolver) tryWrite(ctx context.Context, method, u, token string, payload []byte, reqID string) ([]byte, bool) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	resp, err := r.do(ctx, method, u, token, reader, reqID)
	if err != nil {
		r.log.Debug("candidate unreachable", "url", u, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		r.log.Debug("candidate skipped", "url", u, "status", resp.StatusCode)
		return nil, false
	}

	return body, true
}

func (r *Resolver) do(
	ctx context.Context,
	method, u, token string,
	body io.Reader,
	reqID string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return r.client.Do(req)
}

// isJSON reports whether a Content-Type header declares a JSON payload,
// tolerating parameters (charset) and +json suffixes.
func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch {
	case mt == "application/json":
		return true
	case len(mt) > 5 && mt[len(mt)-5:] == "+json":
		return true
	default:
		return false
	}
}
