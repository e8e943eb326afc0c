// Package gateway is the single HTTP client every view goes through. It owns
// audience classification, bearer-token attachment and the busy indicator;
// it performs no retries and no error recovery.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"library-client/session"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes one outgoing call. Body, when non-nil, is JSON-encoded.
// SkipLoader suppresses the busy indicator for background refreshes.
type Request struct {
	Method     string
	Path       string
	Body       any
	SkipLoader bool
}

// Response is the settled result of a call. Body is fully read and the
// underlying connection released before Send returns.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Gateway dispatches requests against one fixed base address, attaching the
// stored bearer token for whichever audience the path belongs to.
type Gateway struct {
	client   httpClient
	baseURL  url.URL
	sessions session.Store
	busy     Indicator
	log      *zap.Logger
}

// Option configures a Gateway at construction time.
type Option func(*Gateway)

// WithIndicator wires the busy indicator. Without it the Gateway stays
// silent, which keeps it independently testable.
func WithIndicator(ind Indicator) Option {
	return func(g *Gateway) {
		if ind != nil {
			g.busy = ind
		}
	}
}

// WithLogger wires the diagnostic logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

// New builds a Gateway over the given transport and session store.
func New(client httpClient, baseURL url.URL, sessions session.Store, opts ...Option) *Gateway {
	g := &Gateway{
		client:   client,
		baseURL:  baseURL,
		sessions: sessions,
		busy:     NopIndicator{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Classify derives the audience of a request from its path prefix. Paths
// outside both scopes carry no credentials at all.
func Classify(path string) (session.Audience, bool) {
	switch {
	case strings.HasPrefix(path, "/user/"):
		return session.AudienceUser, true
	case strings.HasPrefix(path, "/admin/"):
		return session.AudienceAdmin, true
	}
	return "", false
}

// Send dispatches one request. The busy indicator is shown before dispatch
// and hidden exactly once after settling, on success and failure alike,
// unless the request opts out. Non-2xx responses come back as both a
// Response and a *StatusError; transport failures return only an error.
func (g *Gateway) Send(ctx context.Context, req Request) (*Response, error) {
	if !req.SkipLoader {
		g.busy.Show()
		defer g.busy.Hide()
	}

	httpReq, err := g.build(ctx, req)
	if err != nil {
		return nil, err
	}

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", req.Method, req.Path, err)
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Body: body}

	if httpResp.StatusCode == http.StatusForbidden {
		// Diagnostic only. Session state and navigation are left to the view.
		g.log.Warn("forbidden response",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.String("request_id", httpReq.Header.Get("X-Request-Id")))
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return resp, &StatusError{Code: httpResp.StatusCode, Body: body}
	}
	return resp, nil
}

func (g *Gateway) build(ctx context.Context, req Request) (*http.Request, error) {
	target := g.baseURL.JoinPath(req.Path)

	var body io.Reader
	if req.Body != nil {
		buf, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	if aud, ok := Classify(req.Path); ok {
		rec, present, err := g.sessions.Get(aud)
		if err != nil {
			return nil, fmt.Errorf("read session: %w", err)
		}
		if present && rec.Token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+rec.Token)
		}
	}

	return httpReq, nil
}
