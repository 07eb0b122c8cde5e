// internal/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"
	"time"

	"hostel-portal/internal/pkg/session"

	"go.uber.org/zap"
)

// TeardownPolicy is invoked when the upstream answers 403 to a request that
// carried a token. The default policy clears the session on the theory that a
// 403 after presenting a token means the session was invalidated server-side.
// That heuristic conflates "forbidden for this resource" with "session
// invalid"; it lives behind this single hook so it can be revised
// independently once the upstream exposes a distinct error code.
type TeardownPolicy func(ctx context.Context, sid, failedToken string)

// Client is the portal's only path to the upstream hostel API. It attaches
// the session's bearer token, normalizes every response envelope and maps all
// failure modes to typed errors.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Manager
	teardown TeardownPolicy
	logger   *zap.Logger
}

func NewClient(baseURL string, sessions *session.Manager, logger *zap.Logger) *Client {
	c := &Client{
		baseURL:  normalizeBaseURL(baseURL),
		http:     &http.Client{Timeout: 30 * time.Second},
		sessions: sessions,
		logger:   logger,
	}

	c.teardown = func(ctx context.Context, sid, failedToken string) {
		cleared, err := sessions.ClearIfTokenMatches(ctx, sid, failedToken)
		if err != nil {
			logger.Error("failed to tear down session after 403", zap.Error(err))
			return
		}
		if cleared {
			logger.Info("session cleared after upstream 403", zap.String("sid", sid))
		}
	}

	return c
}

// normalizeBaseURL trims trailing slashes and guarantees the /api path the
// upstream mounts everything under.
func normalizeBaseURL(raw string) string {
	base := strings.TrimRight(raw, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	return base
}

// Do issues a request on behalf of the client session identified by sid and
// returns the normalized result. On failure it always returns *Error.
func (c *Client) Do(ctx context.Context, sid, method, endpoint string, body interface{}) (*Result, error) {
	sess, err := c.sessions.Hydrate(ctx, sid)
	if err != nil {
		// A broken session read degrades to an unauthenticated request; the
		// upstream will reject it if the endpoint needs auth.
		c.logger.Warn("session hydrate failed, sending request without token", zap.Error(err))
		sess = session.LoggedOut()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Category: CategoryUnexpected, Message: fmt.Sprintf("failed to encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, &Error{Category: CategoryUnexpected, Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if sess.IsAuthenticated {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// No HTTP response at all: DNS failure, refused connection, timeout.
		return nil, &Error{Category: CategoryUnavailable, Message: networkErrorMessage}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Category: CategoryUnexpected, Status: resp.StatusCode, Message: invalidBodyMessage}
	}

	var env envelope
	decodable := isJSON(resp.Header.Get("Content-Type")) && json.Unmarshal(raw, &env) == nil

	if resp.StatusCode == http.StatusForbidden && sess.IsAuthenticated {
		c.teardown(ctx, sid, sess.Token)
		// The original error still propagates so the caller can redirect.
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := defaultMessage(resp.StatusCode)
		if decodable {
			msg = env.failureMessage(resp.StatusCode)
		}
		return nil, &Error{
			Category: categoryForStatus(resp.StatusCode),
			Status:   resp.StatusCode,
			Message:  msg,
		}
	}

	if !decodable {
		return nil, &Error{Category: CategoryUnexpected, Status: resp.StatusCode, Message: invalidBodyMessage}
	}

	// A 2xx without success:true is still a failure.
	if !env.Success {
		return nil, &Error{
			Category: CategoryUnexpected,
			Status:   resp.StatusCode,
			Message:  env.failureMessage(resp.StatusCode),
		}
	}

	return env.normalize(), nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, sid, endpoint string) (*Result, error) {
	return c.Do(ctx, sid, http.MethodGet, endpoint, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, sid, endpoint string, body interface{}) (*Result, error) {
	return c.Do(ctx, sid, http.MethodPost, endpoint, body)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, sid, endpoint string, body interface{}) (*Result, error) {
	return c.Do(ctx, sid, http.MethodPut, endpoint, body)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, sid, endpoint string) (*Result, error) {
	return c.Do(ctx, sid, http.MethodDelete, endpoint, nil)
}

var fileNamePattern = regexp.MustCompile(`filename="?([^";]+)"?`)

// DoRaw fetches a binary payload (report exports) and passes the bytes and
// suggested file name through untouched.
func (c *Client) DoRaw(ctx context.Context, sid, endpoint string) ([]byte, string, error) {
	sess, err := c.sessions.Hydrate(ctx, sid)
	if err != nil {
		sess = session.LoggedOut()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, "", &Error{Category: CategoryUnexpected, Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	if sess.IsAuthenticated {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &Error{Category: CategoryUnavailable, Message: networkErrorMessage}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Category: CategoryUnexpected, Status: resp.StatusCode, Message: invalidBodyMessage}
	}

	if resp.StatusCode == http.StatusForbidden && sess.IsAuthenticated {
		c.teardown(ctx, sid, sess.Token)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := defaultMessage(resp.StatusCode)
		if isJSON(resp.Header.Get("Content-Type")) {
			var env envelope
			if json.Unmarshal(raw, &env) == nil {
				msg = env.failureMessage(resp.StatusCode)
			}
		} else if len(raw) > 0 {
			msg = string(raw)
		}
		return nil, "", &Error{
			Category: categoryForStatus(resp.StatusCode),
			Status:   resp.StatusCode,
			Message:  msg,
		}
	}

	fileName := ""
	if m := fileNamePattern.FindStringSubmatch(resp.Header.Get("Content-Disposition")); m != nil {
		fileName = m[1]
	}

	return raw, fileName, nil
}

// SetTeardownPolicy overrides the 403 teardown hook. Intended for tests and
// for future upstream error codes that distinguish resource-scoped 403s from
// invalidated sessions.
func (c *Client) SetTeardownPolicy(p TeardownPolicy) {
	c.teardown = p
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
