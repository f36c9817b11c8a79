package janus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/scorepadhq/scorepad/internal/domain/identity"
	"github.com/scorepadhq/scorepad/internal/platform/cache"
	"github.com/scorepadhq/scorepad/internal/platform/logging"
	"github.com/scorepadhq/scorepad/internal/platform/resilience"
	"github.com/scorepadhq/scorepad/internal/usecase"
)

const (
	introspectPath  = "/oauth/introspect"
	lookupEmailPath = "/users/lookup"
	usersBatchPath  = "/users/batch"

	maxResponseBytes = 1 << 20
)

var errJanusTransient = crerr.New("janus transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	PrincipalTTL   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the janus account service. Token introspections are cached
// by token hash so a burst of requests from one session hits janus once.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	principals     *cache.Store[identity.Principal]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		principals:     cache.NewStore[identity.Principal](cfg.PrincipalTTL),
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (identity.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return identity.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	return c.principals.GetOrLoad(ctx, hashToken(token), func(ctx context.Context) (identity.Principal, error) {
		var decoded introspectResponse
		status, err := c.postJSON(ctx, introspectPath, introspectRequest{Token: token}, &decoded)
		if err != nil {
			return identity.Principal{}, err
		}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return identity.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
		}
		if status != http.StatusOK {
			c.logger.WarnContext(ctx, "janus introspection non-200", "status_code", status)
			return identity.Principal{}, fmt.Errorf("janus introspection failed with status %d", status)
		}

		if !decoded.Active {
			return identity.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
		}
		if strings.TrimSpace(decoded.UserID) == "" {
			return identity.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
		}

		return identity.Principal{
			UserID: decoded.UserID,
			Email:  decoded.Email,
		}, nil
	})
}

func (c *Client) ResolveEmail(ctx context.Context, email string) (string, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", false, fmt.Errorf("email is required")
	}

	var decoded userResponse
	status, err := c.postJSON(ctx, lookupEmailPath, lookupEmailRequest{Email: email}, &decoded)
	if err != nil {
		return "", false, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", false, nil
	default:
		c.logger.WarnContext(ctx, "janus email lookup non-200", "status_code", status)
		return "", false, fmt.Errorf("janus email lookup failed with status %d", status)
	}

	if strings.TrimSpace(decoded.ID) == "" {
		return "", false, fmt.Errorf("invalid lookup response: id is empty")
	}
	return decoded.ID, true, nil
}

func (c *Client) FetchUsersByIDs(ctx context.Context, ids []string) (map[string]identity.User, error) {
	if len(ids) == 0 {
		return map[string]identity.User{}, nil
	}

	var decoded usersBatchResponse
	status, err := c.postJSON(ctx, usersBatchPath, usersBatchRequest{IDs: ids}, &decoded)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		c.logger.WarnContext(ctx, "janus users batch non-200", "status_code", status, "id_count", len(ids))
		return nil, fmt.Errorf("janus users batch failed with status %d", status)
	}

	out := make(map[string]identity.User, len(decoded.Users))
	for _, item := range decoded.Users {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		out[item.ID] = identity.User{
			ID:          item.ID,
			Email:       item.Email,
			DisplayName: item.DisplayName,
		}
	}
	return out, nil
}

// postJSON sends one request through the breaker and returns the HTTP status
// with the decoded body. Statuses are returned rather than mapped here so
// each endpoint can decide what 404 or 401 means for it.
func (c *Client) postJSON(ctx context.Context, path string, payload any, target any) (int, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "janus circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return 0, fmt.Errorf("%w: account service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	status, raw, err := c.executeRequest(ctx, path, payload)
	if c.circuitEnabled {
		if err != nil && isCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if isCircuitFailure(err) {
			return 0, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return 0, err
	}

	if len(raw) > 0 && target != nil {
		if err := sonic.Unmarshal(raw, target); err != nil {
			return status, fmt.Errorf("decode janus response: %w", err)
		}
	}
	return status, nil
}

func (c *Client) executeRequest(ctx context.Context, path string, payload any) (int, []byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoded, err := sonic.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal janus request: %w", err)
	}
	if _, err := buf.Write(encoded); err != nil {
		return 0, nil, fmt.Errorf("buffer janus request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf.B))
	if err != nil {
		return 0, nil, fmt.Errorf("create janus request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, crerr.Wrapf(errJanusTransient, "send janus request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, crerr.Wrapf(errJanusTransient, "read janus response: %v", err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return 0, nil, crerr.Wrapf(errJanusTransient, "janus status=%d", resp.StatusCode)
	}
	return resp.StatusCode, raw, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type lookupEmailRequest struct {
	Email string `json:"email"`
}

type usersBatchRequest struct {
	IDs []string `json:"ids"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type usersBatchResponse struct {
	Users []userResponse `json:"users"`
}
