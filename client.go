package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
)

// Identity service endpoints. The trailing-slash variance is part of the
// wire contract, do not normalize.
const (
	routeUsers                = "/auth/users/"
	routeJWTCreate            = "/auth/jwt/create"
	routeJWTRefresh           = "/auth/jwt/refresh"
	routeLogout               = "/auth/logout/"
	routeActivation           = "/auth/users/activation/"
	routeResendActivation     = "/auth/users/resend_activation/"
	routeResetPassword        = "/auth/users/reset_password/"
	routeResetPasswordConfirm = "/auth/users/reset_password_confirm/"
	routeSetPassword          = "/auth/users/set_password/"
	routeMe                   = "/auth/users/me/"
)

const maxResponseBody = 1 << 20

var _ TokenEndpoint = &Client{}

// Client issues requests against the identity service. It is stateless:
// credentials are inputs, never retained.
type Client struct {
	baseURL string
	http    *http.Client
	logger  Logger
	debug   bool
}

type ClientOption func(*Client)

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClientLogger replaces the default logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables payload dumps. Development only.
func WithDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.debug = debug
	}
}

// NewClient creates a client for the identity service named by
// cfg.GetBaseURL().
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.GetBaseURL())
	if baseURL == "" {
		return nil, errors.New("identity service base URL is required", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	out := &TokenPair{}
	err := c.do(ctx, http.MethodPost, routeJWTCreate, map[string]string{
		"username": username,
		"password": password,
	}, "", out)
	if err != nil {
		return nil, err
	}

	if out.AccessToken == "" || out.RefreshToken == "" {
		return nil, errors.New("identity service returned an incomplete token pair", errors.CategoryInternal).
			WithCode(errors.CodeInternal)
	}

	return out, nil
}

// Refresh mints a new access token. The refresh token is the credential; no
// bearer header is attached.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	out := &TokenPair{}
	err := c.do(ctx, http.MethodPost, routeJWTRefresh, map[string]string{
		"refresh": refreshToken,
	}, "", out)
	if err != nil {
		return "", err
	}

	if out.AccessToken == "" {
		return "", errors.New("identity service returned no access token", errors.CategoryInternal).
			WithCode(errors.CodeInternal)
	}

	return out.AccessToken, nil
}

// Logout asks the identity service to invalidate the refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, routeLogout, map[string]string{
		"refresh": refreshToken,
	}, "", nil)
}

// Register creates an account. The account may still require activation.
func (c *Client) Register(ctx context.Context, email, username, password string) error {
	return c.do(ctx, http.MethodPost, routeUsers, map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	}, "", nil)
}

// Activate confirms an account from an emailed uid/token pair.
func (c *Client) Activate(ctx context.Context, uid, token string) error {
	return c.do(ctx, http.MethodPost, routeActivation, map[string]string{
		"uid":   uid,
		"token": token,
	}, "", nil)
}

// ResendActivation requests a new activation email. The server answers the
// same whether or not the account exists.
func (c *Client) ResendActivation(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, routeResendActivation, map[string]string{
		"email": email,
	}, "", nil)
}

// ResetPassword starts a password reset. No-op-safe like ResendActivation.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, routeResetPassword, map[string]string{
		"email": email,
	}, "", nil)
}

// ResetPasswordConfirm completes a reset from an emailed uid/token pair.
func (c *Client) ResetPasswordConfirm(ctx context.Context, uid, token, newPassword, confirmPassword string) error {
	return c.do(ctx, http.MethodPost, routeResetPasswordConfirm, map[string]string{
		"uid":             uid,
		"token":           token,
		"new_password":    newPassword,
		"re_new_password": confirmPassword,
	}, "", nil)
}

// ChangePassword changes the password of the authenticated account.
func (c *Client) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword, confirmPassword string) error {
	return c.do(ctx, http.MethodPost, routeSetPassword, map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
		"re_new_password":  confirmPassword,
	}, accessToken, nil)
}

// Profile reads the authenticated account's profile.
func (c *Client) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	out := &Profile{}
	if err := c.do(ctx, http.MethodGet, routeMe, nil, accessToken, out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfile applies a partial update to the authenticated account's
// profile and returns the result.
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, patch ProfilePatch) (*Profile, error) {
	if err := patch.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid profile patch")
	}

	body := patch.payload()
	if len(body) == 0 {
		return c.Profile(ctx, accessToken)
	}

	out := &Profile{}
	if err := c.do(ctx, http.MethodPatch, routeMe, body, accessToken, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, accessToken string, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to build identity service request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	if c.debug {
		fmt.Println("======= AUTH API ======")
		fmt.Println(method + " " + path)
		fmt.Println(print.MaybePrettyJSON(body))
		fmt.Println("=======================")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "identity service unreachable").
			WithTextCode(textCodeIdentityUnreachable)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody))
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to read identity service response").
			WithTextCode(textCodeIdentityUnreachable)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return c.failure(method, path, res.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to decode identity service response")
		}
	}

	return nil
}

// failure maps a non-2xx response to a rich error. The raw payload travels
// in metadata untouched; shape interpretation is the caller's concern.
func (c *Client) failure(method, path string, status int, raw []byte) error {
	metadata := map[string]any{
		"status":   status,
		"endpoint": method + " " + path,
	}

	payload := map[string]any{}
	if len(raw) > 0 && json.Unmarshal(raw, &payload) == nil {
		metadata["payload"] = payload
	}

	var richErr *errors.Error
	switch {
	case status == http.StatusUnauthorized:
		richErr = errors.New("authorization failed", errors.CategoryAuth).
			WithTextCode(textCodeAuthorizationFailed).
			WithCode(errors.CodeUnauthorized)
	case status == http.StatusForbidden:
		richErr = errors.New("access forbidden", errors.CategoryAuthz).
			WithTextCode(textCodeAuthorizationFailed).
			WithCode(errors.CodeForbidden)
	case status == http.StatusNotFound:
		richErr = errors.New("identity resource not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound)
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		richErr = errors.New("identity service rejected the request", errors.CategoryValidation).
			WithTextCode(textCodeIdentityRejected).
			WithCode(errors.CodeBadRequest)
	default:
		richErr = errors.New("identity service error", errors.CategoryInternal).
			WithCode(errors.CodeInternal)
	}

	c.logger.Debug("identity service failure", "endpoint", metadata["endpoint"], "status", status)

	return richErr.WithMetadata(metadata)
}
