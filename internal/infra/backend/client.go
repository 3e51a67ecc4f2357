// Package backend implements the client for the remote MegaMart REST API,
// including the bearer-token auth interceptor.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"megamart/config"
	domainerrors "megamart/internal/domain/errors"
	"megamart/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

// CredentialSource is the token source the interceptor pulls from. The
// session container implements it.
type CredentialSource = service.CredentialSource

// Params defines the dependencies for the backend client.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// Client talks to the remote REST API. Every authenticated request carries
// the current access token; a 401 reply triggers exactly one token refresh
// followed by one retry of the original request.
type Client struct {
	baseURL      *url.URL
	httpClient   *http.Client
	logger       *slog.Logger
	creds        CredentialSource
	refreshGroup singleflight.Group
}

// NewClient builds the REST client from configuration. Credentials are
// bound later by the session container via BindCredentials.
func NewClient(params Params) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(params.Config.Backend.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid backend base URL")
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: params.Config.Backend.Timeout},
		logger:     params.Logger,
	}, nil
}

// BindCredentials attaches the token source. Until it is called, requests
// go out unauthenticated and 401 replies are returned as-is.
func (c *Client) BindCredentials(creds CredentialSource) {
	c.creds = creds
}

// requestOpts controls per-request interceptor behavior.
type requestOpts struct {
	// skipAuth disables bearer injection and the 401-refresh path; the
	// credential lifecycle endpoints use it to avoid recursing into
	// themselves.
	skipAuth bool
}

// apiError is the error body shape the backend replies with.
type apiError struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, opts requestOpts) error {
	resp, err := c.send(ctx, method, path, query, body, opts, c.accessToken())
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !opts.skipAuth && c.creds != nil {
		drain(resp)

		token, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			// Hard logout: the refresh token no longer works, so the
			// whole session is gone.
			c.logger.Warn("Token refresh failed, clearing session", slog.Any("error", refreshErr))
			c.creds.ForceLogout(ctx)

			return errors.Wrap(domainerrors.ErrSessionExpired, "token refresh failed")
		}

		// One retry per original request, never more.
		resp, err = c.send(ctx, method, path, query, body, opts, token)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)

			return errors.Wrap(domainerrors.ErrSessionExpired, "request rejected after token refresh")
		}
	}

	return decodeResponse(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, opts requestOpts, token string) (*http.Response, error) {
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !opts.skipAuth && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrNetworkUnavailable, err.Error())
	}

	return resp, nil
}

func (c *Client) accessToken() string {
	if c.creds == nil {
		return ""
	}

	return c.creds.AccessToken()
}

// refreshAccessToken mints a new access token using the stored refresh
// token. Concurrent 401s collapse into one in-flight refresh so the
// refresh token is only spent once.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	value, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		refreshToken := c.creds.RefreshToken()
		if refreshToken == "" {
			return nil, errors.New("no refresh token held")
		}

		token, err := c.RefreshAccessToken(ctx, refreshToken)
		if err != nil {
			return nil, err
		}
		c.creds.ReplaceAccessToken(ctx, token)

		return token, nil
	})
	if err != nil {
		return "", err
	}

	return value.(string), nil
}

func decodeResponse(resp *http.Response, out any) error {
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr apiError
		_ = json.Unmarshal(data, &apiErr)

		details := ""
		if len(apiErr.Errors) > 0 {
			pairs := make([]string, 0, len(apiErr.Errors))
			for field, msg := range apiErr.Errors {
				pairs = append(pairs, field+": "+msg)
			}
			details = strings.Join(pairs, "; ")
		}

		return errors.WithStack(domainerrors.NewRemoteCallError(resp.StatusCode, apiErr.Message, details))
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "failed to decode response body")
	}

	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
