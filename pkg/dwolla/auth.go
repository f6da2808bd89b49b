package dwolla

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// Authenticator exchanges client credentials for a Token.
type Authenticator interface {
	RequestToken(ctx context.Context, params url.Values) (*Token, error)
}

// AuthResponse is the token endpoint reply.
type AuthResponse struct {
	AccessToken      string
	ExpiresIn        int
	TokenType        string
	Error            string
	ErrorDescription string
	ErrorURI         string
}

// authWire mirrors the snake_case JSON of the token endpoint.
type authWire struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int    `json:"expires_in"`
	TokenType        string `json:"token_type"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	ErrorURI         string `json:"error_uri"`
}

func (w authWire) response() AuthResponse {
	return AuthResponse{
		AccessToken:      w.AccessToken,
		ExpiresIn:        w.ExpiresIn,
		TokenType:        w.TokenType,
		Error:            w.Error,
		ErrorDescription: w.ErrorDescription,
		ErrorURI:         w.ErrorURI,
	}
}

// Auth performs the OAuth2 client credentials grant for a Client.
type Auth struct {
	client *Client
}

// RequestToken posts the client credentials to the token endpoint. Extra
// params are merged over the defaults. One call, no retries.
func (a *Auth) RequestToken(ctx context.Context, params url.Values) (*Token, error) {
	c := a.client

	form := url.Values{}
	form.Set("client_id", c.clientID())
	form.Set("client_secret", c.opts.Secret)
	form.Set("grant_type", "client_credentials")
	for key, values := range params {
		form[key] = values
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.env.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := readBody(resp.Body, c.maxResponseBytes)
	if err != nil {
		return nil, err
	}

	var wire authWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &ResponseError{Status: resp.StatusCode, Headers: resp.Header, Body: string(data)}
	}
	res := wire.response()

	if res.Error != "" {
		c.logger.DebugContext(ctx, "token request rejected",
			slog.String("error", res.Error),
			slog.Int("status", resp.StatusCode),
		)
		return nil, &AuthError{Err: res.Error, Description: res.ErrorDescription, URI: res.ErrorURI}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var body any
		_ = json.Unmarshal(data, &body)
		return nil, &ResponseError{Status: resp.StatusCode, Headers: resp.Header, Body: body}
	}

	c.logger.DebugContext(ctx, "token issued", slog.Int("expires_in", res.ExpiresIn))
	return NewToken(c, TokenState{
		AccessToken: res.AccessToken,
		ExpiresIn:   res.ExpiresIn,
		TokenType:   res.TokenType,
	}), nil
}
