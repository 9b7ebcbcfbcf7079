package authtoken

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/centerplus/centerplus-landing/gateway/internal/logger"
)

// Authenticator exchanges credentials for a bearer token at the tenant
// auth endpoint and persists whatever it finds in the Store.
type Authenticator struct {
	endpoint   string
	httpClient *http.Client
	store      *Store
	log        *logger.Logger
}

// NewAuthenticator builds an Authenticator. baseURL is the auth API root;
// the login path is fixed at /auth/login.
func NewAuthenticator(baseURL string, httpClient *http.Client, store *Store, log *logger.Logger) *Authenticator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Authenticator{
		endpoint:   baseURL + "/auth/login",
		httpClient: httpClient,
		store:      store,
		log:        log,
	}
}

// LoginResult carries the raw login response plus what was extracted from it.
type LoginResult struct {
	// Body is the verbatim response body.
	Body json.RawMessage
	// Authenticated is true when a token was found and persisted. A 2xx
	// response without a recognizable token leaves the client
	// unauthenticated; see the token-shape note in loginResponseTokens.
	Authenticated bool
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login posts credentials and persists the token found in the response.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("authtoken: marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("authtoken: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối %s: %w", a.endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("authtoken: read login response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(respBody, &errBody)
		switch {
		case errBody.Message != "":
			return nil, fmt.Errorf("đăng nhập thất bại: %s", errBody.Message)
		case errBody.Error != "":
			return nil, fmt.Errorf("đăng nhập thất bại: %s", errBody.Error)
		}
		return nil, fmt.Errorf("đăng nhập thất bại: HTTP %d", resp.StatusCode)
	}

	result := &LoginResult{Body: respBody}

	token, refresh := loginResponseTokens(respBody)
	if token == "" {
		a.log.Warn("login succeeded but no token field found in response")
		return result, nil
	}
	if err := a.store.Save(token); err != nil {
		return nil, err
	}
	if refresh != "" {
		_ = a.store.SaveRefresh(refresh)
	}
	result.Authenticated = true
	return result, nil
}

// AutoLogin logs in with deployment-provided credentials unless a token is
// already stored. Failure is reported, not fatal.
func (a *Authenticator) AutoLogin(ctx context.Context, username, password string) bool {
	if a.store.IsAuthenticated() {
		return true
	}
	if username == "" || password == "" {
		return false
	}
	result, err := a.Login(ctx, username, password)
	if err != nil {
		a.log.Warn("auto login failed", "error", err)
		return false
	}
	return result.Authenticated
}

// loginResponseTokens extracts the access and refresh tokens from a login
// response. The backend has no documented contract for where the token
// nests, so several key names are tried in a fixed priority order:
// token, accessToken, access_token, then the same keys one level under data.
func loginResponseTokens(body []byte) (token, refresh string) {
	var envelope struct {
		Token        string `json:"token"`
		AccessToken  string `json:"accessToken"`
		AccessToken2 string `json:"access_token"`
		RefreshToken string `json:"refreshToken"`
		Refresh2     string `json:"refresh_token"`
		Data         struct {
			Token        string `json:"token"`
			AccessToken  string `json:"accessToken"`
			AccessToken2 string `json:"access_token"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		return "", ""
	}

	for _, candidate := range []string{
		envelope.Token,
		envelope.AccessToken,
		envelope.AccessToken2,
		envelope.Data.Token,
		envelope.Data.AccessToken,
		envelope.Data.AccessToken2,
	} {
		if candidate != "" {
			token = candidate
			break
		}
	}
	for _, candidate := range []string{
		envelope.RefreshToken,
		envelope.Refresh2,
		envelope.Data.RefreshToken,
	} {
		if candidate != "" {
			refresh = candidate
			break
		}
	}
	return token, refresh
}
