package fpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/samber/lo"
)

// LoginResult classifies the outcome of a login attempt.
type LoginResult string

const (
	LoginOK              LoginResult = "OK"
	LoginInvalidUser     LoginResult = "INVALID_USER"
	LoginInvalidPassword LoginResult = "INVALID_PASSWORD"
	LoginFailure         LoginResult = "FAILURE"
)

// Upstream message codes returned with HTTP 401.
const (
	messageCodeInvalidUser     = "INVALID_USER"
	messageCodeInvalidPassword = "INVALID_PASSWORD"
)

const statusCategoryOpen = "OPEN"

// Login authenticates the session with basic auth. The session cookie lands
// in the client's jar and authorizes all subsequent calls.
func (c *Client) Login(ctx context.Context) (LoginResult, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/resources/login", nil)
	if err != nil {
		return LoginFailure, fmt.Errorf("creating login request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	status, body, err := c.do(ctx, req)
	if err != nil {
		return LoginFailure, fmt.Errorf("login request: %w", err)
	}

	switch status {
	case http.StatusOK:
		return LoginOK, nil
	case http.StatusUnauthorized:
		var resp loginResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return LoginFailure, nil
		}
		switch resp.MessageCode {
		case messageCodeInvalidUser:
			return LoginInvalidUser, nil
		case messageCodeInvalidPassword:
			return LoginInvalidPassword, nil
		}
	}
	return LoginFailure, nil
}

// Logout ends the session. Failures are logged only; the session expires
// upstream regardless.
func (c *Client) Logout(ctx context.Context) {
	slog.Info("logging out")
	if _, err := c.get(ctx, "/api/resources/logout"); err != nil {
		var statusErr *StatusError
		if !errors.As(err, &statusErr) {
			slog.Error("logout failed", "error", err)
		}
	}
}

// OpenAccounts returns the account numbers with an OPEN status category.
func (c *Client) OpenAccounts(ctx context.Context) ([]string, error) {
	var resp headerResponse
	if err := c.getJSON(ctx, "/api/resources/header", &resp); err != nil {
		return nil, fmt.Errorf("fetching account header: %w", err)
	}

	open := lo.Filter(resp.Data.Accounts.Data.Data, func(a headerAccount, _ int) bool {
		return a.StatusCategory == statusCategoryOpen
	})
	return lo.Map(open, func(a headerAccount, _ int) string {
		return a.AccountNumber
	}), nil
}
