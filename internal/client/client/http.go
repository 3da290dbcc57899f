package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/peerwallet/internal/client/models"
	"github.com/dmitrijs2005/peerwallet/internal/common"
	"github.com/dmitrijs2005/peerwallet/internal/netx"
)

type HTTPClient struct {
	endpointURL string
	timeout     time.Duration
	http        *http.Client
}

func NewHTTPClient(endpointURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpointURL: endpointURL,
		timeout:     timeout,
		http:        &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Call(ctx context.Context, action Action, payload map[string]any, token string) (json.RawMessage, int, error) {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["action"] = string(action)

	var headers map[string]string
	if token != "" {
		headers = map[string]string{common.AuthTokenHeaderName: token}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	status, raw, err := netx.PostJSON(ctx, c.http, c.endpointURL, headers, body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %v", ErrUnavailable, action, err)
	}

	data, err := normalizeBody(raw)
	if err != nil {
		// the status decides; an unreadable error body is just an empty message
		if status != http.StatusOK {
			return nil, status, nil
		}
		return nil, status, err
	}
	return data, status, nil
}

// checkStatus turns a non-200 reply into *APIError.
func checkStatus(status int, body json.RawMessage) error {
	if status == http.StatusOK {
		return nil
	}
	var er errorResponse
	_ = json.Unmarshal(body, &er)
	return &APIError{Status: status, Message: er.Error}
}

func (c *HTTPClient) authenticate(ctx context.Context, action Action, payload map[string]any) (string, models.User, error) {
	body, status, err := c.Call(ctx, action, payload, "")
	if err != nil {
		return "", models.User{}, err
	}
	if err := checkStatus(status, body); err != nil {
		return "", models.User{}, err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", models.User{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if resp.Token == "" || resp.User == nil {
		return "", models.User{}, fmt.Errorf("%w: %s reply without token or user", ErrBadResponse, action)
	}
	return resp.Token, *resp.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, models.User, error) {
	return c.authenticate(ctx, ActionLogin, map[string]any{
		"email":    email,
		"password": password,
	})
}

func (c *HTTPClient) Register(ctx context.Context, r Registration) (string, models.User, error) {
	return c.authenticate(ctx, ActionRegister, map[string]any{
		"name":     r.Name,
		"username": r.Username,
		"email":    r.Email,
		"password": r.Password,
	})
}

func (c *HTTPClient) Me(ctx context.Context, token string) (models.Profile, error) {
	body, status, err := c.Call(ctx, ActionMe, nil, token)
	if err != nil {
		return models.Profile{}, err
	}
	if err := checkStatus(status, body); err != nil {
		return models.Profile{}, err
	}

	var resp meResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if resp.User == nil {
		return models.Profile{}, fmt.Errorf("%w: me reply without user", ErrBadResponse)
	}

	balances, err := models.NewBalances(resp.Wallets)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	txs := resp.Transactions
	if txs == nil {
		txs = []models.Transaction{}
	}

	return models.Profile{User: *resp.User, Balances: balances, Transactions: txs}, nil
}

// Logout ignores the reply body; only the status matters.
func (c *HTTPClient) Logout(ctx context.Context, token string) error {
	body, status, err := c.Call(ctx, ActionLogout, nil, token)
	if err != nil {
		if status == http.StatusOK && errors.Is(err, ErrBadResponse) {
			return nil
		}
		return err
	}
	return checkStatus(status, body)
}
