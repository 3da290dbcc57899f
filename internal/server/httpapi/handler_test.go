package httpapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/peerwallet/internal/common"
	"github.com/dmitrijs2005/peerwallet/internal/logging"
	"github.com/dmitrijs2005/peerwallet/internal/server/httpapi/mocks"
	"github.com/dmitrijs2005/peerwallet/internal/server/models"
	"github.com/dmitrijs2005/peerwallet/internal/server/services"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestServer(t *testing.T, svc AuthService, limiter *IPRateLimiter) *httptest.Server {
	t.Helper()
	if limiter == nil {
		limiter = NewIPRateLimiter(rate.Inf, 1)
	}
	log := logging.NewTextLogger(io.Discard, "error")
	ts := httptest.NewServer(NewRouter(NewHandler(svc, log), limiter, []string{"*"}, log))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body, token string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthTokenHeaderName, token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

var testUser = &models.User{ID: 7, Name: "Мария Лебедева", Username: "mlebed", Email: "m@x.ru", Avatar: "МЛ"}

func TestServeAction_Gomock(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		token      string
		setup      func(m *mocks.MockAuthService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "register ok",
			path: "/auth",
			body: `{"action":"register","name":"Мария Лебедева","username":"mlebed","email":"m@x.ru","password":"secret1"}`,
			setup: func(m *mocks.MockAuthService) {
				m.EXPECT().Register(gomock.Any(), services.RegisterInput{
					Name: "Мария Лебедева", Username: "mlebed", Email: "m@x.ru", Password: "secret1",
				}).Return(&services.AuthResult{Token: "tok", User: testUser}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"token":"tok","user":{"id":7,"name":"Мария Лебедева","username":"mlebed","email":"m@x.ru","avatar":"МЛ","verified":false}}`,
		},
		{
			name: "register validation message is verbatim",
			path: "/",
			body: `{"action":"register","password":"12345"}`,
			setup: func(m *mocks.MockAuthService) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(nil, &services.ValidationError{Message: services.MsgPasswordTooShort})
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Пароль минимум 6 символов"}`,
		},
		{
			name: "register conflict",
			path: "/",
			body: `{"action":"register"}`,
			setup: func(m *mocks.MockAuthService) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, common.ErrorAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"Email или username уже занят"}`,
		},
		{
			name: "login bad credentials",
			path: "/auth",
			body: `{"action":"login","email":"m@x.ru","password":"nope"}`,
			setup: func(m *mocks.MockAuthService) {
				m.EXPECT().Login(gomock.Any(), "m@x.ru", "nope").Return(nil, services.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Неверный email или пароль"}`,
		},
		{
			name:  "me reads the token header",
			path:  "/auth",
			body:  `{"action":"me"}`,
			token: "tok",
			setup: func(m *mocks.MockAuthService) {
				from, to := int64(7), int64(9)
				m.EXPECT().Me(gomock.Any(), "tok").Return(&services.Profile{
					User: testUser,
					Wallets: []models.Wallet{
						{Currency: "RUB", Balance: decimal.NewFromInt(142500)},
						{Currency: "BTC", Balance: decimal.RequireFromString("0.015")},
					},
					Transactions: []models.Transaction{{
						ID: 3, Type: models.TypeTransfer, Currency: "RUB", Amount: decimal.RequireFromString("1500.5"),
						Status: "completed", FromUserID: &from, ToUserID: &to, FromName: "Мария Лебедева", ToName: "Денис Ковалёв",
						CreatedAt: time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC),
					}},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: `{"user":{"id":7,"name":"Мария Лебедева","username":"mlebed","email":"m@x.ru","avatar":"МЛ","verified":false},` +
				`"wallets":{"BTC":0.015,"RUB":142500},` +
				`"transactions":[{"id":3,"type":"out","currency":"RUB","amount":1500.5,"status":"completed","date":"01 Mar, 09:05","from_name":"Мария Лебедева","to_name":"Денис Ковалёв"}]}`,
		},
		{
			name: "me unauthorized",
			path: "/auth",
			body: `{"action":"me"}`,
			setup: func(m *mocks.MockAuthService) {
				m.EXPECT().Me(gomock.Any(), "").Return(nil, common.ErrorUnauthorized)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Не авторизован"}`,
		},
		{
			name:  "logout",
			path:  "/auth",
			body:  `{"action":"logout"}`,
			token: "tok",
			setup: func(m *mocks.MockAuthService) {
				m.EXPECT().Logout(gomock.Any(), "tok").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
		},
		{
			name: "internal error is hidden",
			path: "/auth",
			body: `{"action":"login"}`,
			setup: func(m *mocks.MockAuthService) {
				m.EXPECT().Login(gomock.Any(), "", "").Return(nil, errors.New("pq: connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Ошибка сервера"}`,
		},
		{
			name:       "unknown action",
			path:       "/auth",
			body:       `{"action":"transfer"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Неизвестное действие"}`,
		},
		{
			name:       "empty body is an unknown action",
			path:       "/auth",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Неизвестное действие"}`,
		},
		{
			name:       "malformed json",
			path:       "/auth",
			body:       `{"action":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Некорректный запрос"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockAuthService(ctrl)
			if tt.setup != nil {
				tt.setup(svc)
			}
			ts := newTestServer(t, svc, nil)

			resp, body := post(t, ts, tt.path, tt.body, tt.token)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, body)
		})
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, mocks.NewMockAuthService(gomock.NewController(t)), nil)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflightAllowsTokenHeader(t *testing.T) {
	ts := newTestServer(t, mocks.NewMockAuthService(gomock.NewController(t)), nil)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/auth", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://wallet.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type,x-auth-token")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "x-auth-token")
}

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthService(ctrl)
	svc.EXPECT().Logout(gomock.Any(), "").Return(nil).Times(2)

	ts := newTestServer(t, svc, NewIPRateLimiter(rate.Every(time.Hour), 2))

	for i := 0; i < 2; i++ {
		resp, _ := post(t, ts, "/auth", `{"action":"logout"}`, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, body := post(t, ts, "/auth", `{"action":"logout"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, body, MsgTooManyRequests)
}
