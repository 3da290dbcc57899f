// Package httpapi serves the wallet's single auth endpoint. Every request is
// a JSON POST whose "action" field selects register, login, me or logout;
// the session token travels in the X-Auth-Token header.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/peerwallet/internal/common"
	"github.com/dmitrijs2005/peerwallet/internal/logging"
	"github.com/dmitrijs2005/peerwallet/internal/server/services"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks . AuthService

// AuthService is the business logic behind the endpoint.
type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Me(ctx context.Context, token string) (*services.Profile, error)
	Logout(ctx context.Context, token string) error
}

const (
	requestTimeout = 10 * time.Second
	maxBodyBytes   = 64 << 10

	MsgBadRequest    = "Некорректный запрос"
	MsgUnknownAction = "Неизвестное действие"
	MsgServerError   = "Ошибка сервера"
)

type Handler struct {
	svc AuthService
	log logging.Logger
}

func NewHandler(svc AuthService, log logging.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// decodeRequest reads the body as an action request. An empty body is an
// empty object.
func decodeRequest(r *http.Request, w http.ResponseWriter) (actionRequest, error) {
	var req actionRequest

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return req, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return req, nil
	}
	err = json.Unmarshal(body, &req)
	return req, err
}

// ServeAction dispatches on the request's action field.
func (h *Handler) ServeAction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	req, err := decodeRequest(r, w)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}
	token := r.Header.Get(common.AuthTokenHeaderName)

	switch req.Action {
	case "register":
		res, err := h.svc.Register(ctx, services.RegisterInput{
			Name: req.Name, Username: req.Username, Email: req.Email, Password: req.Password,
		})
		if err != nil {
			h.fail(ctx, w, req.Action, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Token: res.Token, User: newUserDTO(res.User)})

	case "login":
		res, err := h.svc.Login(ctx, req.Email, req.Password)
		if err != nil {
			h.fail(ctx, w, req.Action, err)
			return
		}
		writeJSON(w, http.StatusOK, authResponse{Token: res.Token, User: newUserDTO(res.User)})

	case "me":
		p, err := h.svc.Me(ctx, token)
		if err != nil {
			h.fail(ctx, w, req.Action, err)
			return
		}
		writeJSON(w, http.StatusOK, newMeResponse(p))

	case "logout":
		if err := h.svc.Logout(ctx, token); err != nil {
			h.fail(ctx, w, req.Action, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})

	default:
		writeError(w, http.StatusBadRequest, MsgUnknownAction)
	}
}

// fail maps service errors to status codes and user-facing messages.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, action string, err error) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, services.MsgAlreadyTaken)
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, services.MsgInvalidCredentials)
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, services.MsgUnauthorized)
	default:
		h.log.Error(ctx, "action failed", "action", action, "error", err)
		writeError(w, http.StatusInternalServerError, MsgServerError)
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
