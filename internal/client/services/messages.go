package services

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/peerwallet/internal/client/client"
)

const (
	MsgSessionInvalid = "Сессия недействительна, войдите снова"
	MsgServerError    = "Ошибка сервера, попробуйте позже"
	MsgNotSignedIn    = "Вы не вошли в аккаунт"
)

// UserMessage turns an error from the auth flows into text for the screen.
// Server-side rejections with a message are shown verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status < http.StatusInternalServerError {
		return apiErr.Message
	}

	switch {
	case errors.Is(err, ErrNotSignedIn):
		return MsgNotSignedIn
	case errors.Is(err, client.ErrUnauthorized):
		return MsgSessionInvalid
	}
	return MsgServerError
}

// SessionMessage is UserMessage for calls made on behalf of an existing
// session: any 401 reads as an invalid session whatever the server said.
func SessionMessage(err error) string {
	if errors.Is(err, client.ErrUnauthorized) {
		return MsgSessionInvalid
	}
	return UserMessage(err)
}
