package services

import "errors"

// Messages shown to wallet users. They are sent verbatim in error replies.
const (
	MsgFillAllFields      = "Заполните все поля"
	MsgPasswordTooShort   = "Пароль минимум 6 символов"
	MsgAlreadyTaken       = "Email или username уже занят"
	MsgInvalidCredentials = "Неверный email или пароль"
	MsgUnauthorized       = "Не авторизован"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries a user-facing message for a rejected request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }
