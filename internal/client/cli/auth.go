package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/peerwallet/internal/client/client"
	"github.com/dmitrijs2005/peerwallet/internal/client/services"
	"github.com/dmitrijs2005/peerwallet/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// ask prompts with def shown; an empty answer keeps def.
func (a *App) ask(prompt, def string) (string, error) {
	v, err := getSimpleText(a.reader, withDefault(prompt, def), a.out)
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

func (a *App) readPassword() (string, error) {
	pw, err := getPassword(a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register fills the registration form and submits it. On failure the form
// fields other than the password are kept for the next attempt.
func (a *App) Register(ctx context.Context) error {
	var err error
	d := a.draft

	if d.Name, err = a.ask("Имя", d.Name); err != nil {
		return err
	}
	if d.Username, err = a.ask("Username", d.Username); err != nil {
		return err
	}
	if d.Email, err = a.ask("Email", d.Email); err != nil {
		return err
	}
	a.draft = d

	if d.Password, err = a.readPassword(); err != nil {
		return err
	}

	if err := a.authService.Register(ctx, d); err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return err
	}

	a.draft = client.Registration{}
	a.view.Reset()
	a.greet()
	a.Render()
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Email", a.draft.Email)
	if err != nil {
		return err
	}
	a.draft.Email = email

	password, err := a.readPassword()
	if err != nil {
		return err
	}

	if err := a.authService.Login(ctx, email, password); err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return err
	}

	a.draft = client.Registration{}
	a.view.Reset()
	a.greet()
	a.Render()
	return nil
}

func (a *App) greet() {
	if u, ok := a.session.User(); ok {
		fmt.Fprintf(a.out, "Добро пожаловать, %s!\n", u.FirstName())
	}
}

// Logout always ends the local session.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.view.Reset()
	a.draft = client.Registration{}
	if err != nil {
		a.log.Error(ctx, "logout cleanup failed", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "Вы вышли из аккаунта")
	return nil
}

// Refresh reloads the profile. A rejected token signs the user out.
func (a *App) Refresh(ctx context.Context) error {
	err := a.authService.Refresh(ctx)
	switch {
	case err == nil:
		a.Render()
		return nil
	case errors.Is(err, client.ErrUnauthorized):
		a.view.Reset()
	case errors.Is(err, services.ErrStaleResult):
		return nil
	}
	fmt.Fprintln(a.out, services.SessionMessage(err))
	return err
}
