package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/peerwallet/internal/client/client"
	"github.com/dmitrijs2005/peerwallet/internal/client/config"
	"github.com/dmitrijs2005/peerwallet/internal/client/exchange"
	"github.com/dmitrijs2005/peerwallet/internal/client/friends"
	"github.com/dmitrijs2005/peerwallet/internal/client/services"
	"github.com/dmitrijs2005/peerwallet/internal/client/session"
	"github.com/dmitrijs2005/peerwallet/internal/client/views"
	"github.com/dmitrijs2005/peerwallet/internal/filex"
	"github.com/dmitrijs2005/peerwallet/internal/logging"
)

const dbFileName = "wallet.db"

type App struct {
	config      *config.Config
	log         logging.Logger
	authService services.AuthService
	session     *session.Session
	view        *views.State
	rates       *exchange.RateTable
	friends     *friends.Directory
	reader      *bufio.Reader
	out         io.Writer

	// draft keeps the registration form between attempts; the password is
	// never kept.
	draft client.Registration
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewTextLogger(os.Stderr, c.LogLevel)

	rates, err := exchange.NewRateTable(c.Rates)
	if err != nil {
		return nil, fmt.Errorf("rates: %w", err)
	}

	path, err := filex.DataFile(c.DataDir, dbFileName)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, path)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", path, "error", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.ServerEndpointURL, c.RequestTimeout)
	sess := session.New()

	return &App{
		config:      c,
		log:         log,
		authService: services.NewAuthService(apiClient, db, sess, log.With("component", "auth")),
		session:     sess,
		view:        views.New(),
		rates:       rates,
		friends:     friends.NewDirectory(friends.Demo),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run restores a stored session and then serves the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	fmt.Fprintln(a.out, "P2P кошелёк (help: список команд)")
	a.bootstrap(ctx)
	if a.isLoggedIn() {
		a.Render()
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) bootstrap(ctx context.Context) {
	err := a.authService.Bootstrap(ctx)
	if err == nil || errors.Is(err, services.ErrStaleResult) {
		return
	}
	fmt.Fprintln(a.out, services.SessionMessage(err))
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) getStatus() string {
	switch a.session.State() {
	case session.StateLoading:
		return "(загрузка)"
	case session.StateAuthenticated:
		if u, ok := a.session.User(); ok {
			return fmt.Sprintf("(%s %s)", u.Handle(), a.view.Tab())
		}
	}
	return ""
}
