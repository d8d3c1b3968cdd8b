package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/nexuspost/internal/client/client"
	"github.com/dmitrijs2005/nexuspost/internal/client/config"
	"github.com/dmitrijs2005/nexuspost/internal/client/models"
	"github.com/dmitrijs2005/nexuspost/internal/client/services"
	"github.com/dmitrijs2005/nexuspost/internal/client/session"
	"github.com/dmitrijs2005/nexuspost/internal/logging"
)

type Route string

const (
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
	RouteHistory   Route = "history"
)

// authFlow is the part of services.AuthService the CLI drives.
type authFlow interface {
	Login(ctx context.Context, email, password string) (*services.LoginOutcome, error)
	Register(ctx context.Context, name, email, password string) (*services.LoginOutcome, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (models.Session, error)
}

type generationFlow interface {
	State() services.GenerationState
	Result() *models.GenerationResult
	PrefillKeys(ctx context.Context) (models.ProviderKeys, error)
	Initialize(ctx context.Context, keys models.ProviderKeys) error
	Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error)
	Reset()
}

type historyFlow interface {
	Load(ctx context.Context) ([]models.HistoryPost, error)
	Posts() []models.HistoryPost
	Find(rawID string) (models.HistoryPost, bool)
	Delete(ctx context.Context, rawID string) error
	Reset()
}

type App struct {
	auth    authFlow
	gen     generationFlow
	history historyFlow

	db      *sql.DB
	http    *http.Client
	baseURL string
	log     logging.Logger

	reader   *bufio.Reader
	out      io.Writer
	route    Route
	userName string
}

// NewApp opens the session store at c.SessionDBPath and builds the services
// on top of an HTTP client for c.ServerBaseURL.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	store, db, err := session.Open(ctx, c.SessionDBPath)
	if err != nil {
		log.Error(ctx, "error initializing session store", "path", c.SessionDBPath, "error", err)
		return nil, err
	}

	httpClient := &http.Client{}
	api := client.NewHTTPClient(c.ServerBaseURL, store, httpClient, log)

	a := newApp(
		services.NewAuthService(api, store, log),
		services.NewGenerationService(api, store, log),
		services.NewHistoryService(api, log),
		log,
	)
	a.db = db
	a.http = httpClient
	a.baseURL = c.ServerBaseURL
	return a, nil
}

func newApp(auth authFlow, gen generationFlow, history historyFlow, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		auth:    auth,
		gen:     gen,
		history: history,
		http:    http.DefaultClient,
		log:     log.With("component", "cli"),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		route:   RouteLogin,
	}
}

// Run starts on the dashboard when a session is cached, otherwise on the
// login route, and serves the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	if a.db != nil {
		defer a.db.Close()
	}

	fmt.Fprintln(a.out, "Welcome to NexusPost CLI (type 'help' for commands)")

	if sess, err := a.auth.Session(ctx); err == nil && sess.Authenticated() {
		if sess.User != nil {
			a.userName = sess.User.Name
		}
		a.navigate(RouteDashboard)
		fmt.Fprintln(a.out, "Session restored.")
	} else {
		if err != nil {
			a.log.Warn(ctx, "could not read cached session", "error", err)
		}
		a.navigate(RouteLogin)
		fmt.Fprintln(a.out, "Please login or register to continue.")
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	sess, err := a.auth.Session(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not read cached session", "error", err)
		return false
	}
	return sess.Authenticated()
}

func (a *App) currentRoute() Route {
	return a.route
}

func (a *App) navigate(r Route) {
	if r != "" && a.route != r {
		a.log.Debug(context.Background(), "route changed", "from", a.route, "to", r)
		a.route = r
	}
}

// redirectToLogin is the private-route guard's fallback.
func (a *App) redirectToLogin() {
	fmt.Fprintln(a.out, "Please login to continue")
	a.navigate(RouteLogin)
}

func (a *App) getStatus() string {
	s := string(a.route)
	if a.userName != "" {
		s = a.userName + " " + s
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
