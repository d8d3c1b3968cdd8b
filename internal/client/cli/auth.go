package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/nexuspost/internal/client/services"
	"github.com/dmitrijs2005/nexuspost/internal/client/session"
	"github.com/dmitrijs2005/nexuspost/internal/shared"
)

// Register prompts for a name, an email and a password and creates the
// account. The backend logs the new user in right away, so a successful
// register lands on the dashboard.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	out, err := a.auth.Register(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	a.loggedIn(out)
	fmt.Fprintln(a.out, "Registration successful!")
	return nil
}

// Login prompts for credentials and authenticates. On failure the route
// stays login and the error is returned for the REPL to print.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	out, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.loggedIn(out)
	fmt.Fprintln(a.out, "Login successful!")
	if out.Warning != "" {
		fmt.Fprintln(a.out, warnStyle.Render(out.Warning))
	}
	if out.KeysRestored {
		fmt.Fprintln(a.out, "Your stored API keys were found. Run 'keys' to activate them.")
	}
	return nil
}

func (a *App) loggedIn(out *services.LoginOutcome) {
	// drop anything left over from a previous account
	a.gen.Reset()
	a.history.Reset()

	a.userName = ""
	if out != nil && out.User != nil {
		a.userName = out.User.Name
	}
	a.navigate(RouteDashboard)
}

// Logout clears the cached session and both provider keys, drops the
// in-memory result and history, and returns to the login route.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.gen.Reset()
	a.history.Reset()
	a.userName = ""
	a.navigate(RouteLogin)
	fmt.Fprintln(a.out, "Logged out successfully")
	return nil
}

// Status prints who is logged in, the current route, the generator state
// and when the token expires.
func (a *App) Status(ctx context.Context) error {
	sess, err := a.auth.Session(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, labelStyle.Render("Route:"), a.route)
	if !sess.Authenticated() {
		fmt.Fprintln(a.out, labelStyle.Render("Session:"), "not logged in")
		return nil
	}

	if sess.User != nil {
		fmt.Fprintln(a.out, labelStyle.Render("User:"), fmt.Sprintf("%s <%s>", sess.User.Name, sess.User.Email))
	}
	fmt.Fprintln(a.out, labelStyle.Render("Generator:"), a.gen.State())

	claims, err := session.TokenClaims(sess.Token)
	switch {
	case err != nil:
		fmt.Fprintln(a.out, labelStyle.Render("Token:"), "opaque")
	case !claims.HasExpiry():
		fmt.Fprintln(a.out, labelStyle.Render("Token:"), "no expiry")
	case claims.Expired(time.Now()):
		fmt.Fprintln(a.out, labelStyle.Render("Token:"), "expired at", claims.ExpiresAt.Local().Format(time.DateTime))
	default:
		fmt.Fprintln(a.out, labelStyle.Render("Token:"), "valid until", claims.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}
