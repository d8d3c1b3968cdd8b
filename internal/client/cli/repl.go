package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/nexuspost/internal/client/client"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	currentRoute() Route
	navigate(r Route)
	redirectToLogin()

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error

	Keys(ctx context.Context) error
	Generate(ctx context.Context) error
	ShowResult(ctx context.Context) error
	Copy(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error

	History(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

// privateCommands maps the guarded commands to the route they belong to.
// An empty route leaves the current route unchanged.
var privateCommands = map[string]Route{
	"keys":     RouteDashboard,
	"generate": RouteDashboard,
	"result":   RouteDashboard,
	"download": RouteDashboard,
	"copy":     "",
	"history":  RouteHistory,
	"show":     RouteHistory,
	"delete":   RouteHistory,
	"export":   RouteHistory,
}

// runREPL starts a simple read–eval–print loop for the NexusPost CLI.
//
// It reads a line from in, parses the first token as the command and the
// rest as its arguments, and dispatches to methods on 'a'. The loop exits on
// EOF, when ctx is cancelled (e.g. on SIGINT) or when the user types "exit"
// or "quit". Prompts, notifications and command output all go to out.
//
// Prompt & Commands
//
//	Always:
//	  - help               show available commands
//	  - register           create an account
//	  - login              authenticate
//	  - status             session, route and generator state
//	  - exit | quit        leave the program
//
//	Logged in:
//	  - keys               initialize the provider API keys
//	  - generate           fill in the post form and generate
//	  - result             show the last generated post
//	  - copy [id]          copy the result, or a history post, to the clipboard
//	  - download [dir]     save the result images
//	  - history            list earlier posts, newest first
//	  - show <id>          show one post
//	  - delete <id>        delete one post
//	  - export <file>      write the history as .json or .yaml
//	  - logout             log out
//
// Errors returned by command handlers are printed as notifications and never
// end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	say := func(args ...any) { fmt.Fprintln(out, args...) }

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "nexuspost %s> ", statusFn())

		line, err := readLine(ctx, in)
		if ctx.Err() != nil {
			say()
			return
		}
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if route, ok := privateCommands[cmd]; ok {
			if !a.isLoggedIn(ctx) {
				a.redirectToLogin()
				continue
			}
			a.navigate(route)
		}

		switch cmd {
		case "help":
			say(helpText(a.isLoggedIn(ctx)))

		case "register":
			report(out, a, a.Register(ctx))

		case "login":
			report(out, a, a.Login(ctx))

		case "logout":
			report(out, a, a.Logout(ctx))

		case "status":
			report(out, a, a.Status(ctx))

		case "keys":
			report(out, a, a.Keys(ctx))

		case "generate":
			report(out, a, a.Generate(ctx))

		case "result":
			report(out, a, a.ShowResult(ctx))

		case "copy":
			report(out, a, a.Copy(ctx, args))

		case "download":
			report(out, a, a.Download(ctx, args))

		case "history":
			report(out, a, a.History(ctx))

		case "show":
			report(out, a, a.Show(ctx, args))

		case "delete":
			report(out, a, a.Delete(ctx, args))

		case "export":
			report(out, a, a.Export(ctx, args))

		case "exit", "quit":
			say("Bye!")
			return

		default:
			say("Unknown command:", cmd)
		}
	}
}

// report prints err as a notification. A missing token sends the user back
// to the login route.
func report(out io.Writer, a execIface, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(out, userMessage(err))
	if errors.Is(err, client.ErrNoToken) && a.currentRoute() != RouteLogin {
		a.navigate(RouteLogin)
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line from in, giving up when ctx is cancelled. The read
// is left behind only on cancellation, after which the REPL stops reading.
func readLine(ctx context.Context, in *bufio.Reader) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := in.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

func helpText(loggedIn bool) string {
	if loggedIn {
		return "Available commands: keys, generate, result, copy [id], download [dir], history, show <id>, delete <id>, export <file>, status, logout, exit"
	}
	return "Available commands: register, login, status, exit"
}
