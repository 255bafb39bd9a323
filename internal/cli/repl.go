package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskflow/internal/common"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
	Resend(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Settings(ctx context.Context) error

	Dashboard(ctx context.Context) error
	Today(ctx context.Context) error
	Upcoming(ctx context.Context) error
	Completed(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: login, signup, verify [token], resend, forgot, reset [token], help, exit"
	helpSignedIn  = "Available commands: dashboard, today, upcoming, completed [all|today|yesterday|week|month], " +
		"filter <all|active|completed> [all|low|medium|high], add, edit <id>, done <id>, rm <id>, " +
		"whoami, settings, logout, projects, teams, calendar, help, exit"
)

// signedInOnly lists the commands that need an authenticated session.
var signedInOnly = map[string]bool{
	"whoami": true, "settings": true, "logout": true,
	"dashboard": true, "today": true, "upcoming": true, "completed": true,
	"filter": true, "add": true, "edit": true, "done": true, "rm": true,
	"projects": true, "teams": true, "calendar": true,
}

// runREPL starts a read–eval–print loop for the TaskFlow CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on a. The loop exits on EOF, as soon as ctx is done
// (even while waiting for input), or when the user types "exit" or "quit".
//
// Prompts, notices and errors go to out. Errors returned by command handlers
// are printed as a one-line notification and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	say := func(args ...any) { fmt.Fprintln(out, args...) }

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "taskflow%s> ", statusFn())
		line, err := readLineContext(ctx, reader)
		if err != nil {
			say()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if signedInOnly[cmd] && !a.isLoggedIn() {
			say("Please log in first (type 'login' or 'signup').")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				say(helpSignedIn)
			} else {
				say(helpAnonymous)
			}

		case "login":
			err = a.Login(ctx)
		case "signup", "register":
			err = a.Signup(ctx)
		case "verify":
			err = a.Verify(ctx, args)
		case "resend":
			err = a.Resend(ctx)
		case "forgot":
			err = a.Forgot(ctx)
		case "reset":
			err = a.Reset(ctx, args)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "settings", "prefs":
			err = a.Settings(ctx)

		case "dashboard", "home":
			err = a.Dashboard(ctx)
		case "today":
			err = a.Today(ctx)
		case "upcoming":
			err = a.Upcoming(ctx)
		case "completed":
			err = a.Completed(ctx, args)
		case "filter":
			err = a.Filter(ctx, args)
		case "add":
			err = a.Add(ctx)
		case "edit":
			err = a.Edit(ctx, args)
		case "done":
			err = a.Done(ctx, args)
		case "rm", "delete":
			err = a.Remove(ctx, args)

		case "projects", "teams", "calendar":
			say(capitalize(cmd) + " coming soon.")

		case "exit", "quit":
			say("Bye!")
			return

		default:
			say("Unknown command:", cmd, "(type 'help' for commands)")
		}

		if err != nil {
			say("Error:", userMessage(err))
		}
	}
}

type lineResult struct {
	line string
	err  error
}

// readLineContext is readLine that gives up when ctx is done. The abandoned
// read stays blocked until input arrives or the reader is closed.
func readLineContext(ctx context.Context, reader *bufio.Reader) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := readLine(reader)
		ch <- lineResult{line: line, err: err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// domainErrors are the failures whose text is fit to show as is.
var domainErrors = []error{
	common.ErrNotFound,
	common.ErrInvalidCredentials,
	common.ErrEmailNotVerified,
	common.ErrEmailTaken,
	common.ErrAlreadyVerified,
	common.ErrInvalidToken,
}

// userMessage turns an error into a one-line notification.
func userMessage(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "Request cancelled"
	}
	if errors.Is(err, common.ErrValidation) {
		prefix := common.ErrValidation.Error() + ": "
		lines := strings.Split(err.Error(), "\n")
		for i, l := range lines {
			lines[i] = strings.TrimPrefix(l, prefix)
		}
		return strings.Join(lines, "; ")
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return capitalize(err.Error())
		}
	}
	return "Something went wrong: " + err.Error()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
