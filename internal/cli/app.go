package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/config"
	"github.com/dmitrijs2005/taskflow/internal/cryptox"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/repositories/metadata"
	"github.com/dmitrijs2005/taskflow/internal/repositories/tasks"
	"github.com/dmitrijs2005/taskflow/internal/repositories/users"
	"github.com/dmitrijs2005/taskflow/internal/services"
	"github.com/dmitrijs2005/taskflow/internal/session"
	"github.com/dmitrijs2005/taskflow/internal/storage"
	"github.com/dmitrijs2005/taskflow/internal/timex"
	"github.com/dmitrijs2005/taskflow/internal/views"
)

// Screen is a task view the REPL can show.
type Screen string

const (
	ScreenDashboard Screen = "dashboard"
	ScreenToday     Screen = "today"
	ScreenUpcoming  Screen = "upcoming"
	ScreenCompleted Screen = "completed"
)

// taskScreen is what every page controller offers.
type taskScreen interface {
	Load(ctx context.Context) error
	All() []models.Task
	Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	ToggleComplete(ctx context.Context, id int64) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

// taskCreator is implemented by the pages that can add tasks.
type taskCreator interface {
	Create(ctx context.Context, in models.TaskInput) (*models.Task, error)
}

type App struct {
	logger logging.Logger
	clock  timex.Clock
	auth   services.AuthService

	dashboard *views.DashboardPage
	today     *views.TodayPage
	upcoming  *views.UpcomingPage
	completed *views.CompletedPage
	screen    Screen

	session *models.Session
	// lastEmail remembers the address of the latest signup for resend.
	lastEmail string

	reader  *bufio.Reader
	out     io.Writer
	closers []io.Closer
}

// NewApp opens the databases described by cfg and wires the services and
// page controllers. Call Close (or Run) to release the databases.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	a := &App{
		logger: logger,
		screen: ScreenDashboard,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	var clock timex.Clock = timex.SystemClock{}
	if !cfg.LatencyEnabled {
		clock = timex.NoLatency{Clock: clock}
	}
	a.clock = clock

	stateDB, err := storage.Open(ctx, cfg.StateDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}
	a.closers = append(a.closers, stateDB)

	tasksDB, err := storage.Open(ctx, cfg.TasksDSN)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("error initializing task database: %w", err)
	}
	a.closers = append(a.closers, tasksDB)

	if cfg.SeedTasks {
		if err := seedIfEmpty(ctx, tasks.NewSQLiteRepository(tasksDB, time.Local), clock.Now(), logger); err != nil {
			a.Close()
			return nil, err
		}
	}

	verifier, err := cryptox.NewVerifier(cfg.CredentialVerifier, cfg.MockPassword)
	if err != nil {
		a.Close()
		return nil, err
	}
	seedUsers, err := users.SeedUsers()
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := users.HashPasswords(seedUsers, verifier.Hash); err != nil {
		a.Close()
		return nil, err
	}

	store := session.NewStore(metadata.NewSQLiteRepository(stateDB), logger.With("component", "session"))
	a.auth = services.NewAuthService(users.NewMemoryRepository(seedUsers), store, verifier, clock, logger, services.AuthConfig{
		SecretKey:     []byte(cfg.SecretKey),
		TokenValidity: cfg.TokenValidity,
		Latency:       services.DefaultAuthLatency(),
	})

	taskSvc := services.NewTaskService(tasksDB, time.Local, clock, logger, services.DefaultTaskLatency)
	a.dashboard = views.NewDashboardPage(taskSvc, clock)
	a.today = views.NewTodayPage(taskSvc, clock)
	a.upcoming = views.NewUpcomingPage(taskSvc, clock)
	a.completed = views.NewCompletedPage(taskSvc, clock)

	return a, nil
}

// seedIfEmpty adds the sample tasks unless the collection already has some,
// so a file-backed task database is seeded once.
func seedIfEmpty(ctx context.Context, repo tasks.Repository, now time.Time, logger logging.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	n, err := tasks.Seed(ctx, repo, now)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "seeded sample tasks", "count", n)
	return nil
}

// Run restores a persisted session and runs the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to TaskFlow (type 'help' for commands)")
	if err := a.restoreSession(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
		fmt.Fprintln(a.out, "Error:", userMessage(err))
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close releases the databases.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) restoreSession(ctx context.Context) error {
	sess, err := a.auth.CheckAuth(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Fprintln(a.out, "You are not logged in. Type 'login' or 'signup'.")
		return nil
	}
	a.session = sess
	fmt.Fprintf(a.out, "Welcome back, %s!\n", sess.User.Name)
	return a.show(ctx, ScreenDashboard)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) status() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf(" (%s) %s", a.session.User.Email, a.screen)
}

func (a *App) page(s Screen) taskScreen {
	switch s {
	case ScreenToday:
		return a.today
	case ScreenUpcoming:
		return a.upcoming
	case ScreenCompleted:
		return a.completed
	default:
		return a.dashboard
	}
}

// show switches to screen s, reloads it and renders it.
func (a *App) show(ctx context.Context, s Screen) error {
	a.screen = s
	if err := a.page(s).Load(ctx); err != nil {
		return err
	}
	a.render()
	return nil
}

// render prints the current screen from the page's state without reloading.
func (a *App) render() {
	now := a.clock.Now()
	switch a.screen {
	case ScreenToday:
		renderToday(a.out, a.today, now)
	case ScreenUpcoming:
		renderUpcoming(a.out, a.upcoming, now)
	case ScreenCompleted:
		renderCompleted(a.out, a.completed, now)
	default:
		renderDashboard(a.out, a.dashboard, now)
	}
}
