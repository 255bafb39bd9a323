package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/config"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StateDSN = ":memory:"
	cfg.LatencyEnabled = false
	return cfg
}

// newTestApp wires a real App over in-memory databases and feeds it the
// given input lines.
func newTestApp(t *testing.T, cfg *config.Config, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil)

	a, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	var out bytes.Buffer
	a.out = &out
	a.reader = rdr(strings.Join(lines, "\n") + "\n")
	return a, &out
}

// feed replaces the pending input of a.
func feed(a *App, lines ...string) {
	a.reader = rdr(strings.Join(lines, "\n") + "\n")
}

func loginJohn(t *testing.T, a *App) {
	t.Helper()
	feed(a, "john@example.com", "password123")
	require.NoError(t, a.Login(context.Background()))
	require.True(t, a.isLoggedIn())
}

func TestNewApp_SeedsTasksAndRejectsBadVerifier(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t))
	require.NoError(t, a.dashboard.Load(context.Background()))
	assert.Len(t, a.dashboard.All(), 12)

	cfg := testConfig(t)
	cfg.CredentialVerifier = "rot13"
	_, err := NewApp(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
}

func TestNewApp_NoSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedTasks = false
	a, _ := newTestApp(t, cfg)
	require.NoError(t, a.dashboard.Load(context.Background()))
	assert.Empty(t, a.dashboard.All())
}

func TestLogin_ShowsDashboard(t *testing.T) {
	a, out := newTestApp(t, testConfig(t))
	loginJohn(t, a)

	assert.Contains(t, out.String(), "Welcome back, John Doe!")
	assert.Contains(t, out.String(), "== Dashboard ==")
	assert.Equal(t, ScreenDashboard, a.screen)
	assert.Equal(t, " (john@example.com) dashboard", a.status())

	sess, err := a.auth.CheckAuth(context.Background())
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "john@example.com", sess.User.Email)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, testConfig(t))

	feed(a, "john", "password123")
	require.ErrorIs(t, a.Login(ctx), common.ErrValidation)

	feed(a, "nobody@example.com", "password123")
	require.ErrorIs(t, a.Login(ctx), common.ErrNotFound)

	feed(a, "john@example.com", "wrong-password")
	require.ErrorIs(t, a.Login(ctx), common.ErrInvalidCredentials)

	feed(a, "mike@example.com", "password123")
	require.ErrorIs(t, a.Login(ctx), common.ErrEmailNotVerified)
	assert.Contains(t, out.String(), "Type 'resend'")

	assert.False(t, a.isLoggedIn())
}

var tokenLine = regexp.MustCompile(`Verification token: ([0-9a-f]+)`)

func lastToken(t *testing.T, out *bytes.Buffer) string {
	t.Helper()
	m := tokenLine.FindAllStringSubmatch(out.String(), -1)
	require.NotEmpty(t, m, "no verification token in output")
	return m[len(m)-1][1]
}

func TestSignupVerifyLogin_Argon2(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.CredentialVerifier = "argon2"
	a, out := newTestApp(t, cfg)

	feed(a, "Ann Lee", "ann@example.com", "correct horse", "correct horse")
	require.NoError(t, a.Signup(ctx))
	assert.Contains(t, out.String(), "Account created successfully. Please verify your email.")
	token := lastToken(t, out)

	feed(a, "ann@example.com", "correct horse")
	require.ErrorIs(t, a.Login(ctx), common.ErrEmailNotVerified)

	feed(a, "")
	require.NoError(t, a.Resend(ctx))
	resent := lastToken(t, out)
	assert.NotEqual(t, token, resent)

	require.NoError(t, a.Verify(ctx, []string{resent}))
	assert.Contains(t, out.String(), "Email verified successfully")

	feed(a, "ann@example.com", "password123")
	require.ErrorIs(t, a.Login(ctx), common.ErrInvalidCredentials)

	feed(a, "ann@example.com", "correct horse")
	require.NoError(t, a.Login(ctx))
	assert.Equal(t, "ann@example.com", a.session.User.Email)
}

func TestSignup_Validation(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, testConfig(t))

	feed(a, "Ann Lee", "ann@example.com", "longenough", "different")
	require.ErrorIs(t, a.Signup(ctx), common.ErrValidation)

	feed(a, "John Again", "john@example.com", "longenough", "longenough")
	require.ErrorIs(t, a.Signup(ctx), common.ErrEmailTaken)
}

func TestForgotAndReset(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, testConfig(t))

	feed(a, "john@example.com")
	require.NoError(t, a.Forgot(ctx))
	assert.Contains(t, out.String(), "Password reset email sent successfully")

	feed(a, "ghost@example.com")
	require.ErrorIs(t, a.Forgot(ctx), common.ErrNotFound)

	feed(a, "newpassword", "newpassword")
	require.ErrorIs(t, a.Reset(ctx, []string{"short"}), common.ErrInvalidToken)

	feed(a, "newpassword", "newpassword")
	require.NoError(t, a.Reset(ctx, []string{"a_valid_looking_token_123"}))
	assert.Contains(t, out.String(), "Password reset successfully")

	feed(a, "tiny", "tiny")
	require.ErrorIs(t, a.Reset(ctx, []string{"a_valid_looking_token_123"}), common.ErrValidation)
}

func TestLogoutAndWhoAmI(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, testConfig(t))
	loginJohn(t, a)

	require.NoError(t, a.WhoAmI(ctx))
	assert.Contains(t, out.String(), "John Doe <john@example.com> (#1)")
	assert.Contains(t, out.String(), "notifications: email, push, reminders")

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Logged out successfully")

	sess, err := a.auth.CheckAuth(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, testConfig(t))
	loginJohn(t, a)
	out.Reset()

	require.NoError(t, a.Settings(ctx))
	got := out.String()
	assert.Contains(t, got, "== Settings ==")
	assert.Contains(t, got, "  name:  John Doe")
	assert.Contains(t, got, "  email: john@example.com")
	assert.Contains(t, got, "  theme:    light")
	assert.Contains(t, got, "  timezone: America/New_York")
	assert.Contains(t, got, "  task reminders: on")
	assert.Contains(t, got, "  team updates:   off")
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.StateDSN = filepath.Join(t.TempDir(), "state", "taskflow.db")

	first, _ := newTestApp(t, cfg)
	loginJohn(t, first)
	require.NoError(t, first.Close())

	second, out := newTestApp(t, cfg)
	require.NoError(t, second.restoreSession(ctx))
	require.True(t, second.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome back, John Doe!")

	cfg.SecretKey = "rotated-secret"
	third, out := newTestApp(t, cfg)
	require.NoError(t, third.restoreSession(ctx))
	assert.False(t, third.isLoggedIn())
	assert.Contains(t, out.String(), "You are not logged in.")
}

func TestTaskCommands(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, testConfig(t))
	loginJohn(t, a)

	require.NoError(t, a.Today(ctx))
	assert.Contains(t, out.String(), "== Today ==")
	assert.Contains(t, out.String(), "1/3 tasks completed")

	feed(a, "Call the bank", "about the card", "high", "")
	require.NoError(t, a.Add(ctx))
	created, ok := findTask(a.today.All(), 13)
	require.True(t, ok)
	assert.Equal(t, "Call the bank", created.Title)
	assert.False(t, created.Completed)

	require.NoError(t, a.Done(ctx, []string{"13"}))
	done, _ := findTask(a.today.All(), 13)
	assert.True(t, done.Completed)
	assert.NotNil(t, done.CompletedAt)

	feed(a, "Call the bank today", "-", "low", "")
	require.NoError(t, a.Edit(ctx, []string{"13"}))
	edited, _ := findTask(a.today.All(), 13)
	assert.Equal(t, "Call the bank today", edited.Title)
	assert.Empty(t, edited.Description)

	feed(a, "", "", "", "tomorrow")
	require.NoError(t, a.Edit(ctx, []string{"13"}))
	_, stillToday := findTask(a.today.All(), 13)
	assert.False(t, stillToday, "task moved to tomorrow leaves the today view")

	feed(a, "n")
	require.NoError(t, a.Remove(ctx, []string{"1"}))
	_, ok = findTask(a.today.All(), 1)
	assert.True(t, ok)

	feed(a, "y")
	require.NoError(t, a.Remove(ctx, []string{"1"}))
	_, ok = findTask(a.today.All(), 1)
	assert.False(t, ok)

	require.ErrorIs(t, a.Done(ctx, []string{"1"}), common.ErrNotFound)
	require.ErrorIs(t, a.Edit(ctx, []string{"99"}), common.ErrNotFound)
	require.ErrorIs(t, a.Done(ctx, []string{"x"}), common.ErrValidation)
}

func TestAdd_FromDashboardGoesThroughToday(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, testConfig(t))
	loginJohn(t, a)

	feed(a, "Water plants", "", "", "")
	require.NoError(t, a.Add(ctx))
	assert.Equal(t, ScreenDashboard, a.screen)
	assert.Len(t, a.dashboard.All(), 13)

	feed(a, "", "", "", "")
	require.ErrorIs(t, a.Add(ctx), common.ErrValidation)
}

func TestFilterAndCompleted(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, testConfig(t))
	loginJohn(t, a)

	require.ErrorIs(t, a.Filter(ctx, []string{"active"}), common.ErrValidation)

	require.NoError(t, a.Upcoming(ctx))
	require.NoError(t, a.Filter(ctx, []string{"all", "high"}))
	assert.Equal(t, views.Filter{Status: views.StatusAll, Priority: "high"}, a.upcoming.Filter)
	assert.Contains(t, out.String(), "Filter: status=all priority=high")

	require.NoError(t, a.Filter(ctx, []string{"completed"}))
	assert.Equal(t, views.Filter{Status: views.StatusCompleted, Priority: "high"}, a.upcoming.Filter)

	require.ErrorIs(t, a.Filter(ctx, []string{"done"}), common.ErrValidation)
	require.ErrorIs(t, a.Filter(ctx, []string{"all", "urgent"}), common.ErrValidation)

	require.NoError(t, a.Completed(ctx, []string{"week"}))
	assert.Equal(t, views.PeriodWeek, a.completed.Period)
	assert.Contains(t, out.String(), "== Completed ==")
	assert.Contains(t, out.String(), "3 of 4 completed tasks")

	require.ErrorIs(t, a.Completed(ctx, []string{"decade"}), common.ErrValidation)
}
