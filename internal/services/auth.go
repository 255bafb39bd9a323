// Package services contains the TaskFlow application services. This file
// implements the session service: login, signup, password reset, email
// verification and the "who am I" queries over the persisted session.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/auth"
	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/cryptox"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/repositories/users"
	"github.com/dmitrijs2005/taskflow/internal/session"
	"github.com/dmitrijs2005/taskflow/internal/timex"
)

// minTokenLength is the shortest reset or verification token accepted.
const minTokenLength = 10

// Confirmation messages returned by the session service.
const (
	MsgSignup           = "Account created successfully. Please verify your email."
	MsgResetEmailSent   = "Password reset email sent successfully"
	MsgPasswordReset    = "Password reset successfully"
	MsgEmailVerified    = "Email verified successfully"
	MsgVerificationSent = "Verification email sent successfully"
	MsgLoggedOut        = "Logged out successfully"
)

// AuthLatency holds the simulated network delay of each session operation.
type AuthLatency struct {
	Login              time.Duration
	Signup             time.Duration
	ForgotPassword     time.Duration
	ResetPassword      time.Duration
	VerifyEmail        time.Duration
	ResendVerification time.Duration
	CheckAuth          time.Duration
	Logout             time.Duration
	CurrentUser        time.Duration
}

// DefaultAuthLatency mirrors the response times of the mock backend.
func DefaultAuthLatency() AuthLatency {
	return AuthLatency{
		Login:              800 * time.Millisecond,
		Signup:             1000 * time.Millisecond,
		ForgotPassword:     600 * time.Millisecond,
		ResetPassword:      500 * time.Millisecond,
		VerifyEmail:        400 * time.Millisecond,
		ResendVerification: 300 * time.Millisecond,
		CheckAuth:          200 * time.Millisecond,
		Logout:             100 * time.Millisecond,
		CurrentUser:        150 * time.Millisecond,
	}
}

// AuthConfig carries the token settings and latencies of the session service.
type AuthConfig struct {
	SecretKey     []byte
	TokenValidity time.Duration
	Latency       AuthLatency
}

// SignupResult is returned by a successful signup. VerificationToken is what
// a real backend would have mailed to the user.
type SignupResult struct {
	User              *models.User
	Message           string
	VerificationToken string
}

// VerificationResult is returned by ResendVerification.
type VerificationResult struct {
	Message           string
	VerificationToken string
}

// AuthService manages the single signed-in session.
//
// Every method first waits the configured latency for that operation and
// returns ctx.Err() if the context ends during the wait. Domain failures are
// reported with the sentinel errors of package common.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Signup(ctx context.Context, in models.SignupInput) (*SignupResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	VerifyEmail(ctx context.Context, token string) (string, error)
	ResendVerification(ctx context.Context, email string) (*VerificationResult, error)

	// CheckAuth returns the stored session, or nil when nobody is signed in.
	// A session whose token no longer verifies or whose user has disappeared
	// is cleared.
	CheckAuth(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) (string, error)

	// CurrentUser returns a fresh copy of the signed-in user, or nil.
	CurrentUser(ctx context.Context) (*models.User, error)
}

type authService struct {
	users         users.Repository
	store         *session.Store
	verifier      cryptox.CredentialVerifier
	verifications *VerificationStore
	clock         timex.Clock
	logger        logging.Logger
	cfg           AuthConfig
}

// NewAuthService wires the session service.
func NewAuthService(
	users users.Repository,
	store *session.Store,
	verifier cryptox.CredentialVerifier,
	clock timex.Clock,
	logger logging.Logger,
	cfg AuthConfig,
) AuthService {
	return &authService{
		users:         users,
		store:         store,
		verifier:      verifier,
		verifications: NewVerificationStore(),
		clock:         clock,
		logger:        logger.With("service", "auth"),
		cfg:           cfg,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if err := s.clock.Sleep(ctx, s.cfg.Latency.Login); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, lookupError("user", err)
	}
	if !s.verifier.Verify(user.Password, password) {
		return nil, common.ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, common.ErrEmailNotVerified
	}

	now := s.clock.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := auth.GenerateToken(user.ID, now, s.cfg.SecretKey, s.cfg.TokenValidity)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{User: *user, Token: token}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return sess, nil
}

func (s *authService) Signup(ctx context.Context, in models.SignupInput) (*SignupResult, error) {
	if err := s.clock.Sleep(ctx, s.cfg.Latency.Signup); err != nil {
		return nil, err
	}

	stored, err := s.verifier.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &models.User{
		Name:          in.Name,
		Email:         in.Email,
		Password:      stored,
		EmailVerified: false,
		CreatedAt:     s.clock.Now(),
		Preferences:   models.DefaultPreferences(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.sendVerification(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user signed up", "user_id", user.ID)

	return &SignupResult{User: user, Message: MsgSignup, VerificationToken: token}, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := s.clock.Sleep(ctx, s.cfg.Latency.ForgotPassword); err != nil {
		return "", err
	}

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return "", lookupError("email", err)
	}
	s.logger.Info(ctx, "password reset email sent", "email", email)
	return MsgResetEmailSent, nil
}

// ResetPassword accepts any token of plausible length and changes nothing.
func (s *authService) ResetPassword(ctx context.Context, token, _ string) (string, error) {
	if err := s.clock.Sleep(ctx, s.cfg.Latency.ResetPassword); err != nil {
		return "", err
	}
	if len(token) < minTokenLength {
		return "", common.ErrInvalidToken
	}
	return MsgPasswordReset, nil
}

// VerifyEmail marks the owner of a token issued by Signup or
// ResendVerification as verified. Unknown tokens of plausible length are
// accepted without changing anything.
func (s *authService) VerifyEmail(ctx context.Context, token string) (string, error) {
	if err := s.clock.Sleep(ctx, s.cfg.Latency.VerifyEmail); err != nil {
		return "", err
	}
	if len(token) < minTokenLength {
		return "", common.ErrInvalidToken
	}

	userID, ok := s.verifications.Consume(token)
	if !ok {
		s.logger.Debug(ctx, "verification token not on record")
		return MsgEmailVerified, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		s.logger.Warn(ctx, "verification token for unknown user", "user_id", userID)
		return MsgEmailVerified, nil
	}
	if err != nil {
		return "", err
	}
	user.EmailVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to mark email verified: %w", err)
	}
	s.logger.Info(ctx, "email verified", "user_id", user.ID)
	return MsgEmailVerified, nil
}

func (s *authService) ResendVerification(ctx context.Context, email string) (*VerificationResult, error) {
	if err := s.clock.Sleep(ctx, s.cfg.Latency.ResendVerification); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, lookupError("email", err)
	}
	if user.EmailVerified {
		return nil, common.ErrAlreadyVerified
	}

	token, err := s.sendVerification(ctx, user)
	if err != nil {
		return nil, err
	}
	return &VerificationResult{Message: MsgVerificationSent, VerificationToken: token}, nil
}

func (s *authService) CheckAuth(ctx context.Context) (*models.Session, error) {
	if err := s.clock.Sleep(ctx, s.cfg.Latency.CheckAuth); err != nil {
		return nil, err
	}

	sess, err := s.store.Load(ctx)
	if err != nil || sess == nil || sess.Token == "" {
		return nil, err
	}

	userID, err := auth.GetUserIDFromToken(sess.Token, s.clock.Now(), s.cfg.SecretKey)
	if err != nil || userID != sess.User.ID {
		s.logger.Info(ctx, "discarding session with invalid token", "user_id", sess.User.ID)
		return nil, s.store.Clear(ctx)
	}

	_, err = s.users.GetByID(ctx, sess.User.ID)
	if errors.Is(err, common.ErrNotFound) {
		s.logger.Info(ctx, "discarding session of unknown user", "user_id", sess.User.ID)
		return nil, s.store.Clear(ctx)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *authService) Logout(ctx context.Context) (string, error) {
	if err := s.clock.Sleep(ctx, s.cfg.Latency.Logout); err != nil {
		return "", err
	}
	if err := s.store.Clear(ctx); err != nil {
		return "", err
	}
	s.logger.Info(ctx, "user logged out")
	return MsgLoggedOut, nil
}

func (s *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	if err := s.clock.Sleep(ctx, s.cfg.Latency.CurrentUser); err != nil {
		return nil, err
	}

	sess, err := s.store.Load(ctx)
	if err != nil || sess == nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, sess.User.ID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// sendVerification issues a verification token for user and "mails" it by
// logging it.
func (s *authService) sendVerification(ctx context.Context, user *models.User) (string, error) {
	token, err := s.verifications.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue verification token: %w", err)
	}
	s.logger.Info(ctx, "verification email sent", "email", user.Email, "token", token)
	return token, nil
}

// lookupError names what was not found, keeping common.ErrNotFound matchable.
func lookupError(what string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("%s %w", what, common.ErrNotFound)
	}
	return err
}
