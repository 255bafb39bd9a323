package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/models"
)

func (a *App) Login(ctx context.Context) error {
	if a.session != nil {
		fmt.Fprintf(a.out, "Already logged in as %s. Type 'logout' first.\n", a.session.User.Email)
		return nil
	}

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validateLogin(email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Signing in...")
	sess, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, common.ErrEmailNotVerified) {
			fmt.Fprintln(a.out, "Type 'resend' to get a new verification token.")
		}
		return err
	}

	a.session = sess
	fmt.Fprintf(a.out, "Welcome back, %s!\n", sess.User.Name)
	return a.show(ctx, ScreenDashboard)
}

func (a *App) Signup(ctx context.Context) error {
	if a.session != nil {
		fmt.Fprintf(a.out, "Already logged in as %s. Type 'logout' first.\n", a.session.User.Email)
		return nil
	}

	name, err := GetSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Password (at least 8 characters)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := GetPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	in := models.SignupInput{Name: name, Email: email, Password: string(password)}
	if err := validateSignup(in, string(confirm)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Creating account...")
	res, err := a.auth.Signup(ctx, in)
	if err != nil {
		return err
	}
	a.lastEmail = res.User.Email
	fmt.Fprintln(a.out, res.Message)
	a.printVerificationToken(res.VerificationToken)
	return nil
}

// printVerificationToken shows the token a real backend would have mailed.
func (a *App) printVerificationToken(token string) {
	fmt.Fprintf(a.out, "Verification token: %s\n", token)
	fmt.Fprintln(a.out, "Type 'verify <token>' to verify your email.")
}

// tokenArg takes a token from args or prompts for it.
func (a *App) tokenArg(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) Verify(ctx context.Context, args []string) error {
	token, err := a.tokenArg(args, "Verification token")
	if err != nil {
		return err
	}
	msg, err := a.auth.VerifyEmail(ctx, token)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	if a.session == nil {
		fmt.Fprintln(a.out, "You can now log in.")
	}
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	prompt := "Email"
	if a.lastEmail != "" {
		prompt = fmt.Sprintf("Email [%s]", a.lastEmail)
	}
	email, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = a.lastEmail
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	res, err := a.auth.ResendVerification(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, res.Message)
	a.printVerificationToken(res.VerificationToken)
	return nil
}

func (a *App) Forgot(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	msg, err := a.auth.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	fmt.Fprintln(a.out, "Type 'reset <token>' with the token from the email to choose a new password.")
	return nil
}

func (a *App) Reset(ctx context.Context, args []string) error {
	token, err := a.tokenArg(args, "Reset token")
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "New password (at least 8 characters)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := GetPassword(a.reader, "Confirm new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := validateNewPassword(string(password), string(confirm)); err != nil {
		return err
	}

	msg, err := a.auth.ResetPassword(ctx, token, string(password))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	msg, err := a.auth.Logout(ctx)
	if err != nil {
		return err
	}
	a.session = nil
	a.screen = ScreenDashboard
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		a.session = nil
		fmt.Fprintln(a.out, "Your account is no longer available. Please log in again.")
		return nil
	}
	renderUser(a.out, u)
	return nil
}

// Settings shows the profile and preferences of the signed-in user.
func (a *App) Settings(ctx context.Context) error {
	u, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		a.session = nil
		fmt.Fprintln(a.out, "Your account is no longer available. Please log in again.")
		return nil
	}
	renderSettings(a.out, u)
	return nil
}
