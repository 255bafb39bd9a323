package cli

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/timex"
	"github.com/go-playground/validator/v10"
)

// Form structs are checked with the tag rules below; every failing field
// becomes one message.
type loginForm struct {
	Email    string `validate:"required,loosemail"`
	Password string `validate:"required"`
}

type signupForm struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,loosemail"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"eqfield=Password"`
}

type emailForm struct {
	Email string `validate:"required,loosemail"`
}

type newPasswordForm struct {
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"eqfield=Password"`
}

// emailPattern accepts anything shaped like something@something.something.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("loosemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}

// checkForm validates form and joins one ErrValidation per failing field.
func checkForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, invalid(fieldMessage(fe)))
	}
	return errors.Join(errs...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "loosemail":
		return "Invalid email format"
	case "eqfield":
		return "Passwords do not match"
	default:
		return fe.Field() + " is invalid"
	}
}

func validateLogin(email, password string) error {
	return checkForm(loginForm{Email: email, Password: password})
}

func validateEmail(email string) error {
	return checkForm(emailForm{Email: email})
}

func validateSignup(in models.SignupInput, confirm string) error {
	return checkForm(signupForm{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Password: in.Password,
		Confirm:  confirm,
	})
}

func validateNewPassword(password, confirm string) error {
	return checkForm(newPasswordForm{Password: password, Confirm: confirm})
}

// parseDueDate accepts "", "today", "tomorrow", "+N" (days from today) or a
// YYYY-MM-DD date. An empty string yields nil: the caller's default applies.
func parseDueDate(s string, now time.Time) (*time.Time, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	today := timex.StartOfDay(now)

	var due time.Time
	switch {
	case s == "":
		return nil, nil
	case s == "today":
		due = today
	case s == "tomorrow":
		due = timex.AddDays(today, 1)
	case strings.HasPrefix(s, "+"):
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			return nil, invalid(fmt.Sprintf("Invalid day offset %q", s))
		}
		due = timex.AddDays(today, n)
	default:
		d, err := timex.ParseDate(s, now.Location())
		if err != nil {
			return nil, invalid(fmt.Sprintf("Invalid date %q, use YYYY-MM-DD", s))
		}
		due = d
	}
	return &due, nil
}

// parsePriority accepts "" (meaning default) or a priority name.
func parsePriority(s string) (models.Priority, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	p, err := models.ParsePriority(s)
	if err != nil {
		return "", invalid("Priority must be low, medium or high")
	}
	return p, nil
}

// parseID reads a task id from the first command argument.
func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, invalid("Task id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid(fmt.Sprintf("Invalid task id %q", args[0]))
	}
	return id, nil
}
