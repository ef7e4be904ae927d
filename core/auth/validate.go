package auth

import (
	"net/mail"
	"regexp"
)

// InputModel carries the validation rules for registration input. Plugins
// can swap or tighten it through the register-input-model hook.
type InputModel struct {
	UsernameMinLength int
	UsernameMaxLength int
	PasswordMinLength int
}

// DefaultInputModel returns the stock validation rules.
func DefaultInputModel() InputModel {
	return InputModel{
		UsernameMinLength: 3,
		UsernameMaxLength: 14,
		PasswordMinLength: 7,
	}
}

var usernameRe = regexp.MustCompile(`^[0-9A-Za-z]+$`)

// ValidateUsername returns field errors for a username against the model.
func ValidateUsername(model InputModel, username string) []string {
	var errs []string
	if len(username) < model.UsernameMinLength {
		errs = append(errs, "username is too short")
	}
	if len(username) > model.UsernameMaxLength {
		errs = append(errs, "username is too long")
	}
	if !usernameRe.MatchString(username) {
		errs = append(errs, "username can only contain latin letters and digits")
	}
	return errs
}

// ValidateEmail returns field errors for an e-mail address.
func ValidateEmail(email string) []string {
	if _, err := mail.ParseAddress(email); err != nil {
		return []string{"invalid e-mail address"}
	}
	return nil
}

// ValidatePassword returns field errors for a password against the model.
func ValidatePassword(model InputModel, password string) []string {
	if len(password) < model.PasswordMinLength {
		return []string{"password is too short"}
	}
	return nil
}
