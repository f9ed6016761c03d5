package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 8
	maxPasswordLen = 128

	// passwordSymbols is the accepted special-character set.
	passwordSymbols = "!@#$%^&*"
)

var errPasswordComplexity = errors.New("password must contain at least 1 upper case letter, 1 number, and 1 special character")

// ValidateUsername enforces the 3-20 character username bound.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < minUsernameLen || n > maxUsernameLen {
		return fmt.Errorf("username must be between %d and %d characters", minUsernameLen, maxUsernameLen)
	}
	return nil
}

// ValidateEmail checks basic address syntax.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email must be a valid email address")
	}
	return nil
}

// ValidatePassword enforces length bounds and the complexity predicate:
// at least one uppercase letter, one digit, and one symbol from
// passwordSymbols.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLen || n > maxPasswordLen {
		return fmt.Errorf("password must be between %d and %d characters", minPasswordLen, maxPasswordLen)
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasUpper || !hasDigit || !hasSymbol {
		return errPasswordComplexity
	}
	return nil
}
