// Package validate contains the pure field validators used by the
// registration, login, reset, and settings flows.
//
// Each validator checks one named field (or one small field group) and
// returns a human-readable message, or "" when the field is valid.
// Validators are side-effect free and independent of each other — the
// settings engine runs every applicable validator and aggregates all
// failures instead of stopping at the first.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt input limit
	MaxFullNameLength = 100
	MaxBioLength      = 500
)

var (
	// Good-enough address shape check; real deliverability is proven by
	// the reset mail, not by a regex.
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)
)

// Email checks basic address shape.
func Email(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || !emailRe.MatchString(v) {
		return "Email is not valid"
	}
	return ""
}

// Username checks that the trimmed value is within bounds and uses the
// restricted character set (letters, digits, dot, underscore).
func Username(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < MinUsernameLength || len(v) > MaxUsernameLength {
		return "Username must be between 3 and 30 characters"
	}
	if !usernameRe.MatchString(v) {
		return "Username may only contain letters, numbers, dots and underscores"
	}
	return ""
}

// Password checks the complexity policy for new passwords: bounded
// length, at least one letter and one digit.
func Password(v string) string {
	if len(v) < MinPasswordLength {
		return "Password must be at least 8 characters"
	}
	if len(v) > MaxPasswordLength {
		return "Password must be 72 characters or fewer"
	}

	var hasLetter, hasDigit bool
	for _, r := range v {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "Password must contain at least one letter and one number"
	}
	return ""
}

// PasswordsEqual checks the confirmation field against the password.
// This is a distinct rule from complexity: a strong password with a
// bad retype still fails.
func PasswordsEqual(password, confirm string) string {
	if password != confirm {
		return "The password must be equal"
	}
	return ""
}

// FullName checks the display name: non-empty after trimming, bounded.
func FullName(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "Full name is required"
	}
	if len(v) > MaxFullNameLength {
		return "Full name must be 100 characters or fewer"
	}
	return ""
}

// Bio bounds the profile text. An empty bio is valid — it means the
// caller wants the bio cleared, which is handled by the settings
// engine, not here.
func Bio(v string) string {
	if len(v) > MaxBioLength {
		return "Bio must be 500 characters or fewer"
	}
	return ""
}
