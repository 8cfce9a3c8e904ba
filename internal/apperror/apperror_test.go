package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_UnwrapsToSentinel(t *testing.T) {
	cases := []struct {
		name     string
		err      *AppError
		sentinel error
	}{
		{"not found", NotFound("user"), ErrNotFound},
		{"validation", ValidationFailed("email", "Email is not valid"), ErrValidation},
		{"validation map", ValidationMap(map[string]string{"email": "Email is not valid"}), ErrValidation},
		{"conflict", Conflict("email", "Email is already exist"), ErrConflict},
		{"invalid credentials", InvalidCredentials(), ErrInvalidCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tc.err, tc.sentinel)
			}
		})
	}
}

func TestAppError_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("outer context: %w", Conflict("username", "Username is already exist"))

	if !errors.Is(wrapped, ErrConflict) {
		t.Error("sentinel lost through fmt.Errorf wrapping")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As failed through fmt.Errorf wrapping")
	}
	if appErr.Field != "username" {
		t.Errorf("Field = %q, want %q", appErr.Field, "username")
	}
}

func TestAppError_MessageIsUserFacing(t *testing.T) {
	if got := InvalidCredentials().Error(); got != "Email or Password are incorrect" {
		t.Errorf("Error() = %q, want %q", got, "Email or Password are incorrect")
	}
	if got := NotFound("user").Error(); got != "user not found" {
		t.Errorf("Error() = %q, want %q", got, "user not found")
	}
}

func TestValidationMap_CarriesEveryField(t *testing.T) {
	err := ValidationMap(map[string]string{
		"email":    "Email is not valid",
		"username": "Username must be between 3 and 30 characters",
	})

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As failed")
	}
	if len(appErr.Fields) != 2 {
		t.Errorf("Fields has %d entries, want 2", len(appErr.Fields))
	}
}
