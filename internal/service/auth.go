// Package service contains the business logic layer.
//
// Handlers parse HTTP and delegate here; services validate, enforce
// the account rules, and orchestrate the repository, hasher, token
// service, and mailer. Services know nothing about HTTP — they return
// apperror values and the handler layer maps those to status codes.
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yaronsh/mediahub/internal/apperror"
	"github.com/yaronsh/mediahub/internal/auth"
	"github.com/yaronsh/mediahub/internal/mailer"
	"github.com/yaronsh/mediahub/internal/model"
	"github.com/yaronsh/mediahub/internal/repository"
	"github.com/yaronsh/mediahub/internal/username"
	"github.com/yaronsh/mediahub/internal/validate"
)

// AccountDefaults are stamped onto every newly created user. They come
// from process configuration, injected once at construction.
type AccountDefaults struct {
	ProfileImage string
	ThemeImage   string
}

// AuthService orchestrates registration, login (local and federated),
// and the password reset flows.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	mail      mailer.Mailer
	usernames *username.Generator
	defaults  AccountDefaults
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	mail mailer.Mailer,
	usernames *username.Generator,
	defaults AccountDefaults,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		mail:      mail,
		usernames: usernames,
		defaults:  defaults,
		logger:    logger,
	}
}

// AuthResult is returned by the login operations: the canonical
// username plus the session token the client will present from now on.
type AuthResult struct {
	Username string
	Token    string
}

// RegisterInput is the full registration payload.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

// Register creates a local account.
//
// The flow is linear and terminal on the first failure: full payload
// validation (every failing field reported, no store access), a
// combined email-or-username pre-check, hashing, and the insert. The
// insert can still hit a uniqueness race past the pre-check — the
// repository surfaces that as the same user-facing conflict, so the
// caller can't tell the race from the pre-check result. Success does
// not log the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)

	errs := map[string]string{}
	if msg := validate.Email(in.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := validate.Username(in.Username); msg != "" {
		errs["username"] = msg
	}
	if msg := validate.Password(in.Password); msg != "" {
		errs["password"] = msg
	}
	if msg := validate.FullName(in.FullName); msg != "" {
		errs["fullName"] = msg
	}
	if len(errs) > 0 {
		return apperror.ValidationMap(errs)
	}

	// Fast-path uniqueness check. Email takes precedence when both
	// values collide.
	existing, err := s.users.FindByEmailOrUsername(ctx, in.Email, in.Username)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("service/auth: checking existing user: %w", err)
	}
	if existing != nil {
		if existing.Email == in.Email {
			return apperror.Conflict("email", "Email is already exist")
		}
		return apperror.Conflict("username", "Username is already exist")
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := s.newUser(in.FullName, in.Email, in.Username)
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperror.ErrConflict) {
			// Lost the race past the pre-check; same conflict either way.
			return appErr
		}
		return fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// LoginInput is the local login payload. Username accepts either the
// username or the email address.
type LoginInput struct {
	Username string
	Password string
}

// Login authenticates by password and issues a session token.
//
// Every failure — unknown identifier, wrong password, malformed
// payload — returns the identical InvalidCredentials outcome, so the
// response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		return nil, apperror.InvalidCredentials()
	}

	// The same input value is a candidate for either column.
	user, err := s.users.FindByEmailOrUsername(ctx, in.Username, in.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if !s.passwords.Verify(user.PasswordHash, in.Password) {
		return nil, apperror.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user login", slog.String("userID", user.ID))

	return &AuthResult{Username: user.Username, Token: token}, nil
}

// FederatedInput carries an identity assertion that an upstream
// provider (Google) has already verified. No OAuth handling happens
// here.
type FederatedInput struct {
	Email string
	Name  string
}

// FederatedLogin signs in a federated identity, lazily creating the
// account on first sign-in.
//
// New accounts get a synthesized unique username (generate, check the
// store, repeat until free) and an unmatchable password marker — local
// password login on a federated account always fails. After creation
// the user is re-fetched by email so the issued token carries the
// canonical id/username pair even if a concurrent sign-in won the
// insert race.
func (s *AuthService) FederatedLogin(ctx context.Context, in FederatedInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if msg := validate.Email(in.Email); msg != "" {
		return nil, apperror.ValidationFailed("email", msg)
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: looking up federated user: %w", err)
	}

	if user == nil {
		name, err := s.uniqueUsername(ctx, in.Email)
		if err != nil {
			return nil, err
		}

		created := s.newUser(in.Name, in.Email, name)
		created.PasswordHash = federatedPasswordMarker()

		if err := s.users.Create(ctx, created); err != nil && !errors.Is(err, apperror.ErrConflict) {
			return nil, fmt.Errorf("service/auth: creating federated user: %w", err)
		}
		// A conflict means a concurrent sign-in created the account
		// first; the refetch below picks up whichever record won.

		user, err = s.users.FindByEmail(ctx, in.Email)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil, apperror.NotFound("user")
			}
			return nil, fmt.Errorf("service/auth: refetching federated user: %w", err)
		}

		s.logger.Info("federated user created",
			slog.String("userID", user.ID),
			slog.String("username", user.Username),
		)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing token for user %s: %w", user.ID, err)
	}

	s.logger.Info("federated login", slog.String("userID", user.ID))

	return &AuthResult{Username: user.Username, Token: token}, nil
}

// InitiatePasswordReset validates the address, looks the user up, and
// hands the record to the mailer.
//
// Unknown address and mail delivery failure get the same response on
// purpose: distinguishing them would let a caller probe which emails
// have accounts.
func (s *AuthService) InitiatePasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if msg := validate.Email(email); msg != "" {
		return apperror.ValidationFailed("email", msg)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.ValidationFailed("email", "User did not found")
		}
		return fmt.Errorf("service/auth: looking up user for reset: %w", err)
	}

	if err := s.mail.SendPasswordReset(ctx, user); err != nil {
		s.logger.Error("password reset mail failed",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return apperror.ValidationFailed("email", "User did not found")
	}

	s.logger.Info("password reset mail sent", slog.String("userID", user.ID))

	return nil
}

// CompleteResetInput is the post-reset-link submission.
type CompleteResetInput struct {
	UserID          string
	Password        string
	PasswordConfirm string
}

// CompletePasswordReset validates and persists the new password for
// the given user id.
//
// The id comes from the reset link the mailer sent; there is no
// server-side binding between this call and the initiation step, so an
// unknown id is the only thing that can be rejected here. It is, with
// NotFound, rather than silently updating zero rows.
func (s *AuthService) CompletePasswordReset(ctx context.Context, in CompleteResetInput) error {
	if msg := validate.Password(in.Password); msg != "" {
		return apperror.ValidationFailed("password", msg)
	}
	if msg := validate.PasswordsEqual(in.Password, in.PasswordConfirm); msg != "" {
		return apperror.ValidationFailed("password", msg)
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("service/auth: hashing new password: %w", err)
	}

	if err := s.users.Update(ctx, in.UserID, model.UserPatch{PasswordHash: &hash}); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return fmt.Errorf("service/auth: updating password for user %s: %w", in.UserID, err)
	}

	s.logger.Info("password updated", slog.String("userID", in.UserID))

	return nil
}

// uniqueUsername derives candidates from the email seed until the
// store reports one free. The store's UNIQUE constraint still backs
// this up if a candidate is taken between the check and the insert.
func (s *AuthService) uniqueUsername(ctx context.Context, email string) (string, error) {
	for {
		candidate := s.usernames.FromEmail(email)

		_, err := s.users.FindByUsername(ctx, candidate)
		if errors.Is(err, apperror.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("service/auth: checking username candidate: %w", err)
		}
		// Taken — derive another candidate.
	}
}

func (s *AuthService) newUser(fullName, email, uname string) *model.User {
	return &model.User{
		Email:        email,
		Username:     uname,
		FullName:     fullName,
		ProfileImage: s.defaults.ProfileImage,
		ThemeImage:   s.defaults.ThemeImage,
		MediaCount:   0,
	}
}

// federatedPasswordMarker returns a random value for the password-hash
// column of accounts that have no local password. It is not bcrypt
// output, so Verify can never match it.
func federatedPasswordMarker() string {
	b := make([]byte, 24)
	rand.Read(b) // never fails per crypto/rand docs
	return "!federated:" + hex.EncodeToString(b)
}
