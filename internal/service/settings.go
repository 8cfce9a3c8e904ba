package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yaronsh/mediahub/internal/apperror"
	"github.com/yaronsh/mediahub/internal/auth"
	"github.com/yaronsh/mediahub/internal/model"
	"github.com/yaronsh/mediahub/internal/repository"
	"github.com/yaronsh/mediahub/internal/validate"
)

// SettingsService handles self-service profile reads and mutations for
// the authenticated user.
type SettingsService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewSettingsService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *SettingsService {
	return &SettingsService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// GetProfile returns the acting user's record.
func (s *SettingsService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, fmt.Errorf("service/settings: fetching user %s: %w", userID, err)
	}
	return user, nil
}

// Image kinds accepted by UpdateImage. Restricting the set keeps the
// path parameter from selecting arbitrary columns.
const (
	ImageProfile = "profileImage"
	ImageTheme   = "themeImage"
)

// UpdateImage sets the profile or theme image reference.
func (s *SettingsService) UpdateImage(ctx context.Context, userID, kind, url string) error {
	var patch model.UserPatch
	switch kind {
	case ImageProfile:
		patch.ProfileImage = &url
	case ImageTheme:
		patch.ThemeImage = &url
	default:
		return apperror.ValidationFailed("image", "Unknown image type")
	}

	if err := s.users.Update(ctx, userID, patch); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return fmt.Errorf("service/settings: updating %s for user %s: %w", kind, userID, err)
	}

	return nil
}

// SettingsInput is the sparse settings payload. Nil means the field
// was not supplied and must be left untouched. A present-but-empty Bio
// clears the bio to absent — distinct from not supplying it.
//
// A password change requires all three password fields: the current
// password (re-auth), the new one, and its retype.
type SettingsInput struct {
	Bio            *string
	FullName       *string
	Username       *string
	Password       *string
	NewPassword    *string
	RetypePassword *string
}

func (in SettingsInput) passwordChangeRequested() bool {
	return in.Password != nil || in.NewPassword != nil || in.RetypePassword != nil
}

// UpdateSettings applies a sparse profile update for the acting user.
//
// The engine runs every validator applicable to the supplied fields
// and collects every failure into one field-keyed map — it never stops
// at the first. A non-empty map fails the whole update; no field is
// applied. Only then does it consult the store: a username collision
// with another user is a field-level conflict, and a requested
// password change must re-verify the current password before the new
// one is accepted. A failed re-auth blocks every field in the request,
// not just the password — the update is all-or-nothing, applied as a
// single store call.
func (s *SettingsService) UpdateSettings(ctx context.Context, actorID string, in SettingsInput) error {
	errs := map[string]string{}

	if in.Bio != nil && *in.Bio != "" {
		if msg := validate.Bio(*in.Bio); msg != "" {
			errs["bio"] = msg
		}
	}
	if in.Username != nil {
		if msg := validate.Username(*in.Username); msg != "" {
			errs["username"] = msg
		}
	}
	if in.FullName != nil {
		if msg := validate.FullName(*in.FullName); msg != "" {
			errs["fullName"] = msg
		}
	}
	if in.passwordChangeRequested() {
		newPass := deref(in.NewPassword)
		if msg := validate.Password(newPass); msg != "" {
			errs["password"] = msg
		} else if newPass != deref(in.RetypePassword) {
			errs["password"] = "The new passwords must be equal"
		}
	}

	if len(errs) > 0 {
		return apperror.ValidationMap(errs)
	}

	patch := model.UserPatch{}

	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)

		// Re-check uniqueness. Colliding with the acting user's own
		// current name is a no-op, not an error.
		existing, err := s.users.FindByUsername(ctx, trimmed)
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return fmt.Errorf("service/settings: checking username: %w", err)
		}
		if existing != nil && existing.ID != actorID {
			return apperror.ValidationMap(map[string]string{
				"username": "Username is already exist",
			})
		}

		patch.Username = &trimmed
	}

	if in.FullName != nil {
		trimmed := strings.TrimSpace(*in.FullName)
		patch.FullName = &trimmed
	}

	if in.Bio != nil {
		if *in.Bio == "" {
			patch.ClearBio = true
		} else {
			trimmed := strings.TrimSpace(*in.Bio)
			patch.Bio = &trimmed
		}
	}

	if in.passwordChangeRequested() {
		user, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return appErr
			}
			return fmt.Errorf("service/settings: fetching user %s: %w", actorID, err)
		}

		if !s.passwords.Verify(user.PasswordHash, deref(in.Password)) {
			return apperror.ValidationMap(map[string]string{
				"password": "Password is incorrect",
			})
		}

		hash, err := s.passwords.Hash(deref(in.NewPassword))
		if err != nil {
			return fmt.Errorf("service/settings: hashing new password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if patch.IsZero() {
		return nil
	}

	if err := s.users.Update(ctx, actorID, patch); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			// Usually a username uniqueness race past the check above.
			return appErr
		}
		return fmt.Errorf("service/settings: updating user %s: %w", actorID, err)
	}

	s.logger.Info("settings updated", slog.String("userID", actorID))

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
