// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Email and Username are both UNIQUE in the store — every flow that
// creates or renames a user must be prepared for a constraint violation.
// Email is immutable after creation; there is no email-change flow.
//
// PasswordHash holds bcrypt output and is never empty for locally
// registered users. Federated users (Google sign-in) get a random
// placeholder hash that no password can match, so local login on such
// an account always fails closed.
//
// Bio is a pointer because "no bio" and "empty bio" are different
// states: the settings endpoint can explicitly clear it back to NULL.
type User struct {
	ID           string    `json:"id"           db:"id"`
	Email        string    `json:"email"        db:"email"`
	Username     string    `json:"username"     db:"username"`
	FullName     string    `json:"fullName"     db:"full_name"`
	Bio          *string   `json:"bio"          db:"bio"`
	PasswordHash string    `json:"-"            db:"password_hash"` // never serialized
	ProfileImage string    `json:"profileImage" db:"profile_image"`
	ThemeImage   string    `json:"themeImage"   db:"theme_image"`
	MediaCount   int       `json:"mediaCount"   db:"media_count"`
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    db:"updated_at"`
}

// UserPatch is a sparse update: only non-nil fields are applied.
//
// ClearBio is separate from Bio because a patch must distinguish three
// states for the bio column: leave untouched (Bio nil, ClearBio false),
// set a value (Bio non-nil), and reset to NULL (ClearBio true).
type UserPatch struct {
	Username     *string
	FullName     *string
	Bio          *string
	ClearBio     bool
	PasswordHash *string
	ProfileImage *string
	ThemeImage   *string
}

// IsZero reports whether the patch carries no change at all.
func (p UserPatch) IsZero() bool {
	return p.Username == nil &&
		p.FullName == nil &&
		p.Bio == nil &&
		!p.ClearBio &&
		p.PasswordHash == nil &&
		p.ProfileImage == nil &&
		p.ThemeImage == nil
}
