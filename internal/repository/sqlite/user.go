package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"modernc.org/sqlite"

	"github.com/yaronsh/mediahub/internal/apperror"
	"github.com/yaronsh/mediahub/internal/model"
	"github.com/yaronsh/mediahub/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// SQLite extended result codes for uniqueness violations.
const (
	sqliteConstraintUnique     = 2067
	sqliteConstraintPrimaryKey = 1555
)

const userColumns = `id, email, username, full_name, bio, password_hash,
	profile_image, theme_image, media_count, created_at, updated_at`

// Create inserts a new user. The ID is assigned here if the caller
// left it empty. A UNIQUE violation on email or username comes back as
// an apperror conflict carrying the exact user-facing message, so a
// registration that lost a race past its pre-check still fails as a
// conflict and never as a generic fault.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = xid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, username, full_name, bio, password_hash,
			profile_image, theme_image, media_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.Username,
		user.FullName,
		user.Bio,
		user.PasswordHash,
		user.ProfileImage,
		user.ThemeImage,
		user.MediaCount,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("sqlite: inserting user %s: %w", user.Email, err)
	}

	return nil
}

// FindByID retrieves a user by internal ID.
func (db *DB) FindByID(ctx context.Context, id string) (*model.User, error) {
	return db.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// FindByEmail retrieves a user by email.
func (db *DB) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// FindByUsername retrieves a user by username.
func (db *DB) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return db.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// FindByEmailOrUsername is a single lookup covering both columns.
// When separate rows match the email and the username, the email match
// is returned, which gives registration its email-precedence conflict.
func (db *DB) FindByEmailOrUsername(ctx context.Context, email, uname string) (*model.User, error) {
	return db.findOne(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? OR username = ?
		 ORDER BY email = ? DESC LIMIT 1`,
		email, uname, email,
	)
}

// Update applies a sparse patch in a single UPDATE statement. Only the
// fields present in the patch appear in the SET clause, so concurrent
// updates to disjoint fields cannot clobber each other.
func (db *DB) Update(ctx context.Context, id string, patch model.UserPatch) error {
	if patch.IsZero() {
		return nil
	}

	var (
		set  []string
		args []any
	)
	add := func(column string, value any) {
		set = append(set, column+" = ?")
		args = append(args, value)
	}

	if patch.Username != nil {
		add("username", *patch.Username)
	}
	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	switch {
	case patch.ClearBio:
		set = append(set, "bio = NULL")
	case patch.Bio != nil:
		add("bio", *patch.Bio)
	}
	if patch.PasswordHash != nil {
		add("password_hash", *patch.PasswordHash)
	}
	if patch.ProfileImage != nil {
		add("profile_image", *patch.ProfileImage)
	}
	if patch.ThemeImage != nil {
		add("theme_image", *patch.ThemeImage)
	}
	add("updated_at", time.Now().UTC())

	query := "UPDATE users SET " + strings.Join(set, ", ") + " WHERE id = ?"
	args = append(args, id)

	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		if conflict := asConflict(err); conflict != nil {
			return conflict
		}
		return fmt.Errorf("sqlite: updating user %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("user")
	}

	return nil
}

func (db *DB) findOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	var (
		u   model.User
		bio sql.NullString
	)

	err := db.conn.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FullName,
		&bio,
		&u.PasswordHash,
		&u.ProfileImage,
		&u.ThemeImage,
		&u.MediaCount,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("sqlite: querying user: %w", err)
	}

	if bio.Valid {
		u.Bio = &bio.String
	}

	return &u, nil
}

// asConflict translates a SQLite uniqueness violation into the
// apperror conflict for the colliding column, or returns nil for any
// other error. The driver's message names the column, e.g.
// "UNIQUE constraint failed: users.email".
func asConflict(err error) *apperror.AppError {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return nil
	}
	if se.Code() != sqliteConstraintUnique && se.Code() != sqliteConstraintPrimaryKey {
		return nil
	}

	msg := se.Error()
	switch {
	case strings.Contains(msg, "users.email"):
		return apperror.Conflict("email", "Email is already exist")
	case strings.Contains(msg, "users.username"):
		return apperror.Conflict("username", "Username is already exist")
	default:
		return apperror.Conflict("", "user already exists")
	}
}
