package repository

import (
	"context"
	"errors"

	"github.com/andikarya/go-user-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email unique index is
	// violated. Uniqueness lives in the store so two concurrent registrations
	// cannot both win.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository is the user-record store the account service collaborates
// with. Each write method is a single atomic statement per row.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetBySessionToken(ctx context.Context, token string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// Update writes the mutable profile fields (username, fullname, bio,
	// profile image).
	Update(ctx context.Context, u *entity.User) error
	// UpdateCredentials replaces the password/salt pair in one statement.
	UpdateCredentials(ctx context.Context, id int64, password, salt string) error
	// UpdateSessionToken replaces the session token in one statement.
	UpdateSessionToken(ctx context.Context, id int64, token string) error
	// ClearSessionToken drops the session token so the account is logged out.
	ClearSessionToken(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
	Count(ctx context.Context) (int64, error)
}
