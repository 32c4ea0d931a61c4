package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andikarya/go-user-service/internal/domain/entity"
	repo "github.com/andikarya/go-user-service/internal/domain/repository"
	"github.com/andikarya/go-user-service/internal/infrastructure/otpstore"
	"github.com/andikarya/go-user-service/pkg/helpers"
	"github.com/andikarya/go-user-service/pkg/mailer"
	tpl "github.com/andikarya/go-user-service/pkg/mailer/templates"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound and ErrPasswordMismatch stay distinct so the transport
	// layer can keep the original status split (400 vs 403) while returning
	// the same generic message for both.
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordMismatch  = errors.New("password mismatch")
	ErrInvalidOTP        = errors.New("invalid or expired otp")
	ErrPasswordUnchanged = errors.New("new password equals the current password")
	ErrInvalidSession    = errors.New("invalid session token")
)

// Service orchestrates registration, login and password recovery as state
// transitions over a user record.
type Service struct {
	Repo   repo.UserRepository
	OTP    otpstore.Store
	Pub    *helpers.RabbitPublisher // optional; OTP mail is skipped when nil
	Logger *logrus.Logger
	OTPTTL time.Duration
}

func NewService(r repo.UserRepository, otp otpstore.Store, pub *helpers.RabbitPublisher, logger *logrus.Logger, otpTTL time.Duration) *Service {
	return &Service{Repo: r, OTP: otp, Pub: pub, Logger: logger, OTPTTL: otpTTL}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	FullName        string
	Bio             string
	ProfileImageURL string
}

// Register creates the account with a fresh salt and hashed credential.
// Uniqueness is enforced by the store's unique index on email, so there is no
// separate existence check to race against.
func (s *Service) Register(ctx context.Context, in RegisterInput) (entity.PublicUser, error) {
	salt, err := helpers.RandomToken()
	if err != nil {
		return entity.PublicUser{}, err
	}
	u := &entity.User{
		Username:        in.Username,
		Email:           in.Email,
		FullName:        in.FullName,
		Bio:             in.Bio,
		ProfileImageURL: in.ProfileImageURL,
		Password:        helpers.HashCredential(salt, in.Password),
		Salt:            salt,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return entity.PublicUser{}, ErrEmailTaken
		}
		return entity.PublicUser{}, err
	}
	return u.Public(), nil
}

// Login verifies the credential and rotates the session token. A failed
// verification leaves the stored token untouched.
func (s *Service) Login(ctx context.Context, email, password string) (string, entity.PublicUser, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", entity.PublicUser{}, ErrUserNotFound
		}
		return "", entity.PublicUser{}, err
	}
	if !helpers.CredentialEqual(helpers.HashCredential(u.Salt, password), u.Password) {
		return "", entity.PublicUser{}, ErrPasswordMismatch
	}
	token, err := helpers.SessionToken(u.Password)
	if err != nil {
		return "", entity.PublicUser{}, err
	}
	if err := s.Repo.UpdateSessionToken(ctx, u.ID, token); err != nil {
		return "", entity.PublicUser{}, err
	}
	return token, u.Public(), nil
}

// ForgotPassword stores a fresh 6-digit challenge (overwriting any pending
// one) and hands the reset mail off to the email worker. The code is also
// returned so the demo response can expose it.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	code, err := helpers.GenOTPCode()
	if err != nil {
		return "", err
	}
	if err := s.OTP.Put(ctx, email, code, s.OTPTTL); err != nil {
		return "", err
	}
	if s.Pub != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: tpl.PasswordResetOTP,
			Data: map[string]any{
				"Username":  u.Username,
				"OTP":       code,
				"ExpiresIn": s.OTPTTL.String(),
			},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue reset email")
		}
	}
	return code, nil
}

// ResetPassword consumes a pending challenge and rotates the credential pair.
// The new password must differ from the current one.
func (s *Service) ResetPassword(ctx context.Context, email, otp, newPassword string) (entity.PublicUser, error) {
	code, ok, err := s.OTP.Get(ctx, email)
	if err != nil {
		return entity.PublicUser{}, err
	}
	if !ok || code != otp {
		return entity.PublicUser{}, ErrInvalidOTP
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.PublicUser{}, ErrUserNotFound
		}
		return entity.PublicUser{}, err
	}
	if helpers.CredentialEqual(helpers.HashCredential(u.Salt, newPassword), u.Password) {
		return entity.PublicUser{}, ErrPasswordUnchanged
	}
	salt, err := helpers.RandomToken()
	if err != nil {
		return entity.PublicUser{}, err
	}
	if err := s.Repo.UpdateCredentials(ctx, u.ID, helpers.HashCredential(salt, newPassword), salt); err != nil {
		return entity.PublicUser{}, err
	}
	if err := s.OTP.Delete(ctx, email); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("failed to delete consumed otp")
	}
	u.Password = helpers.HashCredential(salt, newPassword)
	u.Salt = salt
	return u.Public(), nil
}

// Logout drops the stored session token so the cookie value stops resolving
// to an account.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if err := s.Repo.ClearSessionToken(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Authenticate resolves a session token to its user. It is the guard behind
// protected routes and has no side effects.
func (s *Service) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	u, err := s.Repo.GetBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return u, nil
}
