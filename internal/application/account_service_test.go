package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andikarya/go-user-service/internal/application"
	"github.com/andikarya/go-user-service/internal/domain/entity"
	repo "github.com/andikarya/go-user-service/internal/domain/repository"
	"github.com/andikarya/go-user-service/internal/infrastructure/otpstore"
)

// memRepo mirrors the store contract: unique email on insert, atomic
// per-field writes, not-found sentinels.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entity.User

	updateSessionCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, users: make(map[int64]*entity.User)}
}

func (m *memRepo) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) GetBySessionToken(_ context.Context, token string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.SessionToken != nil && *e.SessionToken == token {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memRepo) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.users[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	e.Username = u.Username
	e.FullName = u.FullName
	e.Bio = u.Bio
	e.ProfileImageURL = u.ProfileImageURL
	e.UpdatedAt = time.Now()
	return nil
}

func (m *memRepo) UpdateCredentials(_ context.Context, id int64, password, salt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	e.Password = password
	e.Salt = salt
	return nil
}

func (m *memRepo) UpdateSessionToken(_ context.Context, id int64, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateSessionCalls++
	e, ok := m.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	e.SessionToken = &token
	return nil
}

func (m *memRepo) ClearSessionToken(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	e.SessionToken = nil
	return nil
}

func (m *memRepo) List(_ context.Context, limit, offset int) ([]entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.User
	for id := int64(1); id < m.nextID; id++ {
		if e, ok := m.users[id]; ok {
			out = append(out, *e)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *memRepo) sessionToken(t *testing.T, email string) *string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == email {
			return e.SessionToken
		}
	}
	t.Fatalf("no user with email %s", email)
	return nil
}

func newTestService() (*application.Service, *memRepo) {
	r := newMemRepo()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := application.NewService(r, otpstore.NewMemory(), nil, logger, 5*time.Minute)
	return svc, r
}

func register(t *testing.T, svc *application.Service, username, email, password string) entity.PublicUser {
	t.Helper()
	pub, err := svc.Register(context.Background(), application.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return pub
}

func TestRegisterReturnsProjectionWithoutSecrets(t *testing.T) {
	svc, r := newTestService()
	pub := register(t, svc, "alice", "a@x.com", "pw123")

	assert.Equal(t, int64(1), pub.ID)
	assert.Equal(t, "alice", pub.Username)
	assert.Equal(t, "a@x.com", pub.Email)

	u, err := r.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, u.Salt)
	assert.NotEmpty(t, u.Password)
	assert.NotEqual(t, "pw123", u.Password)
	assert.Nil(t, u.SessionToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc, "alice", "a@x.com", "pw123")

	_, err := svc.Register(context.Background(), application.RegisterInput{
		Username: "alice2", Email: "a@x.com", Password: "pw456",
	})
	assert.ErrorIs(t, err, application.ErrEmailTaken)
}

func TestLoginIssuesFreshTokenEachTime(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc, "alice", "a@x.com", "pw123")

	t1, pub, err := svc.Login(context.Background(), "a@x.com", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, t1)
	assert.Equal(t, "alice", pub.Username)

	t2, _, err := svc.Login(context.Background(), "a@x.com", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, t2)
	assert.NotEqual(t, t1, t2)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()
	_, _, err := svc.Login(context.Background(), "nobody@x.com", "pw")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestLoginWrongPasswordDoesNotTouchToken(t *testing.T) {
	svc, r := newTestService()
	register(t, svc, "alice", "a@x.com", "pw123")

	tok, _, err := svc.Login(context.Background(), "a@x.com", "pw123")
	require.NoError(t, err)
	calls := r.updateSessionCalls

	_, _, err = svc.Login(context.Background(), "a@x.com", "wrong")
	assert.ErrorIs(t, err, application.ErrPasswordMismatch)
	assert.Equal(t, calls, r.updateSessionCalls, "failed login must not write a token")

	stored := r.sessionToken(t, "a@x.com")
	require.NotNil(t, stored)
	assert.Equal(t, tok, *stored)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc, "alice", "a@x.com", "pw123")
	tok, _, err := svc.Login(context.Background(), "a@x.com", "pw123")
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	_, err = svc.Authenticate(context.Background(), "bogus")
	assert.ErrorIs(t, err, application.ErrInvalidSession)
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	svc, r := newTestService()
	pub := register(t, svc, "alice", "a@x.com", "pw123")

	tok, _, err := svc.Login(ctx, "a@x.com", "pw123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pub.ID))
	assert.Nil(t, r.sessionToken(t, "a@x.com"))

	_, err = svc.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, application.ErrInvalidSession)

	assert.ErrorIs(t, svc.Logout(ctx, 999), application.ErrUserNotFound)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.ForgotPassword(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestForgotThenResetConsumesOTP(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	register(t, svc, "alice", "a@x.com", "pw123")

	code, err := svc.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	pub, err := svc.ResetPassword(ctx, "a@x.com", code, "pw456")
	require.NoError(t, err)
	assert.Equal(t, "alice", pub.Username)

	// consumed: the same code cannot authorize a second reset
	_, err = svc.ResetPassword(ctx, "a@x.com", code, "pw789")
	assert.ErrorIs(t, err, application.ErrInvalidOTP)

	// old password no longer works, new one does
	_, _, err = svc.Login(ctx, "a@x.com", "pw123")
	assert.ErrorIs(t, err, application.ErrPasswordMismatch)
	_, _, err = svc.Login(ctx, "a@x.com", "pw456")
	assert.NoError(t, err)
}

func TestResetPasswordWrongOTP(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	register(t, svc, "alice", "a@x.com", "pw123")

	code, err := svc.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	_, err = svc.ResetPassword(ctx, "a@x.com", wrong, "pw456")
	assert.ErrorIs(t, err, application.ErrInvalidOTP)
}

func TestResetPasswordSamePasswordConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	register(t, svc, "alice", "a@x.com", "pw123")

	code, err := svc.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = svc.ResetPassword(ctx, "a@x.com", code, "pw123")
	assert.ErrorIs(t, err, application.ErrPasswordUnchanged)

	// challenge not consumed by the failed attempt
	_, err = svc.ResetPassword(ctx, "a@x.com", code, "pw456")
	assert.NoError(t, err)
}

func TestForgotPasswordOverwritesPendingChallenge(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	register(t, svc, "alice", "a@x.com", "pw123")

	first, err := svc.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)
	second, err := svc.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)

	if first != second {
		_, err = svc.ResetPassword(ctx, "a@x.com", first, "pw456")
		assert.ErrorIs(t, err, application.ErrInvalidOTP, "stale challenge must not be accepted")
	}
	_, err = svc.ResetPassword(ctx, "a@x.com", second, "pw456")
	assert.NoError(t, err)
}

func TestListUsersPagination(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	register(t, svc, "alice", "a@x.com", "pw123")
	register(t, svc, "bob", "b@x.com", "pw123")
	register(t, svc, "carol", "c@x.com", "pw123")

	users, meta, err := svc.ListUsers(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, int64(2), meta.TotalPages)
	assert.Equal(t, 2, meta.Limit)

	users, meta, err = svc.ListUsers(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 2, meta.CurrentPage)
}

func TestUpdateProfilePartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	pub := register(t, svc, "alice", "a@x.com", "pw123")

	updated, err := svc.UpdateProfile(ctx, pub.ID, application.UpdateProfileInput{Bio: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username, "unset fields keep their value")
	assert.Equal(t, "hello", updated.Bio)

	_, err = svc.UpdateProfile(ctx, 999, application.UpdateProfileInput{Bio: "x"})
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

// Full lifecycle: register, two logins with distinct tokens, forgot, reset,
// and rejection of the consumed challenge.
func TestAccountLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	pub := register(t, svc, "alice", "a@x.com", "pw123")
	assert.Equal(t, int64(1), pub.ID)

	t1, _, err := svc.Login(ctx, "a@x.com", "pw123")
	require.NoError(t, err)
	require.NotEmpty(t, t1)

	t2, _, err := svc.Login(ctx, "a@x.com", "pw123")
	require.NoError(t, err)
	require.NotEqual(t, t1, t2)

	code, err := svc.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, code, 6)

	_, err = svc.ResetPassword(ctx, "a@x.com", code, "pw456")
	require.NoError(t, err)

	_, err = svc.ResetPassword(ctx, "a@x.com", code, "pw789")
	assert.ErrorIs(t, err, application.ErrInvalidOTP)
}
