// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zingbizz/blog-backend/internal/core"
	"github.com/zingbizz/blog-backend/internal/role"
	"github.com/zingbizz/blog-backend/internal/user"
)

type fakeUserRepo struct {
	users map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*user.User{}}
}

func (f *fakeUserRepo) Create(
	_ context.Context,
	u *user.User,
	_ []int64,
) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return user.ErrDuplicateUsername
		}
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	clone := *u
	f.users[u.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(
	_ context.Context,
	id string,
) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByUsername(
	_ context.Context,
	username string,
) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUserRepo) ExistsByUsername(
	_ context.Context,
	username string,
) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmail(
	_ context.Context,
	email string,
) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]user.User, error) {
	users := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) ReplaceRoles(
	_ context.Context,
	userID string,
	_ int64,
) error {
	if _, ok := f.users[userID]; !ok {
		return core.ErrNotFound
	}
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(
	_ context.Context,
	id, passwordHash string,
) error {
	u, ok := f.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeRoleRepo struct {
	rows map[string]int64
}

func seededRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{rows: map[string]int64{
		role.User:   1,
		role.Editor: 2,
		role.Admin:  3,
	}}
}

func (f *fakeRoleRepo) FindByName(
	_ context.Context,
	name string,
) (*role.Role, error) {
	id, ok := f.rows[name]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &role.Role{ID: id, Name: name}, nil
}

func (f *fakeRoleRepo) EnsureExists(_ context.Context, name string) error {
	if _, ok := f.rows[name]; !ok {
		f.rows[name] = int64(len(f.rows) + 1)
	}
	return nil
}

func (f *fakeRoleRepo) List(_ context.Context) ([]role.Role, error) {
	roles := make([]role.Role, 0, len(f.rows))
	for name, id := range f.rows {
		roles = append(roles, role.Role{ID: id, Name: name})
	}
	return roles, nil
}

func newTestAuthService(t *testing.T, roleRepo role.Repository) *Service {
	t.Helper()

	userSvc := user.NewService(newFakeUserRepo(), roleRepo)
	jwtManager := newTestJWTManager(t, time.Hour)

	return NewService(userSvc, jwtManager, nil, time.Hour)
}

func TestRegisterDefaultsToUserRole(t *testing.T) {
	svc := newTestAuthService(t, seededRoleRepo())

	u, err := svc.Register(context.Background(), SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{role.User}, []string(u.Roles))
	assert.NotEqual(t, "secret123", u.PasswordHash,
		"the plaintext must never be stored")
	assert.NotEmpty(t, u.ID)
}

func TestRegisterResolvesRequestedRoles(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		want      []string
	}{
		{"admin and editor", []string{"admin", "editor"}, []string{role.Admin, role.Editor}},
		{"unknown label falls back", []string{"wizard"}, []string{role.User}},
		{"mixed with duplicates", []string{"editor", "editor", "nope"}, []string{role.Editor, role.User}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(t, seededRoleRepo())

			u, err := svc.Register(context.Background(), SignupRequest{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "secret123",
				Roles:    tt.requested,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, []string(u.Roles))
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc := newTestAuthService(t, seededRoleRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, SignupRequest{
		Username: "alice", Email: "other@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUsernameExists)

	_, err = svc.Register(ctx, SignupRequest{
		Username: "bob", Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

// raceUserRepo simulates a concurrent signup winning between the existence
// checks and the insert: the checks see nothing, the unique constraint fires.
type raceUserRepo struct{ *fakeUserRepo }

func (r *raceUserRepo) ExistsByUsername(
	context.Context,
	string,
) (bool, error) {
	return false, nil
}

func (r *raceUserRepo) ExistsByEmail(context.Context, string) (bool, error) {
	return false, nil
}

func TestRegisterDuplicateRace(t *testing.T) {
	repo := newFakeUserRepo()
	userSvc := user.NewService(&raceUserRepo{repo}, seededRoleRepo())
	svc := NewService(userSvc, newTestJWTManager(t, time.Hour), nil, time.Hour)
	ctx := context.Background()

	repo.users["u1"] = &user.User{
		ID:       "u1",
		Username: "alice",
		Email:    "alice@example.com",
	}

	_, err := svc.Register(ctx, SignupRequest{
		Username: "bob", Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailExists,
		"an email collision must not report the username as taken")

	_, err = svc.Register(ctx, SignupRequest{
		Username: "alice", Email: "new@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestRegisterFailsWhenRolesNotSeeded(t *testing.T) {
	svc := newTestAuthService(t, &fakeRoleRepo{rows: map[string]int64{}})

	_, err := svc.Register(context.Background(), SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, core.ErrRoleNotSeeded)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestAuthService(t, seededRoleRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Roles:    []string{"editor"},
	})
	require.NoError(t, err)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		u, token, err := svc.Authenticate(ctx, "alice", "secret123")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.Equal(t, "alice", u.Username)

		claims, err := svc.jwt.VerifySessionToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, []string{role.Editor}, claims.Roles)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, token, err := svc.Authenticate(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, token, err := svc.Authenticate(ctx, "mallory", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
	})
}
