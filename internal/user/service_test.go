// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zingbizz/blog-backend/internal/core"
	"github.com/zingbizz/blog-backend/internal/role"
)

type memRepo struct {
	users map[string]*User
	roles map[string][]int64
}

func newMemRepo() *memRepo {
	return &memRepo{
		users: map[string]*User{},
		roles: map[string][]int64{},
	}
}

func (m *memRepo) Create(_ context.Context, u *User, roleIDs []int64) error {
	m.users[u.ID] = u
	m.roles[u.ID] = roleIDs
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (m *memRepo) GetByUsername(
	_ context.Context,
	username string,
) (*User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memRepo) ExistsByUsername(
	_ context.Context,
	username string,
) (bool, error) {
	_, err := m.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (m *memRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) List(_ context.Context) ([]User, error) {
	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *memRepo) ReplaceRoles(
	_ context.Context,
	userID string,
	roleID int64,
) error {
	m.roles[userID] = []int64{roleID}
	return nil
}

func (m *memRepo) UpdatePasswordHash(
	_ context.Context,
	id, passwordHash string,
) error {
	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type memRoleRepo struct {
	rows map[string]int64
}

func (m *memRoleRepo) FindByName(
	_ context.Context,
	name string,
) (*role.Role, error) {
	id, ok := m.rows[name]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &role.Role{ID: id, Name: name}, nil
}

func (m *memRoleRepo) EnsureExists(_ context.Context, name string) error {
	if _, ok := m.rows[name]; !ok {
		m.rows[name] = int64(len(m.rows) + 1)
	}
	return nil
}

func (m *memRoleRepo) List(_ context.Context) ([]role.Role, error) {
	return nil, nil
}

func newTestService() (*Service, *memRepo) {
	repo := newMemRepo()
	roleRepo := &memRoleRepo{rows: map[string]int64{
		role.User:   1,
		role.Editor: 2,
		role.Admin:  3,
	}}
	return NewService(repo, roleRepo), repo
}

func TestCreateResolvesRoleIDs(t *testing.T) {
	svc, repo := newTestService()

	u, err := svc.Create(
		context.Background(),
		"alice",
		"Alice@Example.com",
		"hash",
		[]string{role.User, role.Editor},
	)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", u.Email, "emails are normalized")
	assert.Equal(t, []int64{1, 2}, repo.roles[u.ID])
}

func TestCreateFailsOnUnseededRole(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, &memRoleRepo{rows: map[string]int64{}})

	_, err := svc.Create(
		context.Background(), "alice", "a@b.c", "hash", []string{role.User})
	assert.ErrorIs(t, err, core.ErrRoleNotSeeded)
	assert.Empty(t, repo.users)
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the role set", func(t *testing.T) {
		svc, repo := newTestService()
		u, err := svc.Create(ctx, "alice", "a@b.c", "hash",
			[]string{role.User, role.Editor})
		require.NoError(t, err)

		require.NoError(t, svc.SetRole(ctx, u.ID, "Admin"))
		assert.Equal(t, []int64{3}, repo.roles[u.ID],
			"setting a role replaces, never appends")
	})

	t.Run("invalid label", func(t *testing.T) {
		svc, _ := newTestService()
		err := svc.SetRole(ctx, "any", "superuser")
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newTestService()
		err := svc.SetRole(ctx, "missing", "editor")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("valid label with missing seed row", func(t *testing.T) {
		repo := newMemRepo()
		svc := NewService(repo, &memRoleRepo{rows: map[string]int64{}})

		err := svc.SetRole(ctx, "any", "editor")
		assert.ErrorIs(t, err, core.ErrRoleNotSeeded,
			"a missing seed row is a deployment fault, not bad input")
		assert.NotErrorIs(t, err, core.ErrInvalidInput)
	})
}
