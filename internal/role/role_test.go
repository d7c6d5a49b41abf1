// AngelaMos | 2026
// role_test.go

package role

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zingbizz/blog-backend/internal/core"
)

func TestResolveLabel(t *testing.T) {
	assert.Equal(t, Admin, ResolveLabel("admin"))
	assert.Equal(t, Editor, ResolveLabel("editor"))
	assert.Equal(t, User, ResolveLabel("user"))

	// Unknown and empty labels resolve to the default role.
	assert.Equal(t, User, ResolveLabel("superuser"))
	assert.Equal(t, User, ResolveLabel(""))
}

func TestValid(t *testing.T) {
	for _, name := range All() {
		assert.True(t, Valid(name))
	}
	assert.False(t, Valid("root"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("Admin"), "role names are lowercase")
}

func TestHasPredicates(t *testing.T) {
	assert.True(t, HasAdmin([]string{User, Admin}))
	assert.False(t, HasAdmin([]string{User, Editor}))
	assert.False(t, HasAdmin(nil))

	assert.True(t, HasEditor([]string{Editor}))
	assert.False(t, HasEditor([]string{User}))
}

type fakeRepo struct {
	rows map[string]*Role
}

func (f *fakeRepo) FindByName(_ context.Context, name string) (*Role, error) {
	r, ok := f.rows[name]
	if !ok {
		return nil, core.ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) EnsureExists(_ context.Context, name string) error {
	if _, ok := f.rows[name]; ok {
		return nil
	}
	f.rows[name] = &Role{
		ID:        int64(len(f.rows) + 1),
		Name:      name,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeRepo) List(_ context.Context) ([]Role, error) {
	roles := make([]Role, 0, len(f.rows))
	for _, r := range f.rows {
		roles = append(roles, *r)
	}
	return roles, nil
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := &fakeRepo{rows: map[string]*Role{}}
	ctx := context.Background()

	require.NoError(t, Seed(ctx, repo))
	assert.Len(t, repo.rows, len(All()))

	first := map[string]int64{}
	for name, r := range repo.rows {
		first[name] = r.ID
	}

	// Running again must not create duplicates or reassign identity.
	require.NoError(t, Seed(ctx, repo))
	assert.Len(t, repo.rows, len(All()))
	for name, r := range repo.rows {
		assert.Equal(t, first[name], r.ID)
	}
}
