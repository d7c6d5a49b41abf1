// AngelaMos | 2026
// repository.go

package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/zingbizz/blog-backend/internal/core"
)

type Repository interface {
	FindByName(ctx context.Context, name string) (*Role, error)
	EnsureExists(ctx context.Context, name string) error
	List(ctx context.Context) ([]Role, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) FindByName(
	ctx context.Context,
	name string,
) (*Role, error) {
	query := `
		SELECT id, name, created_at
		FROM roles
		WHERE name = $1`

	var role Role
	err := r.db.GetContext(ctx, &role, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find role %s: %w", name, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find role %s: %w", name, err)
	}

	return &role, nil
}

func (r *repository) EnsureExists(ctx context.Context, name string) error {
	query := `
		INSERT INTO roles (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("ensure role %s: %w", name, err)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Role, error) {
	query := `
		SELECT id, name, created_at
		FROM roles
		ORDER BY id`

	var roles []Role
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	return roles, nil
}

// Seed guarantees one persisted row per enumeration member. Idempotent;
// runs once per process before the server accepts traffic.
func Seed(ctx context.Context, repo Repository) error {
	for _, name := range All() {
		if err := repo.EnsureExists(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
