// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zingbizz/blog-backend/internal/core"
	"github.com/zingbizz/blog-backend/internal/role"
)

type Service struct {
	repo     Repository
	roleRepo role.Repository
}

func NewService(repo Repository, roleRepo role.Repository) *Service {
	return &Service{repo: repo, roleRepo: roleRepo}
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) ExistsByUsername(
	ctx context.Context,
	username string,
) (bool, error) {
	return s.repo.ExistsByUsername(ctx, username)
}

func (s *Service) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(email))
}

// Create persists a new user with the given resolved role names. Role rows
// are expected to exist already; a missing row means the seed routine never
// ran and surfaces as ErrRoleNotSeeded.
func (s *Service) Create(
	ctx context.Context,
	username, email, passwordHash string,
	roleNames []string,
) (*User, error) {
	roleIDs := make([]int64, 0, len(roleNames))
	for _, name := range roleNames {
		r, err := s.roleRepo.FindByName(ctx, name)
		if err != nil {
			if core.IsNotFound(err) {
				return nil, fmt.Errorf(
					"role %s: %w", name, core.ErrRoleNotSeeded)
			}
			return nil, err
		}
		roleIDs = append(roleIDs, r.ID)
	}

	u := &User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Roles:        roleNames,
	}

	if err := s.repo.Create(ctx, u, roleIDs); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) UpdatePasswordHash(
	ctx context.Context,
	id, passwordHash string,
) error {
	return s.repo.UpdatePasswordHash(ctx, id, passwordHash)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// SetRole replaces the user's role set with the single role named by label.
func (s *Service) SetRole(ctx context.Context, id, label string) error {
	name := strings.ToLower(label)
	if !role.Valid(name) {
		return fmt.Errorf("set role: invalid role %q: %w",
			label, core.ErrInvalidInput)
	}

	// A valid label whose row is missing means the seed routine never ran,
	// which is a deployment fault rather than bad input.
	r, err := s.roleRepo.FindByName(ctx, name)
	if err != nil {
		if core.IsNotFound(err) {
			return fmt.Errorf("set role: role %s: %w",
				name, core.ErrRoleNotSeeded)
		}
		return err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.repo.ReplaceRoles(ctx, id, r.ID)
}
