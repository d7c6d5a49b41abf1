// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/zingbizz/blog-backend/internal/core"
	"github.com/zingbizz/blog-backend/internal/role"
)

type User struct {
	ID           string          `db:"id"`
	Username     string          `db:"username"`
	Email        string          `db:"email"`
	PasswordHash string          `db:"password_hash"`
	Roles        core.StringList `db:"roles"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return role.HasAdmin(u.Roles)
}

func (u *User) IsEditor() bool {
	return role.HasEditor(u.Roles)
}
