// AngelaMos | 2026
// role.go

package role

import (
	"time"
)

// The role set is a fixed enumeration. Exactly one row per name exists in
// the store; Seed creates missing rows at startup before traffic is served.
const (
	User   = "user"
	Editor = "editor"
	Admin  = "admin"
)

func All() []string {
	return []string{User, Editor, Admin}
}

func Valid(name string) bool {
	switch name {
	case User, Editor, Admin:
		return true
	}
	return false
}

// ResolveLabel maps a requested signup label to a role name. Unrecognized
// or empty labels resolve to the default USER role.
func ResolveLabel(label string) string {
	switch label {
	case "admin":
		return Admin
	case "editor":
		return Editor
	default:
		return User
	}
}

func HasAdmin(names []string) bool {
	for _, name := range names {
		if name == Admin {
			return true
		}
	}
	return false
}

func HasEditor(names []string) bool {
	for _, name := range names {
		if name == Editor {
			return true
		}
	}
	return false
}

type Role struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
