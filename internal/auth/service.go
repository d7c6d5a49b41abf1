// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zingbizz/blog-backend/internal/core"
	"github.com/zingbizz/blog-backend/internal/middleware"
	"github.com/zingbizz/blog-backend/internal/role"
	"github.com/zingbizz/blog-backend/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
)

type Service struct {
	users       *user.Service
	jwt         *JWTManager
	redis       *redis.Client
	denylistTTL time.Duration
}

func NewService(
	users *user.Service,
	jwt *JWTManager,
	redisClient *redis.Client,
	sessionExpire time.Duration,
) *Service {
	return &Service{
		users:       users,
		jwt:         jwt,
		redis:       redisClient,
		denylistTTL: sessionExpire,
	}
}

// Authenticate verifies the credentials and issues a session token bound to
// the user's identity and current role set. Unknown users get a dummy hash
// verification so response timing does not leak account existence.
func (s *Service) Authenticate(
	ctx context.Context,
	username, password string,
) (*user.User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if core.IsNotFound(err) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(password, nil)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		password,
		&u.PasswordHash,
	)
	if err != nil {
		return nil, "", fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, "", ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.users.UpdatePasswordHash(ctx, u.ID, newHash)
	}

	token, err := s.jwt.CreateSessionToken(SessionTokenClaims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.Roles,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create session token: %w", err)
	}

	return u, token, nil
}

// Register creates a user with the resolved role set. Requested labels that
// do not name a privileged role fall back to the default role; no labels at
// all means the default role.
func (s *Service) Register(
	ctx context.Context,
	req SignupRequest,
) (*user.User, error) {
	usernameTaken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if usernameTaken {
		return nil, ErrUsernameExists
	}

	emailTaken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if emailTaken {
		return nil, ErrEmailExists
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roleNames := resolveRoles(req.Roles)

	u, err := s.users.Create(
		ctx,
		req.Username,
		req.Email,
		passwordHash,
		roleNames,
	)
	if err != nil {
		// The existence checks above can lose a race against a concurrent
		// signup; the unique constraint tells us which field collided.
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			return nil, ErrEmailExists
		case errors.Is(err, core.ErrDuplicateKey):
			return nil, ErrUsernameExists
		default:
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	return u, nil
}

// resolveRoles maps requested labels onto the fixed role enumeration,
// deduplicated and in request order. Absent or unrecognized labels resolve
// to the default role.
func resolveRoles(labels []string) []string {
	if len(labels) == 0 {
		return []string{role.User}
	}

	seen := make(map[string]struct{}, len(labels))
	names := make([]string, 0, len(labels))
	for _, label := range labels {
		name := role.ResolveLabel(label)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

// VerifyAccessToken validates the token signature and claims, then rejects
// tokens belonging to users deleted since issuance. Satisfies
// middleware.TokenVerifier.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifySessionToken(ctx, token)
	if err != nil {
		return nil, err
	}

	denied, err := s.IsUserDenylisted(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("check denylist: %w", err)
	}
	if denied {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

// RevokeUserSessions denylists the user id for the full session lifetime so
// any token issued before deletion stops working immediately. Satisfies
// user.SessionRevoker.
func (s *Service) RevokeUserSessions(
	ctx context.Context,
	userID string,
) error {
	key := denylistKey(userID)

	if err := s.redis.Set(ctx, key, "1", s.denylistTTL).Err(); err != nil {
		return fmt.Errorf("denylist user: %w", err)
	}

	return nil
}

func (s *Service) IsUserDenylisted(
	ctx context.Context,
	userID string,
) (bool, error) {
	exists, err := s.redis.Exists(ctx, denylistKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("check denylist: %w", err)
	}

	return exists > 0, nil
}

func denylistKey(userID string) string {
	return "denylist:user:" + userID
}
