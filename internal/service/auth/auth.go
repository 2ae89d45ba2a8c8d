// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"

	"rentorio-service/internal/domain/user"
	xerrors "rentorio-service/internal/pkg/errors"
	"rentorio-service/internal/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Limiter throttles login attempts. Implemented by limiter.LoginLimiter.
type Limiter interface {
	Allow(ctx context.Context, ip, email string) (bool, int64, error)
	Reset(ctx context.Context, ip, email string) error
}

type AuthService struct {
	userRepo user.Repository
	tokens   *token.Manager
	limiter  Limiter
	logger   *zap.Logger
}

func NewAuthService(userRepo user.Repository, tokens *token.Manager, limiter Limiter, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		limiter:  limiter,
		logger:   logger,
	}
}

// Register creates a new account. The role defaults to customer.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	role := req.Role
	if role == "" {
		role = user.RoleCustomer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)
	return u, nil
}

// Login verifies credentials and issues an access token. Failed attempts
// count against the per-(ip, email) limit; a wrong password and an unknown
// email are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, ip string, req *user.LoginRequest) (*user.LoginResponse, error) {
	if s.limiter != nil {
		allowed, remaining, err := s.limiter.Allow(ctx, ip, req.Email)
		if err != nil {
			s.logger.Warn("login rate limit check failed", zap.Error(err))
		} else if !allowed {
			s.logger.Warn("login rate limited",
				zap.String("ip", ip),
				zap.Int64("remaining", remaining),
			)
			return nil, xerrors.Wrap(xerrors.ErrRateLimited, "too many login attempts")
		}
	}

	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "invalid email or password")
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "invalid email or password")
	}

	signed, err := s.tokens.Generate(u)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, ip, req.Email); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	s.logger.Info("user logged in", zap.Int64("user_id", u.ID))

	return &user.LoginResponse{Token: signed, User: u}, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *AuthService) ValidateToken(raw string) (*token.Claims, error) {
	return s.tokens.Verify(raw)
}
