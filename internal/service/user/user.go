// internal/service/user/user.go
package user

import (
	"context"

	"rentorio-service/internal/domain/user"

	"go.uber.org/zap"
)

type UserService struct {
	userRepo user.Repository
	logger   *zap.Logger
}

func NewUserService(userRepo user.Repository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]user.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, req *user.UpdateUserRequest) (*user.User, error) {
	u, err := s.userRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated", zap.Int64("user_id", id))
	return u, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
