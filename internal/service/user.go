package service

import (
	"context"
	"log/slog"

	"github.com/inkwell/inkwell-server/internal/dto"
	"github.com/inkwell/inkwell-server/internal/logger"
	"github.com/inkwell/inkwell-server/internal/store"
)

// UserService exposes users in their transfer form.
type UserService struct {
	store  store.UserStore
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.UserStore, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// ListUsers returns every user with their posts.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, storeError(ctx, s.logger, "list users", err)
	}
	return dto.UsersFromEntities(users), nil
}

// GetUser returns a user with their posts.
func (s *UserService) GetUser(ctx context.Context, id int64) (*dto.User, error) {
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, storeError(ctx, s.logger, "get user", err)
	}
	out := dto.UserFromEntity(u)
	return &out, nil
}

// CreateUser stores a new user. A fresh user has no posts.
func (s *UserService) CreateUser(ctx context.Context, req dto.UserRequest) (*dto.User, error) {
	u := req.ToEntity(0)
	if _, err := s.store.CreateUser(ctx, u); err != nil {
		return nil, storeError(ctx, s.logger, "create user", err)
	}

	logger.FromContext(ctx, s.logger).Info("user created", "user_id", u.ID)

	out := dto.UserFromEntity(u)
	return &out, nil
}

// UpdateUser replaces a user's name and email and returns the stored user.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req dto.UserRequest) (*dto.User, error) {
	if err := s.store.UpdateUser(ctx, req.ToEntity(id)); err != nil {
		return nil, storeError(ctx, s.logger, "update user", err)
	}

	logger.FromContext(ctx, s.logger).Info("user updated", "user_id", id)

	return s.GetUser(ctx, id)
}

// DeleteUser removes a user and their posts.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return storeError(ctx, s.logger, "delete user", err)
	}

	logger.FromContext(ctx, s.logger).Info("user deleted", "user_id", id)
	return nil
}
