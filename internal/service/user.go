package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
)

// UserService cubre la gestión de cuentas reservada a administradores.
type UserServiceInterface interface {
	List(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, callerID, id int64) error
}

type userService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewUserService(log *slog.Logger, userRepo storage.UserStorage) UserServiceInterface {
	return &userService{log: log, userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	const op = "service.UserService.List"
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.log.Error("failed to list users", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Delete elimina una cuenta. Un administrador no puede borrarse a sí mismo.
func (s *userService) Delete(ctx context.Context, callerID, id int64) error {
	const op = "service.UserService.Delete"
	logger := s.log.With(slog.String("op", op), slog.Int64("callerID", callerID), slog.Int64("userID", id))

	if callerID == id {
		logger.Warn("self-delete rejected")
		return fmt.Errorf("%s: %w", op, ErrSelfDelete)
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		logger.Error("failed to delete user", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Info("user deleted")
	return nil
}
