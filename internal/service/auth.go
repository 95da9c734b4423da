package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/metrics"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/security"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// ProfileUpdate lleva los campos opcionales de una actualización parcial
// de perfil; los punteros a nil no tocan el campo.
type ProfileUpdate struct {
	Username *string
	Email    *string
	Password *string
}

type AuthServiceInterface interface {
	Register(ctx context.Context, username, email, password string) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Profile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*models.User, error)
}

type AuthService struct {
	log        *slog.Logger
	userRepo   storage.UserStorage
	tokenTTL   time.Duration
	jwtSecret  string
	bcryptCost int
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, tokenTTL time.Duration, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		log:        log,
		userRepo:   userRepo,
		tokenTTL:   tokenTTL,
		jwtSecret:  jwtSecret,
		bcryptCost: bcryptCost,
	}
}

// Register da de alta un usuario nuevo. El email se normaliza a
// minúsculas y si ya existe devuelve storage.ErrEmailTaken sin crear
// nada. Devuelve el token firmado junto al usuario.
func (a *AuthService) Register(ctx context.Context, username, email, password string) (string, *models.User, error) {
	const op = "auth.Register"
	email = strings.ToLower(strings.TrimSpace(email))
	logger := a.log.With(slog.String("op", op), slog.String("email", email))
	logger.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := a.userRepo.CreateUser(ctx, &models.User{
		Username: username,
		Email:    email,
		PassHash: passHash,
		Role:     models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			logger.Warn("email already registered")
			return "", nil, fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
		logger.Error("failed to create user", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	token, err := security.NewToken(user.ID, a.tokenTTL, a.jwtSecret)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	metrics.UsersRegistered.Inc()
	logger.Info("user registered", slog.Int64("userID", user.ID))
	return token, user, nil
}

// Login autentica al usuario. Usuario inexistente y contraseña errónea
// devuelven el mismo ErrInvalidCredentials a propósito, para no filtrar
// qué emails existen.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	const op = "auth.Login"
	email = strings.ToLower(strings.TrimSpace(email))
	logger := a.log.With(slog.String("op", op), slog.String("email", email))

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			metrics.LoginFailures.Inc()
			logger.Warn("login failed")
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		metrics.LoginFailures.Inc()
		logger.Warn("login failed")
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := security.NewToken(user.ID, a.tokenTTL, a.jwtSecret)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in", slog.Int64("userID", user.ID))
	return token, user, nil
}

func (a *AuthService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	const op = "auth.Profile"
	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateProfile aplica una actualización parcial: solo cambian los
// campos presentes. Con el cuerpo vacío el usuario queda intacto.
func (a *AuthService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*models.User, error) {
	const op = "auth.UpdateProfile"
	logger := a.log.With(slog.String("op", op), slog.Int64("userID", userID))

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.Password != nil {
		passHash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), a.bcryptCost)
		if err != nil {
			logger.Error("failed to hash password", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
		}
		user.PassHash = passHash
	}

	if err := a.userRepo.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
		logger.Error("failed to update user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update user: %w", op, err)
	}

	logger.Info("profile updated")
	return user, nil
}
