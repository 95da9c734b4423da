package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/lib/api/response"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/security"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/service"
)

// RegisterRequest es el cuerpo de POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest es el cuerpo de POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest es el cuerpo de PUT /api/auth/profile; todos los
// campos son opcionales y el cuerpo vacío no cambia nada.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=2"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// SessionData es la carga de las respuestas de registro y login.
type SessionData struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterHandler gestiona POST /api/auth/register.
func RegisterHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Warn("validation error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Datos de registro inválidos")
			return
		}

		token, user, err := authService.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		response.JSON(w, http.StatusCreated, "Usuario registrado correctamente", SessionData{Token: token, User: user})
	}
}

// LoginHandler gestiona POST /api/auth/login.
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Warn("validation error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Datos de acceso inválidos")
			return
		}

		token, user, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		response.JSON(w, http.StatusOK, "Login correcto", SessionData{Token: token, User: user})
	}
}

// ProfileHandler gestiona GET /api/auth/profile.
func ProfileHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProfileHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := security.FromContext(r.Context())
		if !ok {
			response.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}

		user, err := authService.Profile(r.Context(), userID)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Perfil obtenido correctamente", user)
	}
}

// UpdateProfileHandler gestiona PUT /api/auth/profile con semántica de
// actualización parcial.
func UpdateProfileHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProfileHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := security.FromContext(r.Context())
		if !ok {
			response.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			logger.Warn("decoding error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Warn("validation error", slog.Any("error", err))
			response.Error(w, http.StatusBadRequest, "Datos de perfil inválidos")
			return
		}

		user, err := authService.UpdateProfile(r.Context(), userID, service.ProfileUpdate{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Perfil actualizado correctamente", user)
	}
}
