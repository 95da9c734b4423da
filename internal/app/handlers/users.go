package handlers

import (
	"log/slog"
	"net/http"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/lib/api/response"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/security"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/service"
)

// ListUsersHandler gestiona GET /api/auth/users (solo administradores).
func ListUsersHandler(log *slog.Logger, userService service.UserServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListUsersHandler"
		logger := log.With(slog.String("op", op))

		users, err := userService.List(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Usuarios obtenidos correctamente", users)
	}
}

// DeleteUserHandler gestiona DELETE /api/auth/users/{id}. Borrarse a uno
// mismo está bloqueado.
func DeleteUserHandler(log *slog.Logger, userService service.UserServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteUserHandler"
		logger := log.With(slog.String("op", op))

		callerID, ok := security.FromContext(r.Context())
		if !ok {
			response.Error(w, http.StatusUnauthorized, "No autorizado")
			return
		}
		id, err := idParam(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Identificador inválido")
			return
		}

		if err := userService.Delete(r.Context(), callerID, id); err != nil {
			writeServiceError(w, logger, err)
			return
		}
		response.JSON(w, http.StatusOK, "Usuario eliminado correctamente", nil)
	}
}
