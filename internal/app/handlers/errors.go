package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/lib/api/response"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/service"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// writeServiceError traduce los errores de dominio al código HTTP y al
// mensaje del sobre. Todo lo no reconocido acaba en un 500 genérico.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, storage.ErrEmailTaken):
		response.Error(w, http.StatusConflict, "El email ya está registrado")
	case errors.Is(err, storage.ErrSectionTaken):
		response.Error(w, http.StatusConflict, "La sección ya existe")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Credenciales inválidas")
	case errors.Is(err, service.ErrForbidden):
		response.Error(w, http.StatusForbidden, "No tienes permiso para esta operación")
	case errors.Is(err, service.ErrSelfDelete):
		response.Error(w, http.StatusBadRequest, "Un administrador no puede eliminar su propia cuenta")
	case errors.Is(err, service.ErrEmptyOrder):
		response.Error(w, http.StatusBadRequest, "El pedido debe contener al menos un artículo")
	case errors.Is(err, service.ErrBadQuantity):
		response.Error(w, http.StatusBadRequest, "La cantidad mínima por artículo es 1")
	case errors.Is(err, service.ErrBadStatus):
		response.Error(w, http.StatusBadRequest, "Estado de pedido inválido")
	case errors.Is(err, service.ErrBadCategory):
		response.Error(w, http.StatusBadRequest, "Categoría inválida")
	case errors.Is(err, service.ErrBadKind):
		response.Error(w, http.StatusBadRequest, "Tipo de contenido inválido")
	case errors.Is(err, service.ErrBadPayload):
		response.Error(w, http.StatusBadRequest, "El payload no coincide con el tipo de contenido")
	case errors.Is(err, storage.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, storage.ErrProductNotFound):
		response.Error(w, http.StatusNotFound, "Producto no encontrado")
	case errors.Is(err, storage.ErrOrderNotFound):
		response.Error(w, http.StatusNotFound, "Pedido no encontrado")
	case errors.Is(err, storage.ErrContentNotFound):
		response.Error(w, http.StatusNotFound, "Contenido no encontrado")
	default:
		logger.Error("unhandled service error", slog.Any("error", err))
		response.Error(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}

// idParam extrae el parámetro de ruta {id} como entero.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
