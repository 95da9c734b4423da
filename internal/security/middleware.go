package security

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alanCEI/negromate-alanfs-borrador3/internal/domain/models"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/lib/api/response"
	"github.com/alanCEI/negromate-alanfs-borrador3/internal/storage"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// UserProvider es lo único que el middleware necesita del almacenamiento.
type UserProvider interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Middleware valida el bearer token y carga el usuario. Cualquier token
// ausente, malformado, expirado o cuyo sujeto ya no exista responde 401.
func Middleware(log *slog.Logger, secret string, users UserProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Error(w, http.StatusUnauthorized, "Token no proporcionado")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.Error(w, http.StatusUnauthorized, "Formato de token inválido")
				return
			}

			userID, err := ParseToken(strings.TrimSpace(parts[1]), secret)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}

			// el sujeto tiene que seguir existiendo
			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, storage.ErrUserNotFound) {
					log.Error("failed to load token subject", slog.Any("error", err))
				}
				response.Error(w, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			ctx = context.WithValue(ctx, roleKey, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin deja pasar solo a administradores. Debe colgarse después
// de Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := RoleFromContext(r.Context())
		if !ok || role != models.RoleAdmin {
			response.Error(w, http.StatusForbidden, "Acceso restringido a administradores")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FromContext extrae el id de usuario que dejó el middleware.
func FromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RoleFromContext extrae el rol que dejó el middleware.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// IsAdmin indica si la petición la hace un administrador.
func IsAdmin(ctx context.Context) bool {
	role, ok := RoleFromContext(ctx)
	return ok && role == models.RoleAdmin
}

// WithIdentity inyecta identidad en el contexto; pensado para tests.
func WithIdentity(ctx context.Context, userID int64, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}
