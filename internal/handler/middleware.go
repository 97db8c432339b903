package handlers

import (
	"context"
	"net/http"
	"strings"

	"fixitflow/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// ContextWithUser кладет аутентифицированного пользователя в контекст запроса
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext достает пользователя, положенного AuthMiddleware
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", models.ErrUnauthenticated
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", models.ErrUnauthenticated
	}

	return parts[1], nil
}

// AuthMiddleware проверяет Bearer токен и резолвит его в пользователя из БД.
// Токен без существующего пользователя отклоняется так же, как недействительный
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := extractBearerToken(r)
		if err != nil {
			WriteError(w, models.ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}

		user, err := h.AuthService.VerifyToken(r.Context(), tokenString)
		if err != nil {
			WriteError(w, models.ErrInvalidToken.Error(), statusFromError(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// AdminOnly пускает дальше только пользователей с ролью admin.
// Роль читается из загруженной записи пользователя, не из токена
func (h *Handlers) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			WriteError(w, models.ErrUnauthenticated.Error(), http.StatusUnauthorized)
			return
		}

		if user.Role != models.RoleAdmin {
			WriteError(w, "Доступ запрещен", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
