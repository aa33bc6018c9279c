package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-CarWash/internal/api/handlers"
	"github.com/m04kA/SMC-CarWash/internal/domain"
)

const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-User-Role"
	HeaderShopID = "X-Shop-ID"

	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidRole   = "некорректная роль пользователя"
	msgMissingShopID = "для администратора обязателен ID мойки"
)

type contextKey struct{}

var actorKey = contextKey{}

// Auth собирает актора из заголовков запроса и кладёт его в контекст.
// Роль по умолчанию customer, для admin обязателен X-Shop-ID.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		actor := domain.Actor{UserID: userID, Role: domain.RoleCustomer}

		switch role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderRole)))); role {
		case "", domain.RoleCustomer:
		case domain.RoleAdmin:
			actor.Role = domain.RoleAdmin
			actor.ShopID = strings.TrimSpace(r.Header.Get(HeaderShopID))
			if actor.ShopID == "" {
				handlers.RespondForbidden(w, msgMissingShopID)
				return
			}
		default:
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// WithActor возвращает контекст с актором
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor извлекает актора из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	if !ok {
		return 0, false
	}
	return actor.UserID, true
}
