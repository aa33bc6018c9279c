package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CarWash/internal/api/handlers"
)

const (
	msgTriggerDisabled   = "внутренний триггер отключен"
	msgMissingAuthHeader = "требуется заголовок Authorization"
	msgInvalidToken      = "неверный внутренний токен"
)

// InternalToken защищает внутренние эндпоинты статическим Bearer токеном.
// При пустом token все запросы отклоняются.
func InternalToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				handlers.RespondForbidden(w, msgTriggerDisabled)
				return
			}

			scheme, value, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "bearer") {
				handlers.RespondUnauthorized(w, msgMissingAuthHeader)
				return
			}

			if subtle.ConstantTimeCompare([]byte(value), []byte(token)) != 1 {
				handlers.RespondForbidden(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
