package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// RequireOperator protege rutas de escritura con una clave de operador.
// - Si key == "" => modo dev: deja pasar todo.
// - Si no, exige `Authorization: Bearer <key>` y responde 401 si no coincide.
func RequireOperator(key string) func(http.Handler) http.Handler {
	key = strings.TrimSpace(key)
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="operator"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
