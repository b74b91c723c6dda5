package httpx

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type sessionIDKey struct{}

// SessionHeader es el header donde viaja el id de sesión.
const SessionHeader = "X-Session-Id"

// SessionID es un middleware que asigna un id de sesión único a cada
// request. Si el cliente ya mandó uno lo respetamos; si no, generamos
// un UUID nuevo. El id queda en el contexto y en el header de la
// respuesta para correlacionar logs.
func SessionID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sessionID := request.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		writer.Header().Set(SessionHeader, sessionID)
		ctx := context.WithValue(request.Context(), sessionIDKey{}, sessionID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// SessionIDFrom lee el id de sesión del contexto; vacío si no hay.
func SessionIDFrom(ctx context.Context) string {
	if value, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return value
	}
	return ""
}
