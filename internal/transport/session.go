package transport

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionHeader carries the client session across /rpc and /api requests.
const SessionHeader = "Mcp-Session-Id"

// maxSessionIDLen bounds client-chosen session IDs.
const maxSessionIDLen = 128

type sessionKey struct{}

// SessionIDFromContext returns the session bound by SessionMiddleware.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionKey{}).(string)
	return sessionID, ok && sessionID != ""
}

// SessionMiddleware binds a session to each request. The ID comes from the
// Mcp-Session-Id header, then the session query parameter; a request with
// neither is given a fresh one. The ID is echoed so clients can reuse it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = r.URL.Query().Get("session")
		}
		switch {
		case sessionID == "":
			sessionID = uuid.NewString()
		case len(sessionID) > maxSessionIDLen:
			http.Error(w, "session id too long", http.StatusBadRequest)
			return
		}

		w.Header().Set(SessionHeader, sessionID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sessionID)))
	})
}
