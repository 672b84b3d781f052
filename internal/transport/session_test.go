package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func serveSession(r *http.Request) (*httptest.ResponseRecorder, string) {
	var got string
	handler := SessionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionIDFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	return rec, got
}

func TestSessionMiddleware_Header(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/rpc?session=ignored", nil)
	req.Header.Set(SessionHeader, "desk-7")

	rec, got := serveSession(req)
	require.Equal(t, "desk-7", got)
	require.Equal(t, "desk-7", rec.Header().Get(SessionHeader))
}

func TestSessionMiddleware_QueryParam(t *testing.T) {
	_, got := serveSession(httptest.NewRequest(http.MethodGet, "/api/tables?session=s2", nil))
	require.Equal(t, "s2", got)
}

func TestSessionMiddleware_Mints(t *testing.T) {
	rec, got := serveSession(httptest.NewRequest(http.MethodGet, "/api/tables", nil))
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	require.Equal(t, got, rec.Header().Get(SessionHeader))
}

func TestSessionMiddleware_TooLong(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/rpc", nil)
	req.Header.Set(SessionHeader, strings.Repeat("x", maxSessionIDLen+1))

	rec, got := serveSession(req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, got)
}
