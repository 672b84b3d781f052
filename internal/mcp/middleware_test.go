package mcp

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	h := http.Header{}
	require.Empty(t, bearerToken(h))

	h.Set("X-API-Key", " key1 ")
	require.Equal(t, "key1", bearerToken(h))

	h.Set("Authorization", "Bearer tok")
	require.Equal(t, "tok", bearerToken(h), "Authorization wins over X-API-Key")

	h.Set("Authorization", "Basic dXNlcjpwYXNz")
	require.Empty(t, bearerToken(h))
}

func TestFormatPayload(t *testing.T) {
	require.Equal(t, "<nil>", formatPayload(nil))
	require.Equal(t, `{"a":1}`, formatPayload(map[string]int{"a": 1}))

	long := make([]byte, maxLoggedPayload*2)
	for i := range long {
		long[i] = 'x'
	}
	out := formatPayload(string(long))
	require.Len(t, out, maxLoggedPayload+3)
}

func TestFormatPayload_Redacts(t *testing.T) {
	out := formatPayload(map[string]any{
		"name": "call_tool",
		"arguments": map[string]any{
			"name":             "Asha Patil",
			"password":         "correct-horse",
			"confirm_password": "correct-horse",
			"aadhaar":          "2345 6789 0123",
		},
		"users": []any{map[string]any{"Aadhaar": "XXXX XXXX 0123"}},
	})
	require.NotContains(t, out, "correct-horse")
	require.NotContains(t, out, "6789")
	require.NotContains(t, out, "XXXX")
	require.Contains(t, out, "Asha Patil")
	require.Contains(t, out, `"password":"[redacted]"`)
}
