package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	_, h := newTestRouter(t, withConfig(map[string]string{"AUTH_SECRET": testSecret}))

	valid := signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
		"sub": "ada",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name    string
		headers []string
		status  int
	}{
		{name: "no header", status: http.StatusUnauthorized},
		{name: "not bearer", headers: []string{"Authorization", "Basic abc"}, status: http.StatusUnauthorized},
		{name: "garbage token", headers: []string{"Authorization", "Bearer abc.def.ghi"}, status: http.StatusUnauthorized},
		{
			name: "wrong secret",
			headers: []string{"Authorization", "Bearer " + signToken(t, jwt.SigningMethodHS256, "other", jwt.MapClaims{
				"sub": "ada",
			})},
			status: http.StatusUnauthorized,
		},
		{
			name: "wrong algorithm",
			headers: []string{"Authorization", "Bearer " + signToken(t, jwt.SigningMethodHS512, testSecret, jwt.MapClaims{
				"sub": "ada",
			})},
			status: http.StatusUnauthorized,
		},
		{
			name: "expired",
			headers: []string{"Authorization", "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
				"sub": "ada",
				"exp": time.Now().Add(-time.Hour).Unix(),
			})},
			status: http.StatusUnauthorized,
		},
		{
			name: "no subject",
			headers: []string{"Authorization", "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			})},
			status: http.StatusUnauthorized,
		},
		{name: "valid", headers: []string{"Authorization", "Bearer " + valid}, status: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/developers", `{"name":"Ada","email":"ada@mail.com"}`, tt.headers...)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	t.Run("reads stay open", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/developers", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthMiddleware_DisabledWithoutSecret(t *testing.T) {
	_, h := newTestRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/developers", `{"name":"Ada","email":"ada@mail.com"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestLogInternalServerErrors_RecoversPanic(t *testing.T) {
	h := RequestID(LogInternalServerErrors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := doRequest(t, h, http.MethodGet, "/", "")
	resp := assertError(t, rec, http.StatusInternalServerError, "Internal server error.")
	assert.Empty(t, resp.Options)
}
