package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIdentifier map[string]string

func (s stubIdentifier) Identify(token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("invalid token")
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func echoUserID(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	_, _ = w.Write([]byte(userID))
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(stubIdentifier{"good": "user-1"}, discard)(http.HandlerFunc(echoUserID))

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "user-1"},
		{"missing header", "", http.StatusUnauthorized, `{"message":"Not authorized, no token"}`},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, `{"message":"Not authorized, no token"}`},
		{"empty token", "Bearer   ", http.StatusUnauthorized, `{"message":"Not authorized, no token"}`},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, `{"message":"Not authorized, token failed"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, tc.wantBody, rec.Body.String())
				return
			}
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestWriteUnauthorized_EscapesMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	writeUnauthorized(rec, `token "abc" rejected`)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, `token "abc" rejected`, body["message"])
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS([]string{"http://localhost:8080"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/profile", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_UnknownOrigin(t *testing.T) {
	handler := CORS([]string{"http://localhost:8080"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	handler := StrictTransportSecurity(SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get(headerXContentTypeOptions))
	assert.Equal(t, "DENY", rec.Header().Get(headerXFrameOptions))
	assert.Equal(t, "no-store", rec.Header().Get(headerCacheControl))
	assert.NotEmpty(t, rec.Header().Get(headerStrictTransportSecurity))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := RequestLogger(logger, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"t"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"aadhaar":"123456789012"}`))
	req.RemoteAddr = "203.0.113.7:51234"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"path":"/api/auth/register"`)
	assert.Contains(t, out, `"client_ip":"203.0.113.7"`)
	assert.NotContains(t, out, "123456789012")
}
