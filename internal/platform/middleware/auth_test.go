package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-admin-secret"

// mockHandler is a test handler that captures whether it was called.
type mockHandler struct {
	called bool
}

func (m *mockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.called = true
	w.WriteHeader(http.StatusOK)
}

type AdminAuthSuite struct {
	suite.Suite
	next       *mockHandler
	middleware func(http.Handler) http.Handler
}

func TestAdminAuthSuite(t *testing.T) {
	suite.Run(t, new(AdminAuthSuite))
}

func (s *AdminAuthSuite) SetupTest() {
	s.next = &mockHandler{}
	s.middleware = AdminAuth(testSecret, slog.Default())
}

func (s *AdminAuthSuite) signToken(secret, role string, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(s.T(), err)
	return signed
}

func (s *AdminAuthSuite) makeRequest(authHeader string) *httptest.ResponseRecorder {
	handler := s.middleware(s.next)
	req := httptest.NewRequest(http.MethodPost, "/admin/agents", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func (s *AdminAuthSuite) TestAdminToken() {
	token := s.signToken(testSecret, "admin", time.Now().Add(time.Hour))

	w := s.makeRequest("Bearer " + token)

	s.True(s.next.called, "next handler should be called")
	s.Equal(http.StatusOK, w.Code)
}

func (s *AdminAuthSuite) TestMissingHeader() {
	w := s.makeRequest("")

	s.False(s.next.called)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.JSONEq(`{"success":false,"error":"missing bearer token","code":"UNAUTHORIZED"}`, w.Body.String())
}

func (s *AdminAuthSuite) TestMalformedHeaders() {
	testCases := []struct {
		name       string
		authHeader string
	}{
		{"no bearer prefix", "just-a-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer "},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.next.called = false
			w := s.makeRequest(tc.authHeader)

			s.False(s.next.called)
			s.Equal(http.StatusUnauthorized, w.Code)
		})
	}
}

func (s *AdminAuthSuite) TestWrongSecret() {
	token := s.signToken("some-other-secret", "admin", time.Now().Add(time.Hour))

	w := s.makeRequest("Bearer " + token)

	s.False(s.next.called)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.JSONEq(`{"success":false,"error":"invalid token","code":"UNAUTHORIZED"}`, w.Body.String())
}

func (s *AdminAuthSuite) TestExpiredToken() {
	token := s.signToken(testSecret, "admin", time.Now().Add(-time.Hour))

	w := s.makeRequest("Bearer " + token)

	s.False(s.next.called)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AdminAuthSuite) TestNonAdminRole() {
	token := s.signToken(testSecret, "viewer", time.Now().Add(time.Hour))

	w := s.makeRequest("Bearer " + token)

	s.False(s.next.called)
	s.Equal(http.StatusForbidden, w.Code)
	s.JSONEq(`{"success":false,"error":"admin role required","code":"FORBIDDEN"}`, w.Body.String())
}

func (s *AdminAuthSuite) TestMissingRoleClaim() {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(s.T(), err)

	w := s.makeRequest("Bearer " + signed)

	s.False(s.next.called)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *AdminAuthSuite) TestRejectsNonHMACAlgorithm() {
	// alg=none tokens must never pass, regardless of claims.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(s.T(), err)

	w := s.makeRequest("Bearer " + signed)

	assert.False(s.T(), s.next.called)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}
