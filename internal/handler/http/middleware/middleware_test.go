package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/holiday-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/holiday-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, jwtService jwt.Service, guards ...func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
	r.Use(AuthRequired(jwtService))
	for _, g := range guards {
		r.Use(g)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(actor.UserID))
	})
	return r
}

func token(t *testing.T, jwtService jwt.Service, role user.Role) string {
	t.Helper()
	companyID := "company-1"
	tok, _, err := jwtService.GenerateAccessToken(user.User{ID: "user-1", CompanyID: &companyID, Role: role})
	require.NoError(t, err)
	return tok
}

func do(h http.Handler, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	jwtService, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)
	h := newRouter(t, jwtService)

	rec := do(h, token(t, jwtService, user.RoleEmployee))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, "garbage").Code)

	sse, _, err := jwtService.GenerateSSEToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(h, sse).Code, "stream tokens are not access tokens")
}

func TestAuthRequired_Revoked(t *testing.T) {
	jwtService, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)
	h := newRouter(t, jwtService)
	tok := token(t, jwtService, user.RoleEmployee)

	jwtService.RevokeToken(tok, time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusUnauthorized, do(h, tok).Code)
}

func TestRequireEmployer(t *testing.T) {
	jwtService, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)
	h := newRouter(t, jwtService, RequireEmployer)

	assert.Equal(t, http.StatusOK, do(h, token(t, jwtService, user.RoleEmployer)).Code)
	assert.Equal(t, http.StatusForbidden, do(h, token(t, jwtService, user.RoleEmployee)).Code)
}

func TestRequirePermission(t *testing.T) {
	jwtService, err := jwt.NewJWTService("secret", "1h")
	require.NoError(t, err)
	h := newRouter(t, jwtService, RequirePermission(user.PermissionHolidayApprove))

	assert.Equal(t, http.StatusOK, do(h, token(t, jwtService, user.RoleEmployer)).Code)

	rec := do(h, token(t, jwtService, user.RoleEmployee))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient permissions: required")
}
