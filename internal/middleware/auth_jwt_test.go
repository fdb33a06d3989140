package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test_secret"

type okResponse struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

type errResponse struct {
	Error string `json:"error"`
}

// 検証済みのcontext値をそのまま返すハンドラを立てる
func newTestEcho(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		id, _ := c.Get(middleware.CtxUserIDKey).(int64)
		role, _ := c.Get(middleware.CtxUserRoleKey).(string)
		return c.JSON(http.StatusOK, okResponse{UserID: id, Role: role})
	}, mw...)
	return e
}

func mustMakeJWT(t *testing.T, secret string, sub int64, role string, method jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  1,
		"exp":  9999999999,
	}

	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func runRequest(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func testConfig() config.Config {
	return config.Config{JWTSecret: testSecret}
}

func TestAuthJWT_NoHeader(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()))

	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()))

	rec := runRequest(t, e, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_BadSignature(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()))

	token := mustMakeJWT(t, "wrong_secret", 1, "customer", jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_UnexpectedSigningMethod(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()))

	//HS256以外は拒否する
	token := mustMakeJWT(t, testSecret, 1, "customer", jwt.SigningMethodHS512)
	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingRole(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()))

	claims := jwt.MapClaims{"sub": 1, "iat": 1, "exp": 9999999999}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ValidToken(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()))

	token := mustMakeJWT(t, testSecret, 42, "admin", jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body okResponse
	_ = json.NewDecoder(rec.Body).Decode(&body)
	assert.Equal(t, int64(42), body.UserID)
	assert.Equal(t, "admin", body.Role)
}

func TestRequireAction_CustomerForbiddenFromRestock(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()), middleware.RequireAction(model.ActionRestock))

	token := mustMakeJWT(t, testSecret, 1, "customer", jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body errResponse
	_ = json.NewDecoder(rec.Body).Decode(&body)
	assert.Equal(t, "forbidden", body.Error)
}

func TestRequireAction_CustomerAllowedToPurchase(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()), middleware.RequireAction(model.ActionPurchase))

	token := mustMakeJWT(t, testSecret, 1, "customer", jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAction_AdminAllowed(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()), middleware.RequireAction(model.ActionDelete))

	token := mustMakeJWT(t, testSecret, 1, "admin", jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAction_UnknownRoleForbidden(t *testing.T) {
	e := newTestEcho(middleware.AuthJWT(testConfig()), middleware.RequireAction(model.ActionRead))

	token := mustMakeJWT(t, testSecret, 1, "superuser", jwt.SigningMethodHS256)
	rec := runRequest(t, e, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
