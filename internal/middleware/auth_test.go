package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learn-mate-go/internal/model"
	"learn-mate-go/pkg/log"
	"learn-mate-go/pkg/token"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.Init("error", "console", "")
	os.Exit(m.Run())
}

// fakeUserService 把任意外部身份映射为固定用户。
type fakeUserService struct {
	err error
}

func (f *fakeUserService) GetOrCreate(_ context.Context, claims *token.IdentityClaims) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{ID: "u1", ExternalID: claims.ExternalID}, nil
}

// contextUser 作为终端 handler，回报上下文中是否有用户。
func contextUser(c *gin.Context) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": value.(*model.User).ID})
}

func newAuthRouter(required bool, userService *fakeUserService, jwtManager *token.JWTManager) *gin.Engine {
	r := gin.New()
	mw := OptionalAuthMiddleware(jwtManager, userService)
	if required {
		mw = AuthMiddleware(jwtManager, userService)
	}
	r.GET("/probe", mw, contextUser)
	return r
}

func getProbe(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	jwtManager := token.NewJWTManager("test-secret", 1)
	tokenString, err := jwtManager.GenerateToken("ext-1", "a@example.com", "Alice")
	require.NoError(t, err)
	r := newAuthRouter(true, &fakeUserService{}, jwtManager)

	w := getProbe(t, r, "Bearer "+tokenString)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"u1"`)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := newAuthRouter(true, &fakeUserService{}, token.NewJWTManager("test-secret", 1))

	w := getProbe(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	r := newAuthRouter(true, &fakeUserService{}, token.NewJWTManager("test-secret", 1))

	w := getProbe(t, r, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareWrongScheme(t *testing.T) {
	r := newAuthRouter(true, &fakeUserService{}, token.NewJWTManager("test-secret", 1))

	w := getProbe(t, r, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareUserResolveFailure(t *testing.T) {
	jwtManager := token.NewJWTManager("test-secret", 1)
	tokenString, err := jwtManager.GenerateToken("ext-1", "", "")
	require.NoError(t, err)
	r := newAuthRouter(true, &fakeUserService{err: errors.New("db gone")}, jwtManager)

	w := getProbe(t, r, "Bearer "+tokenString)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthMiddlewareValidToken(t *testing.T) {
	jwtManager := token.NewJWTManager("test-secret", 1)
	tokenString, err := jwtManager.GenerateToken("ext-1", "", "")
	require.NoError(t, err)
	r := newAuthRouter(false, &fakeUserService{}, jwtManager)

	w := getProbe(t, r, "Bearer "+tokenString)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"u1"`)
}

func TestOptionalAuthMiddlewareAnonymousPassesThrough(t *testing.T) {
	r := newAuthRouter(false, &fakeUserService{}, token.NewJWTManager("test-secret", 1))

	w := getProbe(t, r, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}

func TestOptionalAuthMiddlewareBadTokenPassesThrough(t *testing.T) {
	r := newAuthRouter(false, &fakeUserService{}, token.NewJWTManager("test-secret", 1))

	w := getProbe(t, r, "Bearer expired-or-garbage")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}
