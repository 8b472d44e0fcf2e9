package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
	"gestock/internal/core/scope"
)

type fakeValidator struct {
	validate func(token string) (scope.UserScope, error)
}

func (f *fakeValidator) ValidateToken(token string) (scope.UserScope, error) {
	return f.validate(token)
}

func newAuthRouter(v TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(Auth(v))
	r.GET("/me", func(c *gin.Context) {
		sc, err := scope.MustFromContext(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": sc.Username})
	})
	return r
}

func TestAuthMissingHeader(t *testing.T) {
	r := newAuthRouter(&fakeValidator{validate: func(string) (scope.UserScope, error) {
		t.Fatal("validator must not be called")
		return scope.UserScope{}, nil
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeUnauthorized)
}

func TestAuthMalformedHeader(t *testing.T) {
	r := newAuthRouter(&fakeValidator{validate: func(string) (scope.UserScope, error) {
		t.Fatal("validator must not be called")
		return scope.UserScope{}, nil
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(&fakeValidator{validate: func(string) (scope.UserScope, error) {
		return scope.UserScope{}, apperror.NewUnauthorized("expired")
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidTokenInstallsScope(t *testing.T) {
	var seen string
	r := newAuthRouter(&fakeValidator{validate: func(token string) (scope.UserScope, error) {
		seen = token
		return scope.Global(id.New(), "alice"), nil
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good-token", seen)
	assert.Contains(t, w.Body.String(), "alice")
}

// The scheme comparison is case-insensitive per RFC 7235.
func TestAuthLowercaseBearer(t *testing.T) {
	r := newAuthRouter(&fakeValidator{validate: func(string) (scope.UserScope, error) {
		return scope.ForStore(id.New(), "bob", id.New()), nil
	}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
