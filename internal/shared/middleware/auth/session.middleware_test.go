package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objectifs-core/internal/shared/authz"
	"objectifs-core/internal/shared/utils"
)

const testSecret = "secret-de-test"

func newTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	session := NewSessionMiddleware(testSecret, nil)
	handlers := append([]gin.HandlerFunc{session.Handler()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       identity.ID,
			"username": identity.Username,
			"role":     identity.Role,
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Details struct {
			Code string `json:"code"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Details.Code
}

func TestSessionMiddlewareMissingToken(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REQUIRED", errorCode(t, w.Body.Bytes()))
}

func TestSessionMiddlewareMalformedHeader(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REQUIRED", errorCode(t, w.Body.Bytes()))
}

func TestSessionMiddlewareInvalidToken(t *testing.T) {
	r := newTestRouter()

	w := doRequest(r, "Bearer pas-un-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, w.Body.Bytes()))
}

func TestSessionMiddlewareExpiredToken(t *testing.T) {
	r := newTestRouter()

	signed, _, err := utils.GenerateToken(7, "jdupont", authz.RoleConsultant,
		testSecret, -time.Minute)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddlewareUnknownRole(t *testing.T) {
	r := newTestRouter()

	signed, _, err := utils.GenerateToken(7, "jdupont", authz.Role("SUPERADMIN"),
		testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, w.Body.Bytes()))
}

func TestSessionMiddlewareInjectsIdentity(t *testing.T) {
	r := newTestRouter()

	signed, _, err := utils.GenerateToken(7, "jdupont", authz.RoleConsultant,
		testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+signed)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, int64(7), payload.ID)
	assert.Equal(t, "jdupont", payload.Username)
	assert.Equal(t, "CONSULTANT", payload.Role)
}

func TestRoleMiddlewareRejectsWrongRole(t *testing.T) {
	role := NewRoleMiddleware()
	r := newTestRouter(role.RequireRole(authz.RoleAdmin))

	signed, _, err := utils.GenerateToken(7, "jdupont", authz.RoleConsultant,
		testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+signed)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleMiddlewareAcceptsAnyListedRole(t *testing.T) {
	role := NewRoleMiddleware()
	r := newTestRouter(role.RequireAnyRole(authz.RoleAdmin, authz.RoleBUM))

	signed, _, err := utils.GenerateToken(3, "bum", authz.RoleBUM,
		testSecret, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)

	signed, _, err = utils.GenerateToken(7, "jdupont", authz.RoleConsultant,
		testSecret, time.Hour)
	require.NoError(t, err)

	w = doRequest(r, "Bearer "+signed)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMustIdentityWithoutSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/no-session", func(c *gin.Context) {
		if _, ok := MustIdentity(c); !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	})

	req := httptest.NewRequest(http.MethodGet, "/no-session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "IDENTITY_CONTEXT_MISSING", errorCode(t, w.Body.Bytes()))
}
