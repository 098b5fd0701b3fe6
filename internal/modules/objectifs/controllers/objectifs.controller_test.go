package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/objectifs/mine?"+rawQuery, nil)
	return ctx, w
}

func TestResolveAnneeDefaultsToCurrentYear(t *testing.T) {
	ctx, _ := testContext(t, "")

	annee, ok := resolveAnnee(ctx, "")
	require.True(t, ok)
	assert.Equal(t, time.Now().Year(), annee)
}

func TestResolveAnneePathTakesPrecedence(t *testing.T) {
	ctx, _ := testContext(t, "annee=2023")

	annee, ok := resolveAnnee(ctx, "2024")
	require.True(t, ok)
	assert.Equal(t, 2024, annee)
}

func TestResolveAnneeFromQuery(t *testing.T) {
	ctx, _ := testContext(t, "annee=2022")

	annee, ok := resolveAnnee(ctx, "")
	require.True(t, ok)
	assert.Equal(t, 2022, annee)
}

func TestResolveAnneeRejectsGarbage(t *testing.T) {
	ctx, w := testContext(t, "")

	_, ok := resolveAnnee(ctx, "deux-mille")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseIDRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/objectifs/abc", nil)
	ctx.Params = gin.Params{{Key: "id", Value: "abc"}}

	_, ok := parseID(ctx, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
