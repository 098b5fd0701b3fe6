package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondWith(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		Respond(c, err)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func decode(t *testing.T, body []byte) (string, string) {
	t.Helper()
	var payload struct {
		Error   string `json:"error"`
		Details struct {
			Code string `json:"code"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload.Error, payload.Details.Code
}

func TestRespondAppError(t *testing.T) {
	w := respondWith(NotFound("OBJECTIF_NOT_FOUND", "Objectif introuvable"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	msg, code := decode(t, w.Body.Bytes())
	assert.Equal(t, "Objectif introuvable", msg)
	assert.Equal(t, "OBJECTIF_NOT_FOUND", code)
}

func TestRespondWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("couche service: %w",
		Forbidden("NOT_YOUR_CONSULTANT", "Vous ne pouvez agir que sur vos propres consultants"))
	w := respondWith(wrapped)

	assert.Equal(t, http.StatusForbidden, w.Code)
	_, code := decode(t, w.Body.Bytes())
	assert.Equal(t, "NOT_YOUR_CONSULTANT", code)
}

func TestRespondInternalError(t *testing.T) {
	w := respondWith(errors.New("connexion perdue"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	msg, code := decode(t, w.Body.Bytes())
	assert.Equal(t, "Erreur serveur", msg)
	assert.Equal(t, "INTERNAL_ERROR", code)
	assert.NotContains(t, w.Body.String(), "connexion perdue")
}

func TestConflictMapsTo400(t *testing.T) {
	err := Conflict("USERNAME_TAKEN", "Ce nom d'utilisateur existe déjà")
	assert.Equal(t, http.StatusBadRequest, err.Status)
}
