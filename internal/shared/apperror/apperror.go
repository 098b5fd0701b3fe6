package apperror

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error est l'erreur métier typée retournée par les services.
// Code identifie la règle violée, Status le code HTTP associé.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New crée une erreur métier avec un statut HTTP explicite
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Validation - champ manquant ou malformé (400)
func Validation(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

// Conflict - violation d'unicité (400, convention héritée de l'API d'origine)
func Conflict(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

// Unauthorized - credential manquant ou invalide (401)
func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}

// Forbidden - rôle ou propriété insuffisants (403)
func Forbidden(code, message string) *Error {
	return New(http.StatusForbidden, code, message)
}

// NotFound - ressource référencée inexistante (404)
func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

// Respond mappe une erreur vers la réponse JSON standard { "error": message }.
// Les erreurs techniques ne sont jamais renvoyées telles quelles au client.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
			"details": gin.H{
				"code": appErr.Code,
			},
		})
		return
	}

	log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Erreur serveur",
		"details": gin.H{
			"code": "INTERNAL_ERROR",
		},
	})
}
