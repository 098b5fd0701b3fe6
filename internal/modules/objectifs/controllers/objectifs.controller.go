package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"objectifs-core/internal/modules/objectifs/dto"
	"objectifs-core/internal/modules/objectifs/services"
	"objectifs-core/internal/shared/apperror"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

type ObjectifController struct {
	objectifService *services.ObjectifService
}

// NewObjectifController crée une nouvelle instance du contrôleur objectifs
func NewObjectifController(objectifService *services.ObjectifService) *ObjectifController {
	return &ObjectifController{
		objectifService: objectifService,
	}
}

// Mine - GET /api/v1/objectifs/mine et /api/v1/objectifs/mine/:annee
func (c *ObjectifController) Mine(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	annee, ok := resolveAnnee(ctx, ctx.Param("annee"))
	if !ok {
		return
	}

	objectifs, err := c.objectifService.Mine(ctx.Request.Context(), identity, annee)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, objectifs)
}

// All - GET /api/v1/objectifs/all?annee=
func (c *ObjectifController) All(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	annee, ok := resolveAnnee(ctx, "")
	if !ok {
		return
	}

	objectifs, err := c.objectifService.All(ctx.Request.Context(), identity, annee)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, objectifs)
}

// Create - POST /api/v1/objectifs
func (c *ObjectifController) Create(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateObjectifRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"La description est requise"))
		return
	}

	objectif, err := c.objectifService.Create(ctx.Request.Context(), identity, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, objectif)
}

// AdminCreate - POST /api/v1/objectifs/admin
func (c *ObjectifController) AdminCreate(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	var req dto.AdminCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Description et userId requis"))
		return
	}

	objectif, err := c.objectifService.AdminCreate(ctx.Request.Context(), identity, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, objectif)
}

// BulkCreate - POST /api/v1/objectifs/bulk
func (c *ObjectifController) BulkCreate(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	var req dto.BulkCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Description et userIds requis"))
		return
	}

	result, err := c.objectifService.BulkCreate(ctx.Request.Context(), identity, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// Update - PUT|PATCH /api/v1/objectifs/:id
func (c *ObjectifController) Update(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	objectifID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateObjectifRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Corps de requête invalide"))
		return
	}

	objectif, err := c.objectifService.Update(ctx.Request.Context(), identity, objectifID, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, objectif)
}

// Delete - DELETE /api/v1/objectifs/:id
func (c *ObjectifController) Delete(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	objectifID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.objectifService.Delete(ctx.Request.Context(), identity, objectifID); err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Objectif supprimé"})
}

// resolveAnnee lit l'année depuis le paramètre de chemin puis la query
// string, et retombe sur l'année civile courante
func resolveAnnee(ctx *gin.Context, pathValue string) (int, bool) {
	raw := pathValue
	if raw == "" {
		raw = ctx.Query("annee")
	}
	if raw == "" {
		return services.CurrentYear(), true
	}

	annee, err := strconv.Atoi(raw)
	if err != nil {
		apperror.Respond(ctx, apperror.Validation("INVALID_YEAR", "Année invalide"))
		return 0, false
	}
	return annee, true
}

// parseID extrait un paramètre de chemin numérique et répond 400 sinon
func parseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		apperror.Respond(ctx, apperror.Validation("INVALID_ID",
			"Identifiant invalide"))
		return 0, false
	}
	return id, true
}
