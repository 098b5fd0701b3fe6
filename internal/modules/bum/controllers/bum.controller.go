package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"objectifs-core/internal/modules/bum/dto"
	"objectifs-core/internal/modules/bum/services"
	"objectifs-core/internal/shared/apperror"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

type BumController struct {
	bumService *services.BumService
}

// NewBumController crée une nouvelle instance du contrôleur BUM
func NewBumController(bumService *services.BumService) *BumController {
	return &BumController{
		bumService: bumService,
	}
}

// Stats - GET /api/v1/bum/stats
func (c *BumController) Stats(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	stats, err := c.bumService.Stats(ctx.Request.Context(), identity)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// MyBusinessUnit - GET /api/v1/bum/my-bu
func (c *BumController) MyBusinessUnit(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	bu, err := c.bumService.MyBusinessUnit(ctx.Request.Context(), identity)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, bu)
}

// Consultants - GET /api/v1/bum/consultants
func (c *BumController) Consultants(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	consultants, err := c.bumService.Consultants(ctx.Request.Context(), identity)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, consultants)
}

// CreateConsultant - POST /api/v1/bum/consultants
func (c *BumController) CreateConsultant(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateConsultantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Le nom d'utilisateur est requis"))
		return
	}

	consultant, err := c.bumService.CreateConsultant(ctx.Request.Context(), identity, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, consultant)
}

// DeleteConsultant - DELETE /api/v1/bum/consultants/:id
func (c *BumController) DeleteConsultant(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	consultantID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.bumService.DeleteConsultant(ctx.Request.Context(), identity, consultantID); err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Consultant supprimé"})
}

// ConsultantObjectifs - GET /api/v1/bum/consultants/:id/objectifs
func (c *BumController) ConsultantObjectifs(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	consultantID, ok := parseID(ctx)
	if !ok {
		return
	}

	objectifs, err := c.bumService.ConsultantObjectifs(ctx.Request.Context(), identity, consultantID)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, objectifs)
}

// ReviewObjectif - PATCH /api/v1/bum/objectifs/:id
func (c *BumController) ReviewObjectif(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	objectifID, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.ValidateObjectifRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Corps de requête invalide"))
		return
	}

	objectif, err := c.bumService.ReviewObjectif(ctx.Request.Context(), identity, objectifID, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, objectif)
}

// parseID extrait le paramètre :id et répond 400 si non numérique
func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		apperror.Respond(ctx, apperror.Validation("INVALID_ID",
			"Identifiant invalide"))
		return 0, false
	}
	return id, true
}
