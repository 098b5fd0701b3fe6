package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"objectifs-core/internal/modules/categories/dto"
	"objectifs-core/internal/modules/categories/services"
	"objectifs-core/internal/shared/apperror"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

type CategorieController struct {
	categorieService *services.CategorieService
}

// NewCategorieController crée une nouvelle instance du contrôleur catégories
func NewCategorieController(categorieService *services.CategorieService) *CategorieController {
	return &CategorieController{
		categorieService: categorieService,
	}
}

// List - GET /api/v1/categories?consultantId=
func (c *CategorieController) List(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	var consultantID *int64
	if raw := ctx.Query("consultantId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apperror.Respond(ctx, apperror.Validation("INVALID_ID",
				"Identifiant invalide"))
			return
		}
		consultantID = &id
	}

	categories, err := c.categorieService.List(ctx.Request.Context(), identity, consultantID)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categories)
}

// Create - POST /api/v1/categories
func (c *CategorieController) Create(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategorieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Le nom est requis"))
		return
	}

	categorie, err := c.categorieService.Create(ctx.Request.Context(), identity, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, categorie)
}

// Update - PUT /api/v1/categories/:id
func (c *CategorieController) Update(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	categorieID, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCategorieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Corps de requête invalide"))
		return
	}

	categorie, err := c.categorieService.Update(ctx.Request.Context(), identity, categorieID, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, categorie)
}

// Delete - DELETE /api/v1/categories/:id
func (c *CategorieController) Delete(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	categorieID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.categorieService.Delete(ctx.Request.Context(), identity, categorieID); err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
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
