package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"objectifs-core/internal/modules/objectifs/dto"
	"objectifs-core/internal/modules/objectifs/services"
	"objectifs-core/internal/shared/apperror"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

type CommentaireController struct {
	commentaireService *services.CommentaireService
}

// NewCommentaireController crée une nouvelle instance du contrôleur commentaires
func NewCommentaireController(commentaireService *services.CommentaireService) *CommentaireController {
	return &CommentaireController{
		commentaireService: commentaireService,
	}
}

// ListByObjectif - GET /api/v1/objectifs/:id/commentaires
func (c *CommentaireController) ListByObjectif(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	objectifID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	commentaires, err := c.commentaireService.ListByObjectif(ctx.Request.Context(), identity, objectifID)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, commentaires)
}

// Create - POST /api/v1/objectifs/:id/commentaires
func (c *CommentaireController) Create(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	objectifID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentaireRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("CONTENU_REQUIRED",
			"Le contenu est requis"))
		return
	}

	commentaire, err := c.commentaireService.Create(ctx.Request.Context(), identity, objectifID, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, commentaire)
}

// Update - PUT /api/v1/objectifs/commentaire/:id
func (c *CommentaireController) Update(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	commentaireID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentaireRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("CONTENU_REQUIRED",
			"Le contenu est requis"))
		return
	}

	commentaire, err := c.commentaireService.Update(ctx.Request.Context(), identity, commentaireID, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, commentaire)
}

// Delete - DELETE /api/v1/objectifs/commentaire/:id
func (c *CommentaireController) Delete(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	commentaireID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.commentaireService.Delete(ctx.Request.Context(), identity, commentaireID); err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Commentaire supprimé"})
}
