package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"objectifs-core/internal/modules/users/dto"
	"objectifs-core/internal/modules/users/services"
	"objectifs-core/internal/shared/apperror"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

type UserController struct {
	userService *services.UserService
}

// NewUserController crée une nouvelle instance du contrôleur utilisateurs
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// List - GET /api/v1/users
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.userService.List(ctx.Request.Context())
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// MyTeam - GET /api/v1/users/my-team
func (c *UserController) MyTeam(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	users, err := c.userService.MyTeam(ctx.Request.Context(), identity)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Create - POST /api/v1/users
func (c *UserController) Create(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Nom d'utilisateur et mot de passe requis"))
		return
	}

	user, err := c.userService.Create(ctx.Request.Context(), identity, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Update - PUT /api/v1/users/:id
func (c *UserController) Update(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	userID, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Corps de requête invalide"))
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), identity, userID, req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// Delete - DELETE /api/v1/users/:id
func (c *UserController) Delete(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	userID, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := c.userService.Delete(ctx.Request.Context(), identity, userID); err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé"})
}

// ListBusinessUnits - GET /api/v1/business-units
func (c *UserController) ListBusinessUnits(ctx *gin.Context) {
	units, err := c.userService.ListBusinessUnits(ctx.Request.Context())
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, units)
}

// CreateBusinessUnit - POST /api/v1/business-units
func (c *UserController) CreateBusinessUnit(ctx *gin.Context) {
	var req dto.CreateBusinessUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Le nom est requis"))
		return
	}

	bu, err := c.userService.CreateBusinessUnit(ctx.Request.Context(), req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, bu)
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
