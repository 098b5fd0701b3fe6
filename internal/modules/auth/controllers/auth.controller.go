package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"objectifs-core/internal/modules/auth/dto"
	"objectifs-core/internal/modules/auth/services"
	"objectifs-core/internal/shared/apperror"
	authMiddleware "objectifs-core/internal/shared/middleware/auth"
)

type AuthController struct {
	authService *services.AuthService
}

// NewAuthController crée une nouvelle instance du contrôleur d'authentification
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register - POST /api/v1/auth/register
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Nom d'utilisateur et mot de passe requis"))
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// Login - POST /api/v1/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apperror.Respond(ctx, apperror.Validation("VALIDATION_ERROR",
			"Nom d'utilisateur et mot de passe requis"))
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Logout - POST /api/v1/auth/logout
func (c *AuthController) Logout(ctx *gin.Context) {
	jti := ctx.GetString("token_jti")

	var expiresAt time.Time
	if value, exists := ctx.Get("token_expires_at"); exists {
		if t, ok := value.(time.Time); ok {
			expiresAt = t
		}
	}

	c.authService.Logout(ctx.Request.Context(), jti, expiresAt)

	ctx.JSON(http.StatusOK, gin.H{"message": "Déconnexion réussie"})
}

// Me - GET /api/v1/auth/me
func (c *AuthController) Me(ctx *gin.Context) {
	identity, ok := authMiddleware.MustIdentity(ctx)
	if !ok {
		return
	}

	user, err := c.authService.Me(ctx.Request.Context(), identity.ID)
	if err != nil {
		apperror.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}
