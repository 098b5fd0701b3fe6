package auth

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"objectifs-core/internal/infrastructure/database/redis"
	"objectifs-core/internal/shared/authz"
	"objectifs-core/internal/shared/utils"
)

const identityContextKey = "identity"

// SessionMiddleware vérifie le token porteur et injecte l'identité décodée
// dans le contexte Gin. Aucun handler de ressource ne reçoit une requête
// non authentifiée.
type SessionMiddleware struct {
	jwtSecret   string
	redisClient *redis.Client
}

// NewSessionMiddleware crée le middleware de session. redisClient peut être
// nil (tests) : la liste de révocation est alors ignorée.
func NewSessionMiddleware(jwtSecret string, redisClient *redis.Client) *SessionMiddleware {
	return &SessionMiddleware{
		jwtSecret:   jwtSecret,
		redisClient: redisClient,
	}
}

// Handler retourne le middleware Gin de validation du token
func (m *SessionMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			m.respondError(c, http.StatusUnauthorized, "TOKEN_REQUIRED",
				"Token manquant ou invalide")
			return
		}

		claims, err := utils.ValidateToken(token, m.jwtSecret)
		if err != nil {
			m.respondError(c, http.StatusUnauthorized, "INVALID_TOKEN",
				"Token invalide")
			return
		}

		if !claims.Role.Valid() {
			m.respondError(c, http.StatusUnauthorized, "INVALID_TOKEN",
				"Token invalide")
			return
		}

		// Token révoqué par un logout antérieur. Une panne Redis n'invalide
		// pas la session : le JWT reste la source d'autorité.
		if m.redisClient != nil && claims.ID != "" {
			revoked, err := m.redisClient.Exists(c.Request.Context(),
				m.redisClient.Keys().RevokedToken(claims.ID))
			if err != nil {
				log.Printf("[AUTH] Vérification de révocation indisponible: %v", err)
			} else if revoked {
				m.respondError(c, http.StatusUnauthorized, "TOKEN_REVOKED",
					"Token révoqué")
				return
			}
		}

		c.Set(identityContextKey, authz.Identity{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Set("token_jti", claims.ID)
		c.Set("token_expires_at", claims.ExpiresAt.Time)

		c.Next()
	}
}

func (m *SessionMiddleware) respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": message,
		"details": gin.H{
			"code": code,
		},
	})
}

// IdentityFromContext récupère l'identité injectée par le SessionMiddleware
func IdentityFromContext(c *gin.Context) (authz.Identity, bool) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return authz.Identity{}, false
	}
	identity, ok := value.(authz.Identity)
	return identity, ok
}

// MustIdentity récupère l'identité ou répond 401 si elle est absente
// (SessionMiddleware non appliqué)
func MustIdentity(c *gin.Context) (authz.Identity, bool) {
	identity, ok := IdentityFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Token manquant ou invalide",
			"details": gin.H{
				"code": "IDENTITY_CONTEXT_MISSING",
			},
		})
		return authz.Identity{}, false
	}
	return identity, true
}

// extractBearerToken extrait le token depuis le header Authorization
func extractBearerToken(authHeader string) string {
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}
