package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"objectifs-core/internal/shared/authz"
)

// Claims définit les claims custom du token porteur.
// user_id est la forme canonique de l'identifiant (jamais userid).
type Claims struct {
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	Role     authz.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken émet un JWT HS256 pour un utilisateur authentifié
func GenerateToken(userID int64, username string, role authz.Role, secret string, expiry time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, fmt.Errorf("impossible de signer le token: %w", err)
	}
	return signed, claims, nil
}

// ValidateToken parse et valide un JWT, et retourne ses claims
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
