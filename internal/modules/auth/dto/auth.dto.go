package dto

import "time"

// RegisterRequest payload d'inscription
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest payload de connexion
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse représentation publique d'un utilisateur (jamais de hash)
type UserResponse struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          *string   `json:"email"`
	Role           string    `json:"role"`
	BusinessUnitID *int64    `json:"businessUnitId"`
	BumID          *int64    `json:"bumId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LoginResponse token porteur et utilisateur connecté
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
