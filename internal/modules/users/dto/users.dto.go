package dto

import "time"

// CreateUserRequest payload de création d'un utilisateur par un admin
type CreateUserRequest struct {
	Username       string  `json:"username" binding:"required"`
	Password       string  `json:"password" binding:"required"`
	Email          *string `json:"email"`
	Role           string  `json:"role"`
	BusinessUnitID *int64  `json:"businessUnitId"`
	BumID          *int64  `json:"bumId"`
}

// UpdateUserRequest payload de mise à jour ; seuls les champs fournis changent
type UpdateUserRequest struct {
	Username       *string `json:"username"`
	Password       *string `json:"password"`
	Email          *string `json:"email"`
	Role           *string `json:"role"`
	BusinessUnitID *int64  `json:"businessUnitId"`
	BumID          *int64  `json:"bumId"`
}

// UserResponse utilisateur avec le nom de sa business unit (jamais de hash)
type UserResponse struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            *string   `json:"email"`
	Role             string    `json:"role"`
	BusinessUnitID   *int64    `json:"businessUnitId"`
	BumID            *int64    `json:"bumId"`
	BusinessUnitName *string   `json:"businessUnitName"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CreateBusinessUnitRequest payload de création d'une business unit
type CreateBusinessUnitRequest struct {
	Nom string `json:"nom" binding:"required"`
}

// BusinessUnitResponse business unit telle qu'exposée par l'API
type BusinessUnitResponse struct {
	ID        int64     `json:"id"`
	Nom       string    `json:"nom"`
	CreatedAt time.Time `json:"createdAt"`
}
