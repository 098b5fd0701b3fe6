package dto

import "time"

// CreateCategorieRequest payload de création d'une catégorie
type CreateCategorieRequest struct {
	Nom          string  `json:"nom" binding:"required"`
	Description  *string `json:"description"`
	Couleur      *string `json:"couleur"`
	Ordre        *int    `json:"ordre"`
	Icone        *string `json:"icone"`
	IsGlobal     bool    `json:"isGlobal"`
	ConsultantID *int64  `json:"consultantId"`
}

// UpdateCategorieRequest payload de mise à jour ; seuls les champs fournis
// changent
type UpdateCategorieRequest struct {
	Nom         *string `json:"nom"`
	Description *string `json:"description"`
	Couleur     *string `json:"couleur"`
	Ordre       *int    `json:"ordre"`
	Icone       *string `json:"icone"`
}

// CategorieResponse catégorie avec son nombre d'objectifs rattachés.
// UserID nul signifie catégorie globale.
type CategorieResponse struct {
	ID          int64     `json:"id"`
	Nom         string    `json:"nom"`
	Description *string   `json:"description"`
	Couleur     string    `json:"couleur"`
	UserID      *int64    `json:"userId"`
	Ordre       *int      `json:"ordre"`
	Icone       *string   `json:"icone"`
	UsageCount  int       `json:"usageCount"`
	CreatedAt   time.Time `json:"createdAt"`
}
