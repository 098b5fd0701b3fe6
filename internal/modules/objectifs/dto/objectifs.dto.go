package dto

import "time"

// CreateObjectifRequest payload de création d'un objectif pour soi-même
type CreateObjectifRequest struct {
	Description string `json:"description" binding:"required"`
	Annee       *int   `json:"annee"`
	CategorieID *int64 `json:"categorieId"`
}

// AdminCreateRequest payload de création d'un objectif pour un consultant
type AdminCreateRequest struct {
	Description string `json:"description" binding:"required"`
	UserID      int64  `json:"userId" binding:"required"`
	Annee       *int   `json:"annee"`
	CategorieID *int64 `json:"categorieId"`
}

// BulkCreateRequest payload de création d'un même objectif pour plusieurs
// consultants
type BulkCreateRequest struct {
	Description string  `json:"description" binding:"required"`
	UserIDs     []int64 `json:"userIds" binding:"required,min=1"`
	Annee       *int    `json:"annee"`
	CategorieID *int64  `json:"categorieId"`
}

// UpdateObjectifRequest payload de mise à jour ; seuls les champs fournis
// changent. Le nom de champ validatedbyadmin suit le contrat API historique.
type UpdateObjectifRequest struct {
	Description      *string `json:"description"`
	Status           *string `json:"status"`
	CategorieID      *int64  `json:"categorieId"`
	ValidatedByAdmin *bool   `json:"validatedbyadmin"`
}

// CategorieSummary catégorie jointe à un objectif
type CategorieSummary struct {
	ID      int64   `json:"id"`
	Nom     string  `json:"nom"`
	Couleur string  `json:"couleur"`
	Icone   *string `json:"icone"`
}

// ObjectifResponse objectif tel qu'exposé par l'API
type ObjectifResponse struct {
	ID               int64             `json:"id"`
	Description      string            `json:"description"`
	Status           string            `json:"status"`
	ValidatedByAdmin bool              `json:"validatedByAdmin"`
	Annee            int               `json:"annee"`
	UserID           int64             `json:"userId"`
	Username         string            `json:"username,omitempty"`
	CategorieID      *int64            `json:"categorieId"`
	Categorie        *CategorieSummary `json:"categorie"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// BulkFailure échec individuel lors d'une création en masse
type BulkFailure struct {
	UserID int64  `json:"userId"`
	Error  string `json:"error"`
}

// BulkCreateResponse agrégat des créations en masse
type BulkCreateResponse struct {
	Created []ObjectifResponse `json:"created"`
	Failed  []BulkFailure      `json:"failed"`
}

// CreateCommentaireRequest payload de création d'un commentaire
type CreateCommentaireRequest struct {
	Contenu string `json:"contenu" binding:"required"`
}

// UpdateCommentaireRequest payload de modification d'un commentaire
type UpdateCommentaireRequest struct {
	Contenu string `json:"contenu" binding:"required"`
}

// CommentaireResponse commentaire avec son auteur
type CommentaireResponse struct {
	ID         int64     `json:"id"`
	Contenu    string    `json:"contenu"`
	ObjectifID int64     `json:"objectifId"`
	UserID     int64     `json:"userId"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
