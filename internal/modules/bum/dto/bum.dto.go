package dto

import "time"

// StatsResponse indicateurs agrégés de l'équipe d'un BUM
type StatsResponse struct {
	TotalConsultants int `json:"totalConsultants"`
	TotalObjectifs   int `json:"totalObjectifs"`
	ObjectifsValides int `json:"objectifsValides"`
	ObjectifsEnCours int `json:"objectifsEnCours"`
	TauxValidation   int `json:"tauxValidation"`
}

// MemberResponse membre d'une business unit
type MemberResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// BusinessUnitDetail business unit du BUM avec ses membres
type BusinessUnitDetail struct {
	ID        int64            `json:"id"`
	Nom       string           `json:"nom"`
	CreatedAt time.Time        `json:"createdAt"`
	Membres   []MemberResponse `json:"membres"`
}

// CreateConsultantRequest payload de provisionnement d'un consultant.
// Sans mot de passe fourni, un mot de passe est généré et envoyé par email.
type CreateConsultantRequest struct {
	Username string  `json:"username" binding:"required"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
}

// CategorieSummary catégorie jointe à un objectif
type CategorieSummary struct {
	ID      int64   `json:"id"`
	Nom     string  `json:"nom"`
	Couleur string  `json:"couleur"`
	Icone   *string `json:"icone"`
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

// ObjectifDetail objectif avec catégorie et commentaires
type ObjectifDetail struct {
	ID               int64                 `json:"id"`
	Description      string                `json:"description"`
	Status           string                `json:"status"`
	ValidatedByAdmin bool                  `json:"validatedByAdmin"`
	Annee            int                   `json:"annee"`
	UserID           int64                 `json:"userId"`
	CategorieID      *int64                `json:"categorieId"`
	Categorie        *CategorieSummary     `json:"categorie"`
	Commentaires     []CommentaireResponse `json:"commentaires,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// ConsultantResponse consultant avec sa business unit et ses objectifs
type ConsultantResponse struct {
	ID               int64            `json:"id"`
	Username         string           `json:"username"`
	Email            *string          `json:"email"`
	Role             string           `json:"role"`
	BusinessUnitID   *int64           `json:"businessUnitId"`
	BusinessUnitName *string          `json:"businessUnitName"`
	Objectifs        []ObjectifDetail `json:"objectifs"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// ValidateObjectifRequest revue d'un objectif par le BUM ; le commentaire
// optionnel est créé au nom du BUM
type ValidateObjectifRequest struct {
	ValidatedByAdmin *bool   `json:"validatedbyadmin"`
	Status           *string `json:"status"`
	Commentaire      *string `json:"commentaire"`
}
