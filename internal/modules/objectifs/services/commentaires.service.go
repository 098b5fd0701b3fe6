package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"objectifs-core/internal/infrastructure/database/postgres"
	"objectifs-core/internal/modules/objectifs/dto"
	"objectifs-core/internal/modules/objectifs/queries"
	"objectifs-core/internal/shared/apperror"
	"objectifs-core/internal/shared/authz"
)

type CommentaireService struct {
	db        *postgres.Client
	objectifs *ObjectifService
}

// NewCommentaireService crée une nouvelle instance du service commentaires
func NewCommentaireService(db *postgres.Client, objectifService *ObjectifService) *CommentaireService {
	return &CommentaireService{
		db:        db,
		objectifs: objectifService,
	}
}

// ListByObjectif retourne les commentaires d'un objectif visible par
// l'appelant, du plus récent au plus ancien
func (s *CommentaireService) ListByObjectif(ctx context.Context, identity authz.Identity, objectifID int64) ([]dto.CommentaireResponse, error) {
	if err := s.objectifs.CanView(ctx, identity, objectifID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, queries.CommentaireQueries.ListByObjectif, objectifID)
	if err != nil {
		return nil, fmt.Errorf("liste des commentaires: %w", err)
	}
	defer rows.Close()

	commentaires := make([]dto.CommentaireResponse, 0)
	for rows.Next() {
		var cm dto.CommentaireResponse
		if err := rows.Scan(&cm.ID, &cm.Contenu, &cm.ObjectifID, &cm.UserID,
			&cm.Username, &cm.CreatedAt, &cm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("lecture commentaire: %w", err)
		}
		commentaires = append(commentaires, cm)
	}
	return commentaires, rows.Err()
}

// Create ajoute un commentaire sur un objectif visible par l'appelant
func (s *CommentaireService) Create(ctx context.Context, identity authz.Identity, objectifID int64, req dto.CreateCommentaireRequest) (*dto.CommentaireResponse, error) {
	if strings.TrimSpace(req.Contenu) == "" {
		return nil, apperror.Validation("CONTENU_REQUIRED", "Le contenu est requis")
	}

	if err := s.objectifs.CanView(ctx, identity, objectifID); err != nil {
		return nil, err
	}

	var cm dto.CommentaireResponse
	err := s.db.QueryRow(ctx, queries.CommentaireQueries.Insert,
		req.Contenu, objectifID, identity.ID,
	).Scan(&cm.ID, &cm.Contenu, &cm.ObjectifID, &cm.UserID,
		&cm.CreatedAt, &cm.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("création commentaire: %w", err)
	}

	cm.Username = identity.Username
	return &cm, nil
}

// Update modifie le contenu d'un commentaire. Autorisé à l'auteur, à un
// admin et au BUM du propriétaire de l'objectif.
func (s *CommentaireService) Update(ctx context.Context, identity authz.Identity, commentaireID int64, req dto.UpdateCommentaireRequest) (*dto.CommentaireResponse, error) {
	if strings.TrimSpace(req.Contenu) == "" {
		return nil, apperror.Validation("CONTENU_REQUIRED", "Le contenu est requis")
	}

	if err := s.canMutate(ctx, identity, commentaireID); err != nil {
		return nil, err
	}

	var cm dto.CommentaireResponse
	err := s.db.QueryRow(ctx, queries.CommentaireQueries.Update,
		commentaireID, req.Contenu,
	).Scan(&cm.ID, &cm.Contenu, &cm.ObjectifID, &cm.UserID,
		&cm.CreatedAt, &cm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("COMMENTAIRE_NOT_FOUND", "Commentaire introuvable")
		}
		return nil, fmt.Errorf("mise à jour commentaire: %w", err)
	}
	return &cm, nil
}

// Delete supprime un commentaire, mêmes règles que la modification
func (s *CommentaireService) Delete(ctx context.Context, identity authz.Identity, commentaireID int64) error {
	if err := s.canMutate(ctx, identity, commentaireID); err != nil {
		return err
	}

	if err := s.db.Exec(ctx, queries.CommentaireQueries.Delete, commentaireID); err != nil {
		return fmt.Errorf("suppression commentaire: %w", err)
	}
	return nil
}

func (s *CommentaireService) canMutate(ctx context.Context, identity authz.Identity, commentaireID int64) error {
	var (
		id         int64
		authorID   int64
		ownerID    int64
		ownerBumID *int64
	)
	err := s.db.QueryRow(ctx, queries.CommentaireQueries.GetForAuthz, commentaireID).
		Scan(&id, &authorID, &ownerID, &ownerBumID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("COMMENTAIRE_NOT_FOUND", "Commentaire introuvable")
		}
		return fmt.Errorf("recherche commentaire: %w", err)
	}

	return canMutateCommentaire(identity, authorID, ownerBumID)
}

// canMutateCommentaire autorise l'auteur, un admin et le BUM de rattachement
// du propriétaire de l'objectif
func canMutateCommentaire(identity authz.Identity, authorID int64, ownerBumID *int64) error {
	if err := authz.RequireOwnershipOrElevated(identity, authorID, authz.RoleAdmin); err == nil {
		return nil
	}
	if authz.IsOwningBUM(identity, ownerBumID) {
		return nil
	}
	return apperror.Forbidden("FORBIDDEN", "Accès refusé")
}
