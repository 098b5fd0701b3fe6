package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"objectifs-core/internal/infrastructure/database/postgres"
	"objectifs-core/internal/modules/categories/dto"
	"objectifs-core/internal/modules/categories/queries"
	"objectifs-core/internal/shared/apperror"
	"objectifs-core/internal/shared/authz"
)

// defaultPalette couleurs attribuées en rotation quand la couleur est absente
var defaultPalette = []string{
	"#3B82F6", "#10B981", "#F59E0B", "#8B5CF6",
	"#EF4444", "#14B8A6", "#F97316", "#6366F1",
}

type CategorieService struct {
	db        *postgres.Client
	txManager *postgres.TransactionManager
}

// NewCategorieService crée une nouvelle instance du service catégories
func NewCategorieService(db *postgres.Client, txManager *postgres.TransactionManager) *CategorieService {
	return &CategorieService{
		db:        db,
		txManager: txManager,
	}
}

// List retourne les catégories globales et les catégories privées visibles.
// Avec consultantId, un admin ou le BUM du consultant voit les catégories
// privées de ce consultant ; sinon un CONSULTANT voit les siennes et les
// autres rôles ne voient que les globales.
func (s *CategorieService) List(ctx context.Context, identity authz.Identity, consultantID *int64) ([]dto.CategorieResponse, error) {
	var (
		targetBumID *int64
		targetFound bool
	)
	if consultantID != nil && *consultantID != identity.ID {
		var id int64
		err := s.db.QueryRow(ctx, queries.CategorieQueries.GetUserForAuthz, *consultantID).
			Scan(&id, &targetBumID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("recherche consultant: %w", err)
		}
		targetFound = err == nil
	} else if consultantID != nil {
		targetFound = true
	}

	rows, err := s.db.Query(ctx, queries.CategorieQueries.ListVisible,
		listScope(identity, consultantID, targetBumID, targetFound))
	if err != nil {
		return nil, fmt.Errorf("liste des catégories: %w", err)
	}
	defer rows.Close()

	categories := make([]dto.CategorieResponse, 0)
	for rows.Next() {
		var cat dto.CategorieResponse
		if err := rows.Scan(&cat.ID, &cat.Nom, &cat.Description, &cat.Couleur,
			&cat.UserID, &cat.Ordre, &cat.Icone, &cat.UsageCount,
			&cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("lecture catégorie: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// Create crée une catégorie. Un admin peut la rendre globale ; un BUM peut
// la créer pour un de ses consultants ; sinon elle est privée à l'appelant.
func (s *CategorieService) Create(ctx context.Context, identity authz.Identity, req dto.CreateCategorieRequest) (*dto.CategorieResponse, error) {
	ownerID, err := s.resolveOwner(ctx, identity, req)
	if err != nil {
		return nil, err
	}

	couleur, err := s.resolveCouleur(ctx, req.Couleur, ownerID)
	if err != nil {
		return nil, err
	}

	var cat dto.CategorieResponse
	err = s.db.QueryRow(ctx, queries.CategorieQueries.Insert,
		req.Nom, req.Description, couleur, ownerID, req.Ordre, req.Icone,
	).Scan(&cat.ID, &cat.Nom, &cat.Description, &cat.Couleur, &cat.UserID,
		&cat.Ordre, &cat.Icone, &cat.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("CATEGORY_EXISTS",
				"Une catégorie de ce nom existe déjà")
		}
		return nil, fmt.Errorf("création catégorie: %w", err)
	}
	return &cat, nil
}

// Update modifie une catégorie : son propriétaire ou un admin ; les
// catégories globales sont réservées aux admins
func (s *CategorieService) Update(ctx context.Context, identity authz.Identity, categorieID int64, req dto.UpdateCategorieRequest) (*dto.CategorieResponse, error) {
	if err := s.checkMutable(ctx, identity, categorieID); err != nil {
		return nil, err
	}

	var cat dto.CategorieResponse
	err := s.db.QueryRow(ctx, queries.CategorieQueries.Update,
		categorieID, req.Nom, req.Description, req.Couleur, req.Ordre, req.Icone,
	).Scan(&cat.ID, &cat.Nom, &cat.Description, &cat.Couleur, &cat.UserID,
		&cat.Ordre, &cat.Icone, &cat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("CATEGORIE_NOT_FOUND", "Catégorie introuvable")
		}
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("CATEGORY_EXISTS",
				"Une catégorie de ce nom existe déjà")
		}
		return nil, fmt.Errorf("mise à jour catégorie: %w", err)
	}
	return &cat, nil
}

// Delete supprime une catégorie sans objectif rattaché. Le comptage et la
// suppression s'exécutent dans la même transaction pour fermer la fenêtre
// entre la vérification et l'écriture.
func (s *CategorieService) Delete(ctx context.Context, identity authz.Identity, categorieID int64) error {
	if err := s.checkMutable(ctx, identity, categorieID); err != nil {
		return err
	}

	return s.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		var usage int
		if err := tx.QueryRow(ctx, queries.CategorieQueries.CountUsage, categorieID).
			Scan(&usage); err != nil {
			return fmt.Errorf("comptage des objectifs: %w", err)
		}
		if usage > 0 {
			return apperror.Validation("CATEGORY_IN_USE",
				"Des objectifs utilisent encore cette catégorie")
		}
		if err := tx.Exec(ctx, queries.CategorieQueries.Delete, categorieID); err != nil {
			return fmt.Errorf("suppression catégorie: %w", err)
		}
		return nil
	})
}

// listScope détermine le périmètre privé de la liste : le consultant visé
// quand l'appelant peut le consulter, les catégories de l'appelant pour un
// CONSULTANT, sinon les globales uniquement (nil)
func listScope(identity authz.Identity, consultantID *int64, targetBumID *int64, targetFound bool) *int64 {
	if consultantID != nil && targetFound &&
		authz.CanViewConsultant(identity, *consultantID, targetBumID) {
		return consultantID
	}
	if identity.Role == authz.RoleConsultant {
		owner := identity.ID
		return &owner
	}
	return nil
}

// resolveOwner détermine le propriétaire de la catégorie à créer
// (nil = globale)
func (s *CategorieService) resolveOwner(ctx context.Context, identity authz.Identity, req dto.CreateCategorieRequest) (*int64, error) {
	if req.IsGlobal {
		if !identity.IsAdmin() {
			return nil, apperror.Forbidden("FORBIDDEN",
				"Seul un admin peut créer une catégorie globale")
		}
		return nil, nil
	}

	if req.ConsultantID == nil || *req.ConsultantID == identity.ID {
		owner := identity.ID
		return &owner, nil
	}

	var (
		id    int64
		bumID *int64
	)
	err := s.db.QueryRow(ctx, queries.CategorieQueries.GetUserForAuthz, *req.ConsultantID).
		Scan(&id, &bumID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("USER_NOT_FOUND", "Utilisateur introuvable")
		}
		return nil, fmt.Errorf("recherche consultant: %w", err)
	}

	if !identity.IsAdmin() {
		if err := authz.RequireManagedBy(identity, bumID); err != nil {
			return nil, err
		}
	}
	return req.ConsultantID, nil
}

// resolveCouleur retombe sur la palette par défaut en rotation quand la
// couleur n'est pas fournie
func (s *CategorieService) resolveCouleur(ctx context.Context, couleur *string, ownerID *int64) (string, error) {
	if couleur != nil && *couleur != "" {
		return *couleur, nil
	}

	var count int
	if err := s.db.QueryRow(ctx, queries.CategorieQueries.CountForOwner, ownerID).
		Scan(&count); err != nil {
		return "", fmt.Errorf("comptage des catégories: %w", err)
	}
	return defaultPalette[count%len(defaultPalette)], nil
}

func (s *CategorieService) checkMutable(ctx context.Context, identity authz.Identity, categorieID int64) error {
	var cat dto.CategorieResponse
	err := s.db.QueryRow(ctx, queries.CategorieQueries.Get, categorieID).
		Scan(&cat.ID, &cat.Nom, &cat.Description, &cat.Couleur, &cat.UserID,
			&cat.Ordre, &cat.Icone, &cat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("CATEGORIE_NOT_FOUND", "Catégorie introuvable")
		}
		return fmt.Errorf("recherche catégorie: %w", err)
	}

	if identity.IsAdmin() {
		return nil
	}
	if cat.UserID == nil {
		return apperror.Forbidden("FORBIDDEN",
			"Seul un admin peut modifier une catégorie globale")
	}
	if *cat.UserID != identity.ID {
		return apperror.Forbidden("FORBIDDEN", "Accès refusé")
	}
	return nil
}

// isUniqueViolation détecte une violation de contrainte UNIQUE PostgreSQL
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
