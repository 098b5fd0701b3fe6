package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"objectifs-core/internal/infrastructure/audit"
	"objectifs-core/internal/infrastructure/database/postgres"
	"objectifs-core/internal/modules/objectifs/dto"
	"objectifs-core/internal/modules/objectifs/queries"
	"objectifs-core/internal/shared/apperror"
	"objectifs-core/internal/shared/authz"
)

type ObjectifService struct {
	db    *postgres.Client
	audit *audit.Recorder
}

// NewObjectifService crée une nouvelle instance du service objectifs
func NewObjectifService(db *postgres.Client, auditRecorder *audit.Recorder) *ObjectifService {
	return &ObjectifService{
		db:    db,
		audit: auditRecorder,
	}
}

// CurrentYear retourne l'année par défaut des consultations et créations
func CurrentYear() int {
	return time.Now().Year()
}

// Mine retourne les objectifs de l'appelant pour une année
func (s *ObjectifService) Mine(ctx context.Context, identity authz.Identity, annee int) ([]dto.ObjectifResponse, error) {
	rows, err := s.db.Query(ctx, queries.ObjectifQueries.ListByUserYear, identity.ID, annee)
	if err != nil {
		return nil, fmt.Errorf("liste des objectifs: %w", err)
	}
	defer rows.Close()

	objectifs := make([]dto.ObjectifResponse, 0)
	for rows.Next() {
		obj, err := scanObjectif(rows, false)
		if err != nil {
			return nil, err
		}
		objectifs = append(objectifs, obj)
	}
	return objectifs, rows.Err()
}

// All retourne les objectifs d'une année selon la portée de l'appelant :
// tout pour un admin, ses consultants pour un BUM
func (s *ObjectifService) All(ctx context.Context, identity authz.Identity, annee int) ([]dto.ObjectifResponse, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case identity.IsAdmin():
		rows, err = s.db.Query(ctx, queries.ObjectifQueries.ListAllByYear, annee)
	case identity.IsBUM():
		rows, err = s.db.Query(ctx, queries.ObjectifQueries.ListForBumByYear, identity.ID, annee)
	default:
		return nil, apperror.Forbidden("FORBIDDEN", "Accès refusé")
	}
	if err != nil {
		return nil, fmt.Errorf("liste des objectifs: %w", err)
	}
	defer rows.Close()

	objectifs := make([]dto.ObjectifResponse, 0)
	for rows.Next() {
		obj, err := scanObjectif(rows, true)
		if err != nil {
			return nil, err
		}
		objectifs = append(objectifs, obj)
	}
	return objectifs, rows.Err()
}

// Create crée un objectif pour l'appelant lui-même
func (s *ObjectifService) Create(ctx context.Context, identity authz.Identity, req dto.CreateObjectifRequest) (*dto.ObjectifResponse, error) {
	if err := s.checkCategorieUsable(ctx, req.CategorieID, identity.ID); err != nil {
		return nil, err
	}

	annee := resolveYear(req.Annee)
	return s.insert(ctx, req.Description, annee, identity.ID, req.CategorieID)
}

// AdminCreate crée un objectif pour un consultant désigné. Un BUM ne peut
// viser que ses propres consultants.
func (s *ObjectifService) AdminCreate(ctx context.Context, identity authz.Identity, req dto.AdminCreateRequest) (*dto.ObjectifResponse, error) {
	if err := s.checkTarget(ctx, identity, req.UserID); err != nil {
		return nil, err
	}
	if err := s.checkCategorieUsable(ctx, req.CategorieID, req.UserID); err != nil {
		return nil, err
	}

	annee := resolveYear(req.Annee)
	return s.insert(ctx, req.Description, annee, req.UserID, req.CategorieID)
}

// BulkCreate crée le même objectif pour plusieurs consultants.
// L'autorisation est tout-ou-rien : chaque cible est contrôlée avant la
// moindre insertion. Une fois le contrôle passé, les insertions sont
// indépendantes et les échecs individuels sont agrégés.
func (s *ObjectifService) BulkCreate(ctx context.Context, identity authz.Identity, req dto.BulkCreateRequest) (*dto.BulkCreateResponse, error) {
	targets := make([]bulkTarget, 0, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		bumID, err := s.lookupTargetBum(ctx, userID)
		if err != nil {
			return nil, err
		}
		targets = append(targets, bulkTarget{id: userID, bumID: bumID})
	}

	categorieOwnerID, hasCategorie, err := s.lookupCategorieOwner(ctx, req.CategorieID)
	if err != nil {
		return nil, err
	}
	if err := gateBulkTargets(identity, targets, categorieOwnerID, hasCategorie); err != nil {
		return nil, err
	}

	annee := resolveYear(req.Annee)
	result := &dto.BulkCreateResponse{
		Created: make([]dto.ObjectifResponse, 0, len(req.UserIDs)),
		Failed:  make([]dto.BulkFailure, 0),
	}

	for _, userID := range req.UserIDs {
		obj, err := s.insert(ctx, req.Description, annee, userID, req.CategorieID)
		if err != nil {
			result.Failed = append(result.Failed, dto.BulkFailure{
				UserID: userID,
				Error:  "Création impossible",
			})
			continue
		}
		result.Created = append(result.Created, *obj)
	}

	return result, nil
}

// Update modifie un objectif. description/status/categorieId sont ouverts au
// propriétaire, à un admin ou au BUM du propriétaire ; validatedbyadmin est
// réservé à l'admin et au BUM du propriétaire.
func (s *ObjectifService) Update(ctx context.Context, identity authz.Identity, objectifID int64, req dto.UpdateObjectifRequest) (*dto.ObjectifResponse, error) {
	ownerID, _, ownerBumID, err := s.getForAuthz(ctx, objectifID)
	if err != nil {
		return nil, err
	}

	if !authz.CanEditObjectif(identity, ownerID, ownerBumID) {
		return nil, apperror.Forbidden("FORBIDDEN", "Accès refusé")
	}

	if req.ValidatedByAdmin != nil && !authz.CanValidateObjectif(identity, ownerBumID) {
		return nil, apperror.Forbidden("CANNOT_VALIDATE",
			"Seul un admin ou le BUM du consultant peut valider un objectif")
	}

	if req.CategorieID != nil {
		if err := s.checkCategorieUsable(ctx, req.CategorieID, ownerID); err != nil {
			return nil, err
		}
	}

	var obj dto.ObjectifResponse
	err = s.db.QueryRow(ctx, queries.ObjectifQueries.Update,
		objectifID, req.Description, req.Status, req.CategorieID, req.ValidatedByAdmin,
	).Scan(&obj.ID, &obj.Description, &obj.Status, &obj.ValidatedByAdmin,
		&obj.Annee, &obj.UserID, &obj.CategorieID, &obj.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("OBJECTIF_NOT_FOUND", "Objectif introuvable")
		}
		return nil, fmt.Errorf("mise à jour objectif: %w", err)
	}

	if req.ValidatedByAdmin != nil && *req.ValidatedByAdmin {
		s.audit.Record(audit.Event{
			Action:   audit.ActionObjectifValidated,
			Actor:    identity,
			TargetID: obj.ID,
			Details:  map[string]interface{}{"user_id": obj.UserID},
		})
	}

	return &obj, nil
}

// Delete supprime un objectif. Un admin supprime n'importe lequel ; un BUM
// uniquement ceux de ses consultants.
func (s *ObjectifService) Delete(ctx context.Context, identity authz.Identity, objectifID int64) error {
	ownerID, _, ownerBumID, err := s.getForAuthz(ctx, objectifID)
	if err != nil {
		return err
	}

	if err := authz.RequireManageable(identity, ownerBumID); err != nil {
		return err
	}

	if err := s.db.Exec(ctx, queries.ObjectifQueries.Delete, objectifID); err != nil {
		return fmt.Errorf("suppression objectif: %w", err)
	}

	s.audit.Record(audit.Event{
		Action:   audit.ActionObjectifDeleted,
		Actor:    identity,
		TargetID: objectifID,
		Details:  map[string]interface{}{"user_id": ownerID},
	})

	return nil
}

// CanView indique si l'appelant peut consulter un objectif donné et
// retourne son identifiant propriétaire
func (s *ObjectifService) CanView(ctx context.Context, identity authz.Identity, objectifID int64) error {
	ownerID, _, ownerBumID, err := s.getForAuthz(ctx, objectifID)
	if err != nil {
		return err
	}
	if !authz.CanViewConsultant(identity, ownerID, ownerBumID) {
		return apperror.Forbidden("FORBIDDEN", "Accès refusé")
	}
	return nil
}

func (s *ObjectifService) insert(ctx context.Context, description string, annee int, userID int64, categorieID *int64) (*dto.ObjectifResponse, error) {
	var obj dto.ObjectifResponse
	err := s.db.QueryRow(ctx, queries.ObjectifQueries.Insert,
		description, annee, userID, categorieID,
	).Scan(&obj.ID, &obj.Description, &obj.Status, &obj.ValidatedByAdmin,
		&obj.Annee, &obj.UserID, &obj.CategorieID, &obj.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("création objectif: %w", err)
	}
	return &obj, nil
}

func (s *ObjectifService) getForAuthz(ctx context.Context, objectifID int64) (ownerID int64, validated bool, ownerBumID *int64, err error) {
	var id int64
	err = s.db.QueryRow(ctx, queries.ObjectifQueries.GetForAuthz, objectifID).
		Scan(&id, &ownerID, &validated, &ownerBumID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = apperror.NotFound("OBJECTIF_NOT_FOUND", "Objectif introuvable")
			return
		}
		err = fmt.Errorf("recherche objectif: %w", err)
	}
	return
}

// bulkTarget est une cible résolue d'une création groupée
type bulkTarget struct {
	id    int64
	bumID *int64
}

// gateBulkTargets applique le contrôle de délégation et de catégorie à
// chaque cible avant la moindre insertion ; le premier refus rejette la
// demande entière et rien n'est créé
func gateBulkTargets(identity authz.Identity, targets []bulkTarget, categorieOwnerID *int64, hasCategorie bool) error {
	for _, target := range targets {
		if err := authz.RequireManageable(identity, target.bumID); err != nil {
			return err
		}
		if hasCategorie && !authz.CanUseCategorie(categorieOwnerID, target.id) {
			return errCategorieNotUsable()
		}
	}
	return nil
}

func errCategorieNotUsable() *apperror.Error {
	return apperror.Forbidden("CATEGORY_NOT_USABLE",
		"Cette catégorie n'est pas utilisable pour cet utilisateur")
}

// checkTarget vérifie que la cible d'une création déléguée existe et relève
// bien de l'appelant
func (s *ObjectifService) checkTarget(ctx context.Context, identity authz.Identity, targetID int64) error {
	bumID, err := s.lookupTargetBum(ctx, targetID)
	if err != nil {
		return err
	}
	return authz.RequireManageable(identity, bumID)
}

// lookupTargetBum retourne le bum_id de la cible d'une création déléguée
func (s *ObjectifService) lookupTargetBum(ctx context.Context, targetID int64) (*int64, error) {
	var (
		id    int64
		role  string
		bumID *int64
	)
	err := s.db.QueryRow(ctx, queries.ObjectifQueries.GetUserForAuthz, targetID).
		Scan(&id, &role, &bumID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("USER_NOT_FOUND", "Utilisateur introuvable")
		}
		return nil, fmt.Errorf("recherche utilisateur: %w", err)
	}
	return bumID, nil
}

// checkCategorieUsable vérifie qu'une catégorie est globale ou appartient à
// l'utilisateur visé
func (s *ObjectifService) checkCategorieUsable(ctx context.Context, categorieID *int64, targetUserID int64) error {
	ownerID, has, err := s.lookupCategorieOwner(ctx, categorieID)
	if err != nil {
		return err
	}
	if has && !authz.CanUseCategorie(ownerID, targetUserID) {
		return errCategorieNotUsable()
	}
	return nil
}

// lookupCategorieOwner retourne le propriétaire d'une catégorie (nil =
// globale) ; le second retour indique si une catégorie était demandée
func (s *ObjectifService) lookupCategorieOwner(ctx context.Context, categorieID *int64) (*int64, bool, error) {
	if categorieID == nil {
		return nil, false, nil
	}

	var ownerID *int64
	err := s.db.QueryRow(ctx, queries.ObjectifQueries.GetCategorieOwner, *categorieID).
		Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, apperror.NotFound("CATEGORIE_NOT_FOUND", "Catégorie introuvable")
		}
		return nil, false, fmt.Errorf("recherche catégorie: %w", err)
	}
	return ownerID, true, nil
}

func resolveYear(annee *int) int {
	if annee != nil {
		return *annee
	}
	return CurrentYear()
}

// scanObjectif lit une ligne objectif avec sa catégorie jointe, et
// l'auteur quand la requête le fournit
func scanObjectif(rows pgx.Rows, withUsername bool) (dto.ObjectifResponse, error) {
	var (
		obj        dto.ObjectifResponse
		catID      *int64
		catNom     *string
		catCouleur *string
		catIcone   *string
	)

	dest := []interface{}{&obj.ID, &obj.Description, &obj.Status,
		&obj.ValidatedByAdmin, &obj.Annee, &obj.UserID}
	if withUsername {
		dest = append(dest, &obj.Username)
	}
	dest = append(dest, &obj.CategorieID, &obj.CreatedAt,
		&catID, &catNom, &catCouleur, &catIcone)

	if err := rows.Scan(dest...); err != nil {
		return obj, fmt.Errorf("lecture objectif: %w", err)
	}

	if catID != nil {
		obj.Categorie = &dto.CategorieSummary{
			ID:      *catID,
			Nom:     *catNom,
			Couleur: *catCouleur,
			Icone:   catIcone,
		}
	}
	return obj, nil
}
