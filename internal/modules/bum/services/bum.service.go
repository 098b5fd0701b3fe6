package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"objectifs-core/internal/infrastructure/audit"
	"objectifs-core/internal/infrastructure/database/postgres"
	"objectifs-core/internal/infrastructure/mailer"
	"objectifs-core/internal/modules/bum/dto"
	"objectifs-core/internal/modules/bum/queries"
	"objectifs-core/internal/shared/apperror"
	"objectifs-core/internal/shared/authz"
	"objectifs-core/internal/shared/utils"
)

type BumService struct {
	db     *postgres.Client
	mailer *mailer.Mailer
	audit  *audit.Recorder
}

// NewBumService crée une nouvelle instance du service BUM
func NewBumService(db *postgres.Client, mailerClient *mailer.Mailer, auditRecorder *audit.Recorder) *BumService {
	return &BumService{
		db:     db,
		mailer: mailerClient,
		audit:  auditRecorder,
	}
}

// Stats retourne les indicateurs agrégés de l'équipe du BUM
func (s *BumService) Stats(ctx context.Context, identity authz.Identity) (*dto.StatsResponse, error) {
	var stats dto.StatsResponse
	err := s.db.QueryRow(ctx, queries.BumQueries.TeamStats, identity.ID).
		Scan(&stats.TotalConsultants, &stats.TotalObjectifs,
			&stats.ObjectifsValides, &stats.ObjectifsEnCours)
	if err != nil {
		return nil, fmt.Errorf("statistiques d'équipe: %w", err)
	}

	stats.TauxValidation = TauxValidation(stats.ObjectifsValides, stats.TotalObjectifs)
	return &stats, nil
}

// TauxValidation calcule le pourcentage arrondi d'objectifs validés,
// zéro quand l'équipe n'a aucun objectif
func TauxValidation(valides, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(valides) / float64(total) * 100))
}

// MyBusinessUnit retourne la business unit du BUM avec ses membres
func (s *BumService) MyBusinessUnit(ctx context.Context, identity authz.Identity) (*dto.BusinessUnitDetail, error) {
	var bu dto.BusinessUnitDetail
	err := s.db.QueryRow(ctx, queries.BumQueries.GetBusinessUnit, identity.ID).
		Scan(&bu.ID, &bu.Nom, &bu.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("BUSINESS_UNIT_NOT_FOUND",
				"Aucune business unit rattachée")
		}
		return nil, fmt.Errorf("recherche business unit: %w", err)
	}

	rows, err := s.db.Query(ctx, queries.BumQueries.ListMembers, bu.ID)
	if err != nil {
		return nil, fmt.Errorf("liste des membres: %w", err)
	}
	defer rows.Close()

	bu.Membres = make([]dto.MemberResponse, 0)
	for rows.Next() {
		var m dto.MemberResponse
		if err := rows.Scan(&m.ID, &m.Username, &m.Role); err != nil {
			return nil, fmt.Errorf("lecture membre: %w", err)
		}
		bu.Membres = append(bu.Membres, m)
	}
	return &bu, rows.Err()
}

// Consultants retourne les consultants du BUM avec leurs objectifs
func (s *BumService) Consultants(ctx context.Context, identity authz.Identity) ([]dto.ConsultantResponse, error) {
	rows, err := s.db.Query(ctx, queries.BumQueries.ListConsultants, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("liste des consultants: %w", err)
	}
	defer rows.Close()

	consultants := make([]dto.ConsultantResponse, 0)
	for rows.Next() {
		var c dto.ConsultantResponse
		if err := rows.Scan(&c.ID, &c.Username, &c.Email, &c.Role,
			&c.BusinessUnitID, &c.BusinessUnitName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("lecture consultant: %w", err)
		}
		c.Objectifs = make([]dto.ObjectifDetail, 0)
		consultants = append(consultants, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	// Une seule requête pour tous les objectifs de l'équipe, ventilée
	// ensuite par consultant
	objRows, err := s.db.Query(ctx, queries.BumQueries.ListTeamObjectifs, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("objectifs de l'équipe: %w", err)
	}
	defer objRows.Close()

	byUser := make(map[int64][]dto.ObjectifDetail)
	for objRows.Next() {
		obj, err := scanObjectifDetail(objRows)
		if err != nil {
			return nil, err
		}
		byUser[obj.UserID] = append(byUser[obj.UserID], obj)
	}
	if err := objRows.Err(); err != nil {
		return nil, err
	}

	for i := range consultants {
		if objs, ok := byUser[consultants[i].ID]; ok {
			consultants[i].Objectifs = objs
		}
	}
	return consultants, nil
}

// CreateConsultant provisionne un consultant dans l'équipe et la business
// unit du BUM. Sans mot de passe fourni, un mot de passe est généré et les
// identifiants partent par email en tâche de fond.
func (s *BumService) CreateConsultant(ctx context.Context, identity authz.Identity, req dto.CreateConsultantRequest) (*dto.ConsultantResponse, error) {
	var businessUnitID *int64
	err := s.db.QueryRow(ctx, queries.BumQueries.GetBusinessUnitID, identity.ID).
		Scan(&businessUnitID)
	if err != nil {
		return nil, fmt.Errorf("recherche business unit: %w", err)
	}
	if businessUnitID == nil {
		return nil, apperror.Validation("BUM_WITHOUT_BUSINESS_UNIT",
			"Vous devez être rattaché à une business unit pour créer un consultant")
	}

	password := ""
	generated := false
	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < 6 {
			return nil, apperror.Validation("PASSWORD_TOO_SHORT",
				"Le mot de passe doit contenir au moins 6 caractères")
		}
		password = *req.Password
	} else {
		password = utils.GeneratePassword()
		generated = true
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hachage du mot de passe: %w", err)
	}

	var consultant dto.ConsultantResponse
	err = s.db.QueryRow(ctx, queries.BumQueries.InsertConsultant,
		req.Username, passwordHash, req.Email, identity.ID, businessUnitID,
	).Scan(&consultant.ID, &consultant.Username, &consultant.Email,
		&consultant.Role, &consultant.BusinessUnitID, &consultant.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("USERNAME_TAKEN",
				"Ce nom d'utilisateur existe déjà")
		}
		return nil, fmt.Errorf("création consultant: %w", err)
	}
	consultant.Objectifs = make([]dto.ObjectifDetail, 0)

	s.audit.Record(audit.Event{
		Action:   audit.ActionConsultantProvisioned,
		Actor:    identity,
		TargetID: consultant.ID,
		Details: map[string]interface{}{
			"username":           consultant.Username,
			"generated_password": generated,
		},
	})

	s.dispatchWelcomeEmail(req.Email, consultant.Username, password)

	return &consultant, nil
}

// DeleteConsultant retire un consultant de l'équipe du BUM
func (s *BumService) DeleteConsultant(ctx context.Context, identity authz.Identity, consultantID int64) error {
	var (
		id    int64
		role  string
		bumID *int64
	)
	err := s.db.QueryRow(ctx, queries.BumQueries.GetConsultantForAuthz, consultantID).
		Scan(&id, &role, &bumID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("USER_NOT_FOUND", "Utilisateur introuvable")
		}
		return fmt.Errorf("recherche consultant: %w", err)
	}

	if role != string(authz.RoleConsultant) {
		return authz.ErrNotAConsultant()
	}
	if err := authz.RequireManagedBy(identity, bumID); err != nil {
		return err
	}

	if err := s.db.Exec(ctx, queries.BumQueries.DeleteConsultant, consultantID); err != nil {
		return fmt.Errorf("suppression consultant: %w", err)
	}

	s.audit.Record(audit.Event{
		Action:   audit.ActionUserDeleted,
		Actor:    identity,
		TargetID: consultantID,
		Details:  map[string]interface{}{"role": role},
	})

	return nil
}

// ConsultantObjectifs retourne les objectifs d'un consultant du BUM avec
// catégories et commentaires
func (s *BumService) ConsultantObjectifs(ctx context.Context, identity authz.Identity, consultantID int64) ([]dto.ObjectifDetail, error) {
	var (
		id    int64
		role  string
		bumID *int64
	)
	err := s.db.QueryRow(ctx, queries.BumQueries.GetConsultantForAuthz, consultantID).
		Scan(&id, &role, &bumID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("USER_NOT_FOUND", "Utilisateur introuvable")
		}
		return nil, fmt.Errorf("recherche consultant: %w", err)
	}
	if err := authz.RequireManagedBy(identity, bumID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, queries.BumQueries.ListConsultantObjectifs, consultantID)
	if err != nil {
		return nil, fmt.Errorf("objectifs du consultant: %w", err)
	}
	defer rows.Close()

	objectifs := make([]dto.ObjectifDetail, 0)
	for rows.Next() {
		obj, err := scanObjectifDetail(rows)
		if err != nil {
			return nil, err
		}
		obj.Commentaires = make([]dto.CommentaireResponse, 0)
		objectifs = append(objectifs, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	cmRows, err := s.db.Query(ctx, queries.BumQueries.ListConsultantComments, consultantID)
	if err != nil {
		return nil, fmt.Errorf("commentaires du consultant: %w", err)
	}
	defer cmRows.Close()

	byObjectif := make(map[int64][]dto.CommentaireResponse)
	for cmRows.Next() {
		var cm dto.CommentaireResponse
		if err := cmRows.Scan(&cm.ID, &cm.Contenu, &cm.ObjectifID, &cm.UserID,
			&cm.Username, &cm.CreatedAt, &cm.UpdatedAt); err != nil {
			return nil, fmt.Errorf("lecture commentaire: %w", err)
		}
		byObjectif[cm.ObjectifID] = append(byObjectif[cm.ObjectifID], cm)
	}
	if err := cmRows.Err(); err != nil {
		return nil, err
	}

	for i := range objectifs {
		if cms, ok := byObjectif[objectifs[i].ID]; ok {
			objectifs[i].Commentaires = cms
		}
	}
	return objectifs, nil
}

// ReviewObjectif valide ou fait évoluer un objectif d'un consultant du BUM,
// avec un commentaire optionnel créé au nom du BUM
func (s *BumService) ReviewObjectif(ctx context.Context, identity authz.Identity, objectifID int64, req dto.ValidateObjectifRequest) (*dto.ObjectifDetail, error) {
	var (
		id      int64
		ownerID int64
		bumID   *int64
	)
	err := s.db.QueryRow(ctx, queries.BumQueries.GetObjectifForAuthz, objectifID).
		Scan(&id, &ownerID, &bumID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("OBJECTIF_NOT_FOUND", "Objectif introuvable")
		}
		return nil, fmt.Errorf("recherche objectif: %w", err)
	}
	if err := authz.RequireManagedBy(identity, bumID); err != nil {
		return nil, err
	}

	var obj dto.ObjectifDetail
	err = s.db.QueryRow(ctx, queries.BumQueries.UpdateObjectif,
		objectifID, req.ValidatedByAdmin, req.Status,
	).Scan(&obj.ID, &obj.Description, &obj.Status, &obj.ValidatedByAdmin,
		&obj.Annee, &obj.UserID, &obj.CategorieID, &obj.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("revue objectif: %w", err)
	}

	if req.Commentaire != nil && *req.Commentaire != "" {
		var cm dto.CommentaireResponse
		err := s.db.QueryRow(ctx, queries.BumQueries.InsertCommentaire,
			*req.Commentaire, objectifID, identity.ID,
		).Scan(&cm.ID, &cm.Contenu, &cm.ObjectifID, &cm.UserID,
			&cm.CreatedAt, &cm.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("création commentaire: %w", err)
		}
		cm.Username = identity.Username
		obj.Commentaires = []dto.CommentaireResponse{cm}
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

// dispatchWelcomeEmail envoie les identifiants en tâche de fond ; les
// erreurs d'envoi sont journalisées et jamais remontées à la requête
func (s *BumService) dispatchWelcomeEmail(email *string, username, password string) {
	if email == nil || *email == "" || s.mailer == nil || !s.mailer.Enabled() {
		return
	}

	to := *email
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.mailer.SendWelcomeEmail(ctx, to, username, password); err != nil {
			log.Printf("[MAILER] Envoi de l'email de bienvenue échoué pour %s: %v", username, err)
		}
	}()
}

// scanObjectifDetail lit une ligne objectif avec sa catégorie jointe
func scanObjectifDetail(rows pgx.Rows) (dto.ObjectifDetail, error) {
	var (
		obj        dto.ObjectifDetail
		catID      *int64
		catNom     *string
		catCouleur *string
		catIcone   *string
	)
	if err := rows.Scan(&obj.ID, &obj.Description, &obj.Status,
		&obj.ValidatedByAdmin, &obj.Annee, &obj.UserID, &obj.CategorieID,
		&obj.CreatedAt, &catID, &catNom, &catCouleur, &catIcone); err != nil {
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

// isUniqueViolation détecte une violation de contrainte UNIQUE PostgreSQL
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
