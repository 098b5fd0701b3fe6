package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"objectifs-core/internal/infrastructure/audit"
	"objectifs-core/internal/infrastructure/database/postgres"
	"objectifs-core/internal/modules/users/dto"
	"objectifs-core/internal/modules/users/queries"
	"objectifs-core/internal/shared/apperror"
	"objectifs-core/internal/shared/authz"
	"objectifs-core/internal/shared/utils"
)

type UserService struct {
	db    *postgres.Client
	audit *audit.Recorder
}

// NewUserService crée une nouvelle instance du service utilisateurs
func NewUserService(db *postgres.Client, auditRecorder *audit.Recorder) *UserService {
	return &UserService{
		db:    db,
		audit: auditRecorder,
	}
}

// List retourne tous les utilisateurs avec leur business unit
func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	return s.queryUsers(ctx, queries.UserQueries.ListAll)
}

// MyTeam retourne l'équipe visible par l'appelant : ses consultants pour un
// BUM, tous les consultants pour un admin
func (s *UserService) MyTeam(ctx context.Context, identity authz.Identity) ([]dto.UserResponse, error) {
	if identity.IsAdmin() {
		return s.queryUsers(ctx, queries.UserQueries.ListConsultants)
	}
	return s.queryUsers(ctx, queries.UserQueries.ListTeamOfBum, identity.ID)
}

// Create crée un utilisateur (réservé admin, contrôle fait en amont)
func (s *UserService) Create(ctx context.Context, identity authz.Identity, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := authz.Role(req.Role)
	if req.Role == "" {
		role = authz.RoleConsultant
	}
	if !role.Valid() {
		return nil, apperror.Validation("INVALID_ROLE", "Rôle invalide")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hachage du mot de passe: %w", err)
	}

	var user dto.UserResponse
	err = s.db.QueryRow(ctx, queries.UserQueries.Insert,
		req.Username, passwordHash, req.Email, string(role),
		req.BusinessUnitID, req.BumID,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Role,
		&user.BusinessUnitID, &user.BumID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("USERNAME_TAKEN",
				"Ce nom d'utilisateur existe déjà")
		}
		return nil, fmt.Errorf("création utilisateur: %w", err)
	}

	s.audit.Record(audit.Event{
		Action:   audit.ActionUserCreated,
		Actor:    identity,
		TargetID: user.ID,
		Details:  map[string]interface{}{"username": user.Username, "role": user.Role},
	})

	return &user, nil
}

// Update modifie un utilisateur ; le mot de passe n'est re-haché que s'il
// est fourni
func (s *UserService) Update(ctx context.Context, identity authz.Identity, userID int64, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if req.Role != nil && !authz.Role(*req.Role).Valid() {
		return nil, apperror.Validation("INVALID_ROLE", "Rôle invalide")
	}

	var passwordHash *string
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hachage du mot de passe: %w", err)
		}
		passwordHash = &hashed
	}

	var user dto.UserResponse
	err := s.db.QueryRow(ctx, queries.UserQueries.Update,
		userID, req.Username, passwordHash, req.Email, req.Role,
		req.BusinessUnitID, req.BumID,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Role,
		&user.BusinessUnitID, &user.BumID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("USER_NOT_FOUND", "Utilisateur introuvable")
		}
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("USERNAME_TAKEN",
				"Ce nom d'utilisateur existe déjà")
		}
		return nil, fmt.Errorf("mise à jour utilisateur: %w", err)
	}

	s.audit.Record(audit.Event{
		Action:   audit.ActionUserUpdated,
		Actor:    identity,
		TargetID: user.ID,
	})

	return &user, nil
}

// Delete supprime un utilisateur. Un admin supprime n'importe qui ; un BUM
// uniquement ses propres consultants. La cascade emporte objectifs et
// commentaires.
func (s *UserService) Delete(ctx context.Context, identity authz.Identity, userID int64) error {
	var (
		targetID    int64
		targetRole  string
		targetBumID *int64
	)
	err := s.db.QueryRow(ctx, queries.UserQueries.GetForAuthz, userID).
		Scan(&targetID, &targetRole, &targetBumID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NotFound("USER_NOT_FOUND", "Utilisateur introuvable")
		}
		return fmt.Errorf("recherche utilisateur: %w", err)
	}

	if !identity.IsAdmin() {
		if targetRole != string(authz.RoleConsultant) {
			return authz.ErrNotAConsultant()
		}
		if err := authz.RequireManagedBy(identity, targetBumID); err != nil {
			return err
		}
	}

	if err := s.db.Exec(ctx, queries.UserQueries.Delete, userID); err != nil {
		return fmt.Errorf("suppression utilisateur: %w", err)
	}

	s.audit.Record(audit.Event{
		Action:   audit.ActionUserDeleted,
		Actor:    identity,
		TargetID: userID,
		Details:  map[string]interface{}{"role": targetRole},
	})

	return nil
}

// ListBusinessUnits retourne toutes les business units
func (s *UserService) ListBusinessUnits(ctx context.Context) ([]dto.BusinessUnitResponse, error) {
	rows, err := s.db.Query(ctx, queries.BusinessUnitQueries.List)
	if err != nil {
		return nil, fmt.Errorf("liste des business units: %w", err)
	}
	defer rows.Close()

	units := make([]dto.BusinessUnitResponse, 0)
	for rows.Next() {
		var bu dto.BusinessUnitResponse
		if err := rows.Scan(&bu.ID, &bu.Nom, &bu.CreatedAt); err != nil {
			return nil, fmt.Errorf("lecture business unit: %w", err)
		}
		units = append(units, bu)
	}
	return units, rows.Err()
}

// CreateBusinessUnit crée une business unit
func (s *UserService) CreateBusinessUnit(ctx context.Context, req dto.CreateBusinessUnitRequest) (*dto.BusinessUnitResponse, error) {
	var bu dto.BusinessUnitResponse
	err := s.db.QueryRow(ctx, queries.BusinessUnitQueries.Insert, req.Nom).
		Scan(&bu.ID, &bu.Nom, &bu.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("BUSINESS_UNIT_EXISTS",
				"Cette business unit existe déjà")
		}
		return nil, fmt.Errorf("création business unit: %w", err)
	}
	return &bu, nil
}

func (s *UserService) queryUsers(ctx context.Context, sql string, args ...interface{}) ([]dto.UserResponse, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("liste des utilisateurs: %w", err)
	}
	defer rows.Close()

	users := make([]dto.UserResponse, 0)
	for rows.Next() {
		var user dto.UserResponse
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role,
			&user.BusinessUnitID, &user.BumID, &user.BusinessUnitName,
			&user.CreatedAt); err != nil {
			return nil, fmt.Errorf("lecture utilisateur: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// isUniqueViolation détecte une violation de contrainte UNIQUE PostgreSQL
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
