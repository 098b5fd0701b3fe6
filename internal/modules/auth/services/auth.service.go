package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	goredis "github.com/redis/go-redis/v9"

	"objectifs-core/internal/app/config"
	"objectifs-core/internal/infrastructure/database/postgres"
	"objectifs-core/internal/infrastructure/database/redis"
	"objectifs-core/internal/modules/auth/dto"
	"objectifs-core/internal/modules/auth/queries"
	"objectifs-core/internal/shared/apperror"
	"objectifs-core/internal/shared/authz"
	"objectifs-core/internal/shared/utils"
)

type AuthService struct {
	db     *postgres.Client
	redis  *redis.Client
	config *config.Config
}

// NewAuthService crée une nouvelle instance du service d'authentification
func NewAuthService(db *postgres.Client, redisClient *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		redis:  redisClient,
		config: cfg,
	}
}

// Register crée un compte. Le rôle est CONSULTANT par défaut ; un rôle
// explicite doit être valide.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
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
	err = s.db.QueryRow(ctx, queries.AuthQueries.Insert,
		req.Username, passwordHash, string(role),
	).Scan(&user.ID, &user.Username, &user.Email, &user.Role,
		&user.BusinessUnitID, &user.BumID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("USERNAME_TAKEN",
				"Ce nom d'utilisateur existe déjà")
		}
		return nil, fmt.Errorf("création utilisateur: %w", err)
	}

	return &user, nil
}

// Login vérifie les identifiants et émet un token porteur. Les échecs
// répétés sur un même username sont limités via Redis ; une panne Redis
// ne bloque jamais la connexion.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.checkLoginAttempts(ctx, req.Username); err != nil {
		return nil, err
	}

	var (
		user         dto.UserResponse
		passwordHash string
	)
	err := s.db.QueryRow(ctx, queries.AuthQueries.GetByUsername, req.Username).
		Scan(&user.ID, &user.Username, &passwordHash, &user.Email, &user.Role,
			&user.BusinessUnitID, &user.BumID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailedAttempt(ctx, req.Username)
			return nil, apperror.Unauthorized("INVALID_CREDENTIALS",
				"Identifiants invalides")
		}
		return nil, fmt.Errorf("recherche utilisateur: %w", err)
	}

	if !utils.VerifyPassword(req.Password, passwordHash) {
		s.recordFailedAttempt(ctx, req.Username)
		return nil, apperror.Unauthorized("INVALID_CREDENTIALS",
			"Identifiants invalides")
	}

	s.clearLoginAttempts(ctx, req.Username)

	token, _, err := utils.GenerateToken(user.ID, user.Username,
		authz.Role(user.Role), s.config.Auth.JWTSecret, s.config.Auth.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("génération du token: %w", err)
	}

	return &dto.LoginResponse{Token: token, User: user}, nil
}

// Logout révoque le token courant en inscrivant son jti dans Redis
// jusqu'à son expiration naturelle. Idempotent.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) {
	if s.redis == nil || jti == "" {
		return
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	key := s.redis.Keys().RevokedToken(jti)
	if err := s.redis.Set(ctx, key, "1", ttl); err != nil {
		log.Printf("[AUTH] Révocation du token indisponible: %v", err)
	}
}

// Me retourne l'utilisateur courant
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	var user dto.UserResponse
	err := s.db.QueryRow(ctx, queries.AuthQueries.GetByID, userID).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role,
			&user.BusinessUnitID, &user.BumID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("USER_NOT_FOUND", "Utilisateur introuvable")
		}
		return nil, fmt.Errorf("recherche utilisateur: %w", err)
	}
	return &user, nil
}

func (s *AuthService) checkLoginAttempts(ctx context.Context, username string) error {
	if s.redis == nil {
		return nil
	}

	key := s.redis.Keys().LoginAttempts(username)
	value, err := s.redis.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			log.Printf("[AUTH] Compteur de tentatives indisponible: %v", err)
		}
		return nil
	}

	attempts, _ := strconv.Atoi(value)
	if attempts >= s.config.Auth.MaxLoginAttempts {
		return apperror.New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
			"Trop de tentatives de connexion, réessayez plus tard")
	}
	return nil
}

func (s *AuthService) recordFailedAttempt(ctx context.Context, username string) {
	if s.redis == nil {
		return
	}

	key := s.redis.Keys().LoginAttempts(username)
	if _, err := s.redis.Incr(ctx, key, s.config.Auth.AttemptWindow); err != nil {
		log.Printf("[AUTH] Compteur de tentatives indisponible: %v", err)
	}
}

func (s *AuthService) clearLoginAttempts(ctx context.Context, username string) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(ctx, s.redis.Keys().LoginAttempts(username)); err != nil {
		log.Printf("[AUTH] Remise à zéro des tentatives indisponible: %v", err)
	}
}

// isUniqueViolation détecte une violation de contrainte UNIQUE PostgreSQL
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
