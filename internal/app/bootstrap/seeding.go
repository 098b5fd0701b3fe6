package bootstrap

import (
	"context"
	"fmt"
	"os"

	pgInfra "objectifs-core/internal/infrastructure/database/postgres"
	"objectifs-core/internal/shared/utils"
)

// SeedingManager crée les données minimales : un compte ADMIN initial et les
// catégories globales par défaut. Idempotent, vérifie l'existant avant d'insérer.
type SeedingManager struct {
	pgClient *pgInfra.Client
}

func NewSeedingManager(pgClient *pgInfra.Client) *SeedingManager {
	return &SeedingManager{pgClient: pgClient}
}

var defaultGlobalCategories = []struct {
	Nom     string
	Couleur string
}{
	{"Technique", "#3B82F6"},
	{"Commercial", "#10B981"},
	{"Formation", "#F59E0B"},
	{"Management", "#8B5CF6"},
}

// Execute lance le seeding complet
func (sm *SeedingManager) Execute(ctx context.Context) error {
	if err := sm.seedAdmin(ctx); err != nil {
		return err
	}
	return sm.seedGlobalCategories(ctx)
}

func (sm *SeedingManager) seedAdmin(ctx context.Context) error {
	var exists bool
	row := sm.pgClient.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM app_user WHERE role = 'ADMIN')`)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("vérification admin initial échouée: %w", err)
	}
	if exists {
		return nil
	}

	password := os.Getenv("ADMIN_DEFAULT_PASSWORD")
	if password == "" {
		password = utils.GeneratePassword()
		fmt.Printf("[SEEDING] ⚠️ Mot de passe admin initial généré: %s\n", password)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash mot de passe admin échoué: %w", err)
	}

	if err := sm.pgClient.Exec(ctx,
		`INSERT INTO app_user (username, password_hash, role) VALUES ($1, $2, 'ADMIN')`,
		"admin", hashed); err != nil {
		return fmt.Errorf("création admin initial échouée: %w", err)
	}

	fmt.Printf("[SEEDING] ✅ Compte admin initial créé\n")
	return nil
}

func (sm *SeedingManager) seedGlobalCategories(ctx context.Context) error {
	var count int
	row := sm.pgClient.QueryRow(ctx,
		`SELECT COUNT(*) FROM categorie WHERE user_id IS NULL`)
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("vérification catégories globales échouée: %w", err)
	}
	if count > 0 {
		return nil
	}

	for i, cat := range defaultGlobalCategories {
		if err := sm.pgClient.Exec(ctx,
			`INSERT INTO categorie (nom, couleur, user_id, ordre) VALUES ($1, $2, NULL, $3)`,
			cat.Nom, cat.Couleur, i+1); err != nil {
			return fmt.Errorf("création catégorie globale %s échouée: %w", cat.Nom, err)
		}
	}

	fmt.Printf("[SEEDING] ✅ %d catégories globales créées\n", len(defaultGlobalCategories))
	return nil
}
