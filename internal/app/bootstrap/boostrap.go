package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
)

// BootstrapSystem orchestre le démarrage : schéma puis seeding,
// deux phases séquentielles sans surcomplexité
type BootstrapSystem struct {
	schemaManager  *SchemaManager
	seedingManager *SeedingManager
	timeout        time.Duration
}

func NewBootstrapSystem(
	schemaManager *SchemaManager,
	seedingManager *SeedingManager,
) *BootstrapSystem {
	return &BootstrapSystem{
		schemaManager:  schemaManager,
		seedingManager: seedingManager,
		timeout:        2 * time.Minute,
	}
}

// Execute lance le processus de bootstrap complet
func (bs *BootstrapSystem) Execute(ctx context.Context) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, bs.timeout)
	defer cancel()

	startTime := time.Now()

	if err := bs.schemaManager.Apply(timeoutCtx); err != nil {
		return fmt.Errorf("phase schéma échouée: %w", err)
	}

	if err := bs.seedingManager.Execute(timeoutCtx); err != nil {
		return fmt.Errorf("phase seeding échouée: %w", err)
	}

	fmt.Printf("[BOOTSTRAP] ✅ Bootstrap terminé en %v\n", time.Since(startTime))
	return nil
}

// RegisterBootstrapLifecycle branche le bootstrap sur le cycle de vie Fx
func RegisterBootstrapLifecycle(lc fx.Lifecycle, system *BootstrapSystem) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return system.Execute(ctx)
		},
	})
}
