package bootstrap

import (
	"context"
	"fmt"

	pgInfra "objectifs-core/internal/infrastructure/database/postgres"
)

// SchemaManager applique le schéma relationnel au démarrage.
// Le DDL est idempotent (IF NOT EXISTS) : un redémarrage ne casse rien.
type SchemaManager struct {
	pgClient *pgInfra.Client
}

func NewSchemaManager(pgClient *pgInfra.Client) *SchemaManager {
	return &SchemaManager{pgClient: pgClient}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS business_unit (
	id          BIGSERIAL PRIMARY KEY,
	nom         TEXT NOT NULL UNIQUE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS app_user (
	id                BIGSERIAL PRIMARY KEY,
	username          TEXT NOT NULL UNIQUE,
	password_hash     TEXT NOT NULL,
	email             TEXT,
	role              TEXT NOT NULL DEFAULT 'CONSULTANT'
	                  CHECK (role IN ('ADMIN', 'BUM', 'CONSULTANT')),
	business_unit_id  BIGINT REFERENCES business_unit(id) ON DELETE SET NULL,
	bum_id            BIGINT REFERENCES app_user(id) ON DELETE SET NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS categorie (
	id           BIGSERIAL PRIMARY KEY,
	nom          TEXT NOT NULL,
	description  TEXT,
	couleur      TEXT NOT NULL,
	user_id      BIGINT REFERENCES app_user(id) ON DELETE CASCADE,
	ordre        INTEGER,
	icone        TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS categorie_nom_user_uniq
	ON categorie (nom, COALESCE(user_id, 0));

CREATE TABLE IF NOT EXISTS objectif (
	id                  BIGSERIAL PRIMARY KEY,
	description         TEXT NOT NULL,
	status              TEXT NOT NULL DEFAULT 'En cours',
	validated_by_admin  BOOLEAN NOT NULL DEFAULT FALSE,
	annee               INTEGER NOT NULL,
	user_id             BIGINT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
	categorie_id        BIGINT REFERENCES categorie(id) ON DELETE SET NULL,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS objectif_user_annee_idx ON objectif (user_id, annee);

CREATE TABLE IF NOT EXISTS commentaire (
	id           BIGSERIAL PRIMARY KEY,
	contenu      TEXT NOT NULL,
	objectif_id  BIGINT NOT NULL REFERENCES objectif(id) ON DELETE CASCADE,
	user_id      BIGINT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS commentaire_objectif_idx ON commentaire (objectif_id);
`

// Apply exécute le DDL du schéma
func (sm *SchemaManager) Apply(ctx context.Context) error {
	if err := sm.pgClient.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("application du schéma échouée: %w", err)
	}
	return nil
}
