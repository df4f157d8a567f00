package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rondasapi/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_condominios",
		SQL: `CREATE TABLE IF NOT EXISTS condominios (
  id         BIGSERIAL   PRIMARY KEY,
  nome       TEXT        NOT NULL UNIQUE,
  endereco   TEXT        NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            BIGSERIAL   PRIMARY KEY,
  username      TEXT        NOT NULL UNIQUE,
  email         TEXT        NOT NULL,
  password_hash TEXT        NOT NULL,
  is_admin      BOOLEAN     NOT NULL DEFAULT false,
  is_supervisor BOOLEAN     NOT NULL DEFAULT false,
  is_approved   BOOLEAN     NOT NULL DEFAULT false,
  last_login    TIMESTAMPTZ,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_users_email",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (lower(email));`,
	},
	{
		Name: "create_table_login_history",
		SQL: `CREATE TABLE IF NOT EXISTS login_history (
  id              BIGSERIAL   PRIMARY KEY,
  user_id         BIGINT      REFERENCES users (id) ON DELETE SET NULL,
  attempted_email TEXT        NOT NULL,
  success         BOOLEAN     NOT NULL,
  ip_address      TEXT        NOT NULL DEFAULT '',
  user_agent      TEXT        NOT NULL DEFAULT '',
  failure_reason  TEXT        NOT NULL DEFAULT '',
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_rondas",
		SQL: `CREATE TABLE IF NOT EXISTS rondas (
  id                    BIGSERIAL   PRIMARY KEY,
  condominio_id         BIGINT      NOT NULL REFERENCES condominios (id),
  data_plantao          DATE        NOT NULL,
  escala_plantao        TEXT        NOT NULL CHECK (escala_plantao IN ('06h às 18h', '18h às 06h')),
  turno                 TEXT        NOT NULL CHECK (turno IN ('diurno', 'noturno')),
  tipo                  TEXT        NOT NULL DEFAULT 'regular' CHECK (tipo IN ('regular', 'esporadica')),
  status                TEXT        NOT NULL DEFAULT 'em_andamento' CHECK (status IN ('em_andamento', 'finalizada')),
  log_bruto             TEXT        NOT NULL DEFAULT '',
  relatorio_processado  TEXT        NOT NULL DEFAULT '',
  observacoes           TEXT        NOT NULL DEFAULT '',
  total_rondas          INTEGER     NOT NULL DEFAULT 0 CHECK (total_rondas >= 0),
  duracao_total_minutos INTEGER     NOT NULL DEFAULT 0 CHECK (duracao_total_minutos >= 0),
  primeiro_evento       TIMESTAMPTZ,
  ultimo_evento         TIMESTAMPTZ,
  user_id               BIGINT      REFERENCES users (id) ON DELETE SET NULL,
  supervisor_id         BIGINT      REFERENCES users (id) ON DELETE SET NULL,
  arquivo_origem        TEXT        NOT NULL DEFAULT '',
  data_hora_inicio      TIMESTAMPTZ,
  data_hora_fim         TIMESTAMPTZ,
  created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_rondas_condominio_data",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_rondas_condominio_data ON rondas (condominio_id, data_plantao);`,
	},
	{
		Name: "create_unique_index_rondas_em_andamento",
		SQL: `CREATE UNIQUE INDEX IF NOT EXISTS uq_rondas_em_andamento ON rondas (condominio_id, data_plantao)
  WHERE status = 'em_andamento';`,
	},
	{
		Name: "create_index_rondas_supervisor",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_rondas_supervisor ON rondas (supervisor_id);`,
	},
	{
		Name: "create_table_rondas_esporadicas",
		SQL: `CREATE TABLE IF NOT EXISTS rondas_esporadicas (
  id                   BIGSERIAL   PRIMARY KEY,
  condominio_id        BIGINT      NOT NULL REFERENCES condominios (id),
  user_id              BIGINT      NOT NULL REFERENCES users (id),
  supervisor_id        BIGINT      REFERENCES users (id) ON DELETE SET NULL,
  data_plantao         DATE        NOT NULL,
  escala_plantao       TEXT        NOT NULL CHECK (escala_plantao IN ('06h às 18h', '18h às 06h')),
  turno                TEXT        NOT NULL CHECK (turno IN ('diurno', 'noturno')),
  hora_entrada         TEXT        NOT NULL CHECK (hora_entrada ~ '^[0-2][0-9]:[0-5][0-9]$'),
  hora_saida           TEXT        NOT NULL DEFAULT '',
  duracao_minutos      INTEGER     CHECK (duracao_minutos >= 0),
  status               TEXT        NOT NULL DEFAULT 'em_andamento' CHECK (status IN ('em_andamento', 'finalizada', 'processada')),
  observacoes          TEXT        NOT NULL DEFAULT '',
  log_bruto            TEXT        NOT NULL DEFAULT '',
  relatorio_processado TEXT        NOT NULL DEFAULT '',
  created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_rondas_esporadicas_condominio_data",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_rondas_esporadicas_condominio_data ON rondas_esporadicas (condominio_id, data_plantao);`,
	},
	{
		Name: "create_unique_index_rondas_esporadicas_em_andamento",
		SQL: `CREATE UNIQUE INDEX IF NOT EXISTS uq_rondas_esporadicas_em_andamento ON rondas_esporadicas (condominio_id, data_plantao)
  WHERE status = 'em_andamento';`,
	},
}

// sentinelTable is created by the last step; its presence means the schema is in place.
const sentinelTable = "public.rondas_esporadicas"

// EnsureMigrated checks the sentinel table and runs the migration steps when it is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	start := time.Now()

	log.Info(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		log.Error(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info(map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	log.Info(map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
		"steps":     len(steps),
	})

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error(map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Debug(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	log.Info(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
