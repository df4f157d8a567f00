package postgres

import (
	"context"
	"database/sql"

	"rondasapi/internal/model"
	"rondasapi/internal/repository"
)

// EsporadicaPostgres is a PostgreSQL implementation of repository.EsporadicaRepository.
type EsporadicaPostgres struct {
	db *sql.DB
}

// NewEsporadicaPostgres creates a new EsporadicaPostgres repository.
func NewEsporadicaPostgres(db *sql.DB) *EsporadicaPostgres {
	return &EsporadicaPostgres{db: db}
}

var _ repository.EsporadicaRepository = (*EsporadicaPostgres)(nil)

const esporadicaColumns = `id, condominio_id, user_id, supervisor_id, data_plantao, escala_plantao, turno,
	hora_entrada, hora_saida, duracao_minutos, status, observacoes, log_bruto,
	relatorio_processado, created_at, updated_at`

func scanEsporadica(s scanner) (*model.RondaEsporadica, error) {
	var r model.RondaEsporadica
	if err := s.Scan(
		&r.ID,
		&r.CondominioID,
		&r.UserID,
		&r.SupervisorID,
		&r.DataPlantao,
		&r.EscalaPlantao,
		&r.Turno,
		&r.HoraEntrada,
		&r.HoraSaida,
		&r.DuracaoMinutos,
		&r.Status,
		&r.Observacoes,
		&r.LogBruto,
		&r.RelatorioProcessado,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func scanEsporadicas(rows *sql.Rows) ([]model.RondaEsporadica, error) {
	defer rows.Close()
	items := make([]model.RondaEsporadica, 0)
	for rows.Next() {
		r, err := scanEsporadica(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

func esporadicaValues(r *model.RondaEsporadica) []any {
	return []any{
		r.CondominioID,
		r.UserID,
		r.SupervisorID,
		r.DataPlantao,
		string(r.EscalaPlantao),
		string(r.Turno),
		r.HoraEntrada,
		r.HoraSaida,
		r.DuracaoMinutos,
		string(r.Status),
		r.Observacoes,
		r.LogBruto,
		r.RelatorioProcessado,
	}
}

func (p *EsporadicaPostgres) Create(ctx context.Context, r *model.RondaEsporadica) (*model.RondaEsporadica, error) {
	const q = `
		INSERT INTO rondas_esporadicas (condominio_id, user_id, supervisor_id, data_plantao,
			escala_plantao, turno, hora_entrada, hora_saida, duracao_minutos, status,
			observacoes, log_bruto, relatorio_processado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + esporadicaColumns
	created, err := scanEsporadica(p.db.QueryRowContext(ctx, q, esporadicaValues(r)...))
	if err != nil {
		return nil, mapWriteError(err)
	}
	return created, nil
}

func (p *EsporadicaPostgres) Update(ctx context.Context, r *model.RondaEsporadica) (*model.RondaEsporadica, error) {
	const q = `
		UPDATE rondas_esporadicas SET
			condominio_id = $2, user_id = $3, supervisor_id = $4, data_plantao = $5,
			escala_plantao = $6, turno = $7, hora_entrada = $8, hora_saida = $9,
			duracao_minutos = $10, status = $11, observacoes = $12, log_bruto = $13,
			relatorio_processado = $14, updated_at = now()
		WHERE id = $1
		RETURNING ` + esporadicaColumns
	args := append([]any{r.ID}, esporadicaValues(r)...)
	updated, err := scanEsporadica(p.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, mapWriteError(err)
	}
	return updated, nil
}

func (p *EsporadicaPostgres) FindByID(ctx context.Context, id int64) (*model.RondaEsporadica, error) {
	return scanEsporadica(p.db.QueryRowContext(ctx, `SELECT `+esporadicaColumns+` FROM rondas_esporadicas WHERE id = $1`, id))
}

func (p *EsporadicaPostgres) FindEmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.RondaEsporadica, error) {
	const q = `SELECT ` + esporadicaColumns + ` FROM rondas_esporadicas
		WHERE condominio_id = $1 AND data_plantao = $2 AND status = 'em_andamento'
		ORDER BY id DESC LIMIT 1`
	return scanEsporadica(p.db.QueryRowContext(ctx, q, condominioID, data))
}

func (p *EsporadicaPostgres) ListByDay(ctx context.Context, condominioID int64, data model.Date) ([]model.RondaEsporadica, error) {
	const q = `SELECT ` + esporadicaColumns + ` FROM rondas_esporadicas
		WHERE condominio_id = $1 AND data_plantao = $2
		ORDER BY hora_entrada, id`
	rows, err := p.db.QueryContext(ctx, q, condominioID, data)
	if err != nil {
		return nil, err
	}
	return scanEsporadicas(rows)
}

func (p *EsporadicaPostgres) List(ctx context.Context, f repository.EsporadicaFilter) ([]model.RondaEsporadica, error) {
	w := &where{}
	if f.CondominioID != nil {
		w.add("condominio_id = $%d", *f.CondominioID)
	}
	if f.DataInicio != nil {
		w.add("data_plantao >= $%d", *f.DataInicio)
	}
	if f.DataFim != nil {
		w.add("data_plantao <= $%d", *f.DataFim)
	}
	if f.Status != "" {
		w.add("status = $%d", string(f.Status))
	}
	q := `SELECT ` + esporadicaColumns + ` FROM rondas_esporadicas` + w.String() +
		` ORDER BY data_plantao DESC, hora_entrada DESC, id DESC`
	rows, err := p.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	return scanEsporadicas(rows)
}

func (p *EsporadicaPostgres) MarkProcessadas(ctx context.Context, condominioID int64, data model.Date) (int64, error) {
	const q = `
		UPDATE rondas_esporadicas SET status = 'processada', updated_at = now()
		WHERE condominio_id = $1 AND data_plantao = $2 AND status = 'finalizada'
	`
	res, err := p.db.ExecContext(ctx, q, condominioID, data)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
