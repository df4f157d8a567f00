package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rondasapi/internal/model"
	"rondasapi/internal/plantao"
	"rondasapi/internal/repository"
)

// RondaPostgres is a PostgreSQL implementation of repository.RondaRepository.
type RondaPostgres struct {
	db *sql.DB
}

// NewRondaPostgres creates a new RondaPostgres repository.
func NewRondaPostgres(db *sql.DB) *RondaPostgres {
	return &RondaPostgres{db: db}
}

var _ repository.RondaRepository = (*RondaPostgres)(nil)

const rondaColumns = `id, condominio_id, data_plantao, escala_plantao, turno, tipo, status,
	log_bruto, relatorio_processado, observacoes, total_rondas, duracao_total_minutos,
	primeiro_evento, ultimo_evento, user_id, supervisor_id, arquivo_origem,
	data_hora_inicio, data_hora_fim, created_at, updated_at`

func scanRonda(s scanner) (*model.Ronda, error) {
	var r model.Ronda
	if err := s.Scan(
		&r.ID,
		&r.CondominioID,
		&r.DataPlantao,
		&r.EscalaPlantao,
		&r.Turno,
		&r.Tipo,
		&r.Status,
		&r.LogBruto,
		&r.RelatorioProcessado,
		&r.Observacoes,
		&r.TotalRondas,
		&r.DuracaoTotalMinutos,
		&r.PrimeiroEvento,
		&r.UltimoEvento,
		&r.UserID,
		&r.SupervisorID,
		&r.ArquivoOrigem,
		&r.DataHoraInicio,
		&r.DataHoraFim,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRondas(rows *sql.Rows) ([]model.Ronda, error) {
	defer rows.Close()
	items := make([]model.Ronda, 0)
	for rows.Next() {
		r, err := scanRonda(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return items, rows.Err()
}

// rondaValues lists the mutable columns in insert order.
func rondaValues(r *model.Ronda) []any {
	return []any{
		r.CondominioID,
		r.DataPlantao,
		string(r.EscalaPlantao),
		string(r.Turno),
		string(r.Tipo),
		string(r.Status),
		r.LogBruto,
		r.RelatorioProcessado,
		r.Observacoes,
		r.TotalRondas,
		r.DuracaoTotalMinutos,
		r.PrimeiroEvento,
		r.UltimoEvento,
		r.UserID,
		r.SupervisorID,
		r.ArquivoOrigem,
		r.DataHoraInicio,
		r.DataHoraFim,
	}
}

func (p *RondaPostgres) Create(ctx context.Context, r *model.Ronda) (*model.Ronda, error) {
	const q = `
		INSERT INTO rondas (condominio_id, data_plantao, escala_plantao, turno, tipo, status,
			log_bruto, relatorio_processado, observacoes, total_rondas, duracao_total_minutos,
			primeiro_evento, ultimo_evento, user_id, supervisor_id, arquivo_origem,
			data_hora_inicio, data_hora_fim)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + rondaColumns
	created, err := scanRonda(p.db.QueryRowContext(ctx, q, rondaValues(r)...))
	if err != nil {
		return nil, mapWriteError(err)
	}
	return created, nil
}

func (p *RondaPostgres) Update(ctx context.Context, r *model.Ronda) (*model.Ronda, error) {
	const q = `
		UPDATE rondas SET
			condominio_id = $2, data_plantao = $3, escala_plantao = $4, turno = $5, tipo = $6,
			status = $7, log_bruto = $8, relatorio_processado = $9, observacoes = $10,
			total_rondas = $11, duracao_total_minutos = $12, primeiro_evento = $13,
			ultimo_evento = $14, user_id = $15, supervisor_id = $16, arquivo_origem = $17,
			data_hora_inicio = $18, data_hora_fim = $19, updated_at = now()
		WHERE id = $1
		RETURNING ` + rondaColumns
	args := append([]any{r.ID}, rondaValues(r)...)
	updated, err := scanRonda(p.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, mapWriteError(err)
	}
	return updated, nil
}

func (p *RondaPostgres) FindByID(ctx context.Context, id int64) (*model.Ronda, error) {
	return scanRonda(p.db.QueryRowContext(ctx, `SELECT `+rondaColumns+` FROM rondas WHERE id = $1`, id))
}

func (p *RondaPostgres) Delete(ctx context.Context, id int64) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM rondas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (p *RondaPostgres) ListByDay(ctx context.Context, condominioID int64, data model.Date) ([]model.Ronda, error) {
	const q = `SELECT ` + rondaColumns + ` FROM rondas
		WHERE condominio_id = $1 AND data_plantao = $2
		ORDER BY created_at, id`
	rows, err := p.db.QueryContext(ctx, q, condominioID, data)
	if err != nil {
		return nil, err
	}
	return scanRondas(rows)
}

func (p *RondaPostgres) FindEmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.Ronda, error) {
	const q = `SELECT ` + rondaColumns + ` FROM rondas
		WHERE condominio_id = $1 AND data_plantao = $2 AND status = 'em_andamento'
		ORDER BY id DESC LIMIT 1`
	return scanRonda(p.db.QueryRowContext(ctx, q, condominioID, data))
}

func (p *RondaPostgres) FindByPlantao(ctx context.Context, condominioID int64, data model.Date, escala plantao.Escala, tipo model.RondaTipo) (*model.Ronda, error) {
	const q = `SELECT ` + rondaColumns + ` FROM rondas
		WHERE condominio_id = $1 AND data_plantao = $2 AND escala_plantao = $3 AND tipo = $4
		ORDER BY id DESC LIMIT 1`
	return scanRonda(p.db.QueryRowContext(ctx, q, condominioID, data, string(escala), string(tipo)))
}

func rondaWhere(f repository.RondaFilter) *where {
	w := &where{}
	if f.CondominioID != nil {
		w.add("condominio_id = $%d", *f.CondominioID)
	}
	if f.SupervisorID != nil {
		w.add("supervisor_id = $%d", *f.SupervisorID)
	}
	if f.DataInicio != nil {
		w.add("data_plantao >= $%d", *f.DataInicio)
	}
	if f.DataFim != nil {
		w.add("data_plantao <= $%d", *f.DataFim)
	}
	if f.Turno != "" {
		w.add("turno = $%d", f.Turno)
	}
	return w
}

// Search returns a page of rondas, newest plantão first, and the filtered total.
func (p *RondaPostgres) Search(ctx context.Context, f repository.RondaFilter, pq repository.PageQuery) (*repository.PageResult[model.Ronda], error) {
	w := rondaWhere(f)

	var total int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rondas`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT %s FROM rondas%s ORDER BY data_plantao DESC, id DESC LIMIT $%d OFFSET $%d`,
		rondaColumns, w.String(), w.next(), w.next()+1)
	args := append(w.args, pq.Limit, pq.Offset)
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	items, err := scanRondas(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Ronda]{
		Items: items,
		Total: total,
	}, nil
}

func (p *RondaPostgres) Totals(ctx context.Context, f repository.RondaFilter) (repository.RondaTotals, error) {
	w := rondaWhere(f)
	q := `SELECT COUNT(*), COALESCE(SUM(total_rondas), 0), COALESCE(SUM(duracao_total_minutos), 0) FROM rondas` + w.String()
	var t repository.RondaTotals
	err := p.db.QueryRowContext(ctx, q, w.args...).Scan(&t.Count, &t.TotalRondas, &t.DuracaoTotalMinutos)
	return t, err
}
