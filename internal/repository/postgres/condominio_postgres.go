package postgres

import (
	"context"
	"database/sql"

	"rondasapi/internal/model"
	"rondasapi/internal/repository"
)

// CondominioPostgres is a PostgreSQL implementation of repository.CondominioRepository.
type CondominioPostgres struct {
	db *sql.DB
}

// NewCondominioPostgres creates a new CondominioPostgres repository.
func NewCondominioPostgres(db *sql.DB) *CondominioPostgres {
	return &CondominioPostgres{db: db}
}

var _ repository.CondominioRepository = (*CondominioPostgres)(nil)

const condominioColumns = `id, nome, endereco, created_at`

func scanCondominio(s scanner) (*model.Condominio, error) {
	var c model.Condominio
	if err := s.Scan(&c.ID, &c.Nome, &c.Endereco, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CondominioPostgres) List(ctx context.Context) ([]model.Condominio, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+condominioColumns+` FROM condominios ORDER BY nome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Condominio, 0)
	for rows.Next() {
		c, err := scanCondominio(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *CondominioPostgres) FindByID(ctx context.Context, id int64) (*model.Condominio, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+condominioColumns+` FROM condominios WHERE id = $1`, id)
	return scanCondominio(row)
}

func (r *CondominioPostgres) Create(ctx context.Context, c *model.Condominio) (*model.Condominio, error) {
	const q = `
		INSERT INTO condominios (nome, endereco)
		VALUES ($1, $2)
		RETURNING ` + condominioColumns
	return scanCondominio(r.db.QueryRowContext(ctx, q, c.Nome, c.Endereco))
}
