package repository

import (
	"context"

	"rondasapi/internal/model"
	"rondasapi/internal/plantao"
)

// RondaRepository persists rondas using SQL queries only.
type RondaRepository interface {
	Create(ctx context.Context, r *model.Ronda) (*model.Ronda, error)
	// Update overwrites every mutable column of r.ID.
	Update(ctx context.Context, r *model.Ronda) (*model.Ronda, error)
	FindByID(ctx context.Context, id int64) (*model.Ronda, error)
	// Delete returns sql.ErrNoRows when nothing was deleted.
	Delete(ctx context.Context, id int64) error

	// ListByDay returns the rondas of a plantão date, oldest first.
	ListByDay(ctx context.Context, condominioID int64, data model.Date) ([]model.Ronda, error)
	// FindEmAndamento returns the open ronda of a condomínio and date.
	FindEmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.Ronda, error)
	// FindByPlantao looks a ronda up by its natural key.
	FindByPlantao(ctx context.Context, condominioID int64, data model.Date, escala plantao.Escala, tipo model.RondaTipo) (*model.Ronda, error)

	Search(ctx context.Context, f RondaFilter, pq PageQuery) (*PageResult[model.Ronda], error)
	Totals(ctx context.Context, f RondaFilter) (RondaTotals, error)
}
