package repository

import (
	"context"

	"rondasapi/internal/model"
)

// EsporadicaRepository persists rondas esporádicas.
type EsporadicaRepository interface {
	Create(ctx context.Context, r *model.RondaEsporadica) (*model.RondaEsporadica, error)
	Update(ctx context.Context, r *model.RondaEsporadica) (*model.RondaEsporadica, error)
	FindByID(ctx context.Context, id int64) (*model.RondaEsporadica, error)

	FindEmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.RondaEsporadica, error)
	// ListByDay returns every ronda of the date ordered by hora_entrada.
	ListByDay(ctx context.Context, condominioID int64, data model.Date) ([]model.RondaEsporadica, error)
	// List applies f, newest first.
	List(ctx context.Context, f EsporadicaFilter) ([]model.RondaEsporadica, error)
	// MarkProcessadas moves the date's finalizadas to processada and
	// returns how many rows changed.
	MarkProcessadas(ctx context.Context, condominioID int64, data model.Date) (int64, error)
}
