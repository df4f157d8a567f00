package repository

import (
	"context"

	"rondasapi/internal/model"
)

// CondominioRepository persists condomínios.
type CondominioRepository interface {
	// List returns every condomínio ordered by name.
	List(ctx context.Context) ([]model.Condominio, error)
	// FindByID returns sql.ErrNoRows when missing.
	FindByID(ctx context.Context, id int64) (*model.Condominio, error)
	// Create inserts a row and returns it with its generated ID.
	Create(ctx context.Context, c *model.Condominio) (*model.Condominio, error)
}
