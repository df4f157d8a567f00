// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) and hold no business logic.
package repository

import (
	"errors"

	"rondasapi/internal/model"
)

// ErrEmAndamentoExists is returned when a write would leave two open records
// for the same condomínio and date.
var ErrEmAndamentoExists = errors.New("repository: open record already exists for condominio and date")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

// RondaFilter narrows ronda searches. Nil fields are ignored.
type RondaFilter struct {
	CondominioID *int64
	SupervisorID *int64
	DataInicio   *model.Date
	DataFim      *model.Date
	Turno        string
}

// RondaTotals aggregates a filtered set of rondas.
type RondaTotals struct {
	Count               int
	TotalRondas         int
	DuracaoTotalMinutos int
}

// EsporadicaFilter narrows searches over rondas esporádicas.
type EsporadicaFilter struct {
	CondominioID *int64
	DataInicio   *model.Date
	DataFim      *model.Date
	Status       model.Status
}

