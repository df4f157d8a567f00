// Package postgres implements the repository interfaces over database/sql
// with parameterized queries. It contains no business logic.
package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"rondasapi/internal/repository"
)

const uniqueViolation = "23505"

// openConstraints are the partial unique indexes that allow a single open
// record per condomínio and date.
var openConstraints = map[string]bool{
	"uq_rondas_em_andamento":             true,
	"uq_rondas_esporadicas_em_andamento": true,
}

// mapWriteError translates violations of the open-record indexes to
// repository.ErrEmAndamentoExists.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && openConstraints[pgErr.ConstraintName] {
		return fmt.Errorf("%w: %s", repository.ErrEmAndamentoExists, pgErr.ConstraintName)
	}
	return err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// where accumulates AND-ed conditions with positional placeholders.
type where struct {
	conds []string
	args  []any
}

// add appends a condition whose single %d is replaced by the next placeholder index.
func (w *where) add(cond string, v any) {
	w.args = append(w.args, v)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// next is the index the following placeholder will take.
func (w *where) next() int {
	return len(w.args) + 1
}
