package service

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrRondaEmAndamento   = fmt.Errorf("%w: já existe uma ronda em andamento para este condomínio e data", ErrConflict)
	ErrInvalidCredentials = errors.New("email ou senha inválidos")
	ErrNotApproved        = errors.New("usuário aguardando aprovação")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailTaken         = fmt.Errorf("%w: email já cadastrado", ErrConflict)
	ErrNoMessages         = fmt.Errorf("%w: nenhuma mensagem encontrada para o período", ErrNotFound)
	ErrNoFile             = fmt.Errorf("%w: envie o arquivo do WhatsApp ou cadastre um arquivo fixo", ErrInvalidInput)
	ErrCondominioUnknown  = fmt.Errorf("%w: não foi possível identificar o condomínio pelo nome do arquivo", ErrInvalidInput)
	ErrNothingSaved       = errors.New("nenhuma ronda foi salva")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

// notFound maps sql.ErrNoRows to ErrNotFound and leaves other errors alone.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
