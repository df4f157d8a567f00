package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rondasapi/internal/condominio"
	"rondasapi/internal/model"
	"rondasapi/internal/repository"
	"rondasapi/internal/textnorm"
)

// CondominioService manages condomínios and resolves them from export file names.
type CondominioService interface {
	List(ctx context.Context) ([]model.Condominio, error)
	Get(ctx context.Context, id int64) (*model.Condominio, error)
	// Create rejects empty and duplicate names, compared accent-insensitively.
	Create(ctx context.Context, nome, endereco string) (*model.Condominio, error)
	InferFromFilename(ctx context.Context, filename string) (*model.Condominio, error)
}

type condominioService struct {
	repo    repository.CondominioRepository
	aliases condominio.Aliases
}

func NewCondominioService(repo repository.CondominioRepository, aliases condominio.Aliases) CondominioService {
	return &condominioService{repo: repo, aliases: aliases}
}

func (s *condominioService) List(ctx context.Context) ([]model.Condominio, error) {
	return s.repo.List(ctx)
}

func (s *condominioService) Get(ctx context.Context, id int64) (*model.Condominio, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "condomínio")
	}
	return c, nil
}

func (s *condominioService) Create(ctx context.Context, nome, endereco string) (*model.Condominio, error) {
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, invalid("nome é obrigatório")
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	key := textnorm.Fold(nome)
	for _, c := range all {
		if textnorm.Fold(c.Nome) == key {
			return nil, fmt.Errorf("%w: condomínio %q já existe", ErrConflict, c.Nome)
		}
	}
	return s.repo.Create(ctx, &model.Condominio{
		Nome:      nome,
		Endereco:  strings.TrimSpace(endereco),
		CreatedAt: time.Now().UTC(),
	})
}

func (s *condominioService) InferFromFilename(ctx context.Context, filename string) (*model.Condominio, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := condominio.Infer(filename, all, s.aliases)
	if !ok {
		return nil, ErrCondominioUnknown
	}
	return c, nil
}
