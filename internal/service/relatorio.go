package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rondasapi/internal/export"
	"rondasapi/internal/model"
	"rondasapi/internal/repository"
	"rondasapi/internal/storage"
)

// exportLimit caps how many rondas one spreadsheet carries.
const exportLimit = 5000

type ExportQuery struct {
	CondominioID *int64
	DataInicio   *model.Date
	DataFim      *model.Date
}

type ExportResult struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expires_at"`
	Rondas      int       `json:"total_rondas"`
	Esporadicas int       `json:"total_esporadicas"`
}

// ExportService renders rondas into a spreadsheet kept in object storage.
type ExportService interface {
	Rondas(ctx context.Context, q ExportQuery) (*ExportResult, error)
}

type exportService struct {
	store       storage.Storage
	rondas      repository.RondaRepository
	esporadicas repository.EsporadicaRepository
	condos      repository.CondominioRepository
	expiry      time.Duration
	now         func() time.Time
}

func NewExportService(store storage.Storage, rondas repository.RondaRepository, esporadicas repository.EsporadicaRepository, condos repository.CondominioRepository, expiry time.Duration) ExportService {
	return &exportService{store: store, rondas: rondas, esporadicas: esporadicas, condos: condos, expiry: expiry, now: time.Now}
}

func (s *exportService) Rondas(ctx context.Context, q ExportQuery) (*ExportResult, error) {
	if q.DataInicio != nil && q.DataFim != nil && q.DataFim.Before(q.DataInicio.Time) {
		return nil, invalid("data_fim anterior a data_inicio")
	}

	rondas, err := s.rondas.Search(ctx, repository.RondaFilter{
		CondominioID: q.CondominioID,
		DataInicio:   q.DataInicio,
		DataFim:      q.DataFim,
	}, repository.PageQuery{Limit: exportLimit})
	if err != nil {
		return nil, err
	}
	esporadicas, err := s.esporadicas.List(ctx, repository.EsporadicaFilter{
		CondominioID: q.CondominioID,
		DataInicio:   q.DataInicio,
		DataFim:      q.DataFim,
	})
	if err != nil {
		return nil, err
	}
	condos, err := s.condos.List(ctx)
	if err != nil {
		return nil, err
	}
	nomes := make(map[int64]string, len(condos))
	for _, c := range condos {
		nomes[c.ID] = c.Nome
	}

	buf, err := export.Write([]export.Sheet{
		export.RondasSheet(rondas.Items, nomes),
		export.EsporadicasSheet(esporadicas, nomes),
	})
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}

	key := "reports/" + uuid.New().String() + ".xlsx"
	size := int64(buf.Len())
	if _, err := s.store.Put(ctx, key, buf, storage.PutObjectOptions{Size: size, ContentType: export.ContentType}); err != nil {
		return nil, fmt.Errorf("upload workbook: %w", err)
	}
	url, err := s.store.PresignGet(ctx, key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign workbook: %w", err)
	}
	return &ExportResult{
		Key:         key,
		URL:         url,
		ExpiresAt:   s.now().UTC().Add(s.expiry),
		Rondas:      len(rondas.Items),
		Esporadicas: len(esporadicas),
	}, nil
}
