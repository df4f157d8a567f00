package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rondasapi/internal/export"
	"rondasapi/internal/model"
	"rondasapi/internal/repository"
	repoMocks "rondasapi/internal/repository/mocks"
	"rondasapi/internal/storage"
	storeMocks "rondasapi/internal/storage/mocks"
)

func TestExportService_Rondas(t *testing.T) {
	ctx := context.Background()
	condo := int64(1)
	inicio, fim := day(2024, 3, 1), day(2024, 3, 31)
	q := ExportQuery{CondominioID: &condo, DataInicio: &inicio, DataFim: &fim}

	setup := func() (*storeMocks.MockStorage, *repoMocks.MockRondaRepository, ExportService) {
		store := new(storeMocks.MockStorage)
		rondas := new(repoMocks.MockRondaRepository)
		esporadicas := new(repoMocks.MockEsporadicaRepository)
		condos := new(repoMocks.MockCondominioRepository)

		rondas.On("Search", ctx, repository.RondaFilter{CondominioID: &condo, DataInicio: &inicio, DataFim: &fim}, repository.PageQuery{Limit: exportLimit}).
			Return(&repository.PageResult[model.Ronda]{Items: []model.Ronda{{ID: 1, CondominioID: 1, DataPlantao: day(2024, 3, 12)}}, Total: 1}, nil)
		esporadicas.On("List", ctx, repository.EsporadicaFilter{CondominioID: &condo, DataInicio: &inicio, DataFim: &fim}).
			Return([]model.RondaEsporadica{{ID: 1, CondominioID: 1}, {ID: 2, CondominioID: 1}}, nil)
		condos.On("List", ctx).Return([]model.Condominio{*aurora}, nil)

		svc := NewExportService(store, rondas, esporadicas, condos, 15*time.Minute)
		return store, rondas, svc
	}

	t.Run("uploads and presigns", func(t *testing.T) {
		store, _, svc := setup()
		isReport := mock.MatchedBy(func(k string) bool {
			return strings.HasPrefix(k, "reports/") && strings.HasSuffix(k, ".xlsx")
		})
		store.On("Put", ctx, isReport, mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
			return o.ContentType == export.ContentType && o.Size > 0
		})).Return(storage.ObjectInfo{}, nil)
		store.On("PresignGet", ctx, isReport, 15*time.Minute).Return("https://minio.local/reports/x.xlsx?sig", nil)

		res, err := svc.Rondas(ctx, q)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Key, "reports/"))
		assert.Equal(t, "https://minio.local/reports/x.xlsx?sig", res.URL)
		assert.Equal(t, 1, res.Rondas)
		assert.Equal(t, 2, res.Esporadicas)
		store.AssertExpectations(t)
	})

	t.Run("upload failure", func(t *testing.T) {
		store, _, svc := setup()
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("bucket gone"))

		_, err := svc.Rondas(ctx, q)
		assert.EqualError(t, err, "upload workbook: bucket gone")
	})

	t.Run("inverted period", func(t *testing.T) {
		_, _, svc := setup()
		_, err := svc.Rondas(ctx, ExportQuery{DataInicio: &fim, DataFim: &inicio})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
