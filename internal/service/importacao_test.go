package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rondasapi/internal/model"
	"rondasapi/internal/plantao"
	repoMocks "rondasapi/internal/repository/mocks"
	"rondasapi/internal/storage"
	storeMocks "rondasapi/internal/storage/mocks"
)

const exportAurora = `12/03/2024 06:10 - João: Início de ronda
12/03/2024 06:40 - João: Término de ronda
12/03/2024 18:05 - Pedro: iniciando ronda
13/03/2024 00:30 - Pedro: ronda finalizada
`

type importFixture struct {
	store  *storeMocks.MockStorage
	rondas *repoMocks.MockRondaRepository
	condos *repoMocks.MockCondominioRepository
	svc    ImportService
}

func newImportFixture() *importFixture {
	f := &importFixture{
		store:  new(storeMocks.MockStorage),
		rondas: new(repoMocks.MockRondaRepository),
		condos: new(repoMocks.MockCondominioRepository),
	}
	f.svc = NewImportService(f.store, f.rondas, NewCondominioService(f.condos, nil), nil, nil, time.UTC)
	return f
}

func withFilename(name string) any {
	return mock.MatchedBy(func(o storage.PutObjectOptions) bool {
		return o.Metadata["original-filename"] == name && o.Size > 0
	})
}

func TestImportService_Processar(t *testing.T) {
	ctx := context.Background()
	data := day(2024, 3, 12)

	t.Run("uploaded file becomes the arquivo fixo", func(t *testing.T) {
		f := newImportFixture()
		f.store.On("Put", ctx, "whatsapp/fixo/5.txt", mock.Anything, withFilename("conversa.txt")).
			Return(storage.ObjectInfo{Key: "whatsapp/fixo/5.txt"}, nil)

		res, err := f.svc.Processar(ctx, ProcessarInput{
			UserID: 5, File: strings.NewReader(exportAurora), FileName: "conversa.txt",
			DataPlantao: data, Escala: "06h às 18h",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalMensagens)
		assert.False(t, res.ArquivoFixo)
		assert.Equal(t, "[06:10, 12/03/2024] João: Início de ronda\n[06:40, 12/03/2024] João: Término de ronda", res.LogFormatado)
		f.store.AssertExpectations(t)
	})

	t.Run("falls back to the arquivo fixo", func(t *testing.T) {
		f := newImportFixture()
		f.store.On("Get", ctx, "whatsapp/fixo/5.txt").
			Return(io.NopCloser(strings.NewReader(exportAurora)), storage.ObjectInfo{}, nil)

		res, err := f.svc.Processar(ctx, ProcessarInput{UserID: 5, DataPlantao: data, Escala: "noturno"})
		require.NoError(t, err)
		assert.True(t, res.ArquivoFixo)
		assert.Equal(t, plantao.EscalaNoturna, res.Escala)
		assert.Equal(t, 2, res.TotalMensagens)
		assert.Contains(t, res.LogFormatado, "[00:30, 13/03/2024] Pedro: ronda finalizada")
	})

	t.Run("no file at all", func(t *testing.T) {
		f := newImportFixture()
		f.store.On("Get", ctx, "whatsapp/fixo/5.txt").Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)

		_, err := f.svc.Processar(ctx, ProcessarInput{UserID: 5, DataPlantao: data, Escala: "diurno"})
		assert.ErrorIs(t, err, ErrNoFile)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("empty window", func(t *testing.T) {
		f := newImportFixture()
		f.store.On("Get", ctx, "whatsapp/fixo/5.txt").
			Return(io.NopCloser(strings.NewReader(exportAurora)), storage.ObjectInfo{}, nil)

		_, err := f.svc.Processar(ctx, ProcessarInput{UserID: 5, DataPlantao: day(2024, 3, 20), Escala: "diurno"})
		assert.ErrorIs(t, err, ErrNoMessages)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("escala required", func(t *testing.T) {
		f := newImportFixture()
		_, err := f.svc.Processar(ctx, ProcessarInput{UserID: 5, DataPlantao: data})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestImportService_ArquivoFixo(t *testing.T) {
	ctx := context.Background()
	f := newImportFixture()
	mod := time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)
	f.store.On("Stat", ctx, "whatsapp/fixo/1.txt").Return(storage.ObjectInfo{
		Size: 42, LastModified: mod, Metadata: map[string]string{"Original-Filename": "grupo.txt"},
	}, nil)
	f.store.On("Stat", ctx, "whatsapp/fixo/2.txt").Return(storage.ObjectInfo{}, storage.ErrObjectNotFound)
	f.store.On("Delete", ctx, "whatsapp/fixo/1.txt").Return(nil)

	got, err := f.svc.ArquivoFixo(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.HasFile)
	assert.Equal(t, "grupo.txt", got.FileName)
	assert.Equal(t, mod, *got.UpdatedAt)

	none, err := f.svc.ArquivoFixo(ctx, 2)
	require.NoError(t, err)
	assert.False(t, none.HasFile)

	assert.NoError(t, f.svc.RemoverArquivoFixo(ctx, 1))
}

func TestImportService_UploadProcess(t *testing.T) {
	ctx := context.Background()
	name := "Conversa do WhatsApp com Residencial Aurora.txt"
	dia, noite := day(2024, 3, 12), day(2024, 3, 12)

	t.Run("creates and updates one ronda per plantão", func(t *testing.T) {
		f := newImportFixture()
		f.condos.On("List", ctx).Return([]model.Condominio{*aurora}, nil)
		f.store.On("Put", ctx, mock.MatchedBy(func(k string) bool {
			return strings.HasPrefix(k, "whatsapp/1/") && strings.HasSuffix(k, ".txt")
		}), mock.Anything, withFilename(name)).Return(storage.ObjectInfo{}, nil)
		f.rondas.On("FindByPlantao", ctx, int64(1), dia, plantao.EscalaDiurna, model.TipoRegular).
			Return(&model.Ronda{ID: 20, CondominioID: 1, DataPlantao: dia, EscalaPlantao: plantao.EscalaDiurna, Tipo: model.TipoRegular}, nil)
		f.rondas.On("FindByPlantao", ctx, int64(1), noite, plantao.EscalaNoturna, model.TipoRegular).
			Return(nil, sql.ErrNoRows)
		f.rondas.On("Update", ctx, mock.Anything).Return(passRonda(0), nil)
		f.rondas.On("Create", ctx, mock.MatchedBy(func(r *model.Ronda) bool {
			return r.Turno == plantao.TurnoNoturno && r.ArquivoOrigem == name
		})).Return(passRonda(21), nil)

		res, err := f.svc.UploadProcess(ctx, UploadInput{UserID: 5, File: strings.NewReader(exportAurora), FileName: name})
		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalPlantoes)
		assert.Equal(t, 2, res.Salvos)
		require.Len(t, res.Plantoes, 2)
		assert.Equal(t, AcaoAtualizada, res.Plantoes[0].Acao)
		assert.Equal(t, int64(20), res.Plantoes[0].RondaID)
		assert.Equal(t, 1, res.Plantoes[0].TotalRondas)
		assert.Equal(t, AcaoCriada, res.Plantoes[1].Acao)
		assert.Equal(t, int64(21), res.Plantoes[1].RondaID)
	})

	t.Run("totals match the stored log", func(t *testing.T) {
		f := newImportFixture()
		export := "[12/03/24, 06:00:50] João: Início de ronda\n[12/03/24, 06:30:10] João: Término de ronda\n"
		f.condos.On("List", ctx).Return([]model.Condominio{*aurora}, nil)
		f.store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		f.rondas.On("FindByPlantao", ctx, int64(1), dia, plantao.EscalaDiurna, model.TipoRegular).Return(nil, sql.ErrNoRows)
		var saved *model.Ronda
		f.rondas.On("Create", ctx, mock.Anything).Return(func(r *model.Ronda) *model.Ronda {
			r.ID = 30
			saved = r
			return r
		}, nil)

		res, err := f.svc.UploadProcess(ctx, UploadInput{File: strings.NewReader(export), FileName: name})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Salvos)
		require.NotNil(t, saved)
		assert.Equal(t, 30, saved.DuracaoTotalMinutos)

		again := *saved
		_, err = analyzeLog(&again, aurora.Nome, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, saved.TotalRondas, again.TotalRondas)
		assert.Equal(t, saved.DuracaoTotalMinutos, again.DuracaoTotalMinutos)
		assert.Equal(t, saved.PrimeiroEvento, again.PrimeiroEvento)
		assert.Equal(t, saved.RelatorioProcessado, again.RelatorioProcessado)
	})

	t.Run("nothing saved", func(t *testing.T) {
		f := newImportFixture()
		f.condos.On("List", ctx).Return([]model.Condominio{*aurora}, nil)
		f.store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		f.rondas.On("FindByPlantao", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("db down"))

		res, err := f.svc.UploadProcess(ctx, UploadInput{File: strings.NewReader(exportAurora), FileName: name})
		assert.ErrorIs(t, err, ErrNothingSaved)
		require.NotNil(t, res)
		assert.Equal(t, AcaoErro, res.Plantoes[0].Acao)
		assert.Equal(t, "db down", res.Plantoes[0].Erro)
	})

	t.Run("month filter leaves nothing", func(t *testing.T) {
		f := newImportFixture()
		f.condos.On("List", ctx).Return([]model.Condominio{*aurora}, nil)
		f.store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)

		_, err := f.svc.UploadProcess(ctx, UploadInput{File: strings.NewReader(exportAurora), FileName: name, Month: 4})
		assert.ErrorIs(t, err, ErrNoMessages)
	})

	t.Run("rejects non txt", func(t *testing.T) {
		f := newImportFixture()
		_, err := f.svc.UploadProcess(ctx, UploadInput{File: strings.NewReader(""), FileName: "export.zip"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown condominio", func(t *testing.T) {
		f := newImportFixture()
		f.condos.On("List", ctx).Return([]model.Condominio{*aurora}, nil)
		_, err := f.svc.UploadProcess(ctx, UploadInput{File: strings.NewReader(exportAurora), FileName: "Conversa do WhatsApp com Família.txt"})
		assert.ErrorIs(t, err, ErrCondominioUnknown)
		f.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
