package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rondasapi/internal/model"
	"rondasapi/internal/notify"
	"rondasapi/internal/plantao"
	repoMocks "rondasapi/internal/repository/mocks"
)

type consolidacaoFixture struct {
	esporadicas *repoMocks.MockEsporadicaRepository
	rondas      *repoMocks.MockRondaRepository
	condos      *repoMocks.MockCondominioRepository
	notifier    *fakeNotifier
	svc         ConsolidacaoService
}

func newConsolidacaoFixture() *consolidacaoFixture {
	f := &consolidacaoFixture{
		esporadicas: new(repoMocks.MockEsporadicaRepository),
		rondas:      new(repoMocks.MockRondaRepository),
		condos:      new(repoMocks.MockCondominioRepository),
		notifier:    &fakeNotifier{},
	}
	svc := NewConsolidacaoService(f.esporadicas, f.rondas, f.condos, f.notifier, nil, nil, time.UTC).(*consolidacaoService)
	svc.now = fixedClock(instant)
	f.svc = svc
	return f
}

func noite() []model.RondaEsporadica {
	data := day(2024, 3, 12)
	sup := int64(2)
	return []model.RondaEsporadica{
		{ID: 1, CondominioID: 1, UserID: 4, SupervisorID: &sup, DataPlantao: data, EscalaPlantao: plantao.EscalaNoturna,
			HoraEntrada: "19:00", HoraSaida: "19:40", DuracaoMinutos: intPtr(40), Status: model.StatusFinalizada},
		{ID: 2, CondominioID: 1, UserID: 4, DataPlantao: data, EscalaPlantao: plantao.EscalaNoturna,
			HoraEntrada: "23:50", HoraSaida: "00:40", DuracaoMinutos: intPtr(50), Status: model.StatusFinalizada,
			Observacoes: "lâmpada queimada no bloco C"},
		{ID: 3, CondominioID: 1, UserID: 4, DataPlantao: data, EscalaPlantao: plantao.EscalaNoturna,
			HoraEntrada: "02:00", Status: model.StatusEmAndamento},
	}
}

func (f *consolidacaoFixture) expectDay(ctx context.Context) {
	data := day(2024, 3, 12)
	f.condos.On("FindByID", ctx, int64(1)).Return(aurora, nil)
	f.esporadicas.On("ListByDay", ctx, int64(1), data).Return(noite(), nil)
	f.rondas.On("FindByPlantao", ctx, int64(1), data, plantao.EscalaNoturna, model.TipoEsporadica).Return(nil, sql.ErrNoRows)
}

func TestConsolidacaoService_Consolidar(t *testing.T) {
	ctx := context.Background()
	data := day(2024, 3, 12)

	t.Run("creates the main ronda", func(t *testing.T) {
		f := newConsolidacaoFixture()
		f.expectDay(ctx)
		var saved *model.Ronda
		f.rondas.On("Create", ctx, mock.Anything).Return(func(r *model.Ronda) *model.Ronda {
			r.ID = 99
			saved = r
			return r
		}, nil)

		res, err := f.svc.Consolidar(ctx, 1, data)
		require.NoError(t, err)
		assert.Equal(t, int64(99), res.RondaID)
		assert.True(t, res.Criada)
		assert.Equal(t, 2, res.TotalRondas)
		assert.Equal(t, 90, res.DuracaoTotalMinutos)
		assert.Equal(t, "1h 30min", res.DuracaoFormatada)
		assert.Contains(t, res.Relatorio, "Total de rondas: 2")
		assert.Empty(t, f.notifier.sent)

		require.NotNil(t, saved)
		assert.Equal(t, model.TipoEsporadica, saved.Tipo)
		assert.Equal(t, model.StatusFinalizada, saved.Status)
		lines := strings.Split(saved.LogBruto, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "[19:00, 12/03/2024] Ronda esporádica: 19:00 às 19:40 (40min)", lines[0])
		assert.Equal(t, "[23:50, 12/03/2024] Ronda esporádica: 23:50 às 00:40 (50min) - lâmpada queimada no bloco C", lines[1])
		assert.Equal(t, time.Date(2024, 3, 13, 0, 40, 0, 0, time.UTC), *saved.UltimoEvento)
		require.NotNil(t, saved.SupervisorID)
		assert.Equal(t, int64(2), *saved.SupervisorID)
	})

	t.Run("updates the existing consolidation", func(t *testing.T) {
		f := newConsolidacaoFixture()
		f.condos.On("FindByID", ctx, int64(1)).Return(aurora, nil)
		f.esporadicas.On("ListByDay", ctx, int64(1), data).Return(noite(), nil)
		f.rondas.On("FindByPlantao", ctx, int64(1), data, plantao.EscalaNoturna, model.TipoEsporadica).
			Return(&model.Ronda{ID: 50, CondominioID: 1, DataPlantao: data, EscalaPlantao: plantao.EscalaNoturna, Tipo: model.TipoEsporadica}, nil)
		f.rondas.On("Update", ctx, mock.Anything).Return(passRonda(0), nil)

		res, err := f.svc.Consolidar(ctx, 1, data)
		require.NoError(t, err)
		assert.Equal(t, int64(50), res.RondaID)
		assert.False(t, res.Criada)
		f.rondas.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("night entradas after midnight belong to the next morning", func(t *testing.T) {
		f := newConsolidacaoFixture()
		madrugada := []model.RondaEsporadica{
			{ID: 5, CondominioID: 1, UserID: 6, DataPlantao: data, EscalaPlantao: plantao.EscalaNoturna,
				HoraEntrada: "01:30", HoraSaida: "01:50", DuracaoMinutos: intPtr(20), Status: model.StatusFinalizada},
			{ID: 6, CondominioID: 1, UserID: 4, DataPlantao: data, EscalaPlantao: plantao.EscalaNoturna,
				HoraEntrada: "22:00", HoraSaida: "22:30", DuracaoMinutos: intPtr(30), Status: model.StatusFinalizada},
		}
		f.condos.On("FindByID", ctx, int64(1)).Return(aurora, nil)
		f.esporadicas.On("ListByDay", ctx, int64(1), data).Return(madrugada, nil)
		f.rondas.On("FindByPlantao", ctx, int64(1), data, plantao.EscalaNoturna, model.TipoEsporadica).Return(nil, sql.ErrNoRows)
		var saved *model.Ronda
		f.rondas.On("Create", ctx, mock.Anything).Return(func(r *model.Ronda) *model.Ronda {
			saved = r
			return r
		}, nil)

		_, err := f.svc.Consolidar(ctx, 1, data)
		require.NoError(t, err)
		require.NotNil(t, saved)

		window := plantao.WindowFor(time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), plantao.EscalaNoturna, time.UTC)
		assert.Equal(t, time.Date(2024, 3, 12, 22, 0, 0, 0, time.UTC), *saved.PrimeiroEvento)
		assert.Equal(t, time.Date(2024, 3, 13, 1, 50, 0, 0, time.UTC), *saved.UltimoEvento)
		assert.True(t, window.Contains(*saved.DataHoraInicio))
		assert.True(t, window.Contains(*saved.DataHoraFim))
		assert.Equal(t, int64(4), *saved.UserID)

		lines := strings.Split(saved.LogBruto, "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "[22:00, 12/03/2024] Ronda esporádica: 22:00 às 22:30 (30min)", lines[0])
		assert.Equal(t, "[01:30, 13/03/2024] Ronda esporádica: 01:30 às 01:50 (20min)", lines[1])
	})

	t.Run("rejects a day mixing escalas", func(t *testing.T) {
		f := newConsolidacaoFixture()
		mixed := noite()[:2]
		mixed = append(mixed, model.RondaEsporadica{ID: 9, CondominioID: 1, UserID: 4, DataPlantao: data,
			EscalaPlantao: plantao.EscalaDiurna, HoraEntrada: "10:00", HoraSaida: "10:20", DuracaoMinutos: intPtr(20),
			Status: model.StatusFinalizada})
		f.condos.On("FindByID", ctx, int64(1)).Return(aurora, nil)
		f.esporadicas.On("ListByDay", ctx, int64(1), data).Return(mixed, nil)

		_, err := f.svc.Consolidar(ctx, 1, data)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Contains(t, err.Error(), "escalas diferentes")
		f.rondas.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("nothing finalizada", func(t *testing.T) {
		f := newConsolidacaoFixture()
		f.condos.On("FindByID", ctx, int64(1)).Return(aurora, nil)
		f.esporadicas.On("ListByDay", ctx, int64(1), data).Return(noite()[2:], nil)

		_, err := f.svc.Consolidar(ctx, 1, data)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestConsolidacaoService_ProcessoCompleto(t *testing.T) {
	ctx := context.Background()
	data := day(2024, 3, 12)

	t.Run("marks processed after sending", func(t *testing.T) {
		f := newConsolidacaoFixture()
		f.expectDay(ctx)
		f.rondas.On("Create", ctx, mock.Anything).Return(passRonda(99), nil)
		f.esporadicas.On("MarkProcessadas", ctx, int64(1), data).Return(int64(2), nil)

		res, err := f.svc.ProcessoCompleto(ctx, 1, data)
		require.NoError(t, err)
		assert.True(t, res.Consolidacao.WhatsAppEnviado)
		assert.True(t, res.Processadas)
		assert.Equal(t, int64(2), res.Marcadas)
		require.Len(t, f.notifier.sent, 1)
		assert.Contains(t, f.notifier.sent[0].Text, "• 23:50 às 00:40 (50min)")
	})

	t.Run("keeps finalizadas when delivery is off", func(t *testing.T) {
		f := newConsolidacaoFixture()
		f.notifier.err = notify.ErrDisabled
		f.expectDay(ctx)
		f.rondas.On("Create", ctx, mock.Anything).Return(passRonda(99), nil)

		res, err := f.svc.ProcessoCompleto(ctx, 1, data)
		require.NoError(t, err)
		assert.False(t, res.Processadas)
		assert.NotEmpty(t, res.Consolidacao.MensagemWhatsApp)
		f.esporadicas.AssertNotCalled(t, "MarkProcessadas", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestConsolidacaoService_Status(t *testing.T) {
	ctx := context.Background()
	data := day(2024, 3, 12)
	f := newConsolidacaoFixture()
	f.esporadicas.On("ListByDay", ctx, int64(1), data).Return(noite(), nil)
	f.rondas.On("ListByDay", ctx, int64(1), data).Return([]model.Ronda{
		{ID: 7, Tipo: model.TipoRegular},
		{ID: 8, Tipo: model.TipoEsporadica},
	}, nil)

	st, err := f.svc.Status(ctx, 1, data)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Finalizadas)
	assert.Equal(t, 1, st.EmAndamento)
	assert.True(t, st.Consolidada)
	assert.Equal(t, int64(8), *st.RondaPrincipalID)
	assert.True(t, st.PodeConsolidar)
}

func TestConsolidacaoService_MarcarProcessadas(t *testing.T) {
	ctx := context.Background()
	f := newConsolidacaoFixture()
	f.esporadicas.On("MarkProcessadas", ctx, int64(1), day(2024, 3, 12)).Return(int64(3), nil)

	n, err := f.svc.MarcarProcessadas(ctx, 1, day(2024, 3, 12))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = f.svc.MarcarProcessadas(ctx, 1, model.Date{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConsolidacaoService_Status_MixedEscalas(t *testing.T) {
	ctx := context.Background()
	data := day(2024, 3, 12)
	all := append(noite(), model.RondaEsporadica{ID: 9, DataPlantao: data, EscalaPlantao: plantao.EscalaDiurna,
		HoraEntrada: "10:00", Status: model.StatusFinalizada})

	f := newConsolidacaoFixture()
	f.esporadicas.On("ListByDay", ctx, int64(1), data).Return(all, nil)
	f.rondas.On("ListByDay", ctx, int64(1), data).Return([]model.Ronda{}, nil)

	st, err := f.svc.Status(ctx, 1, data)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Finalizadas)
	assert.False(t, st.PodeConsolidar)
}
