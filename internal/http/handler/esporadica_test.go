package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rondasapi/internal/model"
	"rondasapi/internal/service"
	serviceMocks "rondasapi/internal/service/mocks"
)

func TestIniciarEsporadica(t *testing.T) {
	mockSvc := new(serviceMocks.MockEsporadicaService)
	app := fiber.New()
	app.Post("/rondas-esporadicas/iniciar", IniciarEsporadica(mockSvc))

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Iniciar", mock.Anything, service.IniciarEsporadicaInput{
			CondominioID: 1,
			UserID:       3,
			DataPlantao:  day("2024-03-12"),
			HoraEntrada:  "22:15",
			Escala:       "18h às 06h",
		}).Return(&model.RondaEsporadica{ID: 11, Status: model.StatusEmAndamento}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/rondas-esporadicas/iniciar", fiber.Map{
			"condominio_id": 1, "user_id": 3, "data_plantao": "2024-03-12",
			"hora_entrada": "22:15", "escala_plantao": "18h às 06h",
		}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing fields reported by service", func(t *testing.T) {
		mockSvc.On("Iniciar", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: campos obrigatórios: user_id, hora_entrada", service.ErrInvalidInput)).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/rondas-esporadicas/iniciar", fiber.Map{"condominio_id": 1}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "campos obrigatórios: user_id, hora_entrada", decodeError(t, resp).Error.Message)
		mockSvc.AssertExpectations(t)
	})
}

func TestFinalizarEsporadica(t *testing.T) {
	mockSvc := new(serviceMocks.MockEsporadicaService)
	app := fiber.New()
	app.Put("/rondas-esporadicas/finalizar/:id", FinalizarEsporadica(mockSvc))

	t.Run("success", func(t *testing.T) {
		dur := 50
		mockSvc.On("Finalizar", mock.Anything, int64(11), service.FinalizarEsporadicaInput{HoraSaida: "23:05"}).
			Return(&model.RondaEsporadica{ID: 11, DuracaoMinutos: &dur, Status: model.StatusFinalizada}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/rondas-esporadicas/finalizar/11", fiber.Map{"hora_saida": "23:05"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.RondaEsporadica
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, 50, got.Duracao())
		mockSvc.AssertExpectations(t)
	})

	t.Run("hora_saida required", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/rondas-esporadicas/finalizar/11", fiber.Map{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp).Error.Message, "hora_saida")
	})
}

func TestEsporadicasExecutadas(t *testing.T) {
	mockSvc := new(serviceMocks.MockEsporadicaService)
	app := fiber.New()
	app.Get("/rondas-esporadicas/executadas", EsporadicasExecutadas(mockSvc))

	inicio := day("2024-03-01")
	mockSvc.On("Executadas", mock.Anything, (*int64)(nil), &inicio, (*model.Date)(nil)).
		Return([]model.RondaEsporadica{{ID: 2}, {ID: 1}}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rondas-esporadicas/executadas?data_inicio=2024-03-01", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data  []model.RondaEsporadica `json:"data"`
		Total int                     `json:"total"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, 2, body.Total)
	mockSvc.AssertExpectations(t)
}

func TestEsporadicasEstatisticas(t *testing.T) {
	mockSvc := new(serviceMocks.MockEsporadicaService)
	app := fiber.New()
	app.Get("/rondas-esporadicas/estatisticas/:condominio_id", EsporadicasEstatisticas(mockSvc))

	t.Run("period required", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rondas-esporadicas/estatisticas/1?data_inicio=2024-03-01", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Estatisticas", mock.Anything, int64(1), day("2024-03-01"), day("2024-03-07")).
			Return(&service.Estatisticas{CondominioID: 1, Resumo: service.EstatisticasResumo{Total: 4}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rondas-esporadicas/estatisticas/1?data_inicio=2024-03-01&data_fim=2024-03-07", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestValidarHorario(t *testing.T) {
	mockSvc := new(serviceMocks.MockEsporadicaService)
	app := fiber.New()
	app.Post("/rondas-esporadicas/validar-horario", ValidarHorario(mockSvc))

	mockSvc.On("ValidarHorario", "23:50").
		Return(&service.ValidacaoHorario{Valido: true, DiferencaMinutos: 20, ToleranciaMinutos: 30}, nil).Once()

	resp, _ := app.Test(jsonRequest(http.MethodPost, "/rondas-esporadicas/validar-horario", fiber.Map{"hora_entrada": "23:50"}))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got service.ValidacaoHorario
	json.NewDecoder(resp.Body).Decode(&got)
	assert.True(t, got.Valido)
	mockSvc.AssertExpectations(t)
}

func TestConsolidacaoHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockConsolidacaoService)
	app := fiber.New()
	app.Post("/consolidar-turno/:condominio_id/:data", ConsolidarTurno(mockSvc))
	app.Put("/marcar-processadas/:condominio_id/:data", MarcarProcessadas(mockSvc))
	app.Post("/processo-completo/:condominio_id/:data", ProcessoCompleto(mockSvc))
	app.Get("/status-consolidacao/:condominio_id/:data", StatusConsolidacao(mockSvc))

	data := day("2024-03-12")

	t.Run("nothing to consolidate", func(t *testing.T) {
		mockSvc.On("Consolidar", mock.Anything, int64(1), data).
			Return(nil, fmt.Errorf("%w: nenhuma ronda esporádica finalizada", service.ErrNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/consolidar-turno/1/2024-03-12", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("marcar processadas", func(t *testing.T) {
		mockSvc.On("MarcarProcessadas", mock.Anything, int64(1), data).Return(int64(3), nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPut, "/marcar-processadas/1/2024-03-12", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]int64
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, int64(3), body["total_marcadas"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("processo completo", func(t *testing.T) {
		mockSvc.On("ProcessoCompleto", mock.Anything, int64(1), data).Return(&service.ProcessoCompletoResult{
			Consolidacao: &service.ConsolidacaoResult{RondaID: 5, WhatsAppEnviado: true},
			Processadas:  true,
			Marcadas:     2,
		}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/processo-completo/1/2024-03-12", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got service.ProcessoCompletoResult
		json.NewDecoder(resp.Body).Decode(&got)
		assert.True(t, got.Processadas)
		assert.Equal(t, int64(5), got.Consolidacao.RondaID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("status", func(t *testing.T) {
		mockSvc.On("Status", mock.Anything, int64(1), data).Return(&service.StatusConsolidacao{Total: 2, Finalizadas: 2, PodeConsolidar: true}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/status-consolidacao/1/2024-03-12", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid condominio", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/status-consolidacao/0/2024-03-12", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestEsporadicaEmAndamento(t *testing.T) {
	mockSvc := new(serviceMocks.MockEsporadicaService)
	app := fiber.New()
	app.Get("/rondas-esporadicas/em-andamento/:condominio_id", EsporadicaEmAndamento(mockSvc))

	t.Run("requires date", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rondas-esporadicas/em-andamento/1", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("none open", func(t *testing.T) {
		mockSvc.On("EmAndamento", mock.Anything, int64(1), day("2024-03-12")).
			Return(nil, fmt.Errorf("%w: nenhuma ronda esporádica em andamento", service.ErrNotFound)).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rondas-esporadicas/em-andamento/1?data_plantao=2024-03-12", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, map[string]any{"em_andamento": false, "ronda": nil}, body)
	})

	t.Run("open esporádica", func(t *testing.T) {
		mockSvc.On("EmAndamento", mock.Anything, int64(1), day("2024-03-12")).
			Return(&model.RondaEsporadica{ID: 11, HoraEntrada: "22:15", Status: model.StatusEmAndamento}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/rondas-esporadicas/em-andamento/1?data_plantao=2024-03-12", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			EmAndamento bool                  `json:"em_andamento"`
			Ronda       model.RondaEsporadica `json:"ronda"`
		}
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.EmAndamento)
		assert.Equal(t, "22:15", body.Ronda.HoraEntrada)
		mockSvc.AssertExpectations(t)
	})
}
