package handler

import (
	"github.com/gofiber/fiber/v2"

	"rondasapi/internal/model"
	"rondasapi/internal/service"
)

// Required fields are checked by the service so the client gets the full
// list of what is missing in one answer.
type iniciarEsporadicaRequest struct {
	CondominioID int64      `json:"condominio_id"`
	UserID       int64      `json:"user_id"`
	SupervisorID *int64     `json:"supervisor_id"`
	DataPlantao  model.Date `json:"data_plantao"`
	HoraEntrada  string     `json:"hora_entrada"`
	Escala       string     `json:"escala_plantao"`
	Turno        string     `json:"turno"`
	Observacoes  string     `json:"observacoes"`
}

type finalizarEsporadicaRequest struct {
	HoraSaida   string  `json:"hora_saida" validate:"required"`
	Observacoes *string `json:"observacoes"`
}

type atualizarEsporadicaRequest struct {
	Observacoes string `json:"observacoes"`
}

type validarHorarioRequest struct {
	HoraEntrada string `json:"hora_entrada" validate:"required"`
}

// IniciarEsporadica opens a sporadic patrol.
//
//	@Summary	Start a ronda esporádica
//	@Tags		rondas-esporadicas
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		iniciarEsporadicaRequest	true	"Entry"
//	@Success	201		{object}	model.RondaEsporadica
//	@Failure	400		{object}	errorPayload
//	@Router		/api/rondas-esporadicas/iniciar [post]
func IniciarEsporadica(svc service.EsporadicaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req iniciarEsporadicaRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		r, err := svc.Iniciar(c.UserContext(), service.IniciarEsporadicaInput{
			CondominioID: req.CondominioID,
			UserID:       req.UserID,
			SupervisorID: req.SupervisorID,
			DataPlantao:  req.DataPlantao,
			HoraEntrada:  req.HoraEntrada,
			Escala:       req.Escala,
			Turno:        req.Turno,
			Observacoes:  req.Observacoes,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

func FinalizarEsporadica(svc service.EsporadicaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return writeServiceError(c, err)
		}
		var req finalizarEsporadicaRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		r, err := svc.Finalizar(c.UserContext(), id, service.FinalizarEsporadicaInput{
			HoraSaida:   req.HoraSaida,
			Observacoes: req.Observacoes,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(r)
	}
}

func AtualizarEsporadica(svc service.EsporadicaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return writeServiceError(c, err)
		}
		var req atualizarEsporadicaRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		r, err := svc.Atualizar(c.UserContext(), id, req.Observacoes)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(r)
	}
}

func EsporadicaEmAndamento(svc service.EsporadicaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, err := idParam(c, "condominio_id")
		if err != nil {
			return writeServiceError(c, err)
		}
		data, err := optionalDate(c, "data_plantao")
		if err != nil {
			return writeServiceError(c, err)
		}
		if data == nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "data_plantao é obrigatória")
		}
		r, err := svc.EmAndamento(c.UserContext(), condID, *data)
		return writeEmAndamento(c, r, err)
	}
}

func EsporadicasDoDia(svc service.EsporadicaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, data, err := condoDateParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		items, err := svc.DoDia(c.UserContext(), condID, data)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

func GetEsporadica(svc service.EsporadicaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return writeServiceError(c, err)
		}
		r, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(r)
	}
}

func EsporadicasExecutadas(svc service.EsporadicaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, err := optionalID(c, "condominio_id")
		if err != nil {
			return writeServiceError(c, err)
		}
		inicio, err := optionalDate(c, "data_inicio")
		if err != nil {
			return writeServiceError(c, err)
		}
		fim, err := optionalDate(c, "data_fim")
		if err != nil {
			return writeServiceError(c, err)
		}
		items, err := svc.Executadas(c.UserContext(), condID, inicio, fim)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items, "total": len(items)})
	}
}

func EsporadicasEstatisticas(svc service.EsporadicaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, err := idParam(c, "condominio_id")
		if err != nil {
			return writeServiceError(c, err)
		}
		inicio, err := optionalDate(c, "data_inicio")
		if err != nil {
			return writeServiceError(c, err)
		}
		fim, err := optionalDate(c, "data_fim")
		if err != nil {
			return writeServiceError(c, err)
		}
		if inicio == nil || fim == nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "data_inicio e data_fim são obrigatórias")
		}
		st, err := svc.Estatisticas(c.UserContext(), condID, *inicio, *fim)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}

// ValidarHorario checks hora_entrada against the server clock.
func ValidarHorario(svc service.EsporadicaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req validarHorarioRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.ValidarHorario(req.HoraEntrada)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
