package handler

import (
	"github.com/gofiber/fiber/v2"

	"rondasapi/internal/service"
)

// ConsolidarTurno folds the day's finished esporádicas into the main ronda.
//
//	@Summary	Consolidate sporadic patrols
//	@Tags		consolidacao
//	@Produce	json
//	@Security	BearerAuth
//	@Param		condominio_id	path		int		true	"Condomínio"
//	@Param		data			path		string	true	"YYYY-MM-DD"
//	@Success	200				{object}	service.ConsolidacaoResult
//	@Failure	404				{object}	errorPayload
//	@Router		/api/rondas-esporadicas/consolidar-turno/{condominio_id}/{data} [post]
func ConsolidarTurno(svc service.ConsolidacaoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, data, err := condoDateParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.Consolidar(c.UserContext(), condID, data)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func ConsolidarEEnviar(svc service.ConsolidacaoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, data, err := condoDateParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.ConsolidarEEnviar(c.UserContext(), condID, data)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func MarcarProcessadas(svc service.ConsolidacaoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, data, err := condoDateParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		n, err := svc.MarcarProcessadas(c.UserContext(), condID, data)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"total_marcadas": n})
	}
}

// ProcessoCompleto consolidates, sends and marks processed in one call.
func ProcessoCompleto(svc service.ConsolidacaoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, data, err := condoDateParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.ProcessoCompleto(c.UserContext(), condID, data)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func StatusConsolidacao(svc service.ConsolidacaoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, data, err := condoDateParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		st, err := svc.Status(c.UserContext(), condID, data)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(st)
	}
}
