package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"rondasapi/internal/http/middleware"
	"rondasapi/internal/model"
	"rondasapi/internal/repository"
	"rondasapi/internal/service"
)

type iniciarRondaRequest struct {
	CondominioID int64      `json:"condominio_id" validate:"required"`
	DataPlantao  model.Date `json:"data_plantao"`
	Escala       string     `json:"escala_plantao"`
	SupervisorID *int64     `json:"supervisor_id"`
	Observacoes  string     `json:"observacoes"`
}

type atualizarRondaRequest struct {
	LogBruto    *string `json:"log_bruto"`
	Observacoes *string `json:"observacoes"`
}

type salvarRondaRequest struct {
	RondaID      *int64     `json:"ronda_id"`
	CondominioID int64      `json:"condominio_id" validate:"required"`
	DataPlantao  model.Date `json:"data_plantao"`
	Escala       string     `json:"escala_plantao"`
	LogBruto     string     `json:"log_bruto" validate:"required"`
	Observacoes  string     `json:"observacoes"`
}

// userID is zero on routes mounted without RequireAuth.
func userID(c *fiber.Ctx) int64 {
	if u := middleware.CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}

func RondasDoDia(svc service.RondaService) fiber.Handler {
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

// RondaEmAndamento requires the data_plantao query parameter.
func RondaEmAndamento(svc service.RondaService) fiber.Handler {
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

// emAndamentoResponse reports an open ronda; "nothing open" is not an error.
type emAndamentoResponse struct {
	EmAndamento bool `json:"em_andamento"`
	Ronda       any  `json:"ronda"`
}

func writeEmAndamento[T any](c *fiber.Ctx, r *T, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(emAndamentoResponse{})
	}
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(emAndamentoResponse{EmAndamento: true, Ronda: r})
}

//	@Summary	Start a ronda
//	@Tags		rondas
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		iniciarRondaRequest	true	"Shift"
//	@Success	201		{object}	model.Ronda
//	@Failure	409		{object}	errorPayload
//	@Router		/api/rondas/iniciar [post]
func IniciarRonda(svc service.RondaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req iniciarRondaRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		r, err := svc.Iniciar(c.UserContext(), service.IniciarRondaInput{
			CondominioID: req.CondominioID,
			DataPlantao:  req.DataPlantao,
			Escala:       req.Escala,
			UserID:       userID(c),
			SupervisorID: req.SupervisorID,
			Observacoes:  req.Observacoes,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

func FinalizarRonda(svc service.RondaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return writeServiceError(c, err)
		}
		var req atualizarRondaRequest
		if len(c.Body()) > 0 {
			if err := bind(c, &req); err != nil {
				return writeServiceError(c, err)
			}
		}
		r, err := svc.Finalizar(c.UserContext(), id, service.AtualizarRondaInput{LogBruto: req.LogBruto, Observacoes: req.Observacoes})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(r)
	}
}

func AtualizarRonda(svc service.RondaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return writeServiceError(c, err)
		}
		var req atualizarRondaRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		r, err := svc.Atualizar(c.UserContext(), id, service.AtualizarRondaInput{LogBruto: req.LogBruto, Observacoes: req.Observacoes})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(r)
	}
}

// SalvarRonda stores a pasted log; the caller becomes the supervisor.
//
//	@Summary	Save a ronda from a pasted log
//	@Tags		rondas
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		salvarRondaRequest	true	"Log"
//	@Success	200		{object}	model.Ronda
//	@Success	201		{object}	model.Ronda
//	@Failure	400		{object}	errorPayload
//	@Router		/api/rondas/salvar [post]
func SalvarRonda(svc service.RondaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req salvarRondaRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		r, err := svc.Salvar(c.UserContext(), service.SalvarRondaInput{
			RondaID:      req.RondaID,
			CondominioID: req.CondominioID,
			DataPlantao:  req.DataPlantao,
			Escala:       req.Escala,
			LogBruto:     req.LogBruto,
			Observacoes:  req.Observacoes,
			SupervisorID: userID(c),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		status := fiber.StatusOK
		if req.RondaID == nil {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(r)
	}
}

// HistoricoRondas lists rondas with filters, pagination and totals.
//
//	@Summary	Ronda history
//	@Tags		rondas
//	@Produce	json
//	@Security	BearerAuth
//	@Param		condominio_id	query		int		false	"Condomínio"
//	@Param		supervisor_id	query		int		false	"Supervisor"
//	@Param		data_inicio		query		string	false	"YYYY-MM-DD"
//	@Param		data_fim		query		string	false	"YYYY-MM-DD"
//	@Param		turno			query		string	false	"diurno|noturno"
//	@Param		page			query		int		false	"Page"
//	@Param		per_page		query		int		false	"Page size"
//	@Success	200				{object}	service.HistoricoResult
//	@Router		/api/rondas/historico [get]
func HistoricoRondas(svc service.RondaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			f   repository.RondaFilter
			err error
		)
		if f.CondominioID, err = optionalID(c, "condominio_id"); err != nil {
			return writeServiceError(c, err)
		}
		if f.SupervisorID, err = optionalID(c, "supervisor_id"); err != nil {
			return writeServiceError(c, err)
		}
		if f.DataInicio, err = optionalDate(c, "data_inicio"); err != nil {
			return writeServiceError(c, err)
		}
		if f.DataFim, err = optionalDate(c, "data_fim"); err != nil {
			return writeServiceError(c, err)
		}
		f.Turno = c.Query("turno")

		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		perPage, err := strconv.Atoi(c.Query("per_page", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PER_PAGE", "invalid per_page")
		}

		res, err := svc.Historico(c.UserContext(), service.HistoricoQuery{Filter: f, Page: page, PerPage: perPage})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func GetRonda(svc service.RondaService) fiber.Handler {
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

func DeleteRonda(svc service.RondaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c, "id")
		if err != nil {
			return writeServiceError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func GerarRelatorio(svc service.RondaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, data, err := condoDateParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.GerarRelatorio(c.UserContext(), condID, data)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// EnviarWhatsApp answers 200 even when delivery fails; whatsapp_enviado tells.
func EnviarWhatsApp(svc service.RondaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		condID, data, err := condoDateParams(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.EnviarWhatsApp(c.UserContext(), condID, data)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ExportRondas writes a spreadsheet to object storage and returns a presigned link.
//
//	@Summary	Export rondas to XLSX
//	@Tags		rondas
//	@Produce	json
//	@Security	BearerAuth
//	@Param		condominio_id	query		int		false	"Condomínio"
//	@Param		data_inicio		query		string	false	"YYYY-MM-DD"
//	@Param		data_fim		query		string	false	"YYYY-MM-DD"
//	@Success	200				{object}	service.ExportResult
//	@Router		/api/rondas/export [get]
func ExportRondas(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			q   service.ExportQuery
			err error
		)
		if q.CondominioID, err = optionalID(c, "condominio_id"); err != nil {
			return writeServiceError(c, err)
		}
		if q.DataInicio, err = optionalDate(c, "data_inicio"); err != nil {
			return writeServiceError(c, err)
		}
		if q.DataFim, err = optionalDate(c, "data_fim"); err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.Rondas(c.UserContext(), q)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
