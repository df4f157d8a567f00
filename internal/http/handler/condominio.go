package handler

import (
	"github.com/gofiber/fiber/v2"

	"rondasapi/internal/service"
)

type createCondominioRequest struct {
	Nome     string `json:"nome" validate:"required"`
	Endereco string `json:"endereco"`
}

func ListCondominios(svc service.CondominioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

func CreateCondominio(svc service.CondominioService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createCondominioRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		cond, err := svc.Create(c.UserContext(), req.Nome, req.Endereco)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cond)
	}
}
