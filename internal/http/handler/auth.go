package handler

import (
	"github.com/gofiber/fiber/v2"

	"rondasapi/internal/http/middleware"
	"rondasapi/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login exchanges credentials for a bearer token.
//
//	@Summary	Login
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		loginRequest	true	"Credentials"
//	@Success	200		{object}	service.LoginResult
//	@Failure	400		{object}	errorPayload
//	@Failure	401		{object}	errorPayload
//	@Failure	403		{object}	errorPayload
//	@Router		/api/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		res, err := svc.Login(c.UserContext(), service.LoginInput{
			Email:     req.Email,
			Password:  req.Password,
			IP:        c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Register creates an account awaiting approval.
//
//	@Summary	Register
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		registerRequest	true	"Account"
//	@Success	201		{object}	model.User
//	@Failure	400		{object}	errorPayload
//	@Failure	409		{object}	errorPayload
//	@Router		/api/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		u, err := svc.Register(c.UserContext(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "cadastro realizado, aguarde aprovação",
			"user":    u,
		})
	}
}

// Me returns the authenticated user.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(middleware.CurrentUser(c))
	}
}

type approveRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ApproveUser lets an admin approve a pending account.
func ApproveUser(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req approveRequest
		if err := bind(c, &req); err != nil {
			return writeServiceError(c, err)
		}
		if err := svc.Approve(c.UserContext(), req.Email); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
