package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rondasapi/internal/http/middleware"
	"rondasapi/internal/model"
	"rondasapi/internal/service"
	serviceMocks "rondasapi/internal/service/mocks"
)

func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func day(s string) model.Date {
	d, err := model.ParseDate(s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

// withUser stands in for RequireAuth in handler-level tests.
func withUser(u *model.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.UserLocalKey, u)
		return c.Next()
	}
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLiveness(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", Liveness())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
		msg    string
	}{
		{fmt.Errorf("%w: data_plantao é obrigatória", service.ErrInvalidInput), 400, "INVALID_INPUT", "data_plantao é obrigatória"},
		{service.ErrRondaEmAndamento, 409, "RONDA_EM_ANDAMENTO", ""},
		{service.ErrEmailTaken, 409, "CONFLICT", "email já cadastrado"},
		{service.ErrNoMessages, 404, "NO_MESSAGES", ""},
		{fmt.Errorf("%w: ronda", service.ErrNotFound), 404, "NOT_FOUND", "ronda"},
		{service.ErrInvalidCredentials, 401, "INVALID_CREDENTIALS", ""},
		{service.ErrNotApproved, 403, "NOT_APPROVED", ""},
		{&paramError{"INVALID_ID", "id inválido"}, 400, "INVALID_ID", "id inválido"},
		{errors.New("pq: connection refused"), 500, "INTERNAL_ERROR", "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeServiceError(c, tt.err) })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.code, body.Error.Code)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, body.Error.Message)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/api/login", Login(mockSvc))

	t.Run("success", func(t *testing.T) {
		res := &service.LoginResult{Token: "tok", User: &model.User{ID: 1, Email: "ana@example.com"}}
		mockSvc.On("Login", mock.Anything, mock.MatchedBy(func(in service.LoginInput) bool {
			return in.Email == "ana@example.com" && in.Password == "segredo"
		})).Return(res, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/login", fiber.Map{"email": "ana@example.com", "password": "segredo"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got service.LoginResult
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, "tok", got.Token)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing password", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/login", fiber.Map{"email": "ana@example.com"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Contains(t, body.Error.Message, "password")
	})

	t.Run("not approved", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrNotApproved).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/login", fiber.Map{"email": "novo@example.com", "password": "segredo"}))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRegister(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := fiber.New()
	app.Post("/api/register", Register(mockSvc))

	t.Run("created unapproved", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, service.RegisterInput{Username: "ana", Email: "ana@example.com", Password: "segredo"}).
			Return(&model.User{ID: 7, Username: "ana"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/register", fiber.Map{"username": "ana", "email": "ana@example.com", "password": "segredo"}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/register", fiber.Map{"username": "ana", "email": "nope", "password": "segredo"}))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("email taken", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrEmailTaken).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/register", fiber.Map{"username": "ana", "email": "ana@example.com", "password": "segredo"}))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	authSvc := new(serviceMocks.MockAuthService)
	rondaSvc := new(serviceMocks.MockRondaService)
	RegisterRoutes(app, nil, Deps{
		Auth:            authSvc,
		Rondas:          rondaSvc,
		Condominios:     new(serviceMocks.MockCondominioService),
		Import:          new(serviceMocks.MockImportService),
		Esporadicas:     new(serviceMocks.MockEsporadicaService),
		Consolidacao:    new(serviceMocks.MockConsolidacaoService),
		Export:          new(serviceMocks.MockExportService),
		LoginRatePerMin: 1,
	})

	guard := &model.User{ID: 3, Username: "guard", IsApproved: true}
	authSvc.On("Authenticate", mock.Anything, "guard-token").Return(guard, nil)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("api requires a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rondas/1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("static segment wins over id", func(t *testing.T) {
		rondaSvc.On("Historico", mock.Anything, mock.Anything).Return(&service.HistoricoResult{Page: 1}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/rondas/historico", nil)
		req.Header.Set("Authorization", "Bearer guard-token")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		rondaSvc.AssertExpectations(t)
	})

	t.Run("admin route forbidden to guard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/rondas/1", nil)
		req.Header.Set("Authorization", "Bearer guard-token")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Error.Code)
	})

	t.Run("login rate limited", func(t *testing.T) {
		authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials).Once()
		creds := fiber.Map{"email": "x@example.com", "password": "errada"}

		first, _ := app.Test(jsonRequest(http.MethodPost, "/api/login", creds))
		assert.Equal(t, http.StatusUnauthorized, first.StatusCode)

		second, _ := app.Test(jsonRequest(http.MethodPost, "/api/login", creds))
		assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
		assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, second).Error.Code)
	})
}
