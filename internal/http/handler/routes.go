package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"rondasapi/internal/http/middleware"
	"rondasapi/internal/service"
)

// Deps carries the services the HTTP layer talks to.
type Deps struct {
	Auth         service.AuthService
	Condominios  service.CondominioService
	Rondas       service.RondaService
	Import       service.ImportService
	Esporadicas  service.EsporadicaService
	Consolidacao service.ConsolidacaoService
	Export       service.ExportService

	// LoginRatePerMin limits login attempts per client IP; zero disables it.
	LoginRatePerMin int
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Static segments are registered before the /:id routes they would shadow.
func RegisterRoutes(app *fiber.App, db *sql.DB, d Deps) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", Liveness())

	api := app.Group("/api")

	login := []fiber.Handler{Login(d.Auth)}
	if d.LoginRatePerMin > 0 {
		login = append([]fiber.Handler{limiter.New(limiter.Config{
			Max:        d.LoginRatePerMin,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.ErrTooManyRequests
			},
		})}, login...)
	}
	api.Post("/login", login...)
	api.Post("/register", Register(d.Auth))

	authed := api.Group("", middleware.RequireAuth(d.Auth))
	admin := middleware.RequireAdmin()
	supervisor := middleware.RequireSupervisor()

	authed.Get("/me", Me())
	authed.Put("/usuarios/aprovar", admin, ApproveUser(d.Auth))

	authed.Get("/condominios", ListCondominios(d.Condominios))
	authed.Post("/condominios", admin, CreateCondominio(d.Condominios))

	rondas := authed.Group("/rondas")
	rondas.Get("/do-dia/:condominio_id/:data", RondasDoDia(d.Rondas))
	rondas.Get("/em-andamento/:condominio_id", RondaEmAndamento(d.Rondas))
	rondas.Post("/iniciar", IniciarRonda(d.Rondas))
	rondas.Put("/finalizar/:id", FinalizarRonda(d.Rondas))
	rondas.Put("/atualizar/:id", AtualizarRonda(d.Rondas))
	rondas.Post("/salvar", supervisor, SalvarRonda(d.Rondas))
	rondas.Get("/historico", HistoricoRondas(d.Rondas))
	rondas.Get("/export", supervisor, ExportRondas(d.Export))
	rondas.Post("/gerar-relatorio/:condominio_id/:data", GerarRelatorio(d.Rondas))
	rondas.Post("/enviar-whatsapp/:condominio_id/:data", EnviarWhatsApp(d.Rondas))
	rondas.Post("/processar-whatsapp", admin, ProcessarWhatsApp(d.Import))
	rondas.Post("/upload-process", admin, UploadProcess(d.Import))
	rondas.Get("/arquivo-fixo", GetArquivoFixo(d.Import))
	rondas.Delete("/arquivo-fixo", DeleteArquivoFixo(d.Import))
	rondas.Get("/:id", GetRonda(d.Rondas))
	rondas.Delete("/:id", admin, DeleteRonda(d.Rondas))

	esp := authed.Group("/rondas-esporadicas")
	esp.Post("/iniciar", IniciarEsporadica(d.Esporadicas))
	esp.Put("/finalizar/:id", FinalizarEsporadica(d.Esporadicas))
	esp.Put("/atualizar/:id", AtualizarEsporadica(d.Esporadicas))
	esp.Get("/em-andamento/:condominio_id", EsporadicaEmAndamento(d.Esporadicas))
	esp.Get("/do-dia/:condominio_id/:data", EsporadicasDoDia(d.Esporadicas))
	esp.Get("/executadas", EsporadicasExecutadas(d.Esporadicas))
	esp.Get("/estatisticas/:condominio_id", EsporadicasEstatisticas(d.Esporadicas))
	esp.Post("/validar-horario", ValidarHorario(d.Esporadicas))
	esp.Post("/consolidar-turno/:condominio_id/:data", ConsolidarTurno(d.Consolidacao))
	esp.Post("/consolidar-e-enviar/:condominio_id/:data", ConsolidarEEnviar(d.Consolidacao))
	esp.Put("/marcar-processadas/:condominio_id/:data", MarcarProcessadas(d.Consolidacao))
	esp.Post("/processo-completo/:condominio_id/:data", ProcessoCompleto(d.Consolidacao))
	esp.Get("/status-consolidacao/:condominio_id/:data", StatusConsolidacao(d.Consolidacao))
	esp.Get("/:id", GetEsporadica(d.Esporadicas))
}
