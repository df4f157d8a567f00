package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"rondasapi/internal/logging"
	"rondasapi/internal/metrics"
	"rondasapi/internal/model"
	"rondasapi/internal/notify"
	"rondasapi/internal/plantao"
	"rondasapi/internal/repository"
	"rondasapi/internal/rondalog"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type IniciarRondaInput struct {
	CondominioID int64
	DataPlantao  model.Date
	Escala       string
	UserID       int64
	SupervisorID *int64
	Observacoes  string
}

// AtualizarRondaInput changes only the non-nil fields.
type AtualizarRondaInput struct {
	LogBruto    *string
	Observacoes *string
}

// SalvarRondaInput stores a pasted log. A nil RondaID creates a new ronda.
type SalvarRondaInput struct {
	RondaID      *int64
	CondominioID int64
	DataPlantao  model.Date
	Escala       string
	LogBruto     string
	Observacoes  string
	SupervisorID int64
}

type HistoricoQuery struct {
	Filter  repository.RondaFilter
	Page    int
	PerPage int
}

type HistoricoTotais struct {
	Registros             int     `json:"registros"`
	TotalRondas           int     `json:"total_rondas"`
	DuracaoTotalMinutos   int     `json:"duracao_total_minutos"`
	DuracaoMediaMinutos   float64 `json:"duracao_media_minutos"`
	DuracaoTotalFormatada string  `json:"duracao_total_formatada"`
}

type HistoricoResult struct {
	Items   []model.Ronda   `json:"data"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Pages   int             `json:"pages"`
	Totais  HistoricoTotais `json:"totais"`
}

type RelatorioResult struct {
	Relatorio string `json:"relatorio"`
	Registros int    `json:"total_registros"`
}

type EnvioResult struct {
	Mensagem        string `json:"mensagem"`
	WhatsAppEnviado bool   `json:"whatsapp_enviado"`
	Erro            string `json:"erro,omitempty"`
}

// RondaService covers the lifecycle of regular rondas and their reports.
type RondaService interface {
	DoDia(ctx context.Context, condominioID int64, data model.Date) ([]model.Ronda, error)
	EmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.Ronda, error)
	// Iniciar fails with ErrRondaEmAndamento when the condomínio already has an open ronda that day.
	Iniciar(ctx context.Context, in IniciarRondaInput) (*model.Ronda, error)
	Finalizar(ctx context.Context, id int64, in AtualizarRondaInput) (*model.Ronda, error)
	Atualizar(ctx context.Context, id int64, in AtualizarRondaInput) (*model.Ronda, error)
	Salvar(ctx context.Context, in SalvarRondaInput) (*model.Ronda, error)
	Historico(ctx context.Context, q HistoricoQuery) (*HistoricoResult, error)
	Get(ctx context.Context, id int64) (*model.Ronda, error)
	Delete(ctx context.Context, id int64) error
	GerarRelatorio(ctx context.Context, condominioID int64, data model.Date) (*RelatorioResult, error)
	EnviarWhatsApp(ctx context.Context, condominioID int64, data model.Date) (*EnvioResult, error)
}

type rondaService struct {
	rondas   repository.RondaRepository
	condos   repository.CondominioRepository
	notifier notify.Notifier
	metrics  *metrics.Domain
	log      *logging.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewRondaService(rondas repository.RondaRepository, condos repository.CondominioRepository, notifier notify.Notifier, m *metrics.Domain, log *logging.Logger, loc *time.Location) RondaService {
	if log == nil {
		log = logging.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &rondaService{rondas: rondas, condos: condos, notifier: notifier, metrics: m, log: log, loc: loc, now: time.Now}
}

func (s *rondaService) condominio(ctx context.Context, id int64) (*model.Condominio, error) {
	if id <= 0 {
		return nil, invalid("condominio_id é obrigatório")
	}
	c, err := s.condos.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "condomínio")
	}
	return c, nil
}

func (s *rondaService) condominioNome(ctx context.Context, id int64) string {
	c, err := s.condos.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return c.Nome
}

func parseEscala(s string) (plantao.Escala, error) {
	if strings.TrimSpace(s) == "" {
		return plantao.EscalaDiurna, nil
	}
	e, err := plantao.ParseEscala(s)
	if err != nil {
		return "", invalid("escala_plantao inválida: %q", s)
	}
	return e, nil
}

func (s *rondaService) DoDia(ctx context.Context, condominioID int64, data model.Date) ([]model.Ronda, error) {
	if data.IsZero() {
		return nil, invalid("data é obrigatória")
	}
	return s.rondas.ListByDay(ctx, condominioID, data)
}

func (s *rondaService) EmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.Ronda, error) {
	if data.IsZero() {
		return nil, invalid("data_plantao é obrigatória")
	}
	r, err := s.rondas.FindEmAndamento(ctx, condominioID, data)
	if err != nil {
		return nil, notFound(err, "nenhuma ronda em andamento")
	}
	return r, nil
}

func (s *rondaService) Iniciar(ctx context.Context, in IniciarRondaInput) (*model.Ronda, error) {
	if in.DataPlantao.IsZero() {
		return nil, invalid("data_plantao é obrigatória")
	}
	escala, err := parseEscala(in.Escala)
	if err != nil {
		return nil, err
	}
	if _, err := s.condominio(ctx, in.CondominioID); err != nil {
		return nil, err
	}

	_, err = s.rondas.FindEmAndamento(ctx, in.CondominioID, in.DataPlantao)
	switch {
	case err == nil:
		return nil, ErrRondaEmAndamento
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	now := s.now().UTC()
	r := &model.Ronda{
		CondominioID:   in.CondominioID,
		DataPlantao:    in.DataPlantao,
		EscalaPlantao:  escala,
		Turno:          escala.Turno(),
		Tipo:           model.TipoRegular,
		Status:         model.StatusEmAndamento,
		Observacoes:    strings.TrimSpace(in.Observacoes),
		SupervisorID:   in.SupervisorID,
		DataHoraInicio: &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.UserID > 0 {
		r.UserID = &in.UserID
	}
	created, err := s.rondas.Create(ctx, r)
	if errors.Is(err, repository.ErrEmAndamentoExists) {
		return nil, ErrRondaEmAndamento
	}
	return created, err
}

func (s *rondaService) apply(ctx context.Context, r *model.Ronda, in AtualizarRondaInput) error {
	if in.LogBruto != nil {
		r.LogBruto = *in.LogBruto
	}
	if in.Observacoes != nil {
		r.Observacoes = strings.TrimSpace(*in.Observacoes)
	}
	if r.Tipo == model.TipoEsporadica {
		return nil
	}
	_, err := analyzeLog(r, s.condominioNome(ctx, r.CondominioID), s.loc)
	return err
}

func (s *rondaService) Finalizar(ctx context.Context, id int64, in AtualizarRondaInput) (*model.Ronda, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != model.StatusEmAndamento {
		return nil, invalid("ronda não está em andamento")
	}
	if err := s.apply(ctx, r, in); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	r.Status = model.StatusFinalizada
	r.DataHoraFim = &now
	r.UpdatedAt = now
	return s.rondas.Update(ctx, r)
}

func (s *rondaService) Atualizar(ctx context.Context, id int64, in AtualizarRondaInput) (*model.Ronda, error) {
	if in.LogBruto == nil && in.Observacoes == nil {
		return nil, invalid("nada para atualizar")
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, r, in); err != nil {
		return nil, err
	}
	r.UpdatedAt = s.now().UTC()
	return s.rondas.Update(ctx, r)
}

func (s *rondaService) Salvar(ctx context.Context, in SalvarRondaInput) (*model.Ronda, error) {
	if strings.TrimSpace(in.LogBruto) == "" {
		return nil, invalid("log_bruto é obrigatório")
	}

	var r *model.Ronda
	now := s.now().UTC()
	if in.RondaID != nil {
		found, err := s.Get(ctx, *in.RondaID)
		if err != nil {
			return nil, err
		}
		r = found
	} else {
		if in.DataPlantao.IsZero() {
			return nil, invalid("data_plantao é obrigatória")
		}
		escala, err := parseEscala(in.Escala)
		if err != nil {
			return nil, err
		}
		r = &model.Ronda{
			CondominioID:   in.CondominioID,
			DataPlantao:    in.DataPlantao,
			EscalaPlantao:  escala,
			Turno:          escala.Turno(),
			Tipo:           model.TipoRegular,
			DataHoraInicio: &now,
			CreatedAt:      now,
		}
	}
	c, err := s.condominio(ctx, r.CondominioID)
	if err != nil {
		return nil, err
	}

	r.LogBruto = in.LogBruto
	if obs := strings.TrimSpace(in.Observacoes); obs != "" {
		r.Observacoes = obs
	}
	if in.SupervisorID > 0 {
		r.SupervisorID = &in.SupervisorID
	}
	if _, err := analyzeLog(r, c.Nome, s.loc); err != nil {
		return nil, err
	}
	r.Status = model.StatusFinalizada
	if r.DataHoraFim == nil {
		r.DataHoraFim = &now
	}
	r.UpdatedAt = now

	var saved *model.Ronda
	if r.ID == 0 {
		saved, err = s.rondas.Create(ctx, r)
	} else {
		saved, err = s.rondas.Update(ctx, r)
	}
	if err != nil {
		return nil, err
	}
	s.metrics.RondaSaved("manual")
	return saved, nil
}

func (s *rondaService) Historico(ctx context.Context, q HistoricoQuery) (*HistoricoResult, error) {
	f := q.Filter
	if f.DataInicio != nil && f.DataFim != nil && f.DataFim.Before(f.DataInicio.Time) {
		return nil, invalid("data_fim anterior a data_inicio")
	}
	if f.Turno != "" && f.Turno != string(plantao.TurnoDiurno) && f.Turno != string(plantao.TurnoNoturno) {
		return nil, invalid("turno deve ser diurno ou noturno")
	}
	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	res, err := s.rondas.Search(ctx, f, repository.PageQuery{Limit: perPage, Offset: (page - 1) * perPage})
	if err != nil {
		return nil, err
	}
	tot, err := s.rondas.Totals(ctx, f)
	if err != nil {
		return nil, err
	}

	out := &HistoricoResult{
		Items:   res.Items,
		Total:   res.Total,
		Page:    page,
		PerPage: perPage,
		Pages:   (res.Total + perPage - 1) / perPage,
		Totais: HistoricoTotais{
			Registros:             tot.Count,
			TotalRondas:           tot.TotalRondas,
			DuracaoTotalMinutos:   tot.DuracaoTotalMinutos,
			DuracaoTotalFormatada: plantao.FormatDuracao(tot.DuracaoTotalMinutos),
		},
	}
	if tot.TotalRondas > 0 {
		out.Totais.DuracaoMediaMinutos = float64(tot.DuracaoTotalMinutos) / float64(tot.TotalRondas)
	}
	if out.Items == nil {
		out.Items = []model.Ronda{}
	}
	return out, nil
}

func (s *rondaService) Get(ctx context.Context, id int64) (*model.Ronda, error) {
	r, err := s.rondas.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "ronda")
	}
	return r, nil
}

func (s *rondaService) Delete(ctx context.Context, id int64) error {
	return notFound(s.rondas.Delete(ctx, id), "ronda")
}

func (s *rondaService) dayRondas(ctx context.Context, condominioID int64, data model.Date) (*model.Condominio, []model.Ronda, error) {
	c, err := s.condominio(ctx, condominioID)
	if err != nil {
		return nil, nil, err
	}
	rondas, err := s.rondas.ListByDay(ctx, condominioID, data)
	if err != nil {
		return nil, nil, err
	}
	if len(rondas) == 0 {
		return nil, nil, notFound(sql.ErrNoRows, "nenhuma ronda para a data")
	}
	return c, rondas, nil
}

func (s *rondaService) GerarRelatorio(ctx context.Context, condominioID int64, data model.Date) (*RelatorioResult, error) {
	c, rondas, err := s.dayRondas(ctx, condominioID, data)
	if err != nil {
		return nil, err
	}
	parts := make([]string, 0, len(rondas))
	for i := range rondas {
		r := &rondas[i]
		text := r.RelatorioProcessado
		if text == "" {
			text = rondalog.RenderReport(reportHeader(r, c.Nome), summaryOf(r, s.loc))
		}
		parts = append(parts, text)
	}
	return &RelatorioResult{Relatorio: strings.Join(parts, "\n\n"), Registros: len(rondas)}, nil
}

func (s *rondaService) EnviarWhatsApp(ctx context.Context, condominioID int64, data model.Date) (*EnvioResult, error) {
	c, rondas, err := s.dayRondas(ctx, condominioID, data)
	if err != nil {
		return nil, err
	}
	parts := make([]string, 0, len(rondas))
	for i := range rondas {
		r := &rondas[i]
		parts = append(parts, rondalog.RenderWhatsApp(reportHeader(r, c.Nome), summaryOf(r, s.loc)))
	}
	msg := strings.Join(parts, "\n\n")
	sent, reason := deliver(ctx, s.notifier, s.metrics, s.log, msg)
	return &EnvioResult{Mensagem: msg, WhatsAppEnviado: sent, Erro: reason}, nil
}
