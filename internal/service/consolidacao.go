package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
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

const autorEsporadica = "Ronda esporádica"

type ConsolidacaoResult struct {
	RondaID             int64  `json:"ronda_principal_id"`
	Criada              bool   `json:"criada"`
	TotalRondas         int    `json:"total_rondas"`
	DuracaoTotalMinutos int    `json:"duracao_total_minutos"`
	DuracaoFormatada    string `json:"duracao_total_formatada"`
	Relatorio           string `json:"relatorio"`
	MensagemWhatsApp    string `json:"mensagem_whatsapp,omitempty"`
	WhatsAppEnviado     bool   `json:"whatsapp_enviado"`
	Erro                string `json:"erro,omitempty"`
}

type ProcessoCompletoResult struct {
	Consolidacao *ConsolidacaoResult `json:"consolidacao"`
	Processadas  bool                `json:"rondas_processadas"`
	Marcadas     int64               `json:"total_marcadas"`
}

type StatusConsolidacao struct {
	CondominioID     int64      `json:"condominio_id"`
	DataPlantao      model.Date `json:"data_plantao"`
	Total            int        `json:"total"`
	EmAndamento      int        `json:"em_andamento"`
	Finalizadas      int        `json:"finalizadas"`
	Processadas      int        `json:"processadas"`
	Consolidada      bool       `json:"consolidada"`
	RondaPrincipalID *int64     `json:"ronda_principal_id,omitempty"`
	PodeConsolidar   bool       `json:"pode_consolidar"`
}

// ConsolidacaoService folds a day's rondas esporádicas into one ronda.
type ConsolidacaoService interface {
	Consolidar(ctx context.Context, condominioID int64, data model.Date) (*ConsolidacaoResult, error)
	ConsolidarEEnviar(ctx context.Context, condominioID int64, data model.Date) (*ConsolidacaoResult, error)
	MarcarProcessadas(ctx context.Context, condominioID int64, data model.Date) (int64, error)
	// ProcessoCompleto consolidates, sends, and marks the day processed only when the message went out.
	ProcessoCompleto(ctx context.Context, condominioID int64, data model.Date) (*ProcessoCompletoResult, error)
	Status(ctx context.Context, condominioID int64, data model.Date) (*StatusConsolidacao, error)
}

type consolidacaoService struct {
	esporadicas repository.EsporadicaRepository
	rondas      repository.RondaRepository
	condos      repository.CondominioRepository
	notifier    notify.Notifier
	metrics     *metrics.Domain
	log         *logging.Logger
	loc         *time.Location
	now         func() time.Time
}

func NewConsolidacaoService(esporadicas repository.EsporadicaRepository, rondas repository.RondaRepository, condos repository.CondominioRepository, notifier notify.Notifier, m *metrics.Domain, log *logging.Logger, loc *time.Location) ConsolidacaoService {
	if log == nil {
		log = logging.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &consolidacaoService{
		esporadicas: esporadicas,
		rondas:      rondas,
		condos:      condos,
		notifier:    notifier,
		metrics:     m,
		log:         log,
		loc:         loc,
		now:         time.Now,
	}
}

// patrolOf places an esporádica on the timeline of its plantão; night-shift
// entradas after midnight and saídas before the entrada fall on the next day.
func (s *consolidacaoService) patrolOf(r model.RondaEsporadica) (rondalog.Patrol, error) {
	entrada, err := plantao.ParseHour(r.HoraEntrada)
	if err != nil {
		return rondalog.Patrol{}, err
	}
	d := r.DataPlantao
	inicio := plantao.At(time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.loc), r.EscalaPlantao, entrada, s.loc)
	return rondalog.Patrol{
		Inicio:  inicio,
		Fim:     inicio.Add(time.Duration(r.Duracao()) * time.Minute),
		Minutos: r.Duracao(),
	}, nil
}

func logLine(p rondalog.Patrol, obs string) string {
	line := fmt.Sprintf("[%s, %s] %s: %s às %s (%s)",
		p.Inicio.Format("15:04"), p.Inicio.Format("02/01/2006"), autorEsporadica,
		p.Inicio.Format("15:04"), p.Fim.Format("15:04"), plantao.FormatDuracao(p.Minutos))
	if obs != "" {
		line += " - " + obs
	}
	return line
}

func (s *consolidacaoService) consolidate(ctx context.Context, condominioID int64, data model.Date) (*ConsolidacaoResult, rondalog.ReportHeader, rondalog.Summary, error) {
	var hdr rondalog.ReportHeader
	var sum rondalog.Summary
	if data.IsZero() {
		return nil, hdr, sum, invalid("data é obrigatória")
	}
	c, err := s.condos.FindByID(ctx, condominioID)
	if err != nil {
		return nil, hdr, sum, notFound(err, "condomínio")
	}
	all, err := s.esporadicas.ListByDay(ctx, condominioID, data)
	if err != nil {
		return nil, hdr, sum, err
	}

	var done []model.RondaEsporadica
	for _, r := range all {
		if r.Status == model.StatusFinalizada {
			done = append(done, r)
		}
	}
	if len(done) == 0 {
		s.metrics.Consolidacao("vazio")
		return nil, hdr, sum, fmt.Errorf("%w: nenhuma ronda esporádica finalizada para a data", ErrNotFound)
	}

	escala := done[0].EscalaPlantao
	type placed struct {
		esporadica model.RondaEsporadica
		patrol     rondalog.Patrol
	}
	items := make([]placed, 0, len(done))
	for _, r := range done {
		if r.EscalaPlantao != escala {
			s.metrics.Consolidacao("erro")
			return nil, hdr, sum, fmt.Errorf("%w: rondas esporádicas finalizadas em escalas diferentes (%s, %s) na mesma data", ErrConflict, escala, r.EscalaPlantao)
		}
		p, err := s.patrolOf(r)
		if err != nil {
			return nil, hdr, sum, fmt.Errorf("ronda esporádica %d: %w", r.ID, err)
		}
		items = append(items, placed{esporadica: r, patrol: p})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].patrol.Inicio.Before(items[j].patrol.Inicio) })

	patrols := make([]rondalog.Patrol, 0, len(items))
	lines := make([]string, 0, len(items))
	var obs []string
	for _, it := range items {
		r := it.esporadica
		patrols = append(patrols, it.patrol)
		lines = append(lines, logLine(it.patrol, r.Observacoes))
		if r.Observacoes != "" {
			obs = append(obs, fmt.Sprintf("%s: %s", r.HoraEntrada, r.Observacoes))
		}
	}
	first := items[0].esporadica
	sum = rondalog.Summarize(patrols)

	ronda, err := s.rondas.FindByPlantao(ctx, condominioID, data, first.EscalaPlantao, model.TipoEsporadica)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		ronda = nil
	case err != nil:
		return nil, hdr, sum, err
	}
	now := s.now().UTC()
	created := ronda == nil
	if created {
		inicio := sum.PrimeiroEvento.UTC()
		ronda = &model.Ronda{
			CondominioID:   condominioID,
			DataPlantao:    data,
			EscalaPlantao:  first.EscalaPlantao,
			Turno:          first.EscalaPlantao.Turno(),
			Tipo:           model.TipoEsporadica,
			UserID:         &first.UserID,
			SupervisorID:   first.SupervisorID,
			DataHoraInicio: &inicio,
			CreatedAt:      now,
		}
	}
	fim := sum.UltimoEvento.UTC()
	ronda.Status = model.StatusFinalizada
	ronda.LogBruto = strings.Join(lines, "\n")
	ronda.Observacoes = strings.Join(obs, "\n")
	ronda.DataHoraFim = &fim
	ronda.UpdatedAt = now
	applySummary(ronda, c.Nome, sum)
	hdr = reportHeader(ronda, c.Nome)

	var saved *model.Ronda
	if created {
		saved, err = s.rondas.Create(ctx, ronda)
	} else {
		saved, err = s.rondas.Update(ctx, ronda)
	}
	if err != nil {
		s.metrics.Consolidacao("erro")
		return nil, hdr, sum, err
	}
	s.metrics.Consolidacao("ok")
	s.metrics.RondaSaved("consolidacao")
	s.log.Info(map[string]any{
		"event":      "esporadicas_consolidadas",
		"condominio": condominioID,
		"data":       data.String(),
		"ronda_id":   saved.ID,
		"rondas":     sum.TotalRondas,
	})

	return &ConsolidacaoResult{
		RondaID:             saved.ID,
		Criada:              created,
		TotalRondas:         sum.TotalRondas,
		DuracaoTotalMinutos: sum.DuracaoTotalMinutos,
		DuracaoFormatada:    plantao.FormatDuracao(sum.DuracaoTotalMinutos),
		Relatorio:           saved.RelatorioProcessado,
	}, hdr, sum, nil
}

func (s *consolidacaoService) Consolidar(ctx context.Context, condominioID int64, data model.Date) (*ConsolidacaoResult, error) {
	res, _, _, err := s.consolidate(ctx, condominioID, data)
	return res, err
}

func (s *consolidacaoService) ConsolidarEEnviar(ctx context.Context, condominioID int64, data model.Date) (*ConsolidacaoResult, error) {
	res, hdr, sum, err := s.consolidate(ctx, condominioID, data)
	if err != nil {
		return nil, err
	}
	res.MensagemWhatsApp = rondalog.RenderWhatsApp(hdr, sum)
	res.WhatsAppEnviado, res.Erro = deliver(ctx, s.notifier, s.metrics, s.log, res.MensagemWhatsApp)
	return res, nil
}

func (s *consolidacaoService) MarcarProcessadas(ctx context.Context, condominioID int64, data model.Date) (int64, error) {
	if data.IsZero() {
		return 0, invalid("data é obrigatória")
	}
	return s.esporadicas.MarkProcessadas(ctx, condominioID, data)
}

func (s *consolidacaoService) ProcessoCompleto(ctx context.Context, condominioID int64, data model.Date) (*ProcessoCompletoResult, error) {
	res, err := s.ConsolidarEEnviar(ctx, condominioID, data)
	if err != nil {
		return nil, err
	}
	out := &ProcessoCompletoResult{Consolidacao: res}
	if !res.WhatsAppEnviado {
		return out, nil
	}
	n, err := s.esporadicas.MarkProcessadas(ctx, condominioID, data)
	if err != nil {
		return nil, err
	}
	out.Processadas, out.Marcadas = true, n
	return out, nil
}

func (s *consolidacaoService) Status(ctx context.Context, condominioID int64, data model.Date) (*StatusConsolidacao, error) {
	if data.IsZero() {
		return nil, invalid("data é obrigatória")
	}
	all, err := s.esporadicas.ListByDay(ctx, condominioID, data)
	if err != nil {
		return nil, err
	}
	rondas, err := s.rondas.ListByDay(ctx, condominioID, data)
	if err != nil {
		return nil, err
	}

	st := &StatusConsolidacao{CondominioID: condominioID, DataPlantao: data, Total: len(all)}
	for _, r := range all {
		switch r.Status {
		case model.StatusEmAndamento:
			st.EmAndamento++
		case model.StatusFinalizada:
			st.Finalizadas++
		case model.StatusProcessada:
			st.Processadas++
		}
	}
	for _, r := range rondas {
		if r.Tipo == model.TipoEsporadica {
			id := r.ID
			st.Consolidada, st.RondaPrincipalID = true, &id
			break
		}
	}
	st.PodeConsolidar = st.Finalizadas > 0 && !mixedEscalas(all)
	return st, nil
}

// mixedEscalas reports whether the finalizadas span more than one escala.
func mixedEscalas(all []model.RondaEsporadica) bool {
	var escala plantao.Escala
	for _, r := range all {
		if r.Status != model.StatusFinalizada {
			continue
		}
		if escala == "" {
			escala = r.EscalaPlantao
		} else if r.EscalaPlantao != escala {
			return true
		}
	}
	return false
}
