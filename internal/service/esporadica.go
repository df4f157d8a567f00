package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"rondasapi/internal/model"
	"rondasapi/internal/plantao"
	"rondasapi/internal/repository"
)

type IniciarEsporadicaInput struct {
	CondominioID int64
	UserID       int64
	SupervisorID *int64
	DataPlantao  model.Date
	HoraEntrada  string
	Escala       string
	// Turno is derived from Escala when empty.
	Turno       string
	Observacoes string
}

type FinalizarEsporadicaInput struct {
	HoraSaida   string
	Observacoes *string
}

type EstatisticasPeriodo struct {
	Inicio model.Date `json:"data_inicio"`
	Fim    model.Date `json:"data_fim"`
	Dias   int        `json:"dias"`
}

type EstatisticasResumo struct {
	Total                 int     `json:"total"`
	Finalizadas           int     `json:"finalizadas"`
	EmAndamento           int     `json:"em_andamento"`
	Processadas           int     `json:"processadas"`
	DuracaoTotalMinutos   int     `json:"duracao_total_minutos"`
	DuracaoMediaMinutos   float64 `json:"duracao_media_minutos"`
	DuracaoTotalFormatada string  `json:"duracao_total_formatada"`
	DuracaoMediaFormatada string  `json:"duracao_media_formatada"`
}

type TurnoStats struct {
	Total               int `json:"total"`
	DuracaoTotalMinutos int `json:"duracao_total_minutos"`
}

type DiaStats struct {
	Data                model.Date `json:"data"`
	Total               int        `json:"total"`
	DuracaoTotalMinutos int        `json:"duracao_total_minutos"`
}

type Estatisticas struct {
	CondominioID int64                 `json:"condominio_id"`
	Periodo      EstatisticasPeriodo   `json:"periodo"`
	Resumo       EstatisticasResumo    `json:"resumo"`
	PorTurno     map[string]TurnoStats `json:"por_turno"`
	PorData      []DiaStats            `json:"por_data"`
}

type ValidacaoHorario struct {
	Valido            bool   `json:"valido"`
	HoraInformada     string `json:"hora_informada"`
	HoraAtual         string `json:"hora_atual"`
	DiferencaMinutos  int    `json:"diferenca_minutos"`
	ToleranciaMinutos int    `json:"tolerancia_minutos"`
	Mensagem          string `json:"mensagem"`
}

// EsporadicaService handles ad-hoc patrols recorded with entry and exit times.
type EsporadicaService interface {
	Iniciar(ctx context.Context, in IniciarEsporadicaInput) (*model.RondaEsporadica, error)
	Finalizar(ctx context.Context, id int64, in FinalizarEsporadicaInput) (*model.RondaEsporadica, error)
	Atualizar(ctx context.Context, id int64, observacoes string) (*model.RondaEsporadica, error)
	EmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.RondaEsporadica, error)
	DoDia(ctx context.Context, condominioID int64, data model.Date) ([]model.RondaEsporadica, error)
	Get(ctx context.Context, id int64) (*model.RondaEsporadica, error)
	// Executadas lists finalizadas, newest first.
	Executadas(ctx context.Context, condominioID *int64, inicio, fim *model.Date) ([]model.RondaEsporadica, error)
	Estatisticas(ctx context.Context, condominioID int64, inicio, fim model.Date) (*Estatisticas, error)
	// ValidarHorario checks an entry time against the current time of day.
	ValidarHorario(horaEntrada string) (*ValidacaoHorario, error)
}

type esporadicaService struct {
	repo       repository.EsporadicaRepository
	condos     repository.CondominioRepository
	tolerancia int
	loc        *time.Location
	now        func() time.Time
}

func NewEsporadicaService(repo repository.EsporadicaRepository, condos repository.CondominioRepository, toleranciaMin int, loc *time.Location) EsporadicaService {
	if loc == nil {
		loc = time.UTC
	}
	return &esporadicaService{repo: repo, condos: condos, tolerancia: toleranciaMin, loc: loc, now: time.Now}
}

func (s *esporadicaService) Iniciar(ctx context.Context, in IniciarEsporadicaInput) (*model.RondaEsporadica, error) {
	var missing []string
	if in.CondominioID <= 0 {
		missing = append(missing, "condominio_id")
	}
	if in.UserID <= 0 {
		missing = append(missing, "user_id")
	}
	if in.DataPlantao.IsZero() {
		missing = append(missing, "data_plantao")
	}
	if strings.TrimSpace(in.HoraEntrada) == "" {
		missing = append(missing, "hora_entrada")
	}
	if strings.TrimSpace(in.Escala) == "" {
		missing = append(missing, "escala_plantao")
	}
	if len(missing) > 0 {
		return nil, invalid("campos obrigatórios: %s", strings.Join(missing, ", "))
	}

	entrada, err := plantao.ParseHour(in.HoraEntrada)
	if err != nil {
		return nil, invalid("%v", err)
	}
	escala, err := parseEscala(in.Escala)
	if err != nil {
		return nil, err
	}
	turno := escala.Turno()
	switch plantao.Turno(strings.ToLower(strings.TrimSpace(in.Turno))) {
	case "":
	case plantao.TurnoDiurno:
		turno = plantao.TurnoDiurno
	case plantao.TurnoNoturno:
		turno = plantao.TurnoNoturno
	default:
		return nil, invalid("turno deve ser diurno ou noturno")
	}

	if _, err := s.condos.FindByID(ctx, in.CondominioID); err != nil {
		return nil, notFound(err, "condomínio")
	}
	_, err = s.repo.FindEmAndamento(ctx, in.CondominioID, in.DataPlantao)
	switch {
	case err == nil:
		return nil, errEsporadicaEmAndamento()
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &model.RondaEsporadica{
		CondominioID:  in.CondominioID,
		UserID:        in.UserID,
		SupervisorID:  in.SupervisorID,
		DataPlantao:   in.DataPlantao,
		EscalaPlantao: escala,
		Turno:         turno,
		HoraEntrada:   plantao.FormatHour(entrada),
		Status:        model.StatusEmAndamento,
		Observacoes:   strings.TrimSpace(in.Observacoes),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if errors.Is(err, repository.ErrEmAndamentoExists) {
		return nil, errEsporadicaEmAndamento()
	}
	return created, err
}

func errEsporadicaEmAndamento() error {
	return invalid("já existe uma ronda esporádica em andamento para este condomínio e data")
}

func (s *esporadicaService) open(ctx context.Context, id int64) (*model.RondaEsporadica, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != model.StatusEmAndamento {
		return nil, invalid("ronda esporádica não está em andamento")
	}
	return r, nil
}

func (s *esporadicaService) Finalizar(ctx context.Context, id int64, in FinalizarEsporadicaInput) (*model.RondaEsporadica, error) {
	if strings.TrimSpace(in.HoraSaida) == "" {
		return nil, invalid("hora_saida é obrigatória")
	}
	saida, err := plantao.ParseHour(in.HoraSaida)
	if err != nil {
		return nil, invalid("%v", err)
	}
	r, err := s.open(ctx, id)
	if err != nil {
		return nil, err
	}
	entrada, err := plantao.ParseHour(r.HoraEntrada)
	if err != nil {
		return nil, fmt.Errorf("stored hora_entrada: %w", err)
	}

	d := plantao.MinutesBetween(entrada, saida)
	r.HoraSaida = plantao.FormatHour(saida)
	r.DuracaoMinutos = &d
	r.Status = model.StatusFinalizada
	if in.Observacoes != nil {
		r.Observacoes = strings.TrimSpace(*in.Observacoes)
	}
	r.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, r)
}

func (s *esporadicaService) Atualizar(ctx context.Context, id int64, observacoes string) (*model.RondaEsporadica, error) {
	r, err := s.open(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Observacoes = strings.TrimSpace(observacoes)
	r.UpdatedAt = s.now().UTC()
	return s.repo.Update(ctx, r)
}

func (s *esporadicaService) EmAndamento(ctx context.Context, condominioID int64, data model.Date) (*model.RondaEsporadica, error) {
	if data.IsZero() {
		return nil, invalid("data_plantao é obrigatória")
	}
	r, err := s.repo.FindEmAndamento(ctx, condominioID, data)
	if err != nil {
		return nil, notFound(err, "nenhuma ronda esporádica em andamento")
	}
	return r, nil
}

func (s *esporadicaService) DoDia(ctx context.Context, condominioID int64, data model.Date) ([]model.RondaEsporadica, error) {
	if data.IsZero() {
		return nil, invalid("data é obrigatória")
	}
	return s.repo.ListByDay(ctx, condominioID, data)
}

func (s *esporadicaService) Get(ctx context.Context, id int64) (*model.RondaEsporadica, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "ronda esporádica")
	}
	return r, nil
}

func (s *esporadicaService) Executadas(ctx context.Context, condominioID *int64, inicio, fim *model.Date) ([]model.RondaEsporadica, error) {
	if inicio != nil && fim != nil && fim.Before(inicio.Time) {
		return nil, invalid("data_fim anterior a data_inicio")
	}
	return s.repo.List(ctx, repository.EsporadicaFilter{
		CondominioID: condominioID,
		DataInicio:   inicio,
		DataFim:      fim,
		Status:       model.StatusFinalizada,
	})
}

func (s *esporadicaService) Estatisticas(ctx context.Context, condominioID int64, inicio, fim model.Date) (*Estatisticas, error) {
	if inicio.IsZero() || fim.IsZero() {
		return nil, invalid("data_inicio e data_fim são obrigatórias")
	}
	if fim.Before(inicio.Time) {
		return nil, invalid("data_fim anterior a data_inicio")
	}
	items, err := s.repo.List(ctx, repository.EsporadicaFilter{CondominioID: &condominioID, DataInicio: &inicio, DataFim: &fim})
	if err != nil {
		return nil, err
	}

	st := &Estatisticas{
		CondominioID: condominioID,
		Periodo: EstatisticasPeriodo{
			Inicio: inicio,
			Fim:    fim,
			Dias:   int(fim.Sub(inicio.Time).Hours()/24+0.5) + 1,
		},
		PorTurno: map[string]TurnoStats{
			string(plantao.TurnoDiurno):  {},
			string(plantao.TurnoNoturno): {},
		},
		PorData: []DiaStats{},
	}
	byDay := map[string]int{}
	var comDuracao int
	for _, r := range items {
		st.Resumo.Total++
		switch r.Status {
		case model.StatusEmAndamento:
			st.Resumo.EmAndamento++
		case model.StatusFinalizada:
			st.Resumo.Finalizadas++
		case model.StatusProcessada:
			st.Resumo.Processadas++
		}
		d := r.Duracao()
		if r.DuracaoMinutos != nil {
			comDuracao++
		}
		st.Resumo.DuracaoTotalMinutos += d

		t := st.PorTurno[string(r.Turno)]
		t.Total++
		t.DuracaoTotalMinutos += d
		st.PorTurno[string(r.Turno)] = t

		key := r.DataPlantao.String()
		i, ok := byDay[key]
		if !ok {
			st.PorData = append(st.PorData, DiaStats{Data: r.DataPlantao})
			i = len(st.PorData) - 1
			byDay[key] = i
		}
		st.PorData[i].Total++
		st.PorData[i].DuracaoTotalMinutos += d
	}
	sort.Slice(st.PorData, func(i, j int) bool { return st.PorData[i].Data.Before(st.PorData[j].Data.Time) })

	if comDuracao > 0 {
		st.Resumo.DuracaoMediaMinutos = float64(st.Resumo.DuracaoTotalMinutos) / float64(comDuracao)
	}
	st.Resumo.DuracaoTotalFormatada = plantao.FormatDuracao(st.Resumo.DuracaoTotalMinutos)
	st.Resumo.DuracaoMediaFormatada = plantao.FormatDuracao(int(st.Resumo.DuracaoMediaMinutos + 0.5))
	return st, nil
}

func (s *esporadicaService) ValidarHorario(horaEntrada string) (*ValidacaoHorario, error) {
	if strings.TrimSpace(horaEntrada) == "" {
		return nil, invalid("hora_entrada é obrigatória")
	}
	informada, err := plantao.ParseHour(horaEntrada)
	if err != nil {
		return nil, invalid("%v", err)
	}
	now := s.now().In(s.loc)
	atual := now.Hour()*60 + now.Minute()
	diff := plantao.CircularDistance(informada, atual)

	v := &ValidacaoHorario{
		Valido:            diff <= s.tolerancia,
		HoraInformada:     plantao.FormatHour(informada),
		HoraAtual:         plantao.FormatHour(atual),
		DiferencaMinutos:  diff,
		ToleranciaMinutos: s.tolerancia,
	}
	if v.Valido {
		v.Mensagem = "Horário válido"
	} else {
		v.Mensagem = fmt.Sprintf("Horário informado difere %s do horário atual (tolerância de %s)",
			plantao.FormatDuracao(diff), plantao.FormatDuracao(s.tolerancia))
	}
	return v, nil
}
