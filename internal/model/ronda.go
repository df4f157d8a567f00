package model

import (
	"time"

	"rondasapi/internal/plantao"
)

// Status is the lifecycle state shared by rondas and rondas esporádicas.
type Status string

const (
	StatusEmAndamento Status = "em_andamento"
	StatusFinalizada  Status = "finalizada"
	// StatusProcessada only applies to rondas esporádicas already consolidated.
	StatusProcessada Status = "processada"
)

// RondaTipo tells how a ronda was produced.
type RondaTipo string

const (
	TipoRegular    RondaTipo = "regular"
	TipoEsporadica RondaTipo = "esporadica"
)

// Ronda is the record of one plantão's patrols at a condomínio.
type Ronda struct {
	ID                  int64          `json:"id"`
	CondominioID        int64          `json:"condominio_id"`
	DataPlantao         Date           `json:"data_plantao"`
	EscalaPlantao       plantao.Escala `json:"escala_plantao"`
	Turno               plantao.Turno  `json:"turno"`
	Tipo                RondaTipo      `json:"tipo"`
	Status              Status         `json:"status"`
	LogBruto            string         `json:"log_bruto"`
	RelatorioProcessado string         `json:"relatorio_processado"`
	Observacoes         string         `json:"observacoes"`
	TotalRondas         int            `json:"total_rondas"`
	DuracaoTotalMinutos int            `json:"duracao_total_minutos"`
	PrimeiroEvento      *time.Time     `json:"primeiro_evento,omitempty"`
	UltimoEvento        *time.Time     `json:"ultimo_evento,omitempty"`
	UserID              *int64         `json:"user_id,omitempty"`
	SupervisorID        *int64         `json:"supervisor_id,omitempty"`
	ArquivoOrigem       string         `json:"arquivo_origem,omitempty"`
	DataHoraInicio      *time.Time     `json:"data_hora_inicio,omitempty"`
	DataHoraFim         *time.Time     `json:"data_hora_fim,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// RondaEsporadica is a single ad-hoc patrol with explicit entry and exit times.
type RondaEsporadica struct {
	ID                  int64          `json:"id"`
	CondominioID        int64          `json:"condominio_id"`
	UserID              int64          `json:"user_id"`
	SupervisorID        *int64         `json:"supervisor_id,omitempty"`
	DataPlantao         Date           `json:"data_plantao"`
	EscalaPlantao       plantao.Escala `json:"escala_plantao"`
	Turno               plantao.Turno  `json:"turno"`
	HoraEntrada         string         `json:"hora_entrada"`
	HoraSaida           string         `json:"hora_saida,omitempty"`
	DuracaoMinutos      *int           `json:"duracao_minutos,omitempty"`
	Status              Status         `json:"status"`
	Observacoes         string         `json:"observacoes"`
	LogBruto            string         `json:"log_bruto"`
	RelatorioProcessado string         `json:"relatorio_processado"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// Duracao is DuracaoMinutos with nil read as zero.
func (r RondaEsporadica) Duracao() int {
	if r.DuracaoMinutos == nil {
		return 0
	}
	return *r.DuracaoMinutos
}
