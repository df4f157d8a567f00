package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rondasapi/internal/logging"
	"rondasapi/internal/metrics"
	"rondasapi/internal/model"
	"rondasapi/internal/notify"
	"rondasapi/internal/rondalog"
	"rondasapi/internal/whatsapp"
)

func reportHeader(r *model.Ronda, condominio string) rondalog.ReportHeader {
	return rondalog.ReportHeader{
		Condominio:  condominio,
		Data:        r.DataPlantao.Time,
		Escala:      r.EscalaPlantao,
		Observacoes: r.Observacoes,
	}
}

// analyzeLog re-reads r.LogBruto and refreshes the totals and the report.
func analyzeLog(r *model.Ronda, condominio string, loc *time.Location) (rondalog.Summary, error) {
	msgs, err := whatsapp.Parse(strings.NewReader(r.LogBruto), loc)
	if err != nil {
		return rondalog.Summary{}, fmt.Errorf("parse log: %w", err)
	}
	sum := rondalog.Analyze(msgs)
	applySummary(r, condominio, sum)
	return sum, nil
}

func applySummary(r *model.Ronda, condominio string, sum rondalog.Summary) {
	r.TotalRondas = sum.TotalRondas
	r.DuracaoTotalMinutos = sum.DuracaoTotalMinutos
	r.PrimeiroEvento = sum.PrimeiroEvento
	r.UltimoEvento = sum.UltimoEvento
	r.RelatorioProcessado = rondalog.RenderReport(reportHeader(r, condominio), sum)
}

// summaryOf rebuilds the summary of a stored ronda. Consolidated rondas keep
// one line per patrol rather than announcements, so their stored totals are used.
func summaryOf(r *model.Ronda, loc *time.Location) rondalog.Summary {
	if r.Tipo == model.TipoEsporadica {
		s := rondalog.Summarize(nil)
		s.TotalRondas = r.TotalRondas
		s.DuracaoTotalMinutos = r.DuracaoTotalMinutos
		s.PrimeiroEvento, s.UltimoEvento = r.PrimeiroEvento, r.UltimoEvento
		return s
	}
	msgs, err := whatsapp.Parse(strings.NewReader(r.LogBruto), loc)
	if err != nil {
		return rondalog.Summarize(nil)
	}
	return rondalog.Analyze(msgs)
}

// deliver sends text through n and reports whether it went out. A disabled
// notifier is not an error; the report is still returned to the caller.
func deliver(ctx context.Context, n notify.Notifier, m *metrics.Domain, log *logging.Logger, text string) (bool, string) {
	err := n.Send(ctx, notify.Message{Text: text})
	switch {
	case err == nil:
		m.Notification("enviado")
		return true, ""
	case errors.Is(err, notify.ErrDisabled):
		m.Notification("desabilitado")
		return false, "envio por WhatsApp não configurado"
	default:
		m.Notification("erro")
		log.Warn(map[string]any{"event": "whatsapp_send_failed", "error": err})
		return false, err.Error()
	}
}
