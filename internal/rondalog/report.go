package rondalog

import (
	"fmt"
	"strings"
	"time"

	"rondasapi/internal/plantao"
)

// ReportHeader identifies the shift a report is about.
type ReportHeader struct {
	Condominio  string
	Data        time.Time
	Escala      plantao.Escala
	Supervisor  string
	Observacoes string
}

// RenderReport produces the plain-text relatório stored with a ronda.
func RenderReport(h ReportHeader, s Summary) string {
	var b strings.Builder
	b.WriteString("RELATÓRIO DE RONDAS\n")
	fmt.Fprintf(&b, "Condomínio: %s\n", orDefault(h.Condominio, "N/A"))
	fmt.Fprintf(&b, "Data do plantão: %s\n", h.Data.Format("02/01/2006"))
	fmt.Fprintf(&b, "Escala: %s\n", h.Escala)
	if h.Supervisor != "" {
		fmt.Fprintf(&b, "Supervisor: %s\n", h.Supervisor)
	}
	if len(s.Vigilantes) > 0 {
		fmt.Fprintf(&b, "Vigilante(s): %s\n", strings.Join(s.Vigilantes, ", "))
	}

	b.WriteString("\nRondas realizadas:\n")
	if len(s.Patrols) == 0 {
		b.WriteString("Nenhuma ronda identificada no log.\n")
	}
	for i, p := range s.Patrols {
		fmt.Fprintf(&b, "%2d. %s - %s (%s)", i+1, p.Inicio.Format("15:04"), p.Fim.Format("15:04"), plantao.FormatDuracao(p.Minutos))
		if p.Autor != "" {
			fmt.Fprintf(&b, " - %s", p.Autor)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\nTotal de rondas: %d\n", s.TotalRondas)
	fmt.Fprintf(&b, "Duração total: %s\n", plantao.FormatDuracao(s.DuracaoTotalMinutos))
	if s.TotalRondas > 0 {
		fmt.Fprintf(&b, "Duração média: %s\n", plantao.FormatDuracao(int(s.MediaMinutos+0.5)))
	}
	if s.PrimeiroEvento != nil && s.UltimoEvento != nil {
		fmt.Fprintf(&b, "Primeiro registro: %s | Último registro: %s\n",
			s.PrimeiroEvento.Format("02/01 15:04"), s.UltimoEvento.Format("02/01 15:04"))
	}

	if len(s.Incompletos) > 0 {
		b.WriteString("\nRegistros sem par:\n")
		for _, ev := range s.Incompletos {
			fmt.Fprintf(&b, " - %s %s", ev.Timestamp.Format("15:04"), ev.Kind)
			if ev.Autor != "" {
				fmt.Fprintf(&b, " (%s)", ev.Autor)
			}
			b.WriteByte('\n')
		}
	}

	if h.Observacoes != "" {
		fmt.Fprintf(&b, "\nObservações:\n%s\n", h.Observacoes)
	}
	return strings.TrimRight(b.String(), "\n")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// RenderWhatsApp produces the short message sent to the operations number.
func RenderWhatsApp(h ReportHeader, s Summary) string {
	var b strings.Builder
	b.WriteString("🛡️ *Relatório de Rondas*\n")
	fmt.Fprintf(&b, "🏢 %s\n", orDefault(h.Condominio, "N/A"))
	fmt.Fprintf(&b, "📅 %s | %s\n", h.Data.Format("02/01/2006"), h.Escala)
	if h.Supervisor != "" {
		fmt.Fprintf(&b, "👤 Supervisor: %s\n", h.Supervisor)
	}
	fmt.Fprintf(&b, "\n🔄 Rondas: %d\n", s.TotalRondas)
	fmt.Fprintf(&b, "⏱️ Duração total: %s\n", plantao.FormatDuracao(s.DuracaoTotalMinutos))
	if len(s.Patrols) > 0 {
		b.WriteByte('\n')
		for _, p := range s.Patrols {
			fmt.Fprintf(&b, "• %s às %s (%s)\n", p.Inicio.Format("15:04"), p.Fim.Format("15:04"), plantao.FormatDuracao(p.Minutos))
		}
	}
	if n := len(s.Incompletos); n > 0 {
		fmt.Fprintf(&b, "\n⚠️ Registros sem par: %d\n", n)
	}
	if h.Observacoes != "" {
		fmt.Fprintf(&b, "\n📝 %s\n", h.Observacoes)
	}
	return strings.TrimRight(b.String(), "\n")
}
