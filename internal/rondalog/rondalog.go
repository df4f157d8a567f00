// Package rondalog finds patrol start/end announcements in a shift's
// messages, pairs them into patrols and summarizes the shift.
package rondalog

import (
	"sort"
	"time"

	"rondasapi/internal/textnorm"
	"rondasapi/internal/whatsapp"
)

// EventKind tells whether a message opened or closed a patrol.
type EventKind string

const (
	EventInicio EventKind = "inicio"
	EventFim    EventKind = "fim"
)

var (
	startWords = wordSet("inicio", "iniciando", "iniciada", "iniciado", "iniciei", "iniciar",
		"comecando", "comecei")
	// startPhrases are word pairs that announce a start only together:
	// "saindo para a ronda" opens one, "saindo da ronda" does not.
	startPhrases = [][2]string{{"saindo", "para"}}
	endWords = wordSet("termino", "terminada", "terminado", "terminando", "terminei",
		"fim", "finalizada", "finalizado", "finalizando", "finalizei",
		"encerrada", "encerrado", "encerrando", "encerrei",
		"concluida", "concluido", "retornando", "retorno")
	subjectWords = wordSet("ronda", "rondas")
)

func wordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Event is a message recognized as a patrol announcement.
type Event struct {
	Kind      EventKind `json:"tipo"`
	Timestamp time.Time `json:"timestamp"`
	Autor     string    `json:"autor,omitempty"`
	Texto     string    `json:"texto"`
}

// Patrol is a start paired with the following end.
type Patrol struct {
	Inicio  time.Time `json:"inicio"`
	Fim     time.Time `json:"fim"`
	Minutos int       `json:"minutos"`
	Autor   string    `json:"autor,omitempty"`
}

// Summary is the outcome of analyzing one shift.
type Summary struct {
	Patrols             []Patrol   `json:"rondas"`
	Incompletos         []Event    `json:"incompletos"`
	TotalMensagens      int        `json:"total_mensagens"`
	TotalRondas         int        `json:"total_rondas"`
	DuracaoTotalMinutos int        `json:"duracao_total_minutos"`
	MediaMinutos        float64    `json:"media_minutos"`
	PrimeiroEvento      *time.Time `json:"primeiro_evento,omitempty"`
	UltimoEvento        *time.Time `json:"ultimo_evento,omitempty"`
	Vigilantes          []string   `json:"vigilantes"`
}

// Classify reports whether text announces the start or end of a patrol.
// A message mentioning both counts as an end.
func Classify(text string) (EventKind, bool) {
	var hasSubject, hasStart, hasEnd bool
	words := textnorm.Words(text)
	for i, w := range words {
		if _, ok := subjectWords[w]; ok {
			hasSubject = true
		}
		if _, ok := startWords[w]; ok {
			hasStart = true
		}
		if i+1 < len(words) {
			for _, ph := range startPhrases {
				if w == ph[0] && words[i+1] == ph[1] {
					hasStart = true
				}
			}
		}
		if _, ok := endWords[w]; ok {
			hasEnd = true
		}
	}
	switch {
	case !hasSubject:
		return "", false
	case hasEnd:
		return EventFim, true
	case hasStart:
		return EventInicio, true
	}
	return "", false
}

// Events extracts the patrol announcements in chronological order.
func Events(msgs []whatsapp.Message) []Event {
	sorted := make([]whatsapp.Message, 0, len(msgs))
	for _, m := range msgs {
		if !m.System {
			sorted = append(sorted, m)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	var out []Event
	for _, m := range sorted {
		kind, ok := Classify(m.Text)
		if !ok {
			continue
		}
		out = append(out, Event{Kind: kind, Timestamp: m.Timestamp, Autor: m.Author, Texto: m.Text})
	}
	return out
}

// Analyze pairs each start with the next end. A second start while one is
// open leaves the first incomplete, as does an end with nothing open.
func Analyze(msgs []whatsapp.Message) Summary {
	s := Summary{
		Patrols:     []Patrol{},
		Incompletos: []Event{},
		Vigilantes:  []string{},
	}
	for _, m := range msgs {
		if !m.System {
			s.TotalMensagens++
		}
	}

	events := Events(msgs)
	seen := make(map[string]struct{})
	var open *Event
	for i := range events {
		ev := events[i]
		if ev.Autor != "" {
			if _, ok := seen[ev.Autor]; !ok {
				seen[ev.Autor] = struct{}{}
				s.Vigilantes = append(s.Vigilantes, ev.Autor)
			}
		}

		switch ev.Kind {
		case EventInicio:
			if open != nil {
				s.Incompletos = append(s.Incompletos, *open)
			}
			open = &events[i]
		case EventFim:
			if open == nil {
				s.Incompletos = append(s.Incompletos, ev)
				continue
			}
			minutes := int(ev.Timestamp.Sub(open.Timestamp).Minutes())
			autor := open.Autor
			if autor == "" {
				autor = ev.Autor
			}
			s.Patrols = append(s.Patrols, Patrol{Inicio: open.Timestamp, Fim: ev.Timestamp, Minutos: minutes, Autor: autor})
			s.DuracaoTotalMinutos += minutes
			open = nil
		}
	}
	if open != nil {
		s.Incompletos = append(s.Incompletos, *open)
	}

	s.TotalRondas = len(s.Patrols)
	s.MediaMinutos = media(s.DuracaoTotalMinutos, s.TotalRondas)
	if len(events) > 0 {
		first, last := events[0].Timestamp, events[len(events)-1].Timestamp
		s.PrimeiroEvento, s.UltimoEvento = &first, &last
	}
	return s
}

// Summarize builds a summary from patrols known in advance, such as the
// rondas esporádicas of a day. First and last events span the patrols.
func Summarize(patrols []Patrol) Summary {
	s := Summary{
		Patrols:     append([]Patrol{}, patrols...),
		Incompletos: []Event{},
		Vigilantes:  []string{},
	}
	sort.SliceStable(s.Patrols, func(i, j int) bool { return s.Patrols[i].Inicio.Before(s.Patrols[j].Inicio) })

	seen := make(map[string]struct{})
	for _, p := range s.Patrols {
		s.DuracaoTotalMinutos += p.Minutos
		if p.Autor == "" {
			continue
		}
		if _, ok := seen[p.Autor]; !ok {
			seen[p.Autor] = struct{}{}
			s.Vigilantes = append(s.Vigilantes, p.Autor)
		}
	}
	s.TotalRondas = len(s.Patrols)
	s.TotalMensagens = 2 * s.TotalRondas
	s.MediaMinutos = media(s.DuracaoTotalMinutos, s.TotalRondas)
	if n := len(s.Patrols); n > 0 {
		first := s.Patrols[0].Inicio
		last := s.Patrols[0].Fim
		for _, p := range s.Patrols[1:] {
			if p.Fim.After(last) {
				last = p.Fim
			}
		}
		s.PrimeiroEvento, s.UltimoEvento = &first, &last
	}
	return s
}

func media(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}
