package whatsapp

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"rondasapi/internal/plantao"
)

// Plantao is the set of messages exchanged during one shift.
type Plantao struct {
	Data      time.Time     `json:"data"`
	Tipo      plantao.Turno `json:"tipo"`
	Inicio    time.Time     `json:"inicio"`
	Fim       time.Time     `json:"fim"`
	Mensagens []Message     `json:"mensagens"`
}

// Escala is the schedule descriptor matching the plantão's turno.
func (p Plantao) Escala() plantao.Escala {
	return plantao.EscalaFor(p.Tipo)
}

type plantaoKey struct {
	date string
	tipo plantao.Turno
}

// GroupPlantoes assigns each non-system message to its shift and returns the
// shifts ordered by start time. Messages keep their original order.
func GroupPlantoes(msgs []Message) []Plantao {
	index := make(map[plantaoKey]int)
	var out []Plantao
	for _, m := range msgs {
		if m.System {
			continue
		}
		date, tipo := plantao.Classify(m.Timestamp)
		key := plantaoKey{date: date.Format(plantao.DateLayout), tipo: tipo}
		i, ok := index[key]
		if !ok {
			w := plantao.WindowFor(date, plantao.EscalaFor(tipo), m.Timestamp.Location())
			out = append(out, Plantao{Data: date, Tipo: tipo, Inicio: w.Inicio, Fim: w.Fim})
			i = len(out) - 1
			index[key] = i
		}
		out[i].Mensagens = append(out[i].Mensagens, m)
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Inicio.Before(out[b].Inicio) })
	return out
}

// Filter keeps the messages inside w, bounds included.
func Filter(msgs []Message, w plantao.Window) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if w.Contains(m.Timestamp) {
			out = append(out, m)
		}
	}
	return out
}

// ProcessFile parses an export and groups it into plantões. A nil window
// keeps the whole file.
func ProcessFile(r io.Reader, loc *time.Location, w *plantao.Window) ([]Plantao, error) {
	msgs, err := Parse(r, loc)
	if err != nil {
		return nil, err
	}
	if w != nil {
		msgs = Filter(msgs, *w)
	}
	return GroupPlantoes(msgs), nil
}

// FormatForRondaLog renders a plantão in the copied-message form,
// "[HH:MM, DD/MM/YYYY] Autor: texto", which Parse reads back.
func FormatForRondaLog(p Plantao) string {
	var b strings.Builder
	for i, m := range p.Mensagens {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s, %s] %s: %s",
			m.Timestamp.Format("15:04"),
			m.Timestamp.Format("02/01/2006"),
			m.Author,
			m.Text,
		)
	}
	return b.String()
}
