// Package plantao holds the shift (plantão) calendar rules: which escala a
// timestamp belongs to, the window each escala covers and how patrol
// durations are counted.
package plantao

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rondasapi/internal/textnorm"
)

// Escala is the shift schedule descriptor as shown to operators.
type Escala string

const (
	EscalaDiurna  Escala = "06h às 18h"
	EscalaNoturna Escala = "18h às 06h"
)

// Turno is the day/night classification of a shift.
type Turno string

const (
	TurnoDiurno  Turno = "diurno"
	TurnoNoturno Turno = "noturno"
)

const (
	inicioDiurno  = 6
	inicioNoturno = 18
)

// DateLayout is the wire format of plantão dates.
const DateLayout = "2006-01-02"

// HourLayout is the wire format of time-of-day fields.
const HourLayout = "15:04"

var ErrEscalaInvalida = errors.New("escala inválida")

// ParseEscala accepts the canonical descriptors and common spellings of them.
func ParseEscala(s string) (Escala, error) {
	f := strings.ReplaceAll(textnorm.Fold(s), " ", "")
	switch f {
	case "06has18h", "6has18h", "06h-18h", "06-18", "diurno", "diurna", "dia":
		return EscalaDiurna, nil
	case "18has06h", "18has6h", "18h-06h", "18-06", "noturno", "noturna", "noite":
		return EscalaNoturna, nil
	}
	return "", fmt.Errorf("%w: %q", ErrEscalaInvalida, s)
}

// Turno maps an escala to its turno.
func (e Escala) Turno() Turno {
	if e == EscalaNoturna {
		return TurnoNoturno
	}
	return TurnoDiurno
}

// EscalaFor is the inverse of Escala.Turno.
func EscalaFor(t Turno) Escala {
	if t == TurnoNoturno {
		return EscalaNoturna
	}
	return EscalaDiurna
}

// Window is an inclusive time range.
type Window struct {
	Inicio time.Time
	Fim    time.Time
}

// Contains reports whether ts falls inside the window, bounds included.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Inicio) && !ts.After(w.Fim)
}

// WindowFor returns the period covered by the escala starting on date.
// The night shift runs into the following morning.
func WindowFor(date time.Time, e Escala, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	if e == EscalaNoturna {
		return Window{
			Inicio: time.Date(y, m, d, inicioNoturno, 0, 0, 0, loc),
			Fim:    time.Date(y, m, d+1, inicioDiurno-1, 59, 59, 0, loc),
		}
	}
	return Window{
		Inicio: time.Date(y, m, d, inicioDiurno, 0, 0, 0, loc),
		Fim:    time.Date(y, m, d, inicioNoturno-1, 59, 59, 0, loc),
	}
}

// At places a time of day, in minutes since midnight, inside the plantão
// starting on date. Night-shift hours before 06:00 fall on the next day.
func At(date time.Time, e Escala, minutes int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	if e == EscalaNoturna && minutes < inicioDiurno*60 {
		d++
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(minutes) * time.Minute)
}

// Classify returns the plantão date and turno a timestamp belongs to.
// Early-morning messages belong to the previous day's night shift.
func Classify(ts time.Time) (time.Time, Turno) {
	y, m, d := ts.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
	switch h := ts.Hour(); {
	case h >= inicioDiurno && h < inicioNoturno:
		return day, TurnoDiurno
	case h >= inicioNoturno:
		return day, TurnoNoturno
	default:
		return day.AddDate(0, 0, -1), TurnoNoturno
	}
}

// ParseDate parses a YYYY-MM-DD plantão date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// ParseHour parses an HH:MM time of day and returns the minutes since midnight.
func ParseHour(s string) (int, error) {
	t, err := time.Parse(HourLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("hora inválida %q, use HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatHour renders minutes since midnight as HH:MM.
func FormatHour(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesBetween counts minutes from entrada to saida, both minutes since
// midnight. A saida earlier than entrada crossed midnight.
func MinutesBetween(entrada, saida int) int {
	d := saida - entrada
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// CircularDistance is the shortest distance between two times of day, in minutes.
func CircularDistance(a, b int) int {
	d := MinutesBetween(a, b)
	if d > 720 {
		return 1440 - d
	}
	return d
}

// FormatDuracao renders a duration the way reports show it: "1h 05min", "40min".
func FormatDuracao(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	return fmt.Sprintf("%dh %02dmin", minutes/60, minutes%60)
}
