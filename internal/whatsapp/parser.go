// Package whatsapp reads WhatsApp chat exports (and messages copied from the
// app) and splits them into plantões.
package whatsapp

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Message is one chat message. System messages (group notices, encryption
// banners) have no author.
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	System    bool      `json:"system,omitempty"`
}

var (
	// 12/03/2024 06:15 - Autor: texto    (Android export)
	androidHeader = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4}),? (\d{1,2}):(\d{2})(?::(\d{2}))? - (.*)$`)
	// [12/03/2024, 06:15:32] Autor: texto (iOS export)
	iosHeader = regexp.MustCompile(`^\[(\d{1,2})/(\d{1,2})/(\d{2,4}),? (\d{1,2}):(\d{2})(?::(\d{2}))?\] (.*)$`)
	// [06:15, 12/03/2024] Autor: texto    (copied from the app)
	copiedHeader = regexp.MustCompile(`^\[(\d{1,2}):(\d{2})(?::(\d{2}))?, (\d{1,2})/(\d{1,2})/(\d{2,4})\] (.*)$`)
)

const maxAuthorLen = 80

var invisible = strings.NewReplacer(
	"\u200e", "",
	"\u200f", "",
	"\ufeff", "",
	"\u202f", " ",
	"\u00a0", " ",
)

// Parse reads a chat export. Lines that do not start a message are appended
// to the previous one; lines before the first header are ignored.
func Parse(r io.Reader, loc *time.Location) ([]Message, error) {
	if loc == nil {
		loc = time.UTC
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var (
		msgs    []Message
		current *Message
	)
	flush := func() {
		if current != nil {
			current.Text = strings.TrimRight(current.Text, "\n ")
			msgs = append(msgs, *current)
			current = nil
		}
	}

	for sc.Scan() {
		line := strings.TrimRight(invisible.Replace(sc.Text()), "\r")

		ts, rest, ok := parseHeader(line, loc)
		if !ok {
			if current != nil {
				current.Text += "\n" + line
			}
			continue
		}

		flush()
		m := Message{Timestamp: ts}
		if author, text, found := splitAuthor(rest); found {
			m.Author = author
			m.Text = text
		} else {
			m.System = true
			m.Text = rest
		}
		current = &m
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read chat export: %w", err)
	}
	flush()
	return msgs, nil
}

func parseHeader(line string, loc *time.Location) (time.Time, string, bool) {
	var day, month, year, hour, minute, second, rest string
	switch {
	case androidHeader.MatchString(line):
		g := androidHeader.FindStringSubmatch(line)
		day, month, year, hour, minute, second, rest = g[1], g[2], g[3], g[4], g[5], g[6], g[7]
	case iosHeader.MatchString(line):
		g := iosHeader.FindStringSubmatch(line)
		day, month, year, hour, minute, second, rest = g[1], g[2], g[3], g[4], g[5], g[6], g[7]
	case copiedHeader.MatchString(line):
		g := copiedHeader.FindStringSubmatch(line)
		hour, minute, second, day, month, year, rest = g[1], g[2], g[3], g[4], g[5], g[6], g[7]
	default:
		return time.Time{}, "", false
	}

	ts, err := buildTime(day, month, year, hour, minute, second, loc)
	if err != nil {
		// A line that merely looks like a header (e.g. a pasted date) is text.
		return time.Time{}, "", false
	}
	return ts, rest, true
}

func buildTime(day, month, year, hour, minute, second string, loc *time.Location) (time.Time, error) {
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	d, mo, y, h, mi := atoi(day), atoi(month), atoi(year), atoi(hour), atoi(minute)
	s := 0
	if second != "" {
		s = atoi(second)
	}
	if len(year) == 2 {
		y += 2000
	}
	if mo < 1 || mo > 12 || d < 1 || d > 31 || h > 23 || mi > 59 || s > 59 {
		return time.Time{}, fmt.Errorf("invalid timestamp %s/%s/%s %s:%s", day, month, year, hour, minute)
	}
	t := time.Date(y, time.Month(mo), d, h, mi, s, 0, loc)
	if t.Day() != d {
		return time.Time{}, fmt.Errorf("invalid date %s/%s/%s", day, month, year)
	}
	return t, nil
}

func splitAuthor(rest string) (string, string, bool) {
	idx := strings.Index(rest, ": ")
	if idx <= 0 || idx > maxAuthorLen {
		if strings.HasSuffix(rest, ":") && len(rest) <= maxAuthorLen+1 {
			return strings.TrimSuffix(rest, ":"), "", true
		}
		return "", "", false
	}
	return strings.TrimSpace(rest[:idx]), rest[idx+2:], true
}
