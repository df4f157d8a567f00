package whatsapp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rondasapi/internal/plantao"
)

const androidExport = `12/03/2024 05:40 - As mensagens e as ligações são protegidas com a criptografia de ponta a ponta.
12/03/2024 05:50 - Carlos Vigia: Fim de ronda, tudo tranquilo
12/03/2024 06:10 - João Silva: Início de ronda
12/03/2024 06:42 - João Silva: Término de ronda
portões fechados
bloco B ok
12/03/2024 18:05 - Pedro: iniciando ronda noturna
13/03/2024 00:30 - Pedro: ronda finalizada
`

func TestParse_AndroidExport(t *testing.T) {
	msgs, err := Parse(strings.NewReader(androidExport), time.UTC)
	require.NoError(t, err)
	require.Len(t, msgs, 6)

	assert.True(t, msgs[0].System)
	assert.Empty(t, msgs[0].Author)

	assert.Equal(t, "Carlos Vigia", msgs[1].Author)
	assert.Equal(t, time.Date(2024, 3, 12, 5, 50, 0, 0, time.UTC), msgs[1].Timestamp)

	assert.Equal(t, "João Silva", msgs[3].Author)
	assert.Equal(t, "Término de ronda\nportões fechados\nbloco B ok", msgs[3].Text)

	assert.Equal(t, time.Date(2024, 3, 13, 0, 30, 0, 0, time.UTC), msgs[5].Timestamp)
}

func TestParse_IOSExport(t *testing.T) {
	in := "‎[12/03/24, 06:10:33] João: Início de ronda\n[12/03/24, 06:40:01] João: ‎imagem ocultada\n"
	msgs, err := Parse(strings.NewReader(in), time.UTC)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, time.Date(2024, 3, 12, 6, 10, 33, 0, time.UTC), msgs[0].Timestamp)
	assert.Equal(t, "imagem ocultada", msgs[1].Text)
}

func TestParse_CopiedMessages(t *testing.T) {
	in := "[06:10, 12/03/2024] João: Início de ronda\n[06:40, 12/03/2024] João: Fim de ronda"
	msgs, err := Parse(strings.NewReader(in), time.UTC)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "João", msgs[1].Author)
	assert.Equal(t, 40, msgs[1].Timestamp.Minute())
}

func TestParse_IgnoresLeadingOrphansAndInvalidDates(t *testing.T) {
	in := "cabeçalho solto\n31/02/2024 10:00 - texto que parece data\n01/03/2024 10:00 - Ana: ok\n"
	msgs, err := Parse(strings.NewReader(in), time.UTC)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Ana", msgs[0].Author)
}

func TestParse_Empty(t *testing.T) {
	msgs, err := Parse(strings.NewReader(""), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestGroupPlantoes(t *testing.T) {
	msgs, err := Parse(strings.NewReader(androidExport), time.UTC)
	require.NoError(t, err)

	ps := GroupPlantoes(msgs)
	require.Len(t, ps, 3)

	// 05:50 on the 12th belongs to the night shift of the 11th.
	assert.Equal(t, plantao.TurnoNoturno, ps[0].Tipo)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), ps[0].Data)
	assert.Len(t, ps[0].Mensagens, 1)

	assert.Equal(t, plantao.TurnoDiurno, ps[1].Tipo)
	assert.Equal(t, plantao.EscalaDiurna, ps[1].Escala())
	assert.Len(t, ps[1].Mensagens, 2)

	assert.Equal(t, plantao.TurnoNoturno, ps[2].Tipo)
	assert.Equal(t, time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC), ps[2].Inicio)
	assert.Len(t, ps[2].Mensagens, 2)
}

func TestProcessFile_Window(t *testing.T) {
	date := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	w := plantao.WindowFor(date, plantao.EscalaNoturna, time.UTC)

	ps, err := ProcessFile(strings.NewReader(androidExport), time.UTC, &w)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Pedro", ps[0].Mensagens[0].Author)

	all, err := ProcessFile(strings.NewReader(androidExport), time.UTC, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFormatForRondaLog_RoundTrip(t *testing.T) {
	msgs, err := Parse(strings.NewReader(androidExport), time.UTC)
	require.NoError(t, err)
	ps := GroupPlantoes(msgs)

	log := FormatForRondaLog(ps[1])
	assert.True(t, strings.HasPrefix(log, "[06:10, 12/03/2024] João Silva: Início de ronda"))

	back, err := Parse(strings.NewReader(log), time.UTC)
	require.NoError(t, err)
	require.Len(t, back, len(ps[1].Mensagens))
	for i := range back {
		assert.Equal(t, ps[1].Mensagens[i].Author, back[i].Author)
		assert.Equal(t, ps[1].Mensagens[i].Text, back[i].Text)
		assert.True(t, ps[1].Mensagens[i].Timestamp.Equal(back[i].Timestamp))
	}
}
