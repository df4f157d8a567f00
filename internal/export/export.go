// Package export renders rondas into an XLSX workbook.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"rondasapi/internal/model"
	"rondasapi/internal/plantao"
)

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one tab of the workbook.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
	Widths  []float64
}

// Write builds a workbook with one tab per sheet, in order.
func Write(sheets []Sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1A659E"}, Pattern: 1},
		Font:      &excelize.Font{Color: "FFFFFF", Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", s.Name, err)
		}

		for col, h := range s.Headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(s.Name, cell, h); err != nil {
				return nil, err
			}
		}
		if len(s.Headers) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(s.Headers), 1)
			if err := f.SetCellStyle(s.Name, "A1", last, header); err != nil {
				return nil, err
			}
		}

		for r, row := range s.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := f.SetSheetRow(s.Name, cell, &row); err != nil {
				return nil, fmt.Errorf("write row %d of %q: %w", r+2, s.Name, err)
			}
		}

		for col, w := range s.Widths {
			name, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetColWidth(s.Name, name, name, w); err != nil {
				return nil, err
			}
		}
	}
	if len(sheets) > 0 {
		f.SetActiveSheet(0)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// RondasSheet lists regular and consolidated rondas.
func RondasSheet(rondas []model.Ronda, nomes map[int64]string) Sheet {
	s := Sheet{
		Name: "Rondas",
		Headers: []string{"ID", "Condomínio", "Data", "Escala", "Turno", "Tipo", "Status",
			"Total de rondas", "Duração total (min)", "Duração", "Observações"},
		Widths: []float64{8, 28, 12, 14, 10, 12, 14, 16, 18, 12, 40},
	}
	for _, r := range rondas {
		s.Rows = append(s.Rows, []any{
			r.ID,
			nomeOf(nomes, r.CondominioID),
			r.DataPlantao.String(),
			string(r.EscalaPlantao),
			string(r.Turno),
			string(r.Tipo),
			string(r.Status),
			r.TotalRondas,
			r.DuracaoTotalMinutos,
			plantao.FormatDuracao(r.DuracaoTotalMinutos),
			r.Observacoes,
		})
	}
	return s
}

// EsporadicasSheet lists rondas esporádicas.
func EsporadicasSheet(items []model.RondaEsporadica, nomes map[int64]string) Sheet {
	s := Sheet{
		Name: "Esporadicas",
		Headers: []string{"ID", "Condomínio", "Data", "Escala", "Entrada", "Saída",
			"Duração (min)", "Status", "Observações"},
		Widths: []float64{8, 28, 12, 14, 10, 10, 14, 14, 40},
	}
	for _, r := range items {
		s.Rows = append(s.Rows, []any{
			r.ID,
			nomeOf(nomes, r.CondominioID),
			r.DataPlantao.String(),
			string(r.EscalaPlantao),
			r.HoraEntrada,
			r.HoraSaida,
			r.Duracao(),
			string(r.Status),
			r.Observacoes,
		})
	}
	return s
}

func nomeOf(nomes map[int64]string, id int64) string {
	if n, ok := nomes[id]; ok {
		return n
	}
	return fmt.Sprintf("#%d", id)
}
