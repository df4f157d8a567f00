package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rondasapi/internal/config"
	"rondasapi/internal/plantao"
	"rondasapi/internal/rondalog"
	"rondasapi/internal/whatsapp"
)

type parseOptions struct {
	data   string
	escala string
	loc    *time.Location
}

// InitParseCommands registers "parse", which works without a database.
func InitParseCommands(rootCmd *cobra.Command) {
	var opts parseOptions
	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the plantões, formatted log and patrol summary of an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			opts.loc = config.Load().Location()
			return runParse(cmd.OutOrStdout(), f, opts)
		},
	}
	parseCmd.Flags().StringVar(&opts.data, "data", "", "Plantão date (YYYY-MM-DD); requires --escala")
	parseCmd.Flags().StringVar(&opts.escala, "escala", "", `Escala, e.g. "06h às 18h" or "noturno"`)
	rootCmd.AddCommand(parseCmd)
}

func runParse(w io.Writer, r io.Reader, opts parseOptions) error {
	if opts.loc == nil {
		opts.loc = time.UTC
	}

	var window *plantao.Window
	if opts.data != "" || opts.escala != "" {
		if opts.data == "" || opts.escala == "" {
			return fmt.Errorf("--data and --escala must be given together")
		}
		day, err := time.ParseInLocation(plantao.DateLayout, opts.data, opts.loc)
		if err != nil {
			return fmt.Errorf("invalid --data: %w", err)
		}
		escala, err := plantao.ParseEscala(opts.escala)
		if err != nil {
			return err
		}
		win := plantao.WindowFor(day, escala, opts.loc)
		window = &win
	}

	plantoes, err := whatsapp.ProcessFile(r, opts.loc, window)
	if err != nil {
		return err
	}
	if len(plantoes) == 0 {
		fmt.Fprintln(w, "nenhuma mensagem encontrada")
		return nil
	}

	for i, p := range plantoes {
		if i > 0 {
			fmt.Fprintln(w, strings.Repeat("=", 60))
		}
		fmt.Fprintf(w, "Plantão %s | %s | %d mensagens\n\n", p.Data.Format("02/01/2006"), p.Escala(), len(p.Mensagens))
		fmt.Fprintln(w, whatsapp.FormatForRondaLog(p))
		fmt.Fprintln(w)

		summary := rondalog.Analyze(p.Mensagens)
		fmt.Fprintln(w, rondalog.RenderReport(rondalog.ReportHeader{Data: p.Data, Escala: p.Escala()}, summary))
	}
	return nil
}
