// Package commands implements docctl, an offline renderer for block
// templates and invoice or quote documents.
package commands

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/diewo77/doc-designer/internal/render"
	"github.com/diewo77/doc-designer/internal/services"
)

var (
	format  string
	output  string
	timeout time.Duration
	verbose bool

	renderer *services.RenderService
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docctl",
		Short:         "Render document templates and invoices to PDF",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			render.SetLogger(log)
			fetcher := services.HTTPFetcher{Client: http.DefaultClient, Timeout: timeout}
			renderer = services.NewRenderService(nil, nil, fetcher, log)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&format, "format", "f", services.FormatPDF, "output format: pdf or log")
	root.PersistentFlags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	root.PersistentFlags().DurationVar(&timeout, "fetch-timeout", 5*time.Second, "timeout for remote images")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log rendering details")

	root.AddCommand(exportCmd(), renderCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}

// writeOutput writes data to the -o file or to the command output.
func writeOutput(cmd *cobra.Command, data []byte) error {
	if output == "" || output == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}
