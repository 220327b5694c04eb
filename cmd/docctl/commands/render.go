package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diewo77/doc-designer/i18n"
	"github.com/diewo77/doc-designer/internal/services"
)

func renderCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "render <document.json|document.yaml>",
		Short: "Render an invoice or quote with its style",
		Long: "The input holds \"document\", \"company\", \"client\" and an optional \"style\";\n" +
			"without a style the built-in default is used.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			var req services.DocumentRequest
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			out, err := renderer.Render(cmd.Context(), req, format)
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				for field, msg := range verr.Violations.Localize(i18n.Normalize(lang)) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
				}
			}
			if err != nil {
				return err
			}
			return writeOutput(cmd, out.Data)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", i18n.DefaultLang, "language of validation messages")
	return cmd
}
