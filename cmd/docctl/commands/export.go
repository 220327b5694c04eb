package commands

import (
	"github.com/spf13/cobra"

	"github.com/diewo77/doc-designer/internal/layout"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <template.json|template.yaml>",
		Short: "Render a block template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			t, err := layout.Decode(data)
			if err != nil {
				return err
			}
			out, err := renderer.ExportTemplate(cmd.Context(), t, format)
			if err != nil {
				return err
			}
			return writeOutput(cmd, out.Data)
		},
	}
}
