package cli

import (
	"os"

	"github.com/spf13/cobra"

	chipio "github.com/matzehuels/chipmap/pkg/io"
)

// convertCommand creates the convert command for translating a chip
// description from TOML to the JSON interchange format.
func (c *CLI) convertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert [manifest]",
		Short: "Convert a chip description to JSON",
		Long: `Convert parses a TOML or JSON chip description, validates it, and
writes the JSON interchange form. Without --output the document goes to
stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chip, err := loadChip(args[0])
			if err != nil {
				return reportInvalid(false, err)
			}

			if output == "" {
				return chipio.WriteJSON(chip, os.Stdout)
			}
			if err := chipio.ExportJSON(chip, output); err != nil {
				return err
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this path instead of stdout")

	return cmd
}
