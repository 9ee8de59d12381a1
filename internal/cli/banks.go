package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chipmap/pkg/banks"
	"github.com/matzehuels/chipmap/pkg/manifest"
	"github.com/matzehuels/chipmap/pkg/render"
)

// banksCommand creates the banks command for planning a chip grid that
// realizes a memory from smaller chips.
func (c *CLI) banksCommand() *cobra.Command {
	var (
		memCap, memWord, chipCap, chipWord string
		output                             string
	)

	cmd := &cobra.Command{
		Use:   "banks",
		Short: "Plan a memory bank chip grid",
		Long: `Banks computes how many chips realize a memory: rows come from the
capacity ratio, columns from the word size ratio. Capacities and word
sizes accept unit suffixes ("64K", "8M").

Example:

  chipmap banks --memory 64K --memory-word 16 --chip 16K --chip-word 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseBankParams(memCap, memWord, chipCap, chipWord)
			if err != nil {
				return err
			}

			plan, err := banks.New(params)
			if err != nil {
				return err
			}

			printSuccess("Planned %s grid", StyleHighlight.Render(fmt.Sprintf("%d×%d", plan.Rows, plan.Columns)))
			printKeyValue("Chips", fmt.Sprintf("%d", plan.Chips()))
			printKeyValue("Address lines", fmt.Sprintf("%d per chip", plan.ChipAddressLines))
			printKeyValue("Select lines", fmt.Sprintf("%d", plan.SelectLines))

			if output == "" {
				return nil
			}
			if err := os.WriteFile(output, render.RenderBankSVG(plan), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&memCap, "memory", "", "total memory capacity in words (required)")
	cmd.Flags().StringVar(&memWord, "memory-word", "", "memory word size in bits (required)")
	cmd.Flags().StringVar(&chipCap, "chip", "", "single chip capacity in words (required)")
	cmd.Flags().StringVar(&chipWord, "chip-word", "", "single chip word size in bits (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the grid as SVG to this path")

	_ = cmd.MarkFlagRequired("memory")
	_ = cmd.MarkFlagRequired("memory-word")
	_ = cmd.MarkFlagRequired("chip")
	_ = cmd.MarkFlagRequired("chip-word")

	return cmd
}

// parseBankParams parses the four sizing flags, accepting the same unit
// suffixes as manifest sizes.
func parseBankParams(memCap, memWord, chipCap, chipWord string) (banks.Params, error) {
	var (
		p      banks.Params
		err    error
		fields = []struct {
			name  string
			value string
			dst   *uint64
		}{
			{"memory", memCap, &p.MemoryCapacity},
			{"memory-word", memWord, &p.MemoryWordSize},
			{"chip", chipCap, &p.ChipCapacity},
			{"chip-word", chipWord, &p.ChipWordSize},
		}
	)

	for _, f := range fields {
		var size manifest.Size
		if err = size.UnmarshalTOML(f.value); err != nil {
			return banks.Params{}, fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.dst = uint64(size)
	}
	return p, nil
}
