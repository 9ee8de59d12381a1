package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chipmap/pkg/memmap"
	"github.com/matzehuels/chipmap/pkg/pipeline"
)

// validateCommand creates the validate command for checking a manifest
// against the memory map invariants without rendering anything.
func (c *CLI) validateCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check a memory map against its invariants",
		Long: `Validate parses a chip description and checks every invariant:
regions stay inside the addressable range, siblings never overlap, and
children stay inside their parents. The exit code identifies the first
violation class found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chip, err := loadChip(args[0])
			if err != nil {
				return reportInvalid(quiet, err)
			}

			if !quiet {
				printSuccess("%s is valid", StyleHighlight.Render(chip.Name()))
				printStats(chip.RegionCount(), chip.AddressWidth(), false)
				for _, k := range customKinds(chip) {
					printWarning("kind %q is not built in, its regions use the default appearance", k)
				}
				printNextStep("Render it", fmt.Sprintf("chipmap render %s", args[0]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress output, report through the exit code only")

	return cmd
}

// loadChip reads a TOML or JSON chip description and validates it.
func loadChip(path string) (*memmap.Chip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	chip, err := pipeline.BuildFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return chip, nil
}

// customKinds returns the distinct region kinds the renderers have no
// dedicated appearance for, in declaration order.
func customKinds(chip *memmap.Chip) []string {
	seen := make(map[memmap.Kind]bool)
	var kinds []string
	chip.Walk(func(r *memmap.Region, depth int) bool {
		if k := memmap.NormalizeKind(r.Kind); !k.Canonical() && !seen[k] {
			seen[k] = true
			kinds = append(kinds, string(k))
		}
		return true
	})
	return kinds
}

func reportInvalid(quiet bool, err error) error {
	if !quiet {
		printError("%v", err)
	}
	return &silentError{err: err}
}

// silentError marks an error as already reported so main prints nothing
// further while still mapping the exit code from the cause.
type silentError struct{ err error }

func (e *silentError) Error() string { return e.err.Error() }
func (e *silentError) Unwrap() error { return e.err }

// IsReported returns true if err was already shown to the user.
func IsReported(err error) bool {
	var se *silentError
	return errors.As(err, &se)
}
