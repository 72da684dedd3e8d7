package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/dshills/jqrt/pkg/builtin"
	apperrors "github.com/dshills/jqrt/pkg/errors"
	"github.com/dshills/jqrt/pkg/value"
)

// NewApplyCommand creates the apply command
func NewApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <builtin> [json-args...]",
		Short: "Evaluate a builtin on JSON arguments",
		Long: `Evaluate a builtin on JSON arguments and print the result.

A runtime failure is printed as "jqrt: error: <message>" and exits with
status 5. Run "jqrt builtins" for the available names.`,
		Example: `  jqrt apply + 1 2
  jqrt apply length true
  jqrt apply setindex '[]' -1 0`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: runApply,
	}

	// Flags stop at the builtin name so that "-1" stays an argument.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runApply(cmd *cobra.Command, args []string) error {
	name := args[0]

	b, err := builtin.Lookup(name)
	if err != nil {
		return err
	}

	vals := make([]value.Value, 0, len(args)-1)
	for i, text := range args[1:] {
		v, err := value.ParseJSON(text)
		if err != nil {
			return fmt.Errorf("%w: argument %d: %w", ErrUsage, i+1, err)
		}
		vals = append(vals, v)
	}

	log.Printf("applying %s to %d argument(s)", name, len(vals))
	got, err := b.Call(vals...)
	if err != nil {
		return apperrors.NewOperationalError("applying "+name, "", "", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), got.String())
	return nil
}

// NewBuiltinsCommand creates the builtins command
func NewBuiltinsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "List the available builtins",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range builtin.Names() {
				b, err := builtin.Lookup(name)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%-10s %s\n", b.Name, b.Usage)
			}
			return nil
		},
	}
}
