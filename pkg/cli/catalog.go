package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/jqrt/pkg/catalog"
	"github.com/dshills/jqrt/pkg/storage"
)

// NewCatalogCommand creates the catalog command and its subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage installed conformance catalogs",
		Long:  `Install, list and remove the catalogs "jqrt conform" runs by default.`,
	}

	cmd.AddCommand(newCatalogAddCommand())
	cmd.AddCommand(newCatalogListCommand())
	cmd.AddCommand(newCatalogRemoveCommand())

	return cmd
}

func newCatalogAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <catalog.yaml>...",
		Short: "Validate and install catalog files",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := storage.NewFilesystemCatalogRepository(GetConfigDir())
			if err != nil {
				return err
			}

			for _, path := range args {
				cat, err := catalog.Load(path)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrUsage, err)
				}
				if err := repo.Save(cat); err != nil {
					return fmt.Errorf("failed to install %s: %w", path, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "installed %s (%d cases)\n", cat.Name, len(cat.Cases))
			}
			return nil
		},
	}
}

func newCatalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed catalogs",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := storage.NewFilesystemCatalogRepository(GetConfigDir())
			if err != nil {
				return err
			}
			cats, err := repo.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cats) == 0 {
				_, _ = fmt.Fprintln(out, "No catalogs installed.")
				return nil
			}
			for _, cat := range cats {
				_, _ = fmt.Fprintf(out, "%-20s %4d cases  %s\n", cat.Name, len(cat.Cases), cat.Description)
			}
			return nil
		},
	}
}

func newCatalogRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove an installed catalog",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := storage.NewFilesystemCatalogRepository(GetConfigDir())
			if err != nil {
				return err
			}
			if err := repo.Delete(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}
