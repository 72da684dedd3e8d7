package cli

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/jqrt/pkg/catalog"
	"github.com/dshills/jqrt/pkg/storage"
)

// ConformFlags holds the flags for the conform command
type ConformFlags struct {
	Record  bool
	Verbose bool
}

// NewConformCommand creates the conform command
func NewConformCommand() *cobra.Command {
	flags := &ConformFlags{}

	cmd := &cobra.Command{
		Use:   "conform [catalog.yaml...]",
		Short: "Run conformance catalogs",
		Long: `Run conformance catalogs and report every failing case.

Without arguments the installed catalogs ("jqrt catalog add") and the
catalogs listed in config.yaml are run. The exit status is 1 when any
case fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConform(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Record, "record", false, "Record the runs in the run history")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Also list passing cases")

	return cmd
}

func runConform(cmd *cobra.Command, paths []string, flags *ConformFlags) error {
	cats, err := selectCatalogs(paths)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return fmt.Errorf("%w: no catalogs given and none installed", ErrUsage)
	}

	var repo *storage.SQLiteRunRepository
	if flags.Record {
		repo, err = storage.NewSQLiteRunRepository(GetDatabasePath())
		if err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer func() { _ = repo.Close() }()
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, cat := range cats {
		startedAt := time.Now()
		res, err := catalog.Run(cmd.Context(), cat)
		if err != nil {
			return fmt.Errorf("catalog %s: %w", cat.Name, err)
		}

		printResult(out, res, flags.Verbose)
		failed += res.Failed

		if repo != nil {
			run := storage.NewRun(res, startedAt)
			if err := repo.Save(run); err != nil {
				log.Printf("Warning: failed to record run of %s: %v", cat.Name, err)
				continue
			}
			_, _ = fmt.Fprintf(out, "recorded run %s\n", run.ID)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d conformance case(s) failed", failed)
	}
	return nil
}

// selectCatalogs loads the named files, or every default catalog when
// none are named.
func selectCatalogs(paths []string) ([]*catalog.Catalog, error) {
	if len(paths) == 0 {
		repo, err := storage.NewFilesystemCatalogRepository(GetConfigDir())
		if err != nil {
			return nil, err
		}
		installed, err := repo.List()
		if err != nil {
			return nil, err
		}
		cats := installed
		for _, p := range GetDefaultCatalogs() {
			cat, err := catalog.Load(p)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrUsage, err)
			}
			cats = append(cats, cat)
		}
		return cats, nil
	}

	cats := make([]*catalog.Catalog, 0, len(paths))
	for _, p := range paths {
		cat, err := catalog.Load(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

func printResult(out io.Writer, res *catalog.Result, verbose bool) {
	for _, o := range res.Outcomes {
		switch {
		case !o.Passed:
			_, _ = fmt.Fprintf(out, "FAIL %s/%s: %s\n", res.Catalog, o.CaseID, o.Reason)
		case verbose:
			_, _ = fmt.Fprintf(out, "ok   %s/%s\n", res.Catalog, o.CaseID)
		}
	}
	_, _ = fmt.Fprintf(out, "%s: %d passed, %d failed\n", res.Catalog, res.Passed, res.Failed)
}
