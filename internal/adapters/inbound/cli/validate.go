package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mockguard/mockguard/internal/adapters/outbound/report"
	"github.com/mockguard/mockguard/internal/adapters/outbound/tui"
	"github.com/mockguard/mockguard/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		project   projectFlags
		mappings  string
		format    string
		output    string
		workers   int
		strict    bool
		recursive bool
		queryOnly bool
		skip      []string
		exclude   []string
		noColor   bool
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check mock mappings against an OpenAPI contract",
		Long: "Check every WireMock mapping against the OpenAPI contract and report one finding per url, method, " +
			"query parameter and response property. Exits non-zero when any finding failed or errored, " +
			"or, with --strict, when any finding warned.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath, cfg, err := project.load(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("mappings") {
				if cfg.Mappings, err = filepath.Abs(mappings); err != nil {
					return fmt.Errorf("resolving mappings: %w", err)
				}
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("strict") {
				cfg.Strict = strict
			}
			if flags.Changed("recursive") {
				cfg.Recursive = recursive
			}
			if flags.Changed("query-only") {
				cfg.QueryOnly = queryOnly
			}
			if flags.Changed("skip") {
				cfg.Skip = skip
			}
			if flags.Changed("exclude") {
				cfg.Exclude = exclude
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			logger := newLogger(cmd.ErrOrStderr(), project.verbose)
			svc := newRunService(project.contractLoader(projectPath, logger), cfg, logger)

			res, err := svc.Run(cmd.Context(), projectPath, cfg)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			opts := tui.Options{NoColor: noColor || output != "", Quiet: quiet}
			if output != "" {
				if err := writeResultsFile(output, res, cfg.Format, opts); err != nil {
					return err
				}
			} else if err := writeResults(cmd.OutOrStdout(), res, cfg.Format, opts); err != nil {
				return fmt.Errorf("writing results: %w", err)
			}

			if res.GateFailed(cfg.Strict) {
				s := res.Summary()
				return fmt.Errorf("mocks do not match the contract: %d failed, %d errors, %d warnings",
					s.Failed, s.Error, s.Warning)
			}
			return nil
		},
	}

	project.register(cmd)
	cmd.Flags().StringVarP(&mappings, "mappings", "w", "", "WireMock mappings directory")
	cmd.Flags().StringVar(&format, "format", domain.FormatConsole, "Output format (console, json, junit, github)")
	cmd.Flags().StringVar(&output, "output", "", "Write results to a file instead of stdout")
	cmd.Flags().IntVar(&workers, "workers", 1, "Number of mapping files checked concurrently")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings too")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "Walk sub-directories of the mappings directory")
	cmd.Flags().BoolVar(&queryOnly, "query-only", false, "Only check query parameters, ignoring path and header parameters")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "Check kinds to drop from the results (e.g. ResponsePropertyType)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob patterns of mapping file names to ignore")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored console output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Only print the findings table")

	return cmd
}

// writeResultsFile writes the report to path. A failure to flush the file on
// close is reported like any other write error.
func writeResultsFile(path string, res *domain.Results, format string, opts tui.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := writeResults(f, res, format, opts); err != nil {
		f.Close()
		return fmt.Errorf("writing results: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

func writeResults(w io.Writer, res *domain.Results, format string, opts tui.Options) error {
	if format == "" || format == domain.FormatConsole {
		_, err := fmt.Fprint(w, tui.RenderResults(res, opts))
		return err
	}
	f, err := report.ForFormat(format)
	if err != nil {
		return err
	}
	return f.Format(w, res)
}
