package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/invoice-cli/internal/config"
	"github.com/sells-group/invoice-cli/internal/fetcher"
	"github.com/sells-group/invoice-cli/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Download invoices and write one table per document",
	Long: "Processes every source in order: sources from config, then the sources file, then --url flags. " +
		"A failing source is logged and skipped; the command still exits 0.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := applyExtractFlags(cmd, cfg); err != nil {
			return err
		}

		sourcesFile, _ := cmd.Flags().GetString("sources-file")
		urls, _ := cmd.Flags().GetStringArray("url")
		sources, err := collectSources(cmd.Context(), cfg.Sources, sourcesFile, urls)
		if err != nil {
			return err
		}
		if len(sources) == 0 {
			return eris.New("no sources: set sources in config, --sources-file or --url")
		}

		p, err := initPipeline(cfg)
		if err != nil {
			return err
		}

		summary := p.Run(cmd.Context(), sources)

		if path, _ := cmd.Flags().GetString("summary"); path != "" {
			if err := pipeline.WriteSummary(path, summary); err != nil {
				zap.L().Error("write summary", zap.String("path", path), zap.Error(err))
			}
		}

		_, _ = fmt.Fprint(cmd.OutOrStdout(), pipeline.FormatReport(summary))
		return nil
	},
}

// applyExtractFlags copies explicitly set flags over the loaded configuration.
func applyExtractFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		c.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("download-dir") {
		c.Paths.DownloadDir, _ = flags.GetString("download-dir")
	}
	if flags.Changed("output-dir") {
		c.Paths.OutputDir, _ = flags.GetString("output-dir")
	}
	return c.Validate()
}

// collectSources concatenates configured, file and flag sources in that order.
// Duplicates are kept.
func collectSources(ctx context.Context, configured []string, file string, flagURLs []string) ([]string, error) {
	sources := append([]string{}, configured...)
	if file != "" {
		fromFile, err := fetcher.ReadSourceFile(ctx, file)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fromFile...)
	}
	return append(sources, flagURLs...), nil
}

func init() {
	extractCmd.Flags().StringArray("url", nil, "source URL (repeatable)")
	extractCmd.Flags().String("sources-file", "", "CSV or text file with one source URL per line")
	extractCmd.Flags().String("format", "csv", "output format (csv, xlsx)")
	extractCmd.Flags().String("download-dir", "downloads", "directory for downloaded documents")
	extractCmd.Flags().String("output-dir", ".", "directory for output tables")
	extractCmd.Flags().String("summary", "", "write a JSON run summary to this path")
	rootCmd.AddCommand(extractCmd)
}
