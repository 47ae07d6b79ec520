package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/invoice-cli/internal/export"
	"github.com/sells-group/invoice-cli/internal/invoice"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the active field rules",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ext, err := initFieldExtractor(cfg)
		if err != nil {
			return err
		}
		formatRules(cmd.OutOrStdout(), ext.Rules())
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <output-file>",
	Short: "Print an output table as label/value pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := export.ReadTable(args[0])
		if err != nil {
			return err
		}
		formatTable(cmd.OutOrStdout(), rows)
		return nil
	},
}

func formatRules(out io.Writer, rules []invoice.Rule) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tLABEL\tMODE")
	_, _ = fmt.Fprintln(w, "---\t-----\t----")
	for _, r := range rules {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", r.Key, r.Label, r.Mode)
	}
	_ = w.Flush()
}

func formatTable(out io.Writer, rows [][]string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(out, "Empty table.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := rows[0]
	for i, row := range rows[1:] {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		for j, title := range header {
			_, _ = fmt.Fprintf(w, "%s:\t%s\n", title, row[j])
		}
	}
	_ = w.Flush()
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(showCmd)
}
