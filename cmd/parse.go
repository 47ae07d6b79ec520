package main

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/invoice-cli/internal/model"
	"github.com/sells-group/invoice-cli/internal/pdftext"
)

// parsedField is one line of parse output.
type parsedField struct {
	Key   string  `json:"key"`
	Title string  `json:"title"`
	Value *string `json:"value"`
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Extract fields from a local PDF or text file and print them as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		var text pdftext.Extractor = pdftext.PlainText{}
		if !strings.EqualFold(filepath.Ext(path), ".txt") {
			var err error
			text, err = pdftext.NewExtractor(cfg.Text)
			if err != nil {
				return err
			}
		}

		content, err := text.ExtractText(cmd.Context(), path)
		if err != nil {
			return eris.Wrapf(err, "parse %s", path)
		}

		fields, err := initFieldExtractor(cfg)
		if err != nil {
			return err
		}
		rec := fields.Extract(content)

		out := make([]parsedField, 0, len(rec))
		for _, c := range model.InvoiceColumns() {
			out = append(out, parsedField{Key: c.Key, Title: c.Title, Value: rec[c.Key]})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
