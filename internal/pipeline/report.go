package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/invoice-cli/internal/model"
)

// FormatReport renders a human-readable summary of a run.
func FormatReport(s *model.RunSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Invoice Run: %s\n", s.RunID)
	fmt.Fprintf(&b, "- Items: %d (%d succeeded, %d failed)\n", s.Total, s.Succeeded, s.Failed)
	fmt.Fprintf(&b, "- Elapsed: %s\n\n", s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))

	if len(s.Items) == 0 {
		b.WriteString("No sources.\n")
		return b.String()
	}

	b.WriteString("## Items\n")
	for _, it := range s.Items {
		switch it.Status {
		case model.ItemStatusSucceeded:
			fmt.Fprintf(&b, "- [%d] ok %s -> %s (%d/%d fields, %dms)\n",
				it.Seq, it.URL, it.OutputPath, it.FieldsFound, len(model.InvoiceColumns()), it.DurationMs)
		default:
			fmt.Fprintf(&b, "- [%d] FAILED %s at %s (%s)\n", it.Seq, it.URL, it.Stage, it.ErrorKind)
			fmt.Fprintf(&b, "  Error: %s\n", it.Error)
		}
	}
	return b.String()
}

// WriteSummary writes s as indented JSON to path, creating parent directories.
func WriteSummary(path string, s *model.RunSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return model.IOError(eris.Wrap(err, "summary: create directory"))
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return eris.Wrap(err, "summary: marshal")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return model.IOError(eris.Wrapf(err, "summary: write %s", path))
	}
	return nil
}
