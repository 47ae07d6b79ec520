package export

import (
	"encoding/csv"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/invoice-cli/internal/model"
)

// CSVWriter writes RFC 4180 CSV files.
type CSVWriter struct{}

// Ext implements Writer.
func (CSVWriter) Ext() string { return FormatCSV }

// Write implements Writer.
func (CSVWriter) Write(path string, columns []model.Column, row map[string]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return model.IOError(eris.Wrap(err, "csv export: create file"))
	}

	header, values := headerAndRow(columns, row)

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return model.IOError(eris.Wrap(err, "csv export: write header"))
	}
	if err := w.Write(values); err != nil {
		_ = f.Close()
		return model.IOError(eris.Wrap(err, "csv export: write row"))
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return model.IOError(eris.Wrap(err, "csv export: flush"))
	}

	if err := f.Close(); err != nil {
		return model.IOError(eris.Wrap(err, "csv export: close file"))
	}
	return nil
}
