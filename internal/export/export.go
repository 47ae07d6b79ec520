// Package export writes extracted invoice fields to tabular files.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/invoice-cli/internal/model"
)

// Supported output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Writer writes a header row of column titles followed by one data row.
// Existing files at path are replaced.
type Writer interface {
	Write(path string, columns []model.Column, row map[string]string) error
	// Ext returns the file extension without the leading dot.
	Ext() string
}

// NewWriter returns the Writer for format.
func NewWriter(format string) (Writer, error) {
	switch format {
	case FormatCSV, "":
		return CSVWriter{}, nil
	case FormatXLSX:
		return XLSXWriter{}, nil
	default:
		return nil, eris.Errorf("export: unsupported format %q", format)
	}
}

func headerAndRow(columns []model.Column, row map[string]string) ([]string, []string) {
	header := make([]string, len(columns))
	values := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Title
		values[i] = row[c.Key]
	}
	return header, values
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return model.IOError(eris.Wrapf(err, "export: create directory %s", dir))
		}
	}
	return nil
}

// ReadTable reads an output file written by a Writer, choosing the format by
// extension. Short rows are padded to the header width.
func ReadTable(path string) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), "."+FormatXLSX) {
		rows, err = ReadXLSX(path, SheetName)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) > 0 {
		width := len(rows[0])
		for i, r := range rows {
			for len(r) < width {
				r = append(r, "")
			}
			rows[i] = r
		}
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, model.IOError(eris.Wrap(err, "csv: open file"))
	}
	defer f.Close() //nolint:errcheck

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, model.ParseError(eris.Wrap(err, "csv: read rows"))
	}
	return rows, nil
}
