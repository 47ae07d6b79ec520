package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/invoice-cli/internal/model"
)

// SheetName is the worksheet XLSXWriter writes to.
const SheetName = "Invoice"

// XLSXWriter writes a single-sheet Excel workbook.
type XLSXWriter struct{}

// Ext implements Writer.
func (XLSXWriter) Ext() string { return FormatXLSX }

// Write implements Writer.
func (XLSXWriter) Write(path string, columns []model.Column, row map[string]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "xlsx export: add sheet")
	}

	header, values := headerAndRow(columns, row)
	for _, cells := range [][]string{header, values} {
		r := sheet.AddRow()
		for _, v := range cells {
			r.AddCell().SetString(v)
		}
	}

	if err := f.Save(path); err != nil {
		return model.IOError(eris.Wrapf(err, "xlsx export: save %s", path))
	}
	return nil
}

// ReadXLSX returns every row of the named sheet as strings.
func ReadXLSX(path, sheetName string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, model.IOError(eris.Wrap(err, "xlsx: open file"))
	}
	sheet, ok := f.Sheet[sheetName]
	if !ok {
		return nil, eris.Errorf("xlsx: sheet %q not found", sheetName)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
