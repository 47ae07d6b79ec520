package pdftext

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"

	invmodel "github.com/sells-group/invoice-cli/internal/model"
)

// PDF readers accept the header anywhere in the first 1024 bytes.
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

var disableConfigDir sync.Once

// sniffPDF rejects files that do not carry a PDF header, such as an HTML
// error page saved in place of the document.
func sniffPDF(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return invmodel.IOError(eris.Wrapf(err, "pdftext: open %s", path))
	}
	defer f.Close() //nolint:errcheck

	head := make([]byte, headerWindow)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return invmodel.IOError(eris.Wrapf(err, "pdftext: read %s", path))
	}
	if !bytes.Contains(head[:n], pdfMagic) {
		return invmodel.ParseError(eris.Errorf("pdftext: %s is not a PDF document", path))
	}
	return nil
}

func pdfcpuConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return cfg
}

// validatePDF runs a relaxed structural validation of the file.
func validatePDF(path string) error {
	if err := api.ValidateFile(path, pdfcpuConfig()); err != nil {
		return invmodel.ParseError(eris.Wrapf(err, "pdftext: invalid PDF %s", path))
	}
	return nil
}

func pageCount(path string) (int, error) {
	pdfcpuConfig()
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, eris.Wrap(err, "pdftext: page count")
	}
	return n, nil
}
