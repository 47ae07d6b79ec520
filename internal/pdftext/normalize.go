package pdftext

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/invoice-cli/internal/model"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n\n")

// Normalize folds compatibility characters (ligatures, non-breaking spaces,
// full-width digits) with NFKC and converts CR, CRLF and page breaks to LF.
func Normalize(text string) string {
	return norm.NFKC.String(lineEndings.Replace(text))
}

// PlainText reads an already-extracted text file.
type PlainText struct{}

// ExtractText returns the normalized content of path.
func (PlainText) ExtractText(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", model.IOError(eris.Wrapf(err, "pdftext: read %s", path))
	}
	return Normalize(string(data)), nil
}
