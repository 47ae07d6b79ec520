// Package pdftext turns downloaded invoice documents into plain text.
package pdftext

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/invoice-cli/internal/config"
)

// Extractor extracts the full text content of a local document.
type Extractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.TextConfig) (Extractor, error) {
	switch cfg.Provider {
	case "pdftotext", "":
		return NewPdfToText(cfg.PdfToTextPath,
			WithLayout(cfg.Layout),
			WithValidation(cfg.Validate),
		), nil
	case "text":
		return PlainText{}, nil
	default:
		return nil, eris.Errorf("pdftext: unknown provider %q", cfg.Provider)
	}
}
