package pdftext

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/invoice-cli/internal/model"
)

// PdfToText extracts text from PDFs using the pdftotext CLI tool.
type PdfToText struct {
	binPath  string
	layout   bool
	validate bool
}

// Option configures a PdfToText extractor.
type Option func(*PdfToText)

// WithLayout keeps the physical page layout (pdftotext -layout).
func WithLayout(on bool) Option {
	return func(p *PdfToText) { p.layout = on }
}

// WithValidation enables structural PDF validation before extraction.
func WithValidation(on bool) Option {
	return func(p *PdfToText) { p.validate = on }
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty, "pdftotext" is used.
func NewPdfToText(binPath string, opts ...Option) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	p := &PdfToText{binPath: binPath}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ExtractText checks that pdfPath holds a PDF, runs pdftotext over every page
// and returns the normalized text. Unreadable files are IO errors; anything
// that is not a well-formed PDF is a parse error.
func (p *PdfToText) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	if err := sniffPDF(pdfPath); err != nil {
		return "", err
	}

	if p.validate {
		if err := validatePDF(pdfPath); err != nil {
			return "", err
		}
		if pages, err := pageCount(pdfPath); err == nil {
			zap.L().Debug("pdftext: page count", zap.String("path", pdfPath), zap.Int("pages", pages))
		}
	}

	args := []string{"-enc", "UTF-8"}
	if p.layout {
		args = append(args, "-layout")
	}
	args = append(args, pdfPath, "-")

	cmd := exec.CommandContext(ctx, p.binPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", model.ParseError(eris.Wrapf(err, "pdftext: pdftotext failed for %s: %s", pdfPath, msg))
		}
		return "", eris.Wrapf(err, "pdftext: run pdftotext for %s", pdfPath)
	}

	return Normalize(stdout.String()), nil
}
