// Package pipeline drives source items through fetch, text extraction, field
// extraction and export.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/invoice-cli/internal/export"
	"github.com/sells-group/invoice-cli/internal/fetcher"
	"github.com/sells-group/invoice-cli/internal/model"
	"github.com/sells-group/invoice-cli/internal/pdftext"
)

// FieldExtractor turns document text into a field record.
type FieldExtractor interface {
	Extract(text string) model.FieldRecord
}

// Options controls where the pipeline writes files.
type Options struct {
	DownloadDir string
	OutputDir   string
	// EchoText logs the full extracted text of every document.
	EchoText bool
	// Columns overrides the output columns. Defaults to model.InvoiceColumns.
	Columns []model.Column
}

// Pipeline processes source items one at a time. A failing item is recorded
// and never stops the run.
type Pipeline struct {
	fetcher fetcher.Fetcher
	text    pdftext.Extractor
	fields  FieldExtractor
	writer  export.Writer
	opts    Options
	now     func() time.Time
}

// New creates a Pipeline.
func New(f fetcher.Fetcher, text pdftext.Extractor, fields FieldExtractor, w export.Writer, opts Options) *Pipeline {
	if opts.DownloadDir == "" {
		opts.DownloadDir = "downloads"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if len(opts.Columns) == 0 {
		opts.Columns = model.InvoiceColumns()
	}
	return &Pipeline{
		fetcher: f,
		text:    text,
		fields:  fields,
		writer:  w,
		opts:    opts,
		now:     time.Now,
	}
}

// DocumentPath returns where the document for seq is saved.
func (p *Pipeline) DocumentPath(seq int) string {
	return filepath.Join(p.opts.DownloadDir, fmt.Sprintf("file_%d.pdf", seq))
}

// OutputPath returns where the table for seq is written.
func (p *Pipeline) OutputPath(seq int) string {
	return filepath.Join(p.opts.OutputDir, fmt.Sprintf("output_%d.%s", seq, p.writer.Ext()))
}

// Run processes urls in order. Sequence numbers start at 1. If ctx is
// cancelled, the remaining items are recorded as failed without being fetched.
func (p *Pipeline) Run(ctx context.Context, urls []string) *model.RunSummary {
	summary := &model.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: p.now().UTC(),
		Items:     make([]model.ItemResult, 0, len(urls)),
	}
	log := zap.L().With(zap.String("run_id", summary.RunID))
	log.Info("pipeline: starting run", zap.Int("items", len(urls)))

	for i, u := range urls {
		item := model.SourceItem{URL: u, Seq: i + 1}

		if err := ctx.Err(); err != nil {
			summary.Add(model.ItemResult{
				Seq:       item.Seq,
				URL:       item.URL,
				Status:    model.ItemStatusFailed,
				Stage:     model.StageFetch,
				ErrorKind: model.KindOf(err),
				Error:     eris.Wrap(err, "pipeline: run cancelled").Error(),
			})
			continue
		}

		summary.Add(p.processItem(ctx, log, item))
	}

	summary.FinishedAt = p.now().UTC()
	log.Info("pipeline: run complete",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary
}

func (p *Pipeline) processItem(ctx context.Context, log *zap.Logger, item model.SourceItem) model.ItemResult {
	log = log.With(zap.Int("seq", item.Seq), zap.String("url", item.URL))
	start := p.now()

	res := model.ItemResult{Seq: item.Seq, URL: item.URL}
	fail := func(stage model.Stage, err error) model.ItemResult {
		res.Status = model.ItemStatusFailed
		res.Stage = stage
		res.ErrorKind = model.KindOf(err)
		res.Error = err.Error()
		res.DurationMs = p.now().Sub(start).Milliseconds()
		log.Error("pipeline: item failed",
			zap.String("stage", string(stage)),
			zap.String("kind", string(res.ErrorKind)),
			zap.Error(err),
		)
		return res
	}

	docPath := p.DocumentPath(item.Seq)
	n, err := p.fetcher.DownloadToFile(ctx, item.URL, docPath)
	if err != nil {
		return fail(model.StageFetch, err)
	}
	res.DocumentPath = docPath
	log.Debug("pipeline: document saved", zap.String("path", docPath), zap.Int64("bytes", n))

	text, err := p.text.ExtractText(ctx, docPath)
	if err != nil {
		return fail(model.StageExtractText, err)
	}
	if p.opts.EchoText {
		log.Info("pipeline: pdf content", zap.String("text", text))
	}

	rec := p.fields.Extract(text)
	res.FieldsFound = rec.Found()

	outPath := p.OutputPath(item.Seq)
	if err := p.writer.Write(outPath, p.opts.Columns, rec.Defaults()); err != nil {
		return fail(model.StageWrite, err)
	}
	res.OutputPath = outPath

	res.Status = model.ItemStatusSucceeded
	res.Stage = model.StageDone
	res.DurationMs = p.now().Sub(start).Milliseconds()
	log.Info("pipeline: data written",
		zap.String("path", outPath),
		zap.Int("fields_found", res.FieldsFound),
		zap.Int64("duration_ms", res.DurationMs),
	)
	return res
}
