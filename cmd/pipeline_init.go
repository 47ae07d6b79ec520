package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/invoice-cli/internal/config"
	"github.com/sells-group/invoice-cli/internal/export"
	"github.com/sells-group/invoice-cli/internal/fetcher"
	"github.com/sells-group/invoice-cli/internal/invoice"
	"github.com/sells-group/invoice-cli/internal/pdftext"
	"github.com/sells-group/invoice-cli/internal/pipeline"
)

// initFieldExtractor builds the field extractor from the default rules or the
// configured rule file.
func initFieldExtractor(c *config.Config) (*invoice.Extractor, error) {
	rules := invoice.DefaultRules()
	if c.Rules.File != "" {
		var err error
		rules, err = invoice.LoadRules(c.Rules.File)
		if err != nil {
			return nil, err
		}
		zap.L().Info("loaded field rules", zap.String("file", c.Rules.File))
	}
	return invoice.NewExtractor(rules)
}

// initFetcher wires the HTTP and FTP fetchers behind a scheme router.
func initFetcher(c *config.Config) fetcher.Fetcher {
	httpFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  c.Fetch.UserAgent,
		Timeout:    time.Duration(c.Fetch.TimeoutSecs) * time.Second,
		RatePerSec: c.Fetch.RatePerSec,
	})
	ftpFetcher := fetcher.NewFTPFetcher(fetcher.FTPOptions{
		Timeout: time.Duration(c.Fetch.FTPTimeoutSecs) * time.Second,
	})
	return fetcher.NewMux(httpFetcher, ftpFetcher)
}

// initPipeline builds the pipeline from configuration.
func initPipeline(c *config.Config) (*pipeline.Pipeline, error) {
	text, err := pdftext.NewExtractor(c.Text)
	if err != nil {
		return nil, err
	}

	fields, err := initFieldExtractor(c)
	if err != nil {
		return nil, err
	}

	w, err := export.NewWriter(c.Output.Format)
	if err != nil {
		return nil, eris.Wrap(err, "init writer")
	}

	return pipeline.New(initFetcher(c), text, fields, w, pipeline.Options{
		DownloadDir: c.Paths.DownloadDir,
		OutputDir:   c.Paths.OutputDir,
		EchoText:    c.Output.EchoText,
	}), nil
}
