package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the streaming CSV parser.
type CSVOptions struct {
	Delimiter rune // default ','
	Comment   rune // comment character (0 = none)
	TrimSpace bool
}

// StreamCSV reads CSV rows from r and sends them to a channel.
// Caller must consume the returned row channel. Errors are sent on the error channel.
// Both channels are closed when processing completes.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		reader := csv.NewReader(r)
		if opts.Delimiter != 0 {
			reader.Comma = opts.Delimiter
		}
		reader.Comment = opts.Comment
		reader.FieldsPerRecord = -1 // allow variable fields

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			if opts.TrimSpace {
				for i, field := range record {
					record[i] = strings.TrimSpace(field)
				}
			}

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// ReadSourceList reads document URLs from the first column of a CSV or
// one-per-line list. Blank rows, '#' comments and a leading "url" header are
// skipped. Order is preserved.
func ReadSourceList(ctx context.Context, r io.Reader) ([]string, error) {
	rowCh, errCh := StreamCSV(ctx, r, CSVOptions{Comment: '#', TrimSpace: true})

	var urls []string
	first := true
	for row := range rowCh {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if first && strings.EqualFold(row[0], "url") {
			first = false
			continue
		}
		first = false
		urls = append(urls, row[0])
	}

	for err := range errCh {
		if err != nil {
			return urls, eris.Wrap(err, "read source list")
		}
	}
	return urls, nil
}

// ReadSourceFile opens path and reads it with ReadSourceList.
func ReadSourceFile(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open source file %s", path)
	}
	defer f.Close() //nolint:errcheck

	return ReadSourceList(ctx, f)
}
