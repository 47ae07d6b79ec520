// Package fetcher downloads invoice documents over HTTP(S) and FTP and reads
// source lists.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/invoice-cli/internal/model"
)

// Fetcher defines the interface for downloading remote documents.
type Fetcher interface {
	// Download fetches the URL and returns the response body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)

	// DownloadToFile fetches the URL and writes it to the given path, creating
	// missing parent directories. Returns bytes written.
	DownloadToFile(ctx context.Context, url string, path string) (int64, error)
}

// Mux routes downloads to a Fetcher by URL scheme.
type Mux struct {
	schemes map[string]Fetcher
}

// NewMux creates a Mux serving http and https with h and ftp with f.
// Either may be nil to leave the scheme unsupported.
func NewMux(h Fetcher, f Fetcher) *Mux {
	m := &Mux{schemes: make(map[string]Fetcher)}
	if h != nil {
		m.schemes["http"] = h
		m.schemes["https"] = h
	}
	if f != nil {
		m.schemes["ftp"] = f
	}
	return m
}

func (m *Mux) route(rawURL string) (Fetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, model.NetworkError(eris.Wrapf(err, "parse url %q", rawURL))
	}
	f, ok := m.schemes[u.Scheme]
	if !ok {
		return nil, model.NetworkError(eris.Errorf("unsupported scheme %q in %s", u.Scheme, rawURL))
	}
	return f, nil
}

// Download fetches the URL with the fetcher registered for its scheme.
func (m *Mux) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	f, err := m.route(rawURL)
	if err != nil {
		return nil, err
	}
	return f.Download(ctx, rawURL)
}

// DownloadToFile fetches the URL with the fetcher registered for its scheme.
func (m *Mux) DownloadToFile(ctx context.Context, rawURL string, path string) (int64, error) {
	f, err := m.route(rawURL)
	if err != nil {
		return 0, err
	}
	return f.DownloadToFile(ctx, rawURL, path)
}

// readTracker remembers the last error returned by the wrapped reader so a
// failed copy can be attributed to the remote side or the local file.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}

// saveBody writes body to path verbatim, creating parent directories and
// overwriting any existing file.
func saveBody(body io.Reader, path string) (int64, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, model.IOError(eris.Wrapf(err, "create directory %s", dir))
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, model.IOError(eris.Wrap(err, "create file"))
	}
	defer file.Close() //nolint:errcheck

	src := &readTracker{r: body}
	n, err := io.Copy(file, src)
	if err != nil {
		if src.err != nil {
			return n, model.NetworkError(eris.Wrap(err, "read body"))
		}
		return n, model.IOError(eris.Wrap(err, "write file"))
	}

	if err := file.Sync(); err != nil {
		return n, model.IOError(eris.Wrap(err, "sync file"))
	}

	return n, nil
}
