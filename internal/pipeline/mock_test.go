package pipeline

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/invoice-cli/internal/model"
)

// --- Fetcher Mock ---

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockFetcher) DownloadToFile(ctx context.Context, url, path string) (int64, error) {
	args := m.Called(ctx, url, path)
	return args.Get(0).(int64), args.Error(1)
}

// --- Text Extractor Mock ---

type mockText struct {
	mock.Mock
}

func (m *mockText) ExtractText(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

// --- Writer Mock ---

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) Write(path string, columns []model.Column, row map[string]string) error {
	args := m.Called(path, columns, row)
	return args.Error(0)
}

func (m *mockWriter) Ext() string { return "csv" }
