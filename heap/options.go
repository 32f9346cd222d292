package heap

import (
	"io"
	"log/slog"

	"github.com/heapkit/heapkit/internal/format"
)

// Option configures a Heap at construction time.
type Option func(*config)

type config struct {
	pageSize  int
	chunkSize int
	log       *slog.Logger
}

func defaultConfig() config {
	return config{
		pageSize:  format.PageSize,
		chunkSize: format.ChunkSize,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the diagnostic logger. The heap logs every page commit,
// page release, allocation, and free at debug level. Logging is purely
// observational; by default all output is discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPageSize overrides the physical page size. Intended for tests; the
// value must match the provider's page size and be a multiple of eight
// chunk sizes so windows cover whole bitmap bytes.
func WithPageSize(n int) Option {
	return func(c *config) { c.pageSize = n }
}

// WithChunkSize overrides the allocation granularity. Intended for tests;
// the value must be a power of two that divides the header size.
func WithChunkSize(n int) Option {
	return func(c *config) { c.chunkSize = n }
}
