package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spf13/afero"

	"github.com/mtiwari1/docseed/internal/scanner"
)

// RandSource draws uniform integers in [0, n).
// *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// NewSeededRand returns a PCG-backed source. A zero seed draws the seed from
// the runtime, so numeric fields differ between runs.
func NewSeededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Generator turns directory entries into DocumentRecords.
// Dependencies are injected via the constructor; it holds no global state.
type Generator struct {
	fs         afero.Fs
	customerID string
	rnd        RandSource
	logger     *slog.Logger
	exclude    []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithExclude skips entries matching the given filepath.Match patterns.
func WithExclude(patterns ...string) Option {
	return func(g *Generator) {
		g.exclude = append(g.exclude, patterns...)
	}
}

// NewGenerator creates a Generator reading from fs and stamping every record with customerID.
func NewGenerator(fs afero.Fs, customerID string, rnd RandSource, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		fs:         fs,
		customerID: customerID,
		rnd:        rnd,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BuildRecord reads entry and derives the record at position index.
func (g *Generator) BuildRecord(entry scanner.FileEntry, index int) (DocumentRecord, error) {
	start := time.Now()

	content, err := scanner.Inspect(g.fs, entry.Path)
	if err != nil {
		return DocumentRecord{}, err
	}

	rec := DocumentRecord{
		CustomerID:     g.customerID,
		FileName:       entry.Name,
		FileType:       entry.Extension,
		TotalCostPage:  g.rnd.IntN(maxCostPage) + 1,
		PrintSideType:  PrintSideFor(index),
		PageSize:       PageSizeFor(index),
		PageToPrint:    PagesToPrint,
		NumOfCop:       g.rnd.IntN(maxCopies) + 1,
		DocumentStatus: StatusFor(index),
		FileContent:    content.Base64,
	}

	g.logger.Debug("record built",
		slog.Int("index", index),
		slog.String("file_name", entry.Name),
		slog.Int64("size", content.Size),
		slog.String("sha256", content.Hash),
		slog.String("mime_type", content.MIMEType),
		slog.String("status", string(rec.DocumentStatus)),
		slog.Duration("latency", time.Since(start)),
	)
	return rec, nil
}

// Generate lists dir and builds one record per entry, in listing order.
// The first error aborts the run and no records are returned.
func (g *Generator) Generate(ctx context.Context, dir string) ([]DocumentRecord, error) {
	entries, err := scanner.ListEntries(g.fs, dir, g.logger, g.exclude...)
	if err != nil {
		return nil, err
	}
	g.logger.Info("source directory listed",
		slog.String("dir", dir),
		slog.Int("entries", len(entries)),
	)

	records := make([]DocumentRecord, 0, len(entries))
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("dataset: generate cancelled at entry %d: %w", i, err)
		}
		rec, err := g.BuildRecord(entry, i)
		if err != nil {
			return nil, fmt.Errorf("dataset: build record %d (%s): %w", i, entry.Name, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
