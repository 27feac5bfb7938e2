package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// BatchWriter buffers TurnRows and flushes them to a parquet file in
// outDir on Close, writing to a tmp/ subdirectory first and renaming
// into place atomically so a reader never observes a partial file.
type BatchWriter struct {
	outDir  string
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[TurnRow]

	rows int
}

// NewBatchWriter opens a new batch file under outDir/tmp.
func NewBatchWriter(outDir string) (*BatchWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("archive: outDir is required")
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: create tmp dir: %w", err)
	}

	name := fmt.Sprintf("rollout_%d.parquet", time.Now().UnixNano())
	tmpPath := filepath.Join(tmpDir, name)
	outPath := filepath.Join(absOut, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("archive: open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[TurnRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", "pommergo_turn_row_v1")

	return &BatchWriter{outDir: absOut, tmpPath: tmpPath, outPath: outPath, file: f, writer: w}, nil
}

// OutPath is where the file will land once Close succeeds.
func (b *BatchWriter) OutPath() string { return b.outPath }

// Rows is the number of rows written so far.
func (b *BatchWriter) Rows() int { return b.rows }

// WriteRow appends one row to the batch.
func (b *BatchWriter) WriteRow(row TurnRow) error {
	if b.writer == nil {
		return fmt.Errorf("archive: writer is closed")
	}
	if _, err := b.writer.Write([]TurnRow{row}); err != nil {
		return fmt.Errorf("archive: write row: %w", err)
	}
	b.rows++
	return nil
}

// Close flushes and closes the parquet writer, then atomically renames
// the tmp file into outDir. If no rows were written, the tmp file is
// removed instead.
func (b *BatchWriter) Close() error {
	if b.writer == nil {
		return nil
	}
	closeErr := b.writer.Close()
	b.writer = nil
	_ = b.file.Sync()
	fileErr := b.file.Close()
	b.file = nil

	if closeErr != nil {
		return fmt.Errorf("archive: close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return fmt.Errorf("archive: close parquet file: %w", fileErr)
	}

	if b.rows == 0 {
		return os.Remove(b.tmpPath)
	}
	if err := os.Rename(b.tmpPath, b.outPath); err != nil {
		return fmt.Errorf("archive: rename parquet: %w", err)
	}
	return nil
}
