package output

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/seaward/portpulse/pkg/probe"
)

// ParquetRow is the report row shape stored in Parquet. The row is
// already flat; hosts and statuses repeat heavily, so they dictionary-
// encode well.
type ParquetRow struct {
	Host      string `parquet:"host,zstd,dict"`
	Port      int32  `parquet:"port"`
	Protocol  string `parquet:"protocol,dict"`
	Open      bool   `parquet:"open"`
	Status    string `parquet:"status,dict"`
	Note      string `parquet:"note,zstd"`
	ElapsedMs int64  `parquet:"elapsed_ms"`
}

// ParquetWriter writes report rows to a Parquet file
type ParquetWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[ParquetRow]
	count  int
}

// NewParquetWriter creates a Parquet writer with compression enabled
func NewParquetWriter(filename string) (*ParquetWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[ParquetRow](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.CreatedBy("portpulse", "1.0.0", "go"),
	)

	return &ParquetWriter{
		file:   file,
		writer: writer,
	}, nil
}

// Write converts a probe result to a ParquetRow and writes it
func (w *ParquetWriter) Write(result *probe.Result) error {
	row := ParquetRow{
		Host:      result.Host,
		Port:      int32(result.Port),
		Protocol:  result.Protocol,
		Open:      result.Open,
		Status:    result.Status.String(),
		Note:      result.Note,
		ElapsedMs: result.ElapsedMs,
	}

	if _, err := w.writer.Write([]ParquetRow{row}); err != nil {
		return fmt.Errorf("failed to write parquet row: %w", err)
	}

	w.count++
	return nil
}

// Flush forces buffered data to be written
func (w *ParquetWriter) Flush() error {
	return w.writer.Flush()
}

// Close finalizes and closes the Parquet file
func (w *ParquetWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the number of rows written
func (w *ParquetWriter) Count() int {
	return w.count
}
