package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/seaward/portpulse/pkg/probe"
)

// TableWriter renders the report as an aligned text table with columns
// Server, Port, TypePort, Open, Notes
type TableWriter struct {
	file  *os.File
	tw    *tabwriter.Writer
	count int
}

var tableSanitizer = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")

// NewTableWriter creates a table writer to the specified file.
// Use "-" for stdout.
func NewTableWriter(filename string) (*TableWriter, error) {
	var file *os.File
	var err error

	if filename == "-" || filename == "" {
		file = os.Stdout
	} else {
		file, err = os.Create(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
	}

	w := NewTableWriterFromWriter(file)
	w.file = file
	return w, nil
}

// NewTableWriterFromWriter creates a table writer on an existing io.Writer
func NewTableWriterFromWriter(w io.Writer) *TableWriter {
	return &TableWriter{
		tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0),
	}
}

// Write appends one report row. The header is written before the first row.
func (w *TableWriter) Write(result *probe.Result) error {
	if w.count == 0 {
		if _, err := fmt.Fprintln(w.tw, "SERVER\tPORT\tTYPEPORT\tOPEN\tNOTES"); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w.tw, "%s\t%d\t%s\t%s\t%s\n",
		result.Host,
		result.Port,
		strings.ToUpper(result.Protocol),
		strconv.FormatBool(result.Open),
		tableSanitizer.Replace(result.Note),
	)
	if err != nil {
		return err
	}

	w.count++
	return nil
}

// Flush forces buffered rows out
func (w *TableWriter) Flush() error {
	return w.tw.Flush()
}

// Close flushes and closes the writer
func (w *TableWriter) Close() error {
	if err := w.tw.Flush(); err != nil {
		return err
	}

	// Don't close stdout
	if w.file != nil && w.file != os.Stdout {
		return w.file.Close()
	}
	return nil
}

// Count returns the number of rows written
func (w *TableWriter) Count() int {
	return w.count
}
