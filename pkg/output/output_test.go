package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seaward/portpulse/pkg/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []*probe.Result {
	return []*probe.Result{
		{
			Host:      "a.example",
			Port:      22,
			Protocol:  probe.ProtocolTCP,
			Open:      true,
			Note:      "SSH-2.0-OpenSSH_9.6",
			Status:    probe.StatusOpen,
			ElapsedMs: 12,
		},
		{
			Host:      "a.example",
			Port:      1,
			Protocol:  probe.ProtocolTCP,
			Open:      false,
			Note:      probe.TimeoutNote,
			Status:    probe.StatusTimeout,
			ElapsedMs: 1002,
		},
	}
}

func TestTableWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewTableWriterFromWriter(&buf)

	for _, row := range sampleRows() {
		require.NoError(t, w.Write(row))
	}
	require.NoError(t, w.Flush())

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "SERVER")
	assert.Contains(t, lines[0], "TYPEPORT")
	assert.Contains(t, lines[0], "NOTES")

	assert.Contains(t, lines[1], "a.example")
	assert.Contains(t, lines[1], "22")
	assert.Contains(t, lines[1], "TCP")
	assert.Contains(t, lines[1], "true")
	assert.Contains(t, lines[1], "SSH-2.0-OpenSSH_9.6")

	assert.Contains(t, lines[2], "false")
	assert.Contains(t, lines[2], probe.TimeoutNote)

	assert.Equal(t, 2, w.Count())
}

func TestTableWriterSanitizesNotes(t *testing.T) {
	var buf bytes.Buffer
	w := NewTableWriterFromWriter(&buf)

	row := &probe.Result{
		Host:     "b.example",
		Port:     80,
		Protocol: probe.ProtocolTCP,
		Open:     true,
		Note:     "HTTP/1.0 200 OK\r\nServer:\ttest",
		Status:   probe.StatusOpen,
	}
	require.NoError(t, w.Write(row))
	require.NoError(t, w.Flush())

	// Multi-line banners must not break the table shape
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestTableWriterFile(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "report.txt")

	w, err := NewTableWriter(tmp)
	require.NoError(t, err)
	require.NoError(t, w.Write(sampleRows()[0]))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(tmp)
	require.NoError(t, err)
	assert.Contains(t, string(data), "a.example")
}

func TestJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterFromWriter(&buf)

	for _, row := range sampleRows() {
		require.NoError(t, w.Write(row))
	}
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first probe.Result
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "a.example", first.Host)
	assert.Equal(t, 22, first.Port)
	assert.True(t, first.Open)
	assert.Equal(t, probe.StatusOpen, first.Status)

	var second probe.Result
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, probe.StatusTimeout, second.Status)
	assert.Equal(t, probe.TimeoutNote, second.Note)

	assert.Equal(t, 2, w.Count())
}

func TestJSONLWriterStdout(t *testing.T) {
	w, err := NewWriter("-")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = NewWriter("")
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestParquetWriter(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "report.parquet")

	w, err := NewParquetWriter(tmp)
	require.NoError(t, err)

	for _, row := range sampleRows() {
		require.NoError(t, w.Write(row))
	}
	assert.Equal(t, 2, w.Count())
	require.NoError(t, w.Close())

	info, err := os.Stat(tmp)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
