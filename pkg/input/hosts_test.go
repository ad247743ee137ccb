package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHosts(t *testing.T) {
	tests := []struct {
		name    string
		targets []string
		want    []string
		wantErr bool
	}{
		{
			name:    "single host",
			targets: []string{"example.com"},
			want:    []string{"example.com"},
		},
		{
			name:    "comma separated",
			targets: []string{"a.example,b.example,c.example"},
			want:    []string{"a.example", "b.example", "c.example"},
		},
		{
			name:    "mixed args and commas",
			targets: []string{"a.example", "10.0.0.1,10.0.0.2"},
			want:    []string{"a.example", "10.0.0.1", "10.0.0.2"},
		},
		{
			name:    "duplicates preserved in order",
			targets: []string{"a.example,a.example"},
			want:    []string{"a.example", "a.example"},
		},
		{
			name:    "whitespace trimmed",
			targets: []string{" a.example , b.example "},
			want:    []string{"a.example", "b.example"},
		},
		{
			name:    "nothing supplied",
			targets: []string{",", " "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hosts, err := ParseHosts(tt.targets)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, hosts)
		})
	}
}

func TestReadHosts(t *testing.T) {
	in := strings.NewReader(`# targets
a.example

b.example
  # another comment
10.0.0.1
`)

	hosts, err := ReadHosts(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.example", "b.example", "10.0.0.1"}, hosts)
}

func TestParseHostsFile(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(tmp, []byte("a.example\nb.example\n"), 0o644))

	hosts, err := ParseHostsFile(tmp)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.example", "b.example"}, hosts)
}

func TestParseHostsFileMissing(t *testing.T) {
	_, err := ParseHostsFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
