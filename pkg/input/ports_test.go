package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePorts(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		want      []int
		wantErr   bool
	}{
		{
			name:      "empty selection means no ports",
			selection: "",
			want:      nil,
		},
		{
			name:      "single port",
			selection: "443",
			want:      []int{443},
		},
		{
			name:      "comma list keeps order",
			selection: "443,22,80",
			want:      []int{443, 22, 80},
		},
		{
			name:      "range",
			selection: "8080-8083",
			want:      []int{8080, 8081, 8082, 8083},
		},
		{
			name:      "mixed with spaces",
			selection: "22, 80, 9000-9002",
			want:      []int{22, 80, 9000, 9001, 9002},
		},
		{
			name:      "duplicates preserved",
			selection: "80,80",
			want:      []int{80, 80},
		},
		{
			name:      "bounds",
			selection: "1,65535",
			want:      []int{1, 65535},
		},
		{
			name:      "not a number",
			selection: "http",
			wantErr:   true,
		},
		{
			name:      "zero port",
			selection: "0",
			wantErr:   true,
		},
		{
			name:      "port too high",
			selection: "65536",
			wantErr:   true,
		},
		{
			name:      "reversed range",
			selection: "100-50",
			wantErr:   true,
		},
		{
			name:      "malformed range",
			selection: "10-",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports, err := ParsePorts(tt.selection)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ports)
		})
	}
}
