package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLines(t *testing.T, n int) (string, []string) {
	t.Helper()
	var b strings.Builder
	lines := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		line := fmt.Sprintf(`{"level":"info","msg":"line %d"}`, i)
		lines = append(lines, line)
		b.WriteString(line + "\n")
	}
	path := filepath.Join(t.TempDir(), "tao.log")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path, lines
}

func TestTail(t *testing.T) {
	path, all := writeLines(t, 10)

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"zero", 0, nil},
		{"negative", -3, nil},
		{"partial", 4, all[6:]},
		{"exact", 10, all},
		{"more than exists", 25, all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(path, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTail_WrapsManyTimes(t *testing.T) {
	path, all := writeLines(t, 103)
	got, err := Tail(path, 7)
	require.NoError(t, err)
	assert.Equal(t, all[96:], got)
}

func TestTail_MissingFile(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "absent.log"), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
