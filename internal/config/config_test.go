package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("NOTAFLOW_TEST_DIR", "/var/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain path", input: "/tmp/notaflow.db", want: "/tmp/notaflow.db"},
		{name: "tilde prefix", input: "~/notaflow.db", want: filepath.Join(home, "notaflow.db")},
		{name: "bare tilde", input: "~", want: home},
		{name: "env var", input: "$NOTAFLOW_TEST_DIR/notaflow.db", want: "/var/data/notaflow.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
