package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://wallet.local/auth", "-t", "3", "-d", "/tmp/w", "-l", "debug"},
			expected: &Config{
				ServerEndpointURL: "http://wallet.local/auth",
				RequestTimeout:    3 * time.Second,
				DataDir:           "/tmp/w",
				LogLevel:          "debug",
			},
		},
		{
			name:     "config flag is ignored here",
			args:     []string{"cmd", "-c", "cfg.json", "-t", "7"},
			expected: &Config{RequestTimeout: 7 * time.Second},
		},
		{name: "bad timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
