package app

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)

	err := fs.Parse([]string{"-w", "32", "-h", "16", "-scenario", "fountain", "-tps", "12"})
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, 16, cfg.Height)
	assert.Equal(t, 12, cfg.TPS)
	assert.Equal(t, map[string]string{"w": "32", "h": "16", "scenario": "fountain"}, cfg.Options())
}
