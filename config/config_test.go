package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack"
)

func TestInitializeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.kdl")
	data := `
search {
    algorithm "sha1"
    max-length 5
    workers 4
    progress-interval "2s"
}
server {
    address ":9090"
}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sha1", cfg.Search.Algorithm)
	assert.Equal(t, 5, cfg.Search.MaxLength)
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.Equal(t, 2*time.Second, cfg.Search.ProgressInterval)
	assert.Equal(t, ":9090", cfg.Server.Address)
}

func TestFillDefaults(t *testing.T) {
	search := DefaultConfig().Search

	req := hashcrack.Request{Password: "x"}
	search.FillDefaults(&req)
	assert.Equal(t, "md5", req.Algorithm)
	assert.Equal(t, 3, req.MaxLength)
	assert.Equal(t, "special", req.Charset)
	assert.Equal(t, "prefix", req.Strategy)

	req = hashcrack.Request{Password: "x", Symbols: "ab", MaxLength: 7}
	search.FillDefaults(&req)
	assert.Empty(t, req.Charset)
	assert.Equal(t, "ab", req.Symbols)
	assert.Equal(t, 7, req.MaxLength)
}

func TestDefaultRequestResolves(t *testing.T) {
	search := DefaultConfig().Search
	req := search.Request()
	req.Password = "ab"
	spec, err := req.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 94, spec.Alphabet.Len())
	assert.Equal(t, 1, spec.Workers)
	assert.Equal(t, 1000, search.CoordinatorConfig().FlushInterval)
}

func TestInitializeConfigKeepsDefaultsForMissingNodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.kdl")
	require.NoError(t, os.WriteFile(path, []byte("search {\n    max-length 2\n}\n"), 0o600))

	cfg, err := InitializeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Search.MaxLength)
	assert.Equal(t, "md5", cfg.Search.Algorithm)
	assert.Equal(t, "special", cfg.Search.Charset)
	assert.Equal(t, 1024, cfg.Server.RequestQueueSize)
}
