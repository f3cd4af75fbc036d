// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(`
nodesize: 5000
minfreecount: 100
cache:
  binary: {divider: 8, bins: 4}
  satisfaction: {divider: 16}
`))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Nodesize)
	assert.Equal(t, regionConfig{Divider: 8, Bins: 4}, cfg.Cache["binary"])
	// nodesize, minfreecount, two options for binary and one for satisfaction
	assert.Len(t, cfg.options(), 5)

	_, err = parseConfig([]byte("cache:\n  quaternary: {bins: 2}\n"))
	assert.ErrorContains(t, err, "quaternary")

	_, err = parseConfig([]byte("nodesize: [1, 2]"))
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jdd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nodesize: 100\nmingrowth: 100\ncache:\n  unary: {bins: 1}\n"), 0o600))
	out := run(t, "queens", "4", "--config", path)
	assert.Contains(t, out, "queens(4): 2 solutions")
	assert.Equal(t, 100, engine.Nodesize)

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
