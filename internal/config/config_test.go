package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "etymograph.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
db_path = "graphs/etymology.db"

build {
  node_batch_size = 1000
  edge_batch_size = 500
}

relation "cognate" {
  field        = "cognates"
  inherit_lang = true
}

relation "descendant" {
  match_pos = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "graphs/etymology.db", cfg.DBPath)
	require.NotNil(t, cfg.Build)
	assert.Equal(t, 1000, cfg.Build.NodeBatchSize)
	assert.Equal(t, 500, cfg.Build.EdgeBatchSize)

	require.Len(t, cfg.Relations, 2)
	assert.Equal(t, "cognate", cfg.Relations[0].Kind)
	assert.Equal(t, "cognates", cfg.Relations[0].Field)
	assert.False(t, cfg.Relations[0].MatchPOS)
	assert.True(t, cfg.Relations[0].InheritLang)

	assert.Equal(t, "descendant", cfg.Relations[1].Kind)
	assert.Equal(t, "", cfg.Relations[1].Field)
	assert.True(t, cfg.Relations[1].MatchPOS)
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "etymology.db", cfg.DBPath)
	assert.Nil(t, cfg.Build)
	assert.Empty(t, cfg.Relations)
}

func TestLoadBadFile(t *testing.T) {
	_, err := Load(writeConfig(t, `db_path = `))
	require.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "etymology.db", cfg.DBPath)
}
