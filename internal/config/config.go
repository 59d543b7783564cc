// Package config loads the optional HCL configuration file.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the decoded configuration:
//
//	db_path = "etymology.db"
//
//	build {
//	  node_batch_size = 5000
//	  edge_batch_size = 2000
//	}
//
//	relation "cognate" {
//	  field        = "cognates"
//	  match_pos    = false
//	  inherit_lang = true
//	}
//
// Relation blocks overlay the builtin relation table: a block whose label
// matches a builtin kind replaces it, any other label adds a new kind.
type Config struct {
	DBPath    string          `hcl:"db_path,optional"`
	Build     *BuildConfig    `hcl:"build,block"`
	Relations []RelationBlock `hcl:"relation,block"`
}

// BuildConfig tunes the write batch sizes. Zero means default.
type BuildConfig struct {
	NodeBatchSize int `hcl:"node_batch_size,optional"`
	EdgeBatchSize int `hcl:"edge_batch_size,optional"`
}

// RelationBlock declares or overrides one relation kind. Field defaults to
// the kind label when empty.
type RelationBlock struct {
	Kind        string `hcl:"kind,label"`
	Field       string `hcl:"field,optional"`
	MatchPOS    bool   `hcl:"match_pos,optional"`
	InheritLang bool   `hcl:"inherit_lang,optional"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{DBPath: "etymology.db"}
}

// Load decodes an HCL configuration file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "etymology.db"
	}
	return cfg, nil
}
