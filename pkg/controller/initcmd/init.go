// Package initcmd implements 'linthound init'.
// It writes a configuration file which enables every rule with its default threshold.
package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// DefaultConfigPath is the configuration file created when no path is given.
const DefaultConfigPath = ".linthound.yaml"

const (
	templateConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/linthound/linthound/refs/heads/main/json-schema/linthound.json
# linthound - https://github.com/linthound/linthound
# required_version: ">= 1.0.0"
extensions:
  - .rb
  - .rake
  - .gemspec
  - Gemfile
  - Rakefile
exclude:
# - vendor/**
# - db/schema.rb
rules:
  line_length:
    enabled: true
    max: 80
  trailing_whitespace:
    enabled: true
  space_inside_parens:
    enabled: true
  space_inside_brackets:
    enabled: true
  space_inside_hash_literal_braces:
    enabled: true
  space_before_block_braces:
    enabled: true
  space_inside_block_braces:
    enabled: true
  space_after_comma:
    enabled: true
  space_after_semicolon:
    enabled: true
  space_around_ternary_colon:
    enabled: true
  empty_line_between_defs:
    enabled: true
`
	filePermission os.FileMode = 0o644
)

type Controller struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Controller {
	return &Controller{fs: fs}
}

// Init creates a configuration file at configFilePath.
// An existing file is left untouched.
func (c *Controller) Init(configFilePath string) (bool, error) {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return false, fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		return false, nil
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return false, fmt.Errorf("create a configuration file: %w", err)
	}
	return true, nil
}
