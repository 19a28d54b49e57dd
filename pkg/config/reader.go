package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

func getConfigPath(fs afero.Fs) (string, error) {
	for _, path := range []string{".linthound.yaml", ".github/linthound.yaml", ".linthound.yml", ".github/linthound.yml", ".linthound.toml"} {
		f, err := afero.Exists(fs, path)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", path, err)
		}
		if f {
			return path, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// Find returns configFilePath if it isn't empty.
// Otherwise it searches the well-known paths and returns an empty string if none exists.
func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	return getConfigPath(f.fs)
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read decodes a configuration file onto cfg.
// Fields missing from the file keep their current values, so callers pass Default()
// to get a merged style guide. Unknown keys are rejected.
func (r *Reader) Read(cfg *StyleGuide, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	b, err := afero.ReadFile(r.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}
	if filepath.Ext(configFilePath) == ".toml" {
		return decodeTOML(cfg, b)
	}
	return decodeYAML(cfg, b)
}

func decodeYAML(cfg *StyleGuide, b []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	cfg.source = b
	return nil
}

func decodeTOML(cfg *StyleGuide, b []byte) error {
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return fmt.Errorf("decode a configuration file as TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("decode a configuration file as TOML: unknown key %s", undecoded[0].String())
	}
	return nil
}
