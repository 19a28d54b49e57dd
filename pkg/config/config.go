// Package config defines the style guide that decides which rules linthound runs
// and with which thresholds. A style guide is read once per run from a YAML or TOML
// file, merged onto Default, and treated as immutable afterwards.
package config

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Rule IDs. They double as the keys of the rules section of the configuration file.
const (
	RuleLineLength                   = "line_length"
	RuleTrailingWhitespace           = "trailing_whitespace"
	RuleSpaceInsideParens            = "space_inside_parens"
	RuleSpaceInsideBrackets          = "space_inside_brackets"
	RuleSpaceInsideHashLiteralBraces = "space_inside_hash_literal_braces"
	RuleSpaceBeforeBlockBraces       = "space_before_block_braces"
	RuleSpaceInsideBlockBraces       = "space_inside_block_braces"
	RuleSpaceAfterComma              = "space_after_comma"
	RuleSpaceAfterSemicolon          = "space_after_semicolon"
	RuleSpaceAroundTernaryColon      = "space_around_ternary_colon"
	RuleEmptyLineBetweenDefs         = "empty_line_between_defs"
)

const (
	DefaultMaxLineLength = 80
	DefaultMaxFileSize   = 1 << 20
)

type StyleGuide struct {
	RequiredVersion string   `json:"required_version,omitempty" yaml:"required_version" toml:"required_version" jsonschema:"description=Version constraint of linthound. e.g. >= 1.0.0"`
	Extensions      []string `json:"extensions,omitempty" yaml:"extensions" toml:"extensions" jsonschema:"description=File extensions (.rb) or base names (Gemfile) of target files"`
	Exclude         []string `json:"exclude,omitempty" yaml:"exclude" toml:"exclude" jsonschema:"description=Glob patterns of files which are never checked. ** matches any number of directories and a trailing slash excludes a directory"`
	MaxFileSize     int64    `json:"max_file_size,omitempty" yaml:"max_file_size" toml:"max_file_size" jsonschema:"description=Files larger than this size in bytes fail without being analyzed. 0 means unlimited"`
	Rules           Rules    `json:"rules,omitempty" yaml:"rules" toml:"rules"`
	source          []byte
}

type Rules struct {
	LineLength                   LineLengthRule `json:"line_length,omitempty" yaml:"line_length" toml:"line_length"`
	TrailingWhitespace           Rule           `json:"trailing_whitespace,omitempty" yaml:"trailing_whitespace" toml:"trailing_whitespace"`
	SpaceInsideParens            Rule           `json:"space_inside_parens,omitempty" yaml:"space_inside_parens" toml:"space_inside_parens"`
	SpaceInsideBrackets          Rule           `json:"space_inside_brackets,omitempty" yaml:"space_inside_brackets" toml:"space_inside_brackets"`
	SpaceInsideHashLiteralBraces Rule           `json:"space_inside_hash_literal_braces,omitempty" yaml:"space_inside_hash_literal_braces" toml:"space_inside_hash_literal_braces"`
	SpaceBeforeBlockBraces       Rule           `json:"space_before_block_braces,omitempty" yaml:"space_before_block_braces" toml:"space_before_block_braces"`
	SpaceInsideBlockBraces       Rule           `json:"space_inside_block_braces,omitempty" yaml:"space_inside_block_braces" toml:"space_inside_block_braces"`
	SpaceAfterComma              Rule           `json:"space_after_comma,omitempty" yaml:"space_after_comma" toml:"space_after_comma"`
	SpaceAfterSemicolon          Rule           `json:"space_after_semicolon,omitempty" yaml:"space_after_semicolon" toml:"space_after_semicolon"`
	SpaceAroundTernaryColon      Rule           `json:"space_around_ternary_colon,omitempty" yaml:"space_around_ternary_colon" toml:"space_around_ternary_colon"`
	EmptyLineBetweenDefs         Rule           `json:"empty_line_between_defs,omitempty" yaml:"empty_line_between_defs" toml:"empty_line_between_defs"`
}

type Rule struct {
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`
}

type LineLengthRule struct {
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`
	Max     int  `json:"max,omitempty" yaml:"max" toml:"max" jsonschema:"description=Maximum number of characters in a line. The default is 80"`
}

// Default returns the style guide used when no configuration file is found.
// Every rule is enabled.
func Default() *StyleGuide {
	on := Rule{Enabled: true}
	return &StyleGuide{
		Extensions:  []string{".rb", ".rake", ".gemspec", "Gemfile", "Rakefile"},
		MaxFileSize: DefaultMaxFileSize,
		Rules: Rules{
			LineLength: LineLengthRule{
				Enabled: true,
				Max:     DefaultMaxLineLength,
			},
			TrailingWhitespace:           on,
			SpaceInsideParens:            on,
			SpaceInsideBrackets:          on,
			SpaceInsideHashLiteralBraces: on,
			SpaceBeforeBlockBraces:       on,
			SpaceInsideBlockBraces:       on,
			SpaceAfterComma:              on,
			SpaceAfterSemicolon:          on,
			SpaceAroundTernaryColon:      on,
			EmptyLineBetweenDefs:         on,
		},
	}
}

// RuleIDs returns every rule ID in the order the rules are documented.
func RuleIDs() []string {
	return []string{
		RuleLineLength,
		RuleTrailingWhitespace,
		RuleSpaceInsideParens,
		RuleSpaceInsideBrackets,
		RuleSpaceInsideHashLiteralBraces,
		RuleSpaceBeforeBlockBraces,
		RuleSpaceInsideBlockBraces,
		RuleSpaceAfterComma,
		RuleSpaceAfterSemicolon,
		RuleSpaceAroundTernaryColon,
		RuleEmptyLineBetweenDefs,
	}
}

// Enabled reports whether the rule is turned on. Unknown IDs are never enabled.
func (r *Rules) Enabled(id string) bool {
	switch id {
	case RuleLineLength:
		return r.LineLength.Enabled
	case RuleTrailingWhitespace:
		return r.TrailingWhitespace.Enabled
	case RuleSpaceInsideParens:
		return r.SpaceInsideParens.Enabled
	case RuleSpaceInsideBrackets:
		return r.SpaceInsideBrackets.Enabled
	case RuleSpaceInsideHashLiteralBraces:
		return r.SpaceInsideHashLiteralBraces.Enabled
	case RuleSpaceBeforeBlockBraces:
		return r.SpaceBeforeBlockBraces.Enabled
	case RuleSpaceInsideBlockBraces:
		return r.SpaceInsideBlockBraces.Enabled
	case RuleSpaceAfterComma:
		return r.SpaceAfterComma.Enabled
	case RuleSpaceAfterSemicolon:
		return r.SpaceAfterSemicolon.Enabled
	case RuleSpaceAroundTernaryColon:
		return r.SpaceAroundTernaryColon.Enabled
	case RuleEmptyLineBetweenDefs:
		return r.EmptyLineBetweenDefs.Enabled
	default:
		return false
	}
}

// Target reports whether a file should be handed to the rule engine.
// A file is a target if its extension or base name is listed in Extensions
// and no Exclude pattern matches its path or base name.
// Exclude patterns support ** to match any number of directories.
func (s *StyleGuide) Target(filename string) bool {
	if s.excluded(filename) {
		return false
	}
	base := path.Base(filename)
	ext := path.Ext(filename)
	for _, e := range s.Extensions {
		if strings.HasPrefix(e, ".") {
			if ext == e {
				return true
			}
			continue
		}
		if base == e {
			return true
		}
	}
	return false
}

func (s *StyleGuide) excluded(filename string) bool {
	for _, pattern := range s.Exclude {
		if f, _ := doublestar.Match(pattern, filename); f {
			return true
		}
		if f, _ := doublestar.Match(pattern, path.Base(filename)); f {
			return true
		}
		// a trailing slash excludes a whole directory
		if strings.HasSuffix(pattern, "/") && strings.HasPrefix(filename, pattern) {
			return true
		}
	}
	return false
}
