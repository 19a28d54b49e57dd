package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-version"
)

// FieldError is a single problem in a style guide.
// Path is a YAML path such as $.rules.line_length.max.
type FieldError struct {
	Path    string
	Message string
}

func (e *FieldError) String() string {
	return strings.TrimPrefix(e.Path, "$.") + ": " + e.Message
}

// ValidationError reports an invalid or self-contradictory style guide.
// It fails the whole review pass before any file is analyzed.
type ValidationError struct {
	Errors []*FieldError
	source []byte
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.String()
	}
	return "invalid style guide: " + strings.Join(msgs, ", ")
}

// Annotate returns the YAML source around the first invalid field.
// It returns an empty string if the style guide wasn't read from YAML.
func (e *ValidationError) Annotate() string {
	if len(e.source) == 0 || len(e.Errors) == 0 {
		return ""
	}
	p, err := yaml.PathString(e.Errors[0].Path)
	if err != nil {
		return ""
	}
	b, err := p.AnnotateSource(e.source, false)
	if err != nil {
		return ""
	}
	return string(b)
}

// Validate checks the style guide.
// It returns *ValidationError listing every invalid field, or nil.
func (s *StyleGuide) Validate() error {
	var errs []*FieldError
	add := func(p, format string, a ...any) {
		errs = append(errs, &FieldError{Path: p, Message: fmt.Sprintf(format, a...)})
	}
	if s.Rules.LineLength.Enabled && s.Rules.LineLength.Max <= 0 {
		add("$.rules.line_length.max", "must be greater than 0 but got %d", s.Rules.LineLength.Max)
	}
	if s.MaxFileSize < 0 {
		add("$.max_file_size", "must not be negative but got %d", s.MaxFileSize)
	}
	for i, e := range s.Extensions {
		if e == "" || e == "." {
			add(fmt.Sprintf("$.extensions[%d]", i), "must not be empty")
		}
	}
	for i, pattern := range s.Exclude {
		if pattern == "" {
			add(fmt.Sprintf("$.exclude[%d]", i), "must not be empty")
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			add(fmt.Sprintf("$.exclude[%d]", i), "parse as a glob: %v", doublestar.ErrBadPattern)
		}
	}
	if s.RequiredVersion != "" {
		if _, err := version.NewConstraint(s.RequiredVersion); err != nil {
			add("$.required_version", "parse as a version constraint: %v", err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs, source: s.source}
}

var errVersionMismatch = errors.New("linthound version doesn't satisfy required_version")

// CheckVersion checks the running linthound version against required_version.
// Development builds without a version are always accepted.
func (s *StyleGuide) CheckVersion(current string) error {
	if s.RequiredVersion == "" || current == "" {
		return nil
	}
	constraints, err := version.NewConstraint(s.RequiredVersion)
	if err != nil {
		return fmt.Errorf("parse required_version: %w", err)
	}
	v, err := version.NewVersion(current)
	if err != nil {
		return fmt.Errorf("parse the linthound version %s: %w", current, err)
	}
	if !constraints.Check(v) {
		return fmt.Errorf("%w: %s doesn't satisfy %s", errVersionMismatch, current, s.RequiredVersion)
	}
	return nil
}
