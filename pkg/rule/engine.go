// Package rule is linthound's built-in style engine for Ruby.
// It tokenizes a file, runs every enabled rule of the style guide
// and returns the offenses sorted by position.
// Messages follow the wording of the community Ruby style checkers
// because reviewers read them verbatim.
package rule

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/linthound/linthound/pkg/config"
)

// Rule is a single style check.
type Rule interface {
	ID() string
	Description() string
	Check(src *Source, cfg *config.StyleGuide) []*Offense
}

type Engine struct {
	rules []Rule
}

// New returns an engine running the built-in rules.
func New() *Engine {
	return NewWithRules(DefaultRules()...)
}

func NewWithRules(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// DefaultRules returns the built-in rules.
// Offenses at the same position are reported in this order.
func DefaultRules() []Rule {
	return []Rule{
		&LineLength{},
		&TrailingWhitespace{},
		&SpaceInsideParens{},
		&SpaceInsideBrackets{},
		&SpaceInsideHashLiteralBraces{},
		&SpaceBeforeBlockBraces{},
		&SpaceInsideBlockBraces{},
		&SpaceAfterComma{},
		&SpaceAfterSemicolon{},
		&SpaceAroundTernaryColon{},
		&EmptyLineBetweenDefs{},
	}
}

func (e *Engine) Rules() []Rule {
	return e.rules
}

// Analyze checks contents with every rule enabled in cfg.
// It fails if contents can't be tokenized, e.g. a string literal is never closed.
func (e *Engine) Analyze(ctx context.Context, filename, contents string, cfg *config.StyleGuide) ([]*Offense, error) {
	src, err := Parse(ctx, contents)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	var offenses []*Offense
	for _, r := range e.rules {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID(), err)
		}
		if !cfg.Rules.Enabled(r.ID()) {
			continue
		}
		offenses = append(offenses, r.Check(src, cfg)...)
	}
	slices.SortStableFunc(offenses, func(a, b *Offense) int {
		if c := cmp.Compare(a.Line, b.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Column, b.Column)
	})
	return offenses, nil
}

func newOffense(id string, line, column int, message string) *Offense {
	return &Offense{
		Line:     line,
		Column:   column,
		RuleID:   id,
		Message:  message,
		Severity: SeverityConvention,
	}
}
