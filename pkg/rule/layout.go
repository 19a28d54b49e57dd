package rule

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/linthound/linthound/pkg/config"
)

type LineLength struct{}

func (r *LineLength) ID() string { return config.RuleLineLength }

func (r *LineLength) Description() string {
	return "Limits the number of characters in a line."
}

func (r *LineLength) Check(src *Source, cfg *config.StyleGuide) []*Offense {
	limit := cfg.Rules.LineLength.Max
	var offenses []*Offense
	for i, line := range src.Lines {
		n := utf8.RuneCountInString(line)
		if n <= limit {
			continue
		}
		offenses = append(offenses, newOffense(r.ID(), i+1, limit+1, fmt.Sprintf("Line is too long. [%d/%d]", n, limit)))
	}
	return offenses
}

type TrailingWhitespace struct{}

func (r *TrailingWhitespace) ID() string { return config.RuleTrailingWhitespace }

func (r *TrailingWhitespace) Description() string {
	return "Disallows spaces and tabs at the end of a line."
}

func (r *TrailingWhitespace) Check(src *Source, _ *config.StyleGuide) []*Offense {
	var offenses []*Offense
	for i, line := range src.Lines {
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) == len(line) {
			continue
		}
		offenses = append(offenses, newOffense(r.ID(), i+1, utf8.RuneCountInString(trimmed)+1, "Trailing whitespace detected."))
	}
	return offenses
}

type EmptyLineBetweenDefs struct{}

func (r *EmptyLineBetweenDefs) ID() string { return config.RuleEmptyLineBetweenDefs }

func (r *EmptyLineBetweenDefs) Description() string {
	return "Requires an empty line between consecutive method definitions."
}

// Check reports a def that directly follows the end of the previous def.
// Comment lines right above a def belong to it, so the empty line must precede them.
func (r *EmptyLineBetweenDefs) Check(src *Source, _ *config.StyleGuide) []*Offense {
	var offenses []*Offense
	for _, tok := range src.Tokens {
		if !tok.First || !tok.Is(KindKeyword, "def") {
			continue
		}
		line := tok.Line - 1
		for line >= 1 && strings.HasPrefix(strings.TrimSpace(src.Lines[line-1]), "#") {
			line--
		}
		if line >= 1 && src.defEnds[line] {
			offenses = append(offenses, newOffense(r.ID(), tok.Line, tok.Column, "Use empty lines between defs."))
		}
	}
	return offenses
}
