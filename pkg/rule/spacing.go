package rule

import (
	"unicode/utf8"

	"github.com/linthound/linthound/pkg/config"
)

type SpaceInsideParens struct{}

func (r *SpaceInsideParens) ID() string { return config.RuleSpaceInsideParens }

func (r *SpaceInsideParens) Description() string {
	return "Disallows spaces after ( and before )."
}

func (r *SpaceInsideParens) Check(src *Source, _ *config.StyleGuide) []*Offense {
	return checkSpaceInside(src, r.ID(), "(", ")", "Space inside parentheses detected.")
}

type SpaceInsideBrackets struct{}

func (r *SpaceInsideBrackets) ID() string { return config.RuleSpaceInsideBrackets }

func (r *SpaceInsideBrackets) Description() string {
	return "Disallows spaces after [ and before ]."
}

func (r *SpaceInsideBrackets) Check(src *Source, _ *config.StyleGuide) []*Offense {
	return checkSpaceInside(src, r.ID(), "[", "]", "Space inside square brackets detected.")
}

// checkSpaceInside reports whitespace after open and before close on the same line.
// Empty pairs such as `( )` are reported once.
func checkSpaceInside(src *Source, id, open, close, message string) []*Offense {
	var offenses []*Offense
	for i, tok := range src.Tokens {
		switch {
		case tok.punct(open):
			if next := src.nextOnLine(i); next != nil && next.SpaceBefore {
				offenses = append(offenses, newOffense(id, tok.Line, tok.Column+1, message))
			}
		case tok.punct(close):
			prev := src.prevOnLine(i)
			if prev != nil && tok.SpaceBefore && !prev.punct(open) {
				offenses = append(offenses, newOffense(id, tok.Line, tok.Column-1, message))
			}
		}
	}
	return offenses
}

type SpaceAfterComma struct{}

func (r *SpaceAfterComma) ID() string { return config.RuleSpaceAfterComma }

func (r *SpaceAfterComma) Description() string {
	return "Requires a space after a comma."
}

func (r *SpaceAfterComma) Check(src *Source, _ *config.StyleGuide) []*Offense {
	return checkSpaceAfter(src, r.ID(), ",", "Space missing after comma.")
}

type SpaceAfterSemicolon struct{}

func (r *SpaceAfterSemicolon) ID() string { return config.RuleSpaceAfterSemicolon }

func (r *SpaceAfterSemicolon) Description() string {
	return "Requires a space after a semicolon."
}

func (r *SpaceAfterSemicolon) Check(src *Source, _ *config.StyleGuide) []*Offense {
	return checkSpaceAfter(src, r.ID(), ";", "Space missing after semicolon.")
}

func checkSpaceAfter(src *Source, id, punct, message string) []*Offense {
	var offenses []*Offense
	for i, tok := range src.Tokens {
		if !tok.punct(punct) {
			continue
		}
		next := src.nextOnLine(i)
		if next == nil || next.SpaceBefore {
			continue
		}
		if next.punct(")") || next.punct("]") || next.punct("}") || next.punct("|") {
			continue
		}
		offenses = append(offenses, newOffense(id, tok.Line, tok.Column+1, message))
	}
	return offenses
}

type SpaceAroundTernaryColon struct{}

func (r *SpaceAroundTernaryColon) ID() string { return config.RuleSpaceAroundTernaryColon }

func (r *SpaceAroundTernaryColon) Description() string {
	return "Requires spaces around the colon of a ternary expression."
}

// pendingTernary is a `?` waiting for its colon.
type pendingTernary struct {
	depth int
	// operand is true once a token of the true branch has been seen.
	operand bool
}

// Check pairs each ternary `?` with the colon at the same bracket depth.
// Depending on the spacing the lexer reads the colon as punctuation,
// as the tail of a label (`b: c`) or as the head of a symbol (`b :c`).
func (r *SpaceAroundTernaryColon) Check(src *Source, _ *config.StyleGuide) []*Offense { //nolint:cyclop
	const message = "Surrounding space missing for operator ':'."
	var (
		offenses []*Offense
		pending  []*pendingTernary
	)
	depth := 0
	for i, tok := range src.Tokens {
		if tok.First && i > 0 && !continuesLine(src.Tokens[i-1]) {
			pending = pending[:0]
		}
		switch {
		case tok.punct("(") || tok.punct("[") || tok.punct("{"):
			depth++
			continue
		case tok.punct(")") || tok.punct("]") || tok.punct("}"):
			depth--
			for len(pending) > 0 && pending[len(pending)-1].depth > depth {
				pending = pending[:len(pending)-1]
			}
			continue
		case tok.punct(";"):
			for len(pending) > 0 && pending[len(pending)-1].depth >= depth {
				pending = pending[:len(pending)-1]
			}
			continue
		case tok.punct("?"):
			pending = append(pending, &pendingTernary{depth: depth})
			continue
		}
		if len(pending) == 0 {
			continue
		}
		top := pending[len(pending)-1]
		if top.depth != depth {
			continue
		}
		column := 0
		switch {
		case tok.punct(":"):
			next := src.nextOnLine(i)
			if !tok.SpaceBefore || (next != nil && !next.SpaceBefore) {
				column = tok.Column
			}
		case tok.Kind == KindLabel:
			column = tok.Column + utf8.RuneCountInString(tok.Text)
		case tok.Kind == KindSymbol && top.operand:
			column = tok.Column
		default:
			top.operand = true
			continue
		}
		pending = pending[:len(pending)-1]
		if column > 0 {
			offenses = append(offenses, newOffense(r.ID(), tok.Line, column, message))
		}
	}
	return offenses
}

// continuesLine reports whether an expression goes on after tok at the end of a line.
func continuesLine(tok *Token) bool {
	switch tok.Kind {
	case KindOperator:
		return true
	case KindPunct:
		return tok.Text == "?" || tok.Text == ":" || tok.Text == "," || tok.Text == "(" || tok.Text == "[" || tok.Text == "{"
	default:
		return false
	}
}
