package rule

import "github.com/linthound/linthound/pkg/config"

type SpaceInsideHashLiteralBraces struct{}

func (r *SpaceInsideHashLiteralBraces) ID() string {
	return config.RuleSpaceInsideHashLiteralBraces
}

func (r *SpaceInsideHashLiteralBraces) Description() string {
	return "Requires spaces inside the braces of a hash literal."
}

func (r *SpaceInsideHashLiteralBraces) Check(src *Source, _ *config.StyleGuide) []*Offense {
	var offenses []*Offense
	for i, tok := range src.Tokens {
		if src.Block(i) {
			continue
		}
		switch {
		case tok.punct("{"):
			next := src.nextOnLine(i)
			if next != nil && !next.SpaceBefore && !next.punct("}") {
				offenses = append(offenses, newOffense(r.ID(), tok.Line, tok.Column+1, "Space inside { missing."))
			}
		case tok.punct("}"):
			prev := src.prevOnLine(i)
			if prev != nil && !tok.SpaceBefore && !prev.punct("{") {
				offenses = append(offenses, newOffense(r.ID(), tok.Line, tok.Column, "Space inside } missing."))
			}
		}
	}
	return offenses
}

type SpaceBeforeBlockBraces struct{}

func (r *SpaceBeforeBlockBraces) ID() string { return config.RuleSpaceBeforeBlockBraces }

func (r *SpaceBeforeBlockBraces) Description() string {
	return "Requires a space before the opening brace of a block."
}

func (r *SpaceBeforeBlockBraces) Check(src *Source, _ *config.StyleGuide) []*Offense {
	var offenses []*Offense
	for i, tok := range src.Tokens {
		if !tok.punct("{") || !src.Block(i) {
			continue
		}
		if src.prevOnLine(i) != nil && !tok.SpaceBefore {
			offenses = append(offenses, newOffense(r.ID(), tok.Line, tok.Column, "Space missing to the left of {."))
		}
	}
	return offenses
}

type SpaceInsideBlockBraces struct{}

func (r *SpaceInsideBlockBraces) ID() string { return config.RuleSpaceInsideBlockBraces }

func (r *SpaceInsideBlockBraces) Description() string {
	return "Requires spaces inside the braces of a block and before its parameters."
}

func (r *SpaceInsideBlockBraces) Check(src *Source, _ *config.StyleGuide) []*Offense {
	var offenses []*Offense
	for i, tok := range src.Tokens {
		if !src.Block(i) {
			continue
		}
		switch {
		case tok.punct("{"):
			next := src.nextOnLine(i)
			if next == nil || next.SpaceBefore || next.punct("}") {
				continue
			}
			message := "Space missing inside {."
			if next.punct("|") {
				message = "Space between { and | missing."
			}
			offenses = append(offenses, newOffense(r.ID(), tok.Line, tok.Column+1, message))
		case tok.punct("}"):
			prev := src.prevOnLine(i)
			if prev != nil && !tok.SpaceBefore && !prev.punct("{") {
				offenses = append(offenses, newOffense(r.ID(), tok.Line, tok.Column, "Space missing inside }."))
			}
		}
	}
	return offenses
}
