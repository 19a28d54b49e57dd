package rule

import (
	"context"
	"fmt"
	"strings"
)

// Source is the parsed form of a file handed to the rules.
type Source struct {
	// Lines are the lines of the contents without line terminators.
	Lines  []string
	Tokens []*Token
	// blockBraces holds the indexes of { and } tokens which delimit a block rather than a hash.
	blockBraces map[int]bool
	// defEnds holds the lines whose last token is an `end` closing a method definition.
	defEnds map[int]bool
}

// Parse tokenizes contents and resolves the structure the rules rely on.
func Parse(ctx context.Context, contents string) (*Source, error) {
	tokens, err := Tokenize(ctx, contents)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	lines := strings.Split(contents, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	src := &Source{
		Lines:  lines,
		Tokens: tokens,
	}
	src.blockBraces = classifyBraces(tokens)
	src.defEnds = matchDefs(tokens)
	return src, nil
}

// prevOnLine returns the token before tokens[i] unless tokens[i] starts a line.
func (s *Source) prevOnLine(i int) *Token {
	if i == 0 || s.Tokens[i].First {
		return nil
	}
	return s.Tokens[i-1]
}

// nextOnLine returns the token after tokens[i] if it starts on the line tokens[i] ends.
func (s *Source) nextOnLine(i int) *Token {
	if i+1 >= len(s.Tokens) {
		return nil
	}
	next := s.Tokens[i+1]
	if next.First {
		return nil
	}
	return next
}

// Block reports whether the brace at tokens[i] delimits a block.
func (s *Source) Block(i int) bool {
	return s.blockBraces[i]
}

func opensBlock(prev *Token) bool {
	if prev == nil {
		return false
	}
	switch prev.Kind {
	case KindIdent:
		return true
	case KindKeyword:
		return prev.Text == "super" || prev.Text == "self"
	case KindPunct:
		return prev.Text == ")" || prev.Text == "]"
	case KindOperator:
		return prev.Text == "->"
	default:
		return false
	}
}

func classifyBraces(tokens []*Token) map[int]bool {
	blocks := map[int]bool{}
	var stack []int
	for i, tok := range tokens {
		switch {
		case tok.punct("{"):
			var prev *Token
			if i > 0 && !tok.First {
				prev = tokens[i-1]
			}
			if opensBlock(prev) {
				blocks[i] = true
			}
			stack = append(stack, i)
		case tok.punct("}"):
			if len(stack) == 0 {
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if blocks[open] {
				blocks[i] = true
			}
		}
	}
	return blocks
}

// statementStart reports whether tokens[i] begins a statement,
// which distinguishes `if x` from the modifier form `y if x`.
func statementStart(tokens []*Token, i int) bool {
	tok := tokens[i]
	if tok.First || i == 0 {
		return true
	}
	prev := tokens[i-1]
	switch prev.Kind {
	case KindOperator, KindLabel:
		return true
	case KindPunct:
		return prev.Text != ")" && prev.Text != "]" && prev.Text != "}"
	case KindKeyword:
		switch prev.Text {
		case "return", "and", "or", "not", "then", "else", "do", "begin", "when", "in", "yield":
			return true
		}
	}
	return false
}

// endlessDef reports whether the def at tokens[i] is an endless method such as `def foo = 1`.
func endlessDef(tokens []*Token, i int) bool {
	j := i + 1
	// receiver and name: self.foo, foo, foo=
	for j < len(tokens) && !tokens[j].First {
		tok := tokens[j]
		if tok.Kind == KindIdent || tok.Kind == KindKeyword || tok.Is(KindOperator, ".") {
			j++
			continue
		}
		break
	}
	if j < len(tokens) && tokens[j].Is(KindOperator, "=") && !tokens[j].SpaceBefore &&
		j+1 < len(tokens) && tokens[j+1].punct("(") && !tokens[j+1].SpaceBefore {
		// setter method name
		j++
	}
	if j < len(tokens) && tokens[j].punct("(") && !tokens[j].First {
		depth := 0
		for ; j < len(tokens); j++ {
			if tokens[j].punct("(") {
				depth++
			}
			if tokens[j].punct(")") {
				depth--
				if depth == 0 {
					j++
					break
				}
			}
		}
	}
	return j < len(tokens) && !tokens[j].First && tokens[j].Is(KindOperator, "=")
}

// matchDefs pairs block keywords with their `end` and returns the lines
// ending with an `end` that closes a method definition.
func matchDefs(tokens []*Token) map[int]bool {
	ends := map[int]bool{}
	var stack []string
	loopLine := 0
	for i, tok := range tokens {
		if tok.Kind != KindKeyword {
			continue
		}
		switch tok.Text {
		case "def":
			if !endlessDef(tokens, i) {
				stack = append(stack, "def")
			}
		case "class", "module", "begin", "case":
			if tok.Text == "class" && i+1 < len(tokens) && tokens[i+1].Is(KindOperator, "<<") {
				stack = append(stack, "class")
				continue
			}
			stack = append(stack, tok.Text)
		case "if", "unless", "while", "until", "for":
			if statementStart(tokens, i) {
				stack = append(stack, tok.Text)
				if tok.Text == "while" || tok.Text == "until" || tok.Text == "for" {
					loopLine = tok.Line
				}
			}
		case "do":
			if loopLine == tok.Line && len(stack) > 0 {
				top := stack[len(stack)-1]
				if top == "while" || top == "until" || top == "for" {
					continue
				}
			}
			stack = append(stack, "do")
		case "end":
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top == "def" && (i+1 == len(tokens) || tokens[i+1].First) {
				ends[tok.Line] = true
			}
		}
	}
	return ends
}
