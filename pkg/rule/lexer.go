package rule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Kind is the lexical class of a token.
type Kind int

const (
	KindIdent Kind = iota
	KindKeyword
	KindNumber
	// KindString covers every literal whose inside is never checked:
	// strings, character literals, percent literals, regular expressions and heredocs.
	KindString
	KindSymbol
	// KindLabel is a hash key or keyword argument such as `key:`. Text excludes the colon.
	KindLabel
	KindPunct
	KindOperator
)

// Token is a lexical token of Ruby source.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
	// SpaceBefore is true if whitespace separates the token from the previous token on the same line.
	SpaceBefore bool
	// First is true for the first token of a line.
	First bool
}

func (t *Token) Is(kind Kind, text string) bool {
	return t != nil && t.Kind == kind && t.Text == text
}

func (t *Token) punct(text string) bool {
	return t.Is(KindPunct, text)
}

// value reports whether the token ends an expression,
// which decides how an ambiguous character after it is read.
func (t *Token) value() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindIdent, KindNumber, KindString, KindSymbol:
		return true
	case KindKeyword:
		switch t.Text {
		case "self", "nil", "true", "false", "end", "__FILE__", "__LINE__", "__method__":
			return true
		}
		return false
	case KindPunct:
		return t.Text == ")" || t.Text == "]" || t.Text == "}"
	default:
		return false
	}
}

var keywords = map[string]struct{}{ //nolint:gochecknoglobals
	"alias": {}, "and": {}, "begin": {}, "break": {}, "case": {}, "class": {}, "def": {},
	"defined?": {}, "do": {}, "else": {}, "elsif": {}, "end": {}, "ensure": {}, "false": {},
	"for": {}, "if": {}, "in": {}, "module": {}, "next": {}, "nil": {}, "not": {}, "or": {},
	"redo": {}, "rescue": {}, "retry": {}, "return": {}, "self": {}, "super": {}, "then": {},
	"true": {}, "undef": {}, "unless": {}, "until": {}, "when": {}, "while": {}, "yield": {},
	"__FILE__": {}, "__LINE__": {}, "__method__": {},
}

var operators = []string{ //nolint:gochecknoglobals
	"**=", "<=>", "===", "...", "<<=", ">>=", "&&=", "||=",
	"==", "!=", ">=", "<=", "&&", "||", "<<", ">>", "=~", "!~", "+=", "-=", "*=", "/=",
	"%=", "|=", "&=", "^=", "=>", "->", "..", "&.", "**",
	"=", "+", "-", "*", "/", "%", "<", ">", "!", "&", "^", "~", ".",
}

// ErrUnterminated is returned for a literal that isn't closed before the end of the contents.
var ErrUnterminated = errors.New("unterminated literal")

type heredoc struct {
	terminator string
	indented   bool
}

type lexer struct {
	src      []rune
	pos      int
	line     int
	col      int
	space    bool
	first    bool
	tokens   []*Token
	heredocs []heredoc
}

// ctxCheckInterval is the number of tokens read between checks of the context.
const ctxCheckInterval = 1024

// Tokenize splits Ruby source into tokens. Comments and =begin/=end blocks are dropped.
// It stops with the error of ctx once ctx is done.
func Tokenize(ctx context.Context, contents string) ([]*Token, error) {
	lx := &lexer{
		src:   []rune(contents),
		line:  1,
		col:   1,
		first: true,
	}
	for i := 0; lx.pos < len(lx.src); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("line %d: %w", lx.line, err)
			}
		}
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
	if len(lx.heredocs) > 0 {
		return nil, fmt.Errorf("heredoc %s: %w", lx.heredocs[0].terminator, ErrUnterminated)
	}
	return lx.tokens, nil
}

func (lx *lexer) peek(n int) rune {
	if lx.pos+n >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+n]
}

func (lx *lexer) advance() rune {
	r := lx.src[lx.pos]
	lx.pos++
	if r == '\n' {
		lx.line++
		lx.col = 1
		return r
	}
	lx.col++
	return r
}

func (lx *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(string(lx.src[lx.pos:min(lx.pos+len(s), len(lx.src))]), s)
}

func (lx *lexer) last() *Token {
	if len(lx.tokens) == 0 {
		return nil
	}
	return lx.tokens[len(lx.tokens)-1]
}

func (lx *lexer) emit(kind Kind, start, line, col int) *Token {
	tok := &Token{
		Kind:        kind,
		Text:        string(lx.src[start:lx.pos]),
		Line:        line,
		Column:      col,
		SpaceBefore: lx.space && !lx.first,
		First:       lx.first,
	}
	lx.tokens = append(lx.tokens, tok)
	lx.space = false
	lx.first = false
	return tok
}

func (lx *lexer) next() error { //nolint:cyclop
	c := lx.peek(0)
	switch {
	case c == '\n':
		lx.advance()
		lx.first = true
		lx.space = false
		return lx.skipHeredocBodies()
	case c == ' ' || c == '\t' || c == '\r' || c == '\f':
		lx.advance()
		lx.space = true
		return nil
	case c == '\\' && lx.peek(1) == '\n':
		lx.advance()
		lx.advance()
		lx.space = true
		return nil
	case c == '#':
		lx.skipLine()
		return nil
	case c == '=' && lx.col == 1 && lx.hasPrefix("=begin"):
		return lx.skipEmbeddedDoc()
	case c == '_' && lx.col == 1 && lx.hasPrefix("__END__"):
		lx.pos = len(lx.src)
		return nil
	case c == '"' || c == '\'' || c == '`':
		return lx.readLiteral(c)
	case c == '@' || c == '$' || isIdentStart(c):
		lx.readIdent()
		return nil
	case unicode.IsDigit(c):
		lx.readNumber()
		return nil
	case c == ':':
		return lx.readColon()
	case c == '?':
		lx.readQuestion()
		return nil
	case c == '%' && lx.percentLiteral():
		return lx.readPercent()
	case c == '/' && lx.regexpLiteral():
		lx.readRegexp()
		return nil
	case c == '<' && lx.heredocStart():
		lx.readHeredocStart()
		return nil
	case c == '|' && (lx.peek(1) == '|' || lx.peek(1) == '='):
		lx.readOperator()
		return nil
	case strings.ContainsRune("()[]{},;|", c):
		start, line, col := lx.pos, lx.line, lx.col
		lx.advance()
		lx.emit(KindPunct, start, line, col)
		return nil
	default:
		lx.readOperator()
		return nil
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (lx *lexer) skipLine() {
	for lx.pos < len(lx.src) && lx.peek(0) != '\n' {
		lx.advance()
	}
}

func (lx *lexer) skipEmbeddedDoc() error {
	for lx.pos < len(lx.src) {
		lx.skipLine()
		if lx.pos >= len(lx.src) {
			break
		}
		lx.advance()
		if lx.hasPrefix("=end") {
			lx.skipLine()
			return nil
		}
	}
	return fmt.Errorf("=begin: %w", ErrUnterminated)
}

// readLiteral reads a quoted literal whose opening delimiter is the current character.
func (lx *lexer) readLiteral(open rune) error {
	start, line, col := lx.pos, lx.line, lx.col
	lx.advance()
	if err := lx.readUntil(open, closing(open), open != '\''); err != nil {
		return fmt.Errorf("string at line %d: %w", line, err)
	}
	lx.emit(KindString, start, line, col)
	return nil
}

func closing(open rune) rune {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	case '<':
		return '>'
	default:
		return open
	}
}

// readUntil consumes a literal body up to and including its closing delimiter.
// Nested pairs of bracket delimiters and #{} interpolation are balanced.
func (lx *lexer) readUntil(open, close rune, interpolate bool) error {
	depth := 0
	for lx.pos < len(lx.src) {
		r := lx.advance()
		switch {
		case r == '\\':
			if lx.pos < len(lx.src) {
				lx.advance()
			}
		case interpolate && r == '#' && lx.peek(0) == '{':
			lx.advance()
			if err := lx.readInterpolation(); err != nil {
				return err
			}
		case r == close && depth == 0:
			return nil
		case r == close:
			depth--
		case r == open && open != close:
			depth++
		}
	}
	return ErrUnterminated
}

// readInterpolation consumes the code of #{} up to and including the closing brace.
// String literals in the code are read as literals, so their braces and quotes don't count.
// The code stays part of the enclosing string token.
func (lx *lexer) readInterpolation() error {
	depth := 0
	for lx.pos < len(lx.src) {
		r := lx.advance()
		switch r {
		case '\\':
			if lx.pos < len(lx.src) {
				lx.advance()
			}
		case '"', '`', '\'':
			if err := lx.readUntil(r, r, r != '\''); err != nil {
				return err
			}
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
	return ErrUnterminated
}

func (lx *lexer) readIdent() {
	start, line, col := lx.pos, lx.line, lx.col
	switch lx.peek(0) {
	case '@':
		lx.advance()
		if lx.peek(0) == '@' {
			lx.advance()
		}
	case '$':
		lx.advance()
		if !isIdentStart(lx.peek(0)) && lx.pos < len(lx.src) && lx.peek(0) != '\n' {
			// special globals such as $! and $1
			lx.advance()
		}
	}
	for lx.pos < len(lx.src) && isIdentChar(lx.peek(0)) {
		lx.advance()
	}
	if r := lx.peek(0); (r == '?' || r == '!') && lx.peek(1) != '=' {
		lx.advance()
	}
	prev := lx.last()
	afterDot := prev.Is(KindOperator, ".") || prev.Is(KindOperator, "&.") || prev.punct("::")
	if lx.peek(0) == ':' && lx.peek(1) != ':' && !afterDot {
		tok := lx.emit(KindLabel, start, line, col)
		lx.advance()
		tok.Text = strings.TrimSuffix(tok.Text, ":")
		return
	}
	tok := lx.emit(KindIdent, start, line, col)
	if _, ok := keywords[tok.Text]; ok && !afterDot {
		tok.Kind = KindKeyword
	}
}

func (lx *lexer) readNumber() {
	start, line, col := lx.pos, lx.line, lx.col
	for lx.pos < len(lx.src) {
		r := lx.peek(0)
		if isIdentChar(r) {
			lx.advance()
			continue
		}
		if r == '.' && unicode.IsDigit(lx.peek(1)) {
			lx.advance()
			continue
		}
		break
	}
	lx.emit(KindNumber, start, line, col)
}

func (lx *lexer) readColon() error {
	start, line, col := lx.pos, lx.line, lx.col
	if lx.peek(1) == ':' {
		lx.advance()
		lx.advance()
		lx.emit(KindPunct, start, line, col)
		return nil
	}
	symbolic := !lx.last().value() || lx.space
	next := lx.peek(1)
	switch {
	case symbolic && (next == '"' || next == '\''):
		lx.advance()
		lx.advance()
		if err := lx.readUntil(next, next, next == '"'); err != nil {
			return fmt.Errorf("symbol at line %d: %w", line, err)
		}
		lx.emit(KindSymbol, start, line, col)
		return nil
	case symbolic && (isIdentStart(next) || next == '@' || next == '$'):
		lx.advance()
		lx.readIdent()
		tok := lx.tokens[len(lx.tokens)-1]
		tok.Kind = KindSymbol
		tok.Text = ":" + tok.Text
		tok.Column = col
		if lx.peek(0) == '=' && lx.peek(1) != '>' && lx.peek(1) != '=' && lx.peek(1) != '~' {
			// setter symbol such as :name=
			lx.advance()
			tok.Text += "="
		}
		return nil
	}
	lx.advance()
	lx.emit(KindPunct, start, line, col)
	return nil
}

func (lx *lexer) readQuestion() {
	start, line, col := lx.pos, lx.line, lx.col
	next := lx.peek(1)
	if !lx.last().value() && next != 0 && !unicode.IsSpace(next) {
		switch {
		case next == '\\':
			lx.advance()
			lx.advance()
			if lx.pos < len(lx.src) {
				lx.advance()
			}
			lx.emit(KindString, start, line, col)
			return
		case !isIdentChar(lx.peek(2)):
			lx.advance()
			lx.advance()
			lx.emit(KindString, start, line, col)
			return
		}
	}
	lx.advance()
	lx.emit(KindPunct, start, line, col)
}

// percentLiteral reports whether % starts a literal such as %w[a b] rather than the modulo operator.
func (lx *lexer) percentLiteral() bool {
	if lx.last().value() && !(lx.space && !unicode.IsSpace(lx.peek(1))) {
		return false
	}
	next := lx.peek(1)
	if strings.ContainsRune("wWiIqQrsx", next) {
		return strings.ContainsRune("([{<|!/^", lx.peek(2))
	}
	return strings.ContainsRune("([{<|!^", next)
}

func (lx *lexer) readPercent() error {
	start, line, col := lx.pos, lx.line, lx.col
	lx.advance()
	interpolate := true
	if r := lx.peek(0); unicode.IsLetter(r) {
		interpolate = unicode.IsUpper(r) || r == 'r' || r == 'x'
		lx.advance()
	}
	open := lx.advance()
	if err := lx.readUntil(open, closing(open), interpolate); err != nil {
		return fmt.Errorf("percent literal at line %d: %w", line, err)
	}
	lx.emit(KindString, start, line, col)
	return nil
}

func (lx *lexer) regexpLiteral() bool {
	if !lx.last().value() {
		return true
	}
	next := lx.peek(1)
	return lx.space && next != ' ' && next != '='
}

// readRegexp reads /.../ with its flags. A slash without a closing slash on the same line
// is read as the division operator.
func (lx *lexer) readRegexp() {
	start, line, col := lx.pos, lx.line, lx.col
	for i := lx.pos + 1; i < len(lx.src); i++ {
		switch lx.src[i] {
		case '\\':
			i++
			continue
		case '\n':
			lx.readOperator()
			return
		case '/':
			for lx.pos <= i {
				lx.advance()
			}
			for lx.pos < len(lx.src) && unicode.IsLetter(lx.peek(0)) {
				lx.advance()
			}
			lx.emit(KindString, start, line, col)
			return
		}
	}
	lx.readOperator()
}

func (lx *lexer) heredocStart() bool {
	if lx.peek(1) != '<' {
		return false
	}
	next := lx.peek(2)
	if next == '~' || next == '-' {
		r := lx.peek(3)
		return unicode.IsUpper(r) || r == '_' || r == '\'' || r == '"'
	}
	return !lx.last().value() && (unicode.IsUpper(next) || next == '\'' || next == '"')
}

func (lx *lexer) readHeredocStart() {
	start, line, col := lx.pos, lx.line, lx.col
	lx.advance()
	lx.advance()
	indented := false
	if r := lx.peek(0); r == '~' || r == '-' {
		indented = true
		lx.advance()
	}
	quote := rune(0)
	if r := lx.peek(0); r == '\'' || r == '"' {
		quote = lx.advance()
	}
	nameStart := lx.pos
	for lx.pos < len(lx.src) && isIdentChar(lx.peek(0)) {
		lx.advance()
	}
	name := string(lx.src[nameStart:lx.pos])
	if quote != 0 && lx.peek(0) == quote {
		lx.advance()
	}
	lx.heredocs = append(lx.heredocs, heredoc{terminator: name, indented: indented})
	lx.emit(KindString, start, line, col)
}

// skipHeredocBodies skips the bodies of heredocs opened on the line that just ended.
func (lx *lexer) skipHeredocBodies() error {
	for len(lx.heredocs) > 0 {
		h := lx.heredocs[0]
		found := false
		for lx.pos < len(lx.src) {
			lineStart := lx.pos
			lx.skipLine()
			body := string(lx.src[lineStart:lx.pos])
			if lx.pos < len(lx.src) {
				lx.advance()
			}
			if body == h.terminator || (h.indented && strings.TrimSpace(body) == h.terminator) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("heredoc %s: %w", h.terminator, ErrUnterminated)
		}
		lx.heredocs = lx.heredocs[1:]
	}
	return nil
}

func (lx *lexer) readOperator() {
	start, line, col := lx.pos, lx.line, lx.col
	for _, op := range operators {
		if lx.hasPrefix(op) {
			for range len(op) {
				lx.advance()
			}
			lx.emit(KindOperator, start, line, col)
			return
		}
	}
	lx.advance()
	lx.emit(KindOperator, start, line, col)
}
