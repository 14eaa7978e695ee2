package tsource

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	Ident Kind = iota
	Punct
	String
	Template
	Number
	Regexp
)

// Token is a lexical token. Start and End are byte offsets, End exclusive.
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
}

// SyntaxError reports source the lexer cannot tokenize.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

type lexer struct {
	src  string
	pos  int
	toks []Token
}

// Tokenize splits src into tokens, dropping whitespace and comments.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: src}
	for {
		l.skipSpaceAndComments()
		if l.pos >= len(l.src) {
			return l.toks, nil
		}
		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) emit(kind Kind, start int) {
	l.toks = append(l.toks, Token{Kind: kind, Text: l.src[start:l.pos], Start: start, End: l.pos})
}

func (l *lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		switch {
		case strings.HasPrefix(rest, "//"):
			if i := strings.IndexByte(rest, '\n'); i >= 0 {
				l.pos += i + 1
			} else {
				l.pos = len(l.src)
			}
		case strings.HasPrefix(rest, "/*"):
			if i := strings.Index(rest[2:], "*/"); i >= 0 {
				l.pos += i + 4
			} else {
				l.pos = len(l.src)
			}
		default:
			r, size := utf8.DecodeRuneInString(rest)
			if !unicode.IsSpace(r) {
				return
			}
			l.pos += size
		}
	}
}

func (l *lexer) next() error {
	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch {
	case r == '\'' || r == '"':
		if err := l.scanString(byte(r)); err != nil {
			return err
		}
		l.emit(String, start)
	case r == '`':
		if err := l.scanTemplate(); err != nil {
			return err
		}
		l.emit(Template, start)
	case r == '/' && l.regexpAllowed():
		if err := l.scanRegexp(); err != nil {
			return err
		}
		l.emit(Regexp, start)
	case isIdentStart(r):
		l.pos += size
		for l.pos < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !isIdentPart(r) {
				break
			}
			l.pos += size
		}
		l.emit(Ident, start)
	case unicode.IsDigit(r):
		for l.pos < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if !isIdentPart(r) && r != '.' {
				break
			}
			l.pos += size
		}
		l.emit(Number, start)
	default:
		l.pos += size
		l.emit(Punct, start)
	}
	return nil
}

func (l *lexer) scanString(quote byte) error {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
		case quote:
			l.pos++
			return nil
		case '\n':
			return &SyntaxError{Offset: start, Msg: "unterminated string literal"}
		default:
			l.pos++
		}
	}
	return &SyntaxError{Offset: start, Msg: "unterminated string literal"}
}

// scanTemplate consumes a template literal, including any ${...}
// substitutions, which may themselves contain strings and templates.
func (l *lexer) scanTemplate() error {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) {
		switch {
		case l.src[l.pos] == '\\':
			l.pos += 2
		case l.src[l.pos] == '`':
			l.pos++
			return nil
		case strings.HasPrefix(l.src[l.pos:], "${"):
			l.pos += 2
			if err := l.scanSubstitution(); err != nil {
				return err
			}
		default:
			l.pos++
		}
	}
	return &SyntaxError{Offset: start, Msg: "unterminated template literal"}
}

// scanSubstitution consumes code up to the brace closing a ${ substitution.
func (l *lexer) scanSubstitution() error {
	start := l.pos
	depth := 0
	for {
		l.skipSpaceAndComments()
		if l.pos >= len(l.src) {
			return &SyntaxError{Offset: start, Msg: "unterminated template substitution"}
		}
		switch l.src[l.pos] {
		case '{':
			depth++
			l.pos++
		case '}':
			if depth == 0 {
				l.pos++
				return nil
			}
			depth--
			l.pos++
		case '\'', '"':
			if err := l.scanString(l.src[l.pos]); err != nil {
				return err
			}
		case '`':
			if err := l.scanTemplate(); err != nil {
				return err
			}
		default:
			l.pos++
		}
	}
}

func (l *lexer) scanRegexp() error {
	start := l.pos
	l.pos++
	inClass := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\':
			l.pos += 2
			continue
		case c == '\n':
			return &SyntaxError{Offset: start, Msg: "unterminated regular expression"}
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			l.pos++
			for l.pos < len(l.src) && isIdentPart(rune(l.src[l.pos])) {
				l.pos++ // flags
			}
			return nil
		}
		l.pos++
	}
	return &SyntaxError{Offset: start, Msg: "unterminated regular expression"}
}

// regexpAllowed reports whether a slash at the current position starts a
// regular expression rather than a division, judged by the previous token.
func (l *lexer) regexpAllowed() bool {
	if len(l.toks) == 0 {
		return true
	}
	prev := l.toks[len(l.toks)-1]
	switch prev.Kind {
	case Punct:
		return strings.Contains("(,=:[!&|?{};+-*%<>~^", prev.Text)
	case Ident:
		return prev.Text == "return" || prev.Text == "typeof" || prev.Text == "case"
	}
	return false
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
