// Package lexer tokenizes source-language text into the token.Token stream the parser consumes.
// Each token class is recognized by a compiled regular expression tried at the current offset,
// the same wrapping style github.com/coregx/coregex gets in kolkov/uawk's runtime.Regex: one
// compiled pattern per concern, matched anchored against the unconsumed suffix of the source.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/coregx/coregex"
	"github.com/student/waccgo/ast"
	"github.com/student/waccgo/token"
)

// Error is a lexical failure: an unrecognized character (an unterminated literal is reported as
// one, at its opening quote), an integer literal outside the 64-bit signed range, or a bad escape
// sequence inside a literal.
type Error struct {
	At  ast.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.At, e.Msg)
}

// Lexer scans one source file's worth of bytes into Tokens. It is not safe for concurrent use,
// matching the single-threaded batch nature of the whole pipeline (§5).
type Lexer struct {
	src  string
	pos  int
	line int
	col  int

	whitespace *coregex.Regexp
	comment    *coregex.Regexp
	newline    *coregex.Regexp
	ident      *coregex.Regexp
	integer    *coregex.Regexp
	strLit     *coregex.Regexp
	charLit    *coregex.Regexp
	twoCharOp  *coregex.Regexp
	oneCharOp  *coregex.Regexp
}

var oneCharTokens = map[byte]token.Type{
	'(': token.LParen, ')': token.RParen, '[': token.LBracket, ']': token.RBracket,
	',': token.Comma, ';': token.Semicolon, '=': token.Assign, '!': token.Not,
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'<': token.Lt, '>': token.Gt,
}

var twoCharTokens = map[string]token.Type{
	"<=": token.Le, ">=": token.Ge, "==": token.EqualEqual, "!=": token.NotEqual,
	"&&": token.AndAnd, "||": token.OrOr,
}

// New compiles the token-class patterns and returns a Lexer over src.
func New(src string) (*Lexer, error) {
	l := &Lexer{src: src, line: 1, col: 1}
	var err error
	if l.whitespace, err = coregex.Compile(`^[ \t\r]+`); err != nil {
		return nil, err
	}
	if l.comment, err = coregex.Compile(`^#[^\n]*`); err != nil {
		return nil, err
	}
	if l.newline, err = coregex.Compile(`^\n`); err != nil {
		return nil, err
	}
	if l.ident, err = coregex.Compile(`^[A-Za-z_][A-Za-z0-9_]*`); err != nil {
		return nil, err
	}
	if l.integer, err = coregex.Compile(`^[0-9]+`); err != nil {
		return nil, err
	}
	if l.strLit, err = coregex.Compile(`^"(\\.|[^"\\])*"`); err != nil {
		return nil, err
	}
	if l.charLit, err = coregex.Compile(`^'(\\.|[^'\\])'`); err != nil {
		return nil, err
	}
	if l.twoCharOp, err = coregex.Compile(`^(<=|>=|==|!=|&&|\|\|)`); err != nil {
		return nil, err
	}
	if l.oneCharOp, err = coregex.Compile(`^[()\[\],;=!+\-*/%<>]`); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) rest() string { return l.src[l.pos:] }

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.src[l.pos+i] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.pos += n
}

// Tokenize scans the whole source and returns the token list terminated by a single EOF token.
func Tokenize(src string) ([]token.Token, error) {
	l, err := New(src)
	if err != nil {
		return nil, err
	}
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// Next scans and returns the next token, skipping whitespace and comments.
func (l *Lexer) Next() (token.Token, error) {
	for {
		if l.atEnd() {
			return token.Token{Type: token.EOF, At: ast.Position{Line: l.line, Col: l.col}}, nil
		}
		if loc := l.whitespace.FindStringIndex(l.rest()); loc != nil && loc[0] == 0 {
			l.advance(loc[1])
			continue
		}
		if loc := l.newline.FindStringIndex(l.rest()); loc != nil && loc[0] == 0 {
			l.advance(loc[1])
			continue
		}
		if loc := l.comment.FindStringIndex(l.rest()); loc != nil && loc[0] == 0 {
			l.advance(loc[1])
			continue
		}
		break
	}
	at := ast.Position{Line: l.line, Col: l.col}

	if loc := l.strLit.FindStringIndex(l.rest()); loc != nil && loc[0] == 0 {
		raw := l.rest()[loc[0]:loc[1]]
		l.advance(loc[1])
		unescaped, err := unescape(raw[1:len(raw)-1], at)
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.StringLiteral, Text: unescaped, At: at}, nil
	}
	if loc := l.charLit.FindStringIndex(l.rest()); loc != nil && loc[0] == 0 {
		raw := l.rest()[loc[0]:loc[1]]
		l.advance(loc[1])
		unescaped, err := unescape(raw[1:len(raw)-1], at)
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.CharLiteral, Text: unescaped, At: at}, nil
	}
	if loc := l.integer.FindStringIndex(l.rest()); loc != nil && loc[0] == 0 {
		text := l.rest()[loc[0]:loc[1]]
		l.advance(loc[1])
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			return token.Token{}, &Error{At: at, Msg: fmt.Sprintf("integer literal %q out of range", text)}
		}
		return token.Token{Type: token.IntLiteral, Text: text, At: at}, nil
	}
	if loc := l.ident.FindStringIndex(l.rest()); loc != nil && loc[0] == 0 {
		text := l.rest()[loc[0]:loc[1]]
		l.advance(loc[1])
		if tp, ok := token.Keywords[text]; ok {
			switch tp {
			case token.True:
				return token.Token{Type: token.BoolLiteral, Text: text, At: at}, nil
			case token.False:
				return token.Token{Type: token.BoolLiteral, Text: text, At: at}, nil
			default:
				return token.Token{Type: tp, Text: text, At: at}, nil
			}
		}
		return token.Token{Type: token.Ident, Text: text, At: at}, nil
	}
	if loc := l.twoCharOp.FindStringIndex(l.rest()); loc != nil && loc[0] == 0 {
		text := l.rest()[loc[0]:loc[1]]
		l.advance(loc[1])
		return token.Token{Type: twoCharTokens[text], Text: text, At: at}, nil
	}
	if loc := l.oneCharOp.FindStringIndex(l.rest()); loc != nil && loc[0] == 0 {
		text := l.rest()[loc[0]:loc[1]]
		l.advance(loc[1])
		return token.Token{Type: oneCharTokens[text[0]], Text: text, At: at}, nil
	}
	return token.Token{}, &Error{At: at, Msg: fmt.Sprintf("unexpected character %q", l.src[l.pos])}
}

// unescape interprets the language's escape sequences inside a string/char literal body into
// their actual byte values: \0 \b \t \n \f \r \" \' \\.
func unescape(body string, at ast.Position) (string, error) {
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(body) {
			return "", &Error{At: at, Msg: "dangling escape at end of literal"}
		}
		switch body[i] {
		case '0':
			out = append(out, 0)
		case 'b':
			out = append(out, '\b')
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'f':
			out = append(out, '\f')
		case 'r':
			out = append(out, '\r')
		case '"':
			out = append(out, '"')
		case '\'':
			out = append(out, '\'')
		case '\\':
			out = append(out, '\\')
		default:
			return "", &Error{At: at, Msg: fmt.Sprintf("unknown escape sequence \\%c", body[i])}
		}
	}
	return string(out), nil
}
