package lex

import (
	"strings"
	"unicode/utf8"

	"github.com/hallna/structurizr-dsl/diag"
	"github.com/hallna/structurizr-dsl/pos"
)

// Scanner turns UTF-8 source text into a finite token sequence terminated
// by a KindEOF sentinel. It never panics: lexical errors are
// reported through the supplied diag.Reporter and scanning continues.
type Scanner struct {
	src  []rune
	rep  *diag.Reporter
	i    int // index into src
	off  int // byte offset of src[i] in the original source
	line int
	col  int
}

// New returns a Scanner over source that reports lexical errors to rep.
// rep may be nil, in which case lexical errors are silently dropped (used
// by callers that only want the token stream, e.g. tests of the lexer in
// isolation).
func New(source string, rep *diag.Reporter) *Scanner {
	return &Scanner{
		src:  []rune(source),
		rep:  rep,
		i:    0,
		line: 1,
		col:  1,
	}
}

// Scan runs the scanner to completion and returns every token, including
// the trailing KindEOF.
func (s *Scanner) Scan() []Token {
	var toks []Token
	for {
		t := s.next()
		toks = append(toks, t)
		if t.Kind == KindEOF {
			return toks
		}
	}
}

func (s *Scanner) pos() pos.Position {
	return pos.Position{Line: s.line, Column: s.col, Offset: s.off}
}

func (s *Scanner) atEnd() bool {
	return s.i >= len(s.src)
}

func (s *Scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	return s.src[s.i]
}

func (s *Scanner) peekAt(offset int) rune {
	if s.i+offset >= len(s.src) {
		return 0
	}
	return s.src[s.i+offset]
}

func (s *Scanner) advance() rune {
	r := s.src[s.i]
	s.i++
	s.off += utf8.RuneLen(r)
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *Scanner) report(severity diag.Severity, p pos.Position, msg string) {
	if s.rep == nil {
		return
	}
	s.rep.Report(diag.Diagnostic{
		Severity: severity,
		Message:  msg,
		Position: p,
		HasPos:   true,
	})
}

// next scans and returns the single next token, skipping whitespace and
// comments first.
func (s *Scanner) next() Token {
	s.skipTrivia()

	if s.atEnd() {
		return Token{Kind: KindEOF, Position: s.pos()}
	}

	startPos := s.pos()
	r := s.peek()

	switch {
	case r == '{':
		s.advance()
		return Token{Kind: KindLBrace, Lexeme: "{", Position: startPos}
	case r == '}':
		s.advance()
		return Token{Kind: KindRBrace, Lexeme: "}", Position: startPos}
	case r == '=':
		s.advance()
		return Token{Kind: KindEquals, Lexeme: "=", Position: startPos}
	case r == '*':
		s.advance()
		return Token{Kind: KindStar, Lexeme: "*", Position: startPos}
	case r == ',':
		s.advance()
		return Token{Kind: KindComma, Lexeme: ",", Position: startPos}
	case r == ';':
		s.advance()
		return Token{Kind: KindSemi, Lexeme: ";", Position: startPos}
	case r == '!':
		s.advance()
		return Token{Kind: KindBang, Lexeme: "!", Position: startPos}
	case r == '-' && s.peekAt(1) == '>':
		s.advance()
		s.advance()
		return Token{Kind: KindArrow, Lexeme: "->", Position: startPos}
	case r == '"':
		return s.scanString(startPos)
	case isDigit(r) || (r == '-' && isDigit(s.peekAt(1))):
		return s.scanNumber(startPos)
	case isIdentStart(r):
		return s.scanIdentifier(startPos)
	default:
		s.advance()
		s.report(diag.Error, startPos, "unexpected character "+string(r))
		return Token{Kind: KindError, Lexeme: string(r), Position: startPos}
	}
}

// skipTrivia consumes whitespace, line comments ("//" and "#"), and
// single-level block comments ("/* … */").
func (s *Scanner) skipTrivia() {
	for !s.atEnd() {
		r := s.peek()
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			s.advance()
		case r == '/' && s.peekAt(1) == '/':
			s.skipToLineEnd()
		case r == '#':
			s.skipToLineEnd()
		case r == '/' && s.peekAt(1) == '*':
			s.skipBlockComment()
		default:
			return
		}
	}
}

func (s *Scanner) skipToLineEnd() {
	for !s.atEnd() && s.peek() != '\n' {
		s.advance()
	}
}

func (s *Scanner) skipBlockComment() {
	s.advance() // '/'
	s.advance() // '*'
	for !s.atEnd() {
		if s.peek() == '*' && s.peekAt(1) == '/' {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
	// unterminated block comment: fall off the end of input quietly, the
	// caller will see a premature EOF and report that instead.
}

// scanString scans a double-quoted string literal, interpreting the escapes
// \n, \t, \", \\. An unterminated string emits an error at the opening
// quote and resumes scanning at the next line.
func (s *Scanner) scanString(startPos pos.Position) Token {
	s.advance() // opening quote

	var sb strings.Builder
	for {
		if s.atEnd() || s.peek() == '\n' {
			s.report(diag.Error, startPos, "unterminated string literal")
			return Token{Kind: KindError, Lexeme: sb.String(), Position: startPos}
		}
		r := s.advance()
		if r == '"' {
			break
		}
		if r == '\\' {
			if s.atEnd() {
				s.report(diag.Error, startPos, "unterminated string literal")
				return Token{Kind: KindError, Lexeme: sb.String(), Position: startPos}
			}
			esc := s.advance()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '"':
				sb.WriteRune('"')
			case '\\':
				sb.WriteRune('\\')
			default:
				s.report(diag.Error, startPos, "invalid escape sequence \\"+string(esc))
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
			continue
		}
		sb.WriteRune(r)
	}

	lexeme := sb.String()
	return Token{Kind: KindString, Lexeme: lexeme, Literal: lexeme, Position: startPos}
}

func (s *Scanner) scanNumber(startPos pos.Position) Token {
	var sb strings.Builder
	if s.peek() == '-' {
		sb.WriteRune(s.advance())
	}
	for !s.atEnd() && isDigit(s.peek()) {
		sb.WriteRune(s.advance())
	}
	lexeme := sb.String()

	n := 0
	neg := false
	digits := lexeme
	if strings.HasPrefix(digits, "-") {
		neg = true
		digits = digits[1:]
	}
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}
	if neg {
		n = -n
	}

	return Token{Kind: KindNumber, Lexeme: lexeme, Literal: n, Position: startPos}
}

// scanIdentifier scans [A-Za-z_][A-Za-z0-9_.\-]* with no trailing dot, then
// classifies the lexeme against the fixed keyword set.
func (s *Scanner) scanIdentifier(startPos pos.Position) Token {
	var sb strings.Builder
	sb.WriteRune(s.advance())
	for !s.atEnd() && isIdentPart(s.peek()) {
		sb.WriteRune(s.advance())
	}
	lexeme := sb.String()
	for strings.HasSuffix(lexeme, ".") {
		// a trailing dot is not part of an identifier; push it back out by
		// treating it as already consumed and stopping one rune short is
		// not possible after the fact, so simply trim it and rewind the
		// scanner position to just before it.
		lexeme = lexeme[:len(lexeme)-1]
		s.i--
		s.off--
		s.col--
	}
	return Token{Kind: classify(lexeme), Lexeme: lexeme, Position: startPos}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return r == '.' || r == '-' || isIdentStart(r) || isDigit(r)
}
