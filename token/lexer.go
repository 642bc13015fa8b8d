package token

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/redgush/flycatcher/source"
)

// Lexer is a restartable, single-pass tokenizer over a fixed source file.
//
// Next consumes and returns the next non-structural token; Peek returns the
// same token without consuming it, in O(1) amortized time via a one-token
// lookahead buffer. Whitespace, line breaks, and plain comments are
// skipped entirely (spec §3); doc comments are skipped too, but buffered so
// the parser can retrieve them with TakeDocs and attach them to whatever
// node follows.
//
// A Lexer never reports diagnostics itself: it emits Invalid for anything
// it cannot classify and InvalidString for an unterminated string, leaving
// it to the parser to decide how (and whether) to report them, per spec
// §4.2.
type Lexer struct {
	file *source.File
	text string
	pos  int

	peeked     *Token
	pendingDoc []Token
}

// NewLexer creates a Lexer over the given file's full text.
func NewLexer(file *source.File) *Lexer {
	return &Lexer{file: file, text: file.Text()}
}

// File returns the file this lexer scans.
func (l *Lexer) File() *source.File { return l.file }

// Done reports whether the lexer has no more tokens to produce.
func (l *Lexer) Done() bool {
	_, ok := l.Peek()
	return !ok
}

// Peek returns the next token without consuming it. Calling Peek any
// number of times in a row returns the same token; it is Next that
// actually advances the cursor.
func (l *Lexer) Peek() (Token, bool) {
	if l.peeked == nil {
		tok, ok := l.scan()
		if !ok {
			return Token{}, false
		}
		l.peeked = &tok
	}
	return *l.peeked, true
}

// Next consumes and returns the next token.
func (l *Lexer) Next() (Token, bool) {
	tok, ok := l.Peek()
	if !ok {
		return Token{}, false
	}
	l.peeked = nil
	return tok, true
}

// TakeDocs drains and returns every doc comment buffered since the last
// call to TakeDocs, in source order.
func (l *Lexer) TakeDocs() []string {
	if len(l.pendingDoc) == 0 {
		return nil
	}
	docs := make([]string, len(l.pendingDoc))
	for i, t := range l.pendingDoc {
		docs[i] = t.Doc()
	}
	l.pendingDoc = nil
	return docs
}

// scan advances past any structural or doc-comment tokens and returns the
// next semantic token, or ok=false at end of file. Every byte it passes
// over belongs to some token returned by scanRaw, so the lexer's full,
// unfiltered tokenization (scanRaw called to exhaustion) is always total
// over the source text, even though scan itself only surfaces tokens the
// parser cares about.
func (l *Lexer) scan() (Token, bool) {
	for {
		tok, ok := l.scanRaw()
		if !ok {
			return Token{}, false
		}
		switch tok.Kind {
		case DocComment:
			l.pendingDoc = append(l.pendingDoc, tok)
		case Whitespace, Linebreak, Comment:
			// Structurally invisible; drop and keep scanning.
		default:
			return tok, true
		}
	}
}

// scanRaw returns the single next token of any kind, including
// Whitespace, Linebreak, Comment, and DocComment, or ok=false at EOF. It is
// the lexer's complete, gapless tokenization: every byte of the source
// belongs to exactly one token scanRaw produces.
func (l *Lexer) scanRaw() (Token, bool) {
	if l.pos >= len(l.text) {
		return Token{}, false
	}

	start := l.pos
	r, size := utf8.DecodeRuneInString(l.text[l.pos:])

	switch {
	case r == '\n' || r == '\r':
		l.takeWhile(func(r rune) bool { return r == '\n' || r == '\r' })
		return l.push(start, Linebreak), true

	case isSpace(r):
		l.takeWhile(isSpace)
		return l.push(start, Whitespace), true

	case r == '/' && l.peekByte(size) == '/':
		return l.lexLineComment(start), true

	case r == '"' || r == '\'':
		return l.lexString(start, r), true

	case r == '@':
		return l.lexPrefixedIdent(start, size, ConstructIdentifier), true

	case r == '#':
		return l.lexPrefixedIdent(start, size, PreprocessorIdentifier), true

	case isASCIIDigit(r), r == '.' && isASCIIDigit(peekRune(l.text, l.pos+size)):
		return l.lexNumber(start), true

	case isIdentStart(r):
		return l.lexIdent(start), true

	default:
		if k, size, ok := lexOperator(l.text[l.pos:]); ok {
			l.pos += size
			return l.push(start, k), true
		}
		l.pos += size
		return l.push(start, Invalid), true
	}
}

func (l *Lexer) push(start int, kind Kind) Token {
	return Token{Kind: kind, Span: source.Span{File: l.file, Start: start, End: l.pos}}
}

func (l *Lexer) peekByte(offset int) byte {
	i := l.pos + offset
	if i >= len(l.text) {
		return 0
	}
	return l.text[i]
}

// takeWhile advances the cursor past a run of runes satisfying pred,
// returning the consumed text.
func (l *Lexer) takeWhile(pred func(rune) bool) string {
	start := l.pos
	for l.pos < len(l.text) {
		r, size := utf8.DecodeRuneInString(l.text[l.pos:])
		if !pred(r) {
			break
		}
		l.pos += size
	}
	return l.text[start:l.pos]
}

func isSpace(r rune) bool {
	return r != '\n' && r != '\r' && unicode.IsSpace(r)
}

// isIdentStart and isIdentContinue implement spec §4.2's
// [a-zA-Z_$][a-zA-Z_$0-9]* identifier grammar exactly (ASCII only).
func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func peekRune(text string, pos int) rune {
	if pos >= len(text) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return r
}

// lexLineComment scans "//..." to end of line (exclusive), distinguishing
// "///" (DocComment) from a plain "//" (Comment).
func (l *Lexer) lexLineComment(start int) Token {
	l.pos += 2 // both slashes.
	kind := Comment
	if strings.HasPrefix(l.text[l.pos:], "/") {
		kind = DocComment
	}
	l.takeWhile(func(r rune) bool { return r != '\n' && r != '\r' })
	return l.push(start, kind)
}

// lexPrefixedIdent scans a '@' or '#' followed by an Identifier body.
func (l *Lexer) lexPrefixedIdent(start, prefixSize int, kind Kind) Token {
	l.pos += prefixSize
	if l.pos < len(l.text) {
		r, _ := utf8.DecodeRuneInString(l.text[l.pos:])
		if isIdentStart(r) {
			l.takeWhile(isIdentContinue)
		}
	}
	return l.push(start, kind)
}

func (l *Lexer) lexIdent(start int) Token {
	l.takeWhile(isIdentContinue)
	text := l.text[start:l.pos]
	if kw, ok := LookupKeyword(text); ok {
		return l.push(start, kw)
	}
	return l.push(start, Identifier)
}

// lexNumber scans `[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?`. The grammar requires
// at least one digit after an optional '.', so a dot with no digit after it
// (e.g. the trailing dot in "5.") is left unconsumed for a separate Period
// token rather than folded into the number.
func (l *Lexer) lexNumber(start int) Token {
	l.takeWhile(isASCIIDigit)
	if l.pos < len(l.text) && l.text[l.pos] == '.' && isASCIIDigit(peekRune(l.text, l.pos+1)) {
		l.pos++
		l.takeWhile(isASCIIDigit)
	}
	if l.pos < len(l.text) && (l.text[l.pos] == 'e' || l.text[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.text) && (l.text[l.pos] == '+' || l.text[l.pos] == '-') {
			l.pos++
		}
		digits := l.takeWhile(isASCIIDigit)
		if digits == "" {
			l.pos = save // Not actually an exponent; back out.
		}
	}
	return l.push(start, Number)
}

// lexString scans a single- or double-quoted string literal, whose slice
// includes the surrounding quotes (callers strip them). An opened string
// that reaches end-of-line or end-of-file before closing becomes
// InvalidString instead of String.
func (l *Lexer) lexString(start int, quote rune) Token {
	l.pos += utf8.RuneLen(quote)
	for l.pos < len(l.text) {
		r, size := utf8.DecodeRuneInString(l.text[l.pos:])
		switch {
		case r == quote:
			l.pos += size
			return l.push(start, String)
		case r == '\n' || r == '\r':
			return l.push(start, InvalidString)
		case r == '\\':
			l.pos += size
			if l.pos >= len(l.text) {
				return l.push(start, InvalidString)
			}
			_, escSize := utf8.DecodeRuneInString(l.text[l.pos:])
			l.pos += escSize
		default:
			l.pos += size
		}
	}
	return l.push(start, InvalidString)
}

// operator is one entry in the longest-match operator table.
type operator struct {
	text string
	kind Kind
}

// operators is ordered longest-first so that a naive prefix scan performs
// the longest match without any special-casing.
var operators = []operator{
	{"==", EqEq}, {"!=", NotEq}, {">=", GtEq}, {"<=", LtEq},
	{">>", ShiftRight}, {"<<", ShiftLeft}, {"&&", AndAnd}, {"||", OrOr},

	{"{", LCurly}, {"}", RCurly}, {"[", LBracket}, {"]", RBracket},
	{"(", LParen}, {")", RParen},
	{";", Semicolon}, {".", Period}, {",", Comma}, {":", Colon},
	{"!", Exclamation}, {"~", Tilde}, {"&", Ampersand}, {"|", Pipe},
	{"^", Caret}, {"=", Equals}, {"+", Plus}, {"-", Minus},
	{"*", Asterisk}, {"/", Slash}, {"%", Percent},
	{">", Gt}, {"<", Lt},
}

func lexOperator(text string) (Kind, int, bool) {
	for _, op := range operators {
		if strings.HasPrefix(text, op.text) {
			return op.kind, len(op.text), true
		}
	}
	return Invalid, 0, false
}
