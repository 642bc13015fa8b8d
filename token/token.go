package token

import "github.com/redgush/flycatcher/source"

// Token is a single lexical token: its kind, its span, and (for variable-
// text kinds like identifiers, numbers, and strings) the exact slice of
// source it was lexed from.
type Token struct {
	Kind Kind
	Span source.Span
}

// Text returns the raw source text this token was lexed from.
func (t Token) Text() string {
	return t.Span.Text()
}

// Doc returns the comment body of a DocComment token (the text after the
// leading "///"), or "" for any other kind.
func (t Token) Doc() string {
	if t.Kind != DocComment {
		return ""
	}
	text := t.Text()
	if len(text) >= 3 {
		return text[3:]
	}
	return ""
}

// IsKeyword reports whether this token's kind is one of the reserved
// keyword kinds.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwTrue, KwFalse, KwAs, KwDeclare, KwPub, KwPriv, KwIf, KwElse, KwWhile,
		KwReturn, KwContinue, KwBreak:
		return true
	default:
		return false
	}
}
