package token

import (
	"testing"

	"github.com/redgush/flycatcher/source"
)

// TestLexerTotality checks spec §8's "lexer totality" property: concatenating
// every raw token's text (including skipped whitespace/comments) reproduces
// the source exactly.
func TestLexerTotality(t *testing.T) {
	sources := []string{
		"x = 1 + 2;\n",
		"  // comment\n/// doc\nfn()(a, b)[0].field\n",
		`"hi" + 'bye'`,
		"@Foo #bar",
		"\"unterminated",
		"1.5e-10 .5 5.",
	}

	for _, src := range sources {
		f := source.NewFile("t.fly", src)
		l := NewLexer(f)

		var got string
		for {
			tok, ok := l.scanRaw()
			if !ok {
				break
			}
			got += tok.Text()
		}
		if got != src {
			t.Fatalf("totality broken for %q: got %q", src, got)
		}
	}
}

// TestLexerPeekPurity checks spec §8's "peek purity" property.
func TestLexerPeekPurity(t *testing.T) {
	f := source.NewFile("t.fly", "x = 1 + 2;")

	l1 := NewLexer(f)
	l2 := NewLexer(f)

	for {
		peeked, pok := l1.Peek()
		next, nok := l1.Next()
		if pok != nok || peeked != next {
			t.Fatalf("peek/next mismatch: peek=%v,%v next=%v,%v", peeked, pok, next, nok)
		}

		direct, dok := l2.Next()
		if dok != nok || direct != next {
			t.Fatalf("peek-then-next diverged from next alone: %v,%v vs %v,%v", direct, dok, next, nok)
		}

		if !nok {
			break
		}
	}
}
