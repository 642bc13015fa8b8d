package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redgush/flycatcher/token"
)

func TestUnquoteStringDecodesEscapes(t *testing.T) {
	assert.Equal(t, "line\nbreak", token.UnquoteString(`"line\nbreak"`))
	assert.Equal(t, `say "hi"`, token.UnquoteString(`"say \"hi\""`))
	assert.Equal(t, `back\slash`, token.UnquoteString(`"back\\slash"`))
}

func TestUnquoteStringPlain(t *testing.T) {
	assert.Equal(t, "hello", token.UnquoteString(`"hello"`))
	assert.Equal(t, "hello", token.UnquoteString(`'hello'`))
}
