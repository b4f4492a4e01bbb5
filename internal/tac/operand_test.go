package tac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperandStringPrefixes(t *testing.T) {
	assert.Equal(t, "t3", Temp(3).String())
	assert.Equal(t, "%x", Local("x").String())
	assert.Equal(t, "@print", Global("print").String())
	assert.Equal(t, "#10", LitInt(10).String())
	assert.Equal(t, "#3.5", LitFloat(3.5).String())
	assert.Equal(t, "#true", LitBool(true).String())
	assert.Equal(t, "#false", LitBool(false).String())
	assert.Equal(t, "#null", LitNull.String())
	assert.Equal(t, "#void", LitVoid.String())
}

func TestLitStringEscapesQuotesAndBackslashes(t *testing.T) {
	assert.Equal(t, `#"hi"`, LitString("hi").String())
	assert.Equal(t, `#"a\"b"`, LitString(`a"b`).String())
	assert.Equal(t, `#"a\\b"`, LitString(`a\b`).String())
}

func TestEmptyOperand(t *testing.T) {
	assert.True(t, Operand{}.Empty())
	assert.False(t, Temp(0).Empty())
}

func TestOperandEquality(t *testing.T) {
	assert.Equal(t, Temp(1), Temp(1))
	assert.NotEqual(t, Temp(1), Temp(2))
	assert.NotEqual(t, Local("x"), Temp(0))
}
