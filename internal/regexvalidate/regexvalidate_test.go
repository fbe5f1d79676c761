package regexvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Accepts(t *testing.T) {
	cases := []string{
		`^https?:\/\/example\.com\/.*`,
		`.*\/ads\/.*`,
		`^wss?:\/\/`,
	}
	for _, p := range cases {
		assert.NoError(t, Validate(p), p)
	}
}

func TestValidate_RejectsQuantifierBraces(t *testing.T) {
	assert.ErrorIs(t, Validate(`ab{2,4}c`), ErrQuantifierBraces)
}

func TestValidate_RejectsAlternation(t *testing.T) {
	assert.ErrorIs(t, Validate(`foo|bar`), ErrUnescapedAlternation)
}

func TestValidate_RejectsNonASCII(t *testing.T) {
	assert.ErrorIs(t, Validate(`пример`), ErrNonASCII)
}

func TestValidate_RejectsNegativeLookahead(t *testing.T) {
	assert.ErrorIs(t, Validate(`foo(?!bar)`), ErrNegativeLookahead)
}

func TestValidate_RejectsUnsupportedMetachar(t *testing.T) {
	assert.ErrorIs(t, Validate(`foo\wbar`), ErrUnsupportedMetachar)
}
