package convert

import (
	"testing"

	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/bnema/safari-content-blocker/internal/regexconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertArray_Basic(t *testing.T) {
	lines := []string{
		"! a comment",
		"||example.com^$third-party",
		"example.com##.banner-ad",
		"@@||trusted.example.com^$document",
	}

	summary := ConvertArray(lines, 0, false, regexconf.Default)

	assert.Equal(t, 3, summary.ConvertedCount)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 0, summary.ErrorsCount)
	assert.False(t, summary.OverLimit)
}

func TestConvertArray_RespectsLimit(t *testing.T) {
	lines := []string{
		"||one.example^",
		"||two.example^",
		"||three.example^",
	}

	summary := ConvertArray(lines, 1, false, regexconf.Default)

	assert.True(t, summary.OverLimit)
	assert.Equal(t, 3, summary.TotalCount)
	assert.Len(t, summary.Rules, 1)
}

func TestConvertArray_RejectedRuleKeepsCountsEqual(t *testing.T) {
	lines := []string{
		"||example.com^$csp=script-src 'self'",
	}

	summary := ConvertArray(lines, 0, false, regexconf.Default)

	assert.Equal(t, 0, summary.ConvertedCount)
	assert.Equal(t, 0, summary.TotalCount)
	assert.Equal(t, 1, summary.ErrorsCount)
	assert.False(t, summary.OverLimit)
}

func TestConvertLine_SingleRule(t *testing.T) {
	entry, err, ok := ConvertLine("||example.com^$image")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, entry)
	assert.Equal(t, models.ActionBlock, entry.Action.Type)
}

func TestConvertLine_CommentIsNotARule(t *testing.T) {
	entry, err, ok := ConvertLine("! just a comment")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entry)
}
