package finalize

import (
	"testing"

	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(urlFilter string, ifDomain []string) models.WebKitRule {
	return models.WebKitRule{
		Trigger: models.WebKitTrigger{URLFilter: urlFilter, IfDomain: ifDomain},
		Action:  models.WebKitAction{Type: models.ActionBlock},
	}
}

func TestFinalize_ConcatenatesInOrder(t *testing.T) {
	var b models.Buckets
	b.Add(models.CategoryURLBlocking, rule(".*url", nil))
	b.Add(models.CategoryCSSBlockingWide, rule(models.AnyURLFilter, nil))

	res := Finalize(&b, 0)

	require.Len(t, res.Rules, 2)
	assert.Equal(t, models.AnyURLFilter, res.Rules[0].Trigger.URLFilter)
}

func TestFinalize_WildcardsDomains(t *testing.T) {
	var b models.Buckets
	b.Add(models.CategoryURLBlocking, rule(".*", []string{"example.com"}))

	res := Finalize(&b, 0)

	require.Len(t, res.Rules, 1)
	assert.Equal(t, []string{"*example.com"}, res.Rules[0].Trigger.IfDomain)
}

func TestFinalize_EnforcesLimit(t *testing.T) {
	var b models.Buckets
	b.Add(models.CategoryURLBlocking, rule(".*a", nil))
	b.Add(models.CategoryURLBlocking, rule(".*b", nil))
	b.Add(models.CategoryURLBlocking, rule(".*c", nil))

	res := Finalize(&b, 2)

	assert.True(t, res.OverLimit)
	assert.Equal(t, 3, res.TotalCount)
	assert.Len(t, res.Rules, 2)
	assert.Contains(t, res.Errors, "2 limit is achieved. Next rules will be ignored.")
}

func TestFinalize_Deduplicates(t *testing.T) {
	var b models.Buckets
	b.Add(models.CategoryURLBlocking, rule(".*a", nil))
	b.Add(models.CategoryURLBlocking, rule(".*a", nil))

	res := Finalize(&b, 0)

	assert.Len(t, res.Rules, 1)
	assert.Equal(t, 1, res.TotalCount)
	assert.False(t, res.OverLimit)
}

func TestMarshalJSON_EmptyIsArray(t *testing.T) {
	data, err := MarshalJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSplitter_Split(t *testing.T) {
	s := NewSplitter(2)
	rules := []models.WebKitRule{rule(".*a", nil), rule(".*b", nil), rule(".*c", nil)}

	parts := s.Split(rules, "base")

	assert.Len(t, parts, 2)
	assert.Len(t, parts["base-part1"], 2)
	assert.Len(t, parts["base-part2"], 1)
}
