package pipeline

import (
	"testing"

	"github.com/bnema/safari-content-blocker/internal/agrule"
	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRules(t *testing.T, lines []string) []*models.Rule {
	t.Helper()
	b := agrule.New()
	var rules []*models.Rule
	for _, line := range lines {
		r, err := b.CreateRule(line)
		require.NoError(t, err)
		if r != nil && (r.Kind == models.KindURL || r.Kind == models.KindCSS) {
			rules = append(rules, r)
		}
	}
	return rules
}

func TestRun_RoutesURLBlockingRule(t *testing.T) {
	rules := buildRules(t, []string{"||example.com^"})
	res := Run(rules)

	assert.Equal(t, 1, res.ConvertedCount)
	assert.Len(t, res.Buckets.Entries[models.CategoryURLBlocking], 1)
}

func TestRun_RoutesDocumentException(t *testing.T) {
	rules := buildRules(t, []string{"@@||example.com^$document"})
	res := Run(rules)

	assert.Equal(t, 1, res.ConvertedCount)
	assert.Len(t, res.Buckets.Entries[models.CategoryDocumentExceptions], 1)
}

func TestRun_RoutesImportantRule(t *testing.T) {
	rules := buildRules(t, []string{"||example.com^$important"})
	res := Run(rules)

	assert.Len(t, res.Buckets.Entries[models.CategoryImportant], 1)
}

func TestRun_RoutesGenericCSSWide(t *testing.T) {
	rules := buildRules(t, []string{"##.banner-ad"})
	res := Run(rules)

	assert.Len(t, res.Buckets.Entries[models.CategoryCSSBlockingWide], 1)
}

func TestRun_RoutesDomainSensitiveCSS(t *testing.T) {
	rules := buildRules(t, []string{"example.com##.banner-ad"})
	res := Run(rules)

	assert.Len(t, res.Buckets.Entries[models.CategoryCSSBlockingDomainSensitive], 1)
}

func TestRun_BadFilterCancelsRule(t *testing.T) {
	rules := buildRules(t, []string{
		"||example.com^$image",
		"||example.com^$image,badfilter",
	})
	res := Run(rules)

	assert.Equal(t, 0, res.ConvertedCount)
	assert.Empty(t, res.Buckets.Entries[models.CategoryURLBlocking])
}

func TestRun_TranslationErrorCounted(t *testing.T) {
	rules := buildRules(t, []string{"||example.com^$csp=script-src 'self'"})
	res := Run(rules)

	assert.Equal(t, 0, res.ConvertedCount)
	assert.Equal(t, 1, res.ErrorsCount)
	assert.Len(t, res.Buckets.Errors, 1)
}
