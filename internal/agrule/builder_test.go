package agrule

import (
	"testing"

	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRule_CommentsAndBlanks(t *testing.T) {
	b := New()

	for _, line := range []string{"", "   ", "! a comment", "[Adblock Plus 2.0]", " indented"} {
		r, err := b.CreateRule(line)
		require.NoError(t, err)
		assert.Nil(t, r)
	}

	assert.Equal(t, 5, b.Stats().Comments)
}

func TestCreateRule_OpaqueConstructsSkipped(t *testing.T) {
	b := New()

	cases := []string{
		"example.com##^script:has-text(foo)",
		"example.com#%#var x = 1;",
		"example.com$$script[src]",
	}
	for _, line := range cases {
		r, err := b.CreateRule(line)
		require.NoError(t, err)
		assert.Nil(t, r)
	}
}

func TestCreateRule_Scriptlet(t *testing.T) {
	b := New()

	r, err := b.CreateRule("example.com##+js(set-constant, foo, false)")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, models.KindScriptlet, r.Kind)
	assert.False(t, r.IsWhiteList)
}

func TestCreateRule_Procedural(t *testing.T) {
	b := New()

	r, err := b.CreateRule("example.com##.ad:has(> img)")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestCreateRule_CosmeticBasic(t *testing.T) {
	b := New()

	r, err := b.CreateRule("example.com,~sub.example.com##.banner-ad")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, models.KindCSS, r.Kind)
	assert.Equal(t, ".banner-ad", r.CSS.CSSSelector)
	assert.Equal(t, []string{"example.com"}, r.CSS.Domains)
	assert.Equal(t, []string{"sub.example.com"}, r.CSS.Excluded)
}

func TestCreateRule_CosmeticException(t *testing.T) {
	b := New()

	r, err := b.CreateRule("example.com#@#.banner-ad")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.IsWhiteList)
}

func TestCreateRule_CosmeticEmptySelector(t *testing.T) {
	b := New()

	r, err := b.CreateRule("example.com##")
	require.Error(t, err)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrEmptyCSSRule)
}

func TestCreateRule_NetworkBasic(t *testing.T) {
	b := New()

	r, err := b.CreateRule("||example.com^$third-party,image")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, models.KindURL, r.Kind)
	assert.True(t, r.URL.IsCheckThirdParty)
	assert.True(t, r.URL.IsThirdParty)
	assert.True(t, r.URL.PermittedContentType.IsExactly(models.CTImage))
}

func TestCreateRule_NetworkNoOptionsDefaultsToAll(t *testing.T) {
	b := New()

	r, err := b.CreateRule("||example.com^")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.URL.PermittedContentType.IsExactly(models.CTAll))
}

func TestCreateRule_NetworkException(t *testing.T) {
	b := New()

	r, err := b.CreateRule("@@||example.com^$document")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.IsWhiteList)
	assert.True(t, r.IsDocumentWhiteList())
}

func TestCreateRule_BadFilter(t *testing.T) {
	b := New()

	r, err := b.CreateRule("||example.com^$image,badfilter")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.IsBadFilter)
	assert.Equal(t, "||example.com^$image", r.BadFilter)
}

func TestCreateRule_DomainOption(t *testing.T) {
	b := New()

	r, err := b.CreateRule("||ads.example.com^$domain=foo.com|~bar.com")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, []string{"foo.com"}, r.URL.PermittedDomains)
	assert.Equal(t, []string{"bar.com"}, r.URL.RestrictedDomains)
}

func TestCreateRule_RegexRule(t *testing.T) {
	b := New()

	r, err := b.CreateRule(`/banner[0-9]+\.js/$script`)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.URL.IsRegexRule)
	require.NotNil(t, r.URL.URLRegExp)
}
