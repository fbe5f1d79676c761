// Package trigger builds the "trigger" half of an output entry: the
// url-filter regex, resource-type list, load-type, case sensitivity and
// domain scope.
package trigger

import (
	"regexp"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/bnema/safari-content-blocker/internal/domainutil"
	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/bnema/safari-content-blocker/internal/regexconf"
)

// ErrDomainScopeConflict is returned by Domains when a rule has both
// permitted and restricted domains, which the target engine cannot express
// on a single entry.
const ErrDomainScopeConflict errors.Error = "both permitted and restricted domains not supported"

// anyURLRegexes are the fixed "matches any URL" fallback patterns.
const (
	anyURLRegexWS  = `^wss?:\/\/`
	anyURLRegexAny = `^[htpsw]+:\/\/`
)

// literalEmptyURLRuleTexts are the urlRuleText spellings treated as
// "no meaningful pattern": the any-URL regex is substituted for them.
var literalEmptyURLRuleTexts = map[string]bool{
	"||*": true,
	"":    true,
	"*":   true,
	"|*":  true,
}

// URLFilter builds the url-filter regex string for a URL rule.
func URLFilter(r *models.Rule, conf regexconf.Config) string {
	if literalEmptyURLRuleTexts[r.URL.URLRuleText] {
		if r.URL.PermittedContentType.IsExactly(models.CTWebSocket) {
			return anyURLRegexWS
		}
		return anyURLRegexAny
	}

	if r.URL.IsRegexRule && r.URL.URLRegExp != nil {
		return r.URL.URLRegExp.String()
	}

	source := urlRegExpSource(r.URL.URLRuleText, conf)
	if source == "" {
		if r.URL.PermittedContentType.IsExactly(models.CTWebSocket) {
			return anyURLRegexWS
		}
		return anyURLRegexAny
	}

	if r.URL.PermittedContentType.IsExactly(models.CTWebSocket) &&
		!strings.HasPrefix(source, "^") && !strings.HasPrefix(source, "ws") {
		return `^wss?:\/\/.*` + source
	}

	return source
}

// urlRegExpSource builds a WebKit-compatible URL pattern out of a plain
// (non-regex) AdGuard url rule pattern, using the call-scoped regex
// configuration (regexStartUrl/regexSeparator).
func urlRegExpSource(pattern string, conf regexconf.Config) string {
	if pattern == "" {
		return ""
	}

	s := pattern

	const (
		anchorNone = iota
		anchorHostname
		anchorLeft
	)
	anchor := anchorNone

	switch {
	case strings.HasPrefix(s, "||"):
		anchor = anchorHostname
		s = s[2:]
	case strings.HasPrefix(s, "|"):
		anchor = anchorLeft
		s = s[1:]
	}

	rightAnchored := strings.HasSuffix(s, "|")
	s = strings.TrimSuffix(s, "|")

	escaped := escapeLiteral(s)
	escaped = reSeparatorToken.ReplaceAllString(escaped, conf.RegexSeparator)
	escaped = reDanglingWildcard.ReplaceAllString(escaped, "")
	escaped = reWildcardRun.ReplaceAllString(escaped, ".*")

	var out string
	switch anchor {
	case anchorHostname:
		out = conf.RegexStartURL + escaped
	case anchorLeft:
		out = "^" + escaped
	default:
		out = escaped
	}

	if rightAnchored {
		out += "$"
	}

	return out
}

// escapeChars lists the characters that must be backslash-escaped before an
// AdGuard plain pattern can be treated as a regex fragment; * and ^ are
// deliberately excluded because they carry AdGuard-specific meaning
// (wildcard / separator) handled by the passes below.
const escapeChars = `.+?${}()[]\`

var (
	reSeparatorToken   = regexp.MustCompile(`\^`)
	reDanglingWildcard = regexp.MustCompile(`^\*+|\*+$`)
	reWildcardRun      = regexp.MustCompile(`\*+`)
)

func escapeLiteral(s string) string {
	var b strings.Builder
	for _, c := range s {
		if strings.ContainsRune(escapeChars, c) {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ResourceTypes builds the trigger's resource-type list.
func ResourceTypes(r *models.Rule) []string {
	if r.URL.IsBlockPopups {
		return []string{models.ResourcePopup}
	}

	if r.URL.PermittedContentType == models.CTAll && r.URL.RestrictedContentType == 0 {
		return nil
	}

	var out []string
	add := func(s string) {
		for _, existing := range out {
			if existing == s {
				return
			}
		}
		out = append(out, s)
	}

	ct := r.URL.PermittedContentType
	if ct.Has(models.CTImage) {
		add(models.ResourceImage)
	}
	if ct.Has(models.CTStylesheet) {
		add(models.ResourceStyleSheet)
	}
	if ct.Has(models.CTScript) {
		add(models.ResourceScript)
	}
	if ct.Has(models.CTMedia) {
		add(models.ResourceMedia)
	}
	if ct.Has(models.CTXMLHTTPRequest) || ct.Has(models.CTOther) || ct.Has(models.CTWebSocket) {
		add(models.ResourceRaw)
	}
	if ct.Has(models.CTFont) {
		add(models.ResourceFont)
	}
	if ct.Has(models.CTSubdocument) {
		add(models.ResourceDocument)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// LoadType builds the trigger's load-type list.
func LoadType(r *models.Rule) []string {
	if !r.URL.IsCheckThirdParty {
		return nil
	}
	if r.URL.IsThirdParty {
		return []string{models.LoadThirdParty}
	}
	return []string{models.LoadFirstParty}
}

// Domains collects if-domain/unless-domain for a rule's included and
// excluded domains.
func Domains(included, excluded []string) (ifDomain, unlessDomain []string, err error) {
	included = domainutil.NormalizeAll(included)
	excluded = domainutil.NormalizeAll(excluded)

	if len(included) > 0 && len(excluded) > 0 {
		return nil, nil, ErrDomainScopeConflict
	}
	if len(included) > 0 {
		return included, nil, nil
	}
	if len(excluded) > 0 {
		return nil, excluded, nil
	}
	return nil, nil, nil
}
