package agrule

import (
	"regexp"
	"strings"

	"github.com/bnema/safari-content-blocker/internal/domainutil"
	"github.com/bnema/safari-content-blocker/internal/models"
)

// parseNetwork parses a URL (network) rule. fullLine is the line with any
// "@@" exception prefix still attached (kept as RuleText); pattern is
// fullLine with the prefix stripped.
func (b *Builder) parseNetwork(fullLine, pattern string, isException bool) (*models.Rule, error) {
	if isException {
		b.stats.Exception++
	} else {
		b.stats.Network++
	}

	rule := &models.Rule{
		Kind:        models.KindURL,
		RuleText:    fullLine,
		IsWhiteList: isException,
	}

	urlPart := pattern
	var optsPart string
	if idx := lastUnescapedDollar(pattern); idx != -1 {
		optsPart = pattern[idx+1:]
		urlPart = pattern[:idx]
	}

	if strings.HasPrefix(urlPart, "/") && strings.HasSuffix(urlPart, "/") && len(urlPart) > 2 {
		if re, err := regexp.Compile(urlPart[1 : len(urlPart)-1]); err == nil {
			rule.URL.IsRegexRule = true
			rule.URL.URLRegExp = re
		}
	}

	rule.URL.URLRuleText = urlPart
	applyOptions(rule, optsPart)

	rule.ConvertedRuleText = rule.RuleText

	return rule, nil
}

// lastUnescapedDollar finds the last "$" that introduces the options part
// of a rule, ignoring a "$" that is backslash-escaped or that is itself
// part of a trailing /regex/ literal.
func lastUnescapedDollar(s string) int {
	idx := strings.LastIndex(s, "$")
	if idx == -1 {
		return -1
	}
	if idx > 0 && s[idx-1] == '\\' {
		return -1
	}
	if strings.HasPrefix(s[idx+1:], "/") {
		return -1
	}
	return idx
}

// applyOptions parses the comma-separated modifier list after "$" and
// mutates rule in place.
func applyOptions(rule *models.Rule, optsPart string) {
	hadResourceType := false

	for _, part := range splitOptions(optsPart) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		switch {
		case part == "third-party" || part == "3p":
			rule.URL.IsCheckThirdParty = true
			rule.URL.IsThirdParty = true
		case part == "~third-party" || part == "~3p" || part == "first-party" || part == "1p":
			rule.URL.IsCheckThirdParty = true
			rule.URL.IsThirdParty = false
		case part == "match-case":
			rule.URL.IsMatchCase = true
		case part == "important":
			rule.IsImportant = true
		case part == "popup":
			rule.URL.IsBlockPopups = true
		case part == "document" || part == "doc":
			rule.SetDocumentModifier()
		case part == "jsinject":
			rule.URL.EnabledOptions |= models.OptJSInject
		case part == "urlblock":
			rule.URL.EnabledOptions |= models.OptURLBlock
		case part == "genericblock":
			rule.URL.EnabledOptions |= models.OptGenericBlock
		case part == "generichide":
			rule.URL.EnabledOptions |= models.OptGenericHide
		case part == "elemhide":
			rule.URL.EnabledOptions |= models.OptElemHide
		case part == "badfilter":
			rule.IsBadFilter = true
		case strings.HasPrefix(part, "csp"):
			rule.URL.IsCsp = true
		case strings.HasPrefix(part, "replace="):
			rule.URL.HasReplace = true
		case strings.HasPrefix(part, "domain="):
			applyDomainOption(rule, part[len("domain="):])
		case strings.HasPrefix(part, "~"):
			if ct, ok := contentTypeOf(strings.TrimPrefix(part, "~")); ok {
				rule.URL.RestrictedContentType |= ct
			}
		default:
			if ct, ok := contentTypeOf(part); ok {
				rule.URL.PermittedContentType |= ct
				hadResourceType = true
			}
		}
	}

	if !hadResourceType {
		// No explicit resource-type modifier: the rule matches every
		// ordinary resource type.
		rule.URL.PermittedContentType = models.CTAll
	}

	if rule.IsBadFilter {
		rule.BadFilter = reconstructBadFilterTarget(rule, optsPart)
	}
}

// splitOptions splits a modifier list on ",". A "domain=a|b" clause
// separates its domains with "|", never ",", so a plain split is
// sufficient.
func splitOptions(s string) []string {
	return strings.Split(s, ",")
}

func applyDomainOption(rule *models.Rule, s string) {
	for _, d := range strings.Split(s, "|") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if strings.HasPrefix(d, "~") {
			rule.URL.RestrictedDomains = append(rule.URL.RestrictedDomains, domainutil.Normalize(d[1:]))
		} else {
			rule.URL.PermittedDomains = append(rule.URL.PermittedDomains, domainutil.Normalize(d))
		}
	}
}

// reconstructBadFilterTarget rebuilds the rule text that this $badfilter
// rule cancels: the same pattern with the badfilter token itself removed
// from the option list, matched against other rules' ConvertedRuleText by
// exact equality (see package pipeline).
func reconstructBadFilterTarget(rule *models.Rule, optsPart string) string {
	kept := make([]string, 0)
	for _, part := range splitOptions(optsPart) {
		if strings.TrimSpace(part) == "badfilter" {
			continue
		}
		kept = append(kept, part)
	}

	text := rule.URL.URLRuleText
	if rule.IsWhiteList {
		text = "@@" + text
	}
	if len(kept) > 0 {
		text += "$" + strings.Join(kept, ",")
	}
	return text
}

// contentTypeOf maps an AdGuard/uBO resource-type token to the internal
// bitmask.
func contentTypeOf(s string) (models.ContentType, bool) {
	switch s {
	case "image", "img":
		return models.CTImage, true
	case "stylesheet", "css":
		return models.CTStylesheet, true
	case "script":
		return models.CTScript, true
	case "media":
		return models.CTMedia, true
	case "xmlhttprequest", "xhr":
		return models.CTXMLHTTPRequest, true
	case "other":
		return models.CTOther, true
	case "websocket":
		return models.CTWebSocket, true
	case "font":
		return models.CTFont, true
	case "subdocument", "frame":
		return models.CTSubdocument, true
	case "object":
		return models.CTObject, true
	case "object-subrequest":
		return models.CTObjectSubrequest, true
	case "webrtc":
		return models.CTWebRTC, true
	}
	return 0, false
}
