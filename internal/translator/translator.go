// Package translator converts a single models.Rule into a models.WebKitRule
// output entry, enforcing the target engine's restrictions and rejecting
// unsupported rule shapes.
package translator

import (
	"github.com/AdguardTeam/golibs/errors"
	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/bnema/safari-content-blocker/internal/regexconf"
	"github.com/bnema/safari-content-blocker/internal/regexvalidate"
	"github.com/bnema/safari-content-blocker/internal/trigger"
)

// Sentinel translation-rejection causes.
const (
	ErrInjectRule         errors.Error = "CSS injection rules are not supported"
	ErrExtendedCSS        errors.Error = "extended CSS rules are not supported"
	ErrCspRule            errors.Error = "$csp rules are not supported"
	ErrReplaceRule        errors.Error = "$replace rules are not supported"
	ErrLegacyContentType  errors.Error = "legacy content type as the sole permitted type is not supported"
	ErrSoleJsInject       errors.Error = "$jsinject as the sole enabled option is not supported"
	ErrDocumentBlockScope errors.Error = "document-blocking rule requires if-domain or third-party load-type"
	ErrUnsupportedKind    errors.Error = "rule kind is not translatable"
)

// TranslateCSS translates a cosmetic rule into a css-display-none (or, for
// a whitelist exception, ignore-previous-rules) output entry.
func TranslateCSS(r *models.Rule) (models.WebKitRule, error) {
	if r.CSS.IsInjectRule {
		return models.WebKitRule{}, errors.Annotate(ErrInjectRule, "rule %q: %w", r.RuleText)
	}
	if r.CSS.ExtendedCSS {
		return models.WebKitRule{}, errors.Annotate(ErrExtendedCSS, "rule %q: %w", r.RuleText)
	}

	entry := models.WebKitRule{
		Trigger: models.WebKitTrigger{URLFilter: models.AnyURLFilter},
		Action: models.WebKitAction{
			Type:     models.ActionCSSDisplayNone,
			Selector: r.CSS.CSSSelector,
		},
	}

	if r.IsWhiteList {
		entry.Action.Type = models.ActionIgnorePreviousRule
	}

	ifDomain, unlessDomain, err := trigger.Domains(r.CSS.Domains, r.CSS.Excluded)
	if err != nil {
		return models.WebKitRule{}, errors.Annotate(err, "rule %q: %w", r.RuleText)
	}
	entry.Trigger.IfDomain = ifDomain
	entry.Trigger.UnlessDomain = unlessDomain

	return entry, nil
}

// TranslateURL translates a network rule into a block (or, for a whitelist
// exception, ignore-previous-rules) output entry.
func TranslateURL(r *models.Rule) (models.WebKitRule, error) {
	if r.IsCspRule() {
		return models.WebKitRule{}, errors.Annotate(ErrCspRule, "rule %q: %w", r.RuleText)
	}
	if r.GetReplace() {
		return models.WebKitRule{}, errors.Annotate(ErrReplaceRule, "rule %q: %w", r.RuleText)
	}
	if isSoleLegacyType(r.URL.PermittedContentType) {
		return models.WebKitRule{}, errors.Annotate(ErrLegacyContentType, "rule %q: %w", r.RuleText)
	}
	if r.IsSingleOption(models.OptJSInject) {
		return models.WebKitRule{}, errors.Annotate(ErrSoleJsInject, "rule %q: %w", r.RuleText)
	}

	urlFilter := trigger.URLFilter(r, regexconf.Current())
	if err := regexvalidate.Validate(urlFilter); err != nil {
		return models.WebKitRule{}, errors.Annotate(err, "rule %q: %w", r.RuleText)
	}

	entry := models.WebKitRule{
		Trigger: models.WebKitTrigger{URLFilter: urlFilter},
		Action:  models.WebKitAction{Type: models.ActionBlock},
	}

	if r.IsWhiteList {
		entry.Action.Type = models.ActionIgnorePreviousRule
	}

	entry.Trigger.ResourceType = trigger.ResourceTypes(r)
	entry.Trigger.LoadType = trigger.LoadType(r)

	if r.URL.IsMatchCase {
		t := true
		entry.Trigger.URLFilterIsCaseSensitive = &t
	}

	ifDomain, unlessDomain, err := trigger.Domains(r.IncludedDomains(), r.ExcludedDomains())
	if err != nil {
		return models.WebKitRule{}, errors.Annotate(err, "rule %q: %w", r.RuleText)
	}
	entry.Trigger.IfDomain = ifDomain
	entry.Trigger.UnlessDomain = unlessDomain

	if entry.Action.Type == models.ActionIgnorePreviousRule {
		applyWhiteListExceptions(r, &entry)
	}

	if err := validateDocumentBlockingScope(&entry); err != nil {
		return models.WebKitRule{}, errors.Annotate(err, "rule %q: %w", r.RuleText)
	}

	return entry, nil
}

// isSoleLegacyType reports whether ct is exactly one of the legacy
// Chromium/Gecko-only types that have no WebKit resource-type equivalent.
func isSoleLegacyType(ct models.ContentType) bool {
	return ct.IsExactly(models.CTObject) ||
		ct.IsExactly(models.CTObjectSubrequest) ||
		ct.IsExactly(models.CTWebRTC)
}

// validateDocumentBlockingScope enforces the §3 invariant: a block entry
// whose resource-type contains "document" must also carry if-domain or a
// third-party load-type.
func validateDocumentBlockingScope(entry *models.WebKitRule) error {
	if entry.Action.Type != models.ActionBlock {
		return nil
	}

	var hasDocument bool
	for _, rt := range entry.Trigger.ResourceType {
		if rt == models.ResourceDocument {
			hasDocument = true
			break
		}
	}
	if !hasDocument {
		return nil
	}

	if len(entry.Trigger.IfDomain) > 0 {
		return nil
	}
	for _, lt := range entry.Trigger.LoadType {
		if lt == models.LoadThirdParty {
			return nil
		}
	}

	return ErrDocumentBlockScope
}
