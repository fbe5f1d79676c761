package translator

import (
	"github.com/bnema/safari-content-blocker/internal/models"
)

// anyURLFilter is the WebKit "matches any http(s)/ws(s) URL" pattern used
// when a whitelist exception is widened to cover its whole domain.
const anyURLFilter = `^[htpsw]+:\/\/`

// applyWhiteListExceptions rewrites an ignore-previous-rules entry so it
// only cancels the narrower rule it was meant to cancel, per the three
// exception shapes: document whitelisting, a lone $urlblock/$genericblock
// option, and a lone $generichide/$elemhide option. A document whitelist
// just drops the resource-type restriction. The other two widen the entry
// to the domain of the rule's URL pattern and drop resource-type, unless
// that pattern carries a path more specific than a bare domain (or yields
// no valid domain), in which case the entry is left as translated.
func applyWhiteListExceptions(r *models.Rule, entry *models.WebKitRule) {
	switch {
	case r.IsDocumentWhiteList():
		entry.Trigger.ResourceType = nil

	case r.IsSingleOption(models.OptURLBlock), r.IsSingleOption(models.OptGenericBlock),
		r.IsSingleOption(models.OptGenericHide), r.IsSingleOption(models.OptElemHide):
		domain, hasNonTrivialPath, ok := ParseRuleDomain(r.URL.URLRuleText)
		if !ok || hasNonTrivialPath {
			return
		}
		entry.Trigger.IfDomain = []string{domain}
		entry.Trigger.UnlessDomain = nil
		entry.Trigger.URLFilter = anyURLFilter
		entry.Trigger.ResourceType = nil
	}
}
