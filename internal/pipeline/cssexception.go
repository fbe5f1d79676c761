package pipeline

import (
	"strings"

	"github.com/bnema/safari-content-blocker/internal/models"
)

// cssBlockingCategories lists, in application order, every bucket whose
// entries are css-display-none blocking rules that a CSS exception might
// need to narrow. ignore-previous-rules cannot target a single selector on
// its own — applying it cancels every prior rule that matched the
// triggering URL, any selector included — so an exception must instead be
// pushed into the matching blocking rule's own domain scope.
var cssBlockingCategories = []models.Category{
	models.CategoryCSSBlockingWide,
	models.CategoryCSSBlockingGenericDomainSensitive,
	models.CategoryCSSBlockingDomainSensitive,
}

// ApplyCSSExceptions merges every entry in b.CSSExceptions into the
// blocking rules sharing its selector, narrowing their domain scope instead
// of leaving the exception as a separate ignore-previous-rules entry. The
// exception set is a temporary working set: it is fully consumed here,
// whether or not a given entry found a matching blocking rule — an
// unmatched exception has no selector-scoped way to express itself as a
// standalone entry, so it is dropped rather than re-emitted. A merge that
// would leave a blocking rule with both if-domain and unless-domain set is
// dropped and counted as an error, since the target engine does not allow
// that combination on one trigger.
func ApplyCSSExceptions(b *models.Buckets) {
	bySelector := make(map[string][]*models.WebKitRule)
	for _, cat := range cssBlockingCategories {
		for i := range b.Entries[cat] {
			entry := &b.Entries[cat][i]
			bySelector[entry.Action.Selector] = append(bySelector[entry.Action.Selector], entry)
		}
	}

	for _, exc := range b.CSSExceptions {
		targets := bySelector[exc.Action.Selector]
		domain := soleDomain(exc.Trigger.IfDomain)
		for _, target := range targets {
			pushExceptionDomain(target, domain)
		}
	}
	b.CSSExceptions = nil

	for _, cat := range cssBlockingCategories {
		kept := b.Entries[cat][:0]
		for _, entry := range b.Entries[cat] {
			if len(entry.Trigger.IfDomain) > 0 && len(entry.Trigger.UnlessDomain) > 0 {
				b.AddError("css rule for selector " + entry.Action.Selector + " has conflicting domain scope after exception merge")
				continue
			}
			kept = append(kept, entry)
		}
		b.Entries[cat] = kept
	}
}

func soleDomain(domains []string) string {
	if len(domains) == 0 {
		return ""
	}
	return domains[0]
}

// pushExceptionDomain appends domain to target's unless-domain scope. When
// target has a non-empty if-domain, the push only applies if at least one
// permitted domain is a substring of domain; otherwise it is skipped
// outright, since the exception's scope never reaches a permitted domain.
// A target left with both if-domain and unless-domain set is dropped as a
// conflict by the caller once every exception has been applied.
func pushExceptionDomain(target *models.WebKitRule, domain string) {
	if domain == "" {
		return
	}

	if len(target.Trigger.IfDomain) > 0 {
		applicable := false
		for _, permitted := range target.Trigger.IfDomain {
			if strings.Contains(domain, permitted) {
				applicable = true
				break
			}
		}
		if !applicable {
			return
		}
	}

	for _, d := range target.Trigger.UnlessDomain {
		if d == domain {
			return
		}
	}
	target.Trigger.UnlessDomain = append(target.Trigger.UnlessDomain, domain)
}
