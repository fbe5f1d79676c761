package pipeline

import "github.com/bnema/safari-content-blocker/internal/models"

// maxCompactedSelectors is the largest number of selectors the target
// engine accepts joined by a comma in one css-display-none rule.
const maxCompactedSelectors = 250

// CompactWide merges CategoryCSSBlockingWide's many single-selector entries
// into as few combined entries as possible, each joining up to
// maxCompactedSelectors selectors with a comma. Entries that an exception
// merge gave an unless-domain scope are not combined: they move to
// CategoryCSSBlockingGenericDomainSensitive unchanged. When optimize is true
// the remaining unscoped wide entries are dropped instead, trading generic
// cosmetic hiding for a smaller output file.
func CompactWide(b *models.Buckets, optimize bool) {
	var entries []models.WebKitRule
	for _, e := range b.Entries[models.CategoryCSSBlockingWide] {
		if len(e.Trigger.IfDomain) > 0 || len(e.Trigger.UnlessDomain) > 0 {
			b.Add(models.CategoryCSSBlockingGenericDomainSensitive, e)
			continue
		}
		entries = append(entries, e)
	}
	if optimize || len(entries) == 0 {
		b.Entries[models.CategoryCSSBlockingWide] = nil
		return
	}

	var compacted []models.WebKitRule
	for i := 0; i < len(entries); i += maxCompactedSelectors {
		end := i + maxCompactedSelectors
		if end > len(entries) {
			end = len(entries)
		}
		compacted = append(compacted, combine(entries[i:end]))
	}

	b.Entries[models.CategoryCSSBlockingWide] = compacted
}

func combine(group []models.WebKitRule) models.WebKitRule {
	selectors := make([]string, len(group))
	for i, e := range group {
		selectors[i] = e.Action.Selector
	}

	out := group[0]
	out.Action.Selector = joinSelectors(selectors)
	return out
}

func joinSelectors(selectors []string) string {
	total := 0
	for _, s := range selectors {
		total += len(s) + 1
	}
	out := make([]byte, 0, total)
	for i, s := range selectors {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, s...)
	}
	return string(out)
}
