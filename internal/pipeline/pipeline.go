// Package pipeline turns a stream of agrule.Builder output into a
// models.Buckets ready for the css exception/compaction and finalize
// stages: it drops rules cancelled by a $badfilter, translates every
// surviving rule, and routes each translated entry into its precedence
// category.
package pipeline

import (
	"github.com/AdguardTeam/golibs/log"
	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/bnema/safari-content-blocker/internal/translator"
)

// Result is the outcome of running a batch of rules through the pipeline.
type Result struct {
	Buckets        models.Buckets
	ConvertedCount int
	ErrorsCount    int
}

// Run partitions rules by $badfilter, translates every surviving rule, and
// routes each translated entry into its bucket. It never returns an error;
// per-rule failures are recorded in Buckets.Errors and counted.
func Run(rules []*models.Rule) Result {
	var res Result

	cancelled := make(map[string]bool)
	for _, r := range rules {
		if r.IsBadFilter {
			cancelled[r.BadFilter] = true
		}
	}

	for _, r := range rules {
		if r.IsBadFilter {
			log.Infof("pipeline: %q cancels %q via $badfilter", r.RuleText, r.BadFilter)
			continue
		}
		if cancelled[r.ConvertedRuleText] || cancelled[r.RuleText] {
			log.Infof("pipeline: %q dropped by a $badfilter rule", r.RuleText)
			continue
		}

		entry, cat, isException, err := translate(r)
		if err != nil {
			res.Buckets.AddError(err.Error())
			res.ErrorsCount++
			continue
		}

		if isException {
			res.Buckets.CSSExceptions = append(res.Buckets.CSSExceptions, entry)
		} else {
			res.Buckets.Add(cat, entry)
		}
		res.ConvertedCount++
	}

	return res
}

// translate dispatches a rule to its translator and, on success, reports
// where its entry belongs: a final category, or (isException) the temporary
// CSS-exception set the CSS Exception Applier consumes.
func translate(r *models.Rule) (entry models.WebKitRule, cat models.Category, isException bool, err error) {
	switch r.Kind {
	case models.KindCSS:
		entry, err = translator.TranslateCSS(r)
		if err != nil {
			return models.WebKitRule{}, 0, false, err
		}
		if r.IsWhiteList {
			return entry, 0, true, nil
		}
		return entry, cssCategory(r), false, nil

	case models.KindURL:
		entry, err = translator.TranslateURL(r)
		if err != nil {
			return models.WebKitRule{}, 0, false, err
		}
		return entry, urlCategory(r), false, nil

	default:
		return models.WebKitRule{}, 0, false, translator.ErrUnsupportedKind
	}
}

// cssCategory classifies a non-whitelist cosmetic rule by its domain scope.
// CSS-kind rules never carry enabledOptions (that bitmask is populated only
// by network-rule modifiers), so generichide/elemhide sole-option routing
// never applies here; whitelist cosmetic rules are routed to the temporary
// exception set by translate before this function is reached.
func cssCategory(r *models.Rule) models.Category {
	switch {
	case len(r.CSS.Domains) == 0 && len(r.CSS.Excluded) == 0:
		return models.CategoryCSSBlockingWide
	case len(r.CSS.Domains) == 0:
		return models.CategoryCSSBlockingGenericDomainSensitive
	default:
		return models.CategoryCSSBlockingDomainSensitive
	}
}

// urlCategory classifies a translated network rule. Non-whitelist rules
// only ever produce a block action, so they resolve on isImportant alone.
// Whitelist rules resolve to an ignore-previous-rules action and are
// checked, in order, for the sole-option CSS rewrites before falling back to
// the importantExceptions/documentExceptions/other tier.
func urlCategory(r *models.Rule) models.Category {
	if !r.IsWhiteList {
		if r.IsImportant {
			return models.CategoryImportant
		}
		return models.CategoryURLBlocking
	}

	switch {
	case r.IsSingleOption(models.OptGenericHide):
		return models.CategoryCSSBlockingGenericHideExceptions
	case r.IsSingleOption(models.OptElemHide):
		return models.CategoryCSSElemhide
	case r.IsImportant:
		return models.CategoryImportantExceptions
	case r.IsDocumentWhiteList():
		return models.CategoryDocumentExceptions
	default:
		return models.CategoryOther
	}
}
