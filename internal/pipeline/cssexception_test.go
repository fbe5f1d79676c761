package pipeline

import (
	"testing"

	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestApplyCSSExceptions_NarrowsWideRule(t *testing.T) {
	var b models.Buckets
	b.Add(models.CategoryCSSBlockingWide, models.WebKitRule{
		Trigger: models.WebKitTrigger{URLFilter: models.AnyURLFilter},
		Action:  models.WebKitAction{Type: models.ActionCSSDisplayNone, Selector: ".ad"},
	})
	b.CSSExceptions = append(b.CSSExceptions, models.WebKitRule{
		Trigger: models.WebKitTrigger{URLFilter: models.AnyURLFilter, IfDomain: []string{"example.com"}},
		Action:  models.WebKitAction{Type: models.ActionIgnorePreviousRule, Selector: ".ad"},
	})

	ApplyCSSExceptions(&b)

	assert.Empty(t, b.CSSExceptions)
	wide := b.Entries[models.CategoryCSSBlockingWide]
	assert.Len(t, wide, 1)
	assert.Equal(t, []string{"example.com"}, wide[0].Trigger.UnlessDomain)
}

func TestApplyCSSExceptions_NoMatchVanishes(t *testing.T) {
	var b models.Buckets
	b.CSSExceptions = append(b.CSSExceptions, models.WebKitRule{
		Trigger: models.WebKitTrigger{URLFilter: models.AnyURLFilter, IfDomain: []string{"example.com"}},
		Action:  models.WebKitAction{Type: models.ActionIgnorePreviousRule, Selector: ".nomatch"},
	})

	ApplyCSSExceptions(&b)

	assert.Empty(t, b.CSSExceptions)
	for _, cat := range cssBlockingCategories {
		assert.Empty(t, b.Entries[cat])
	}
	assert.Empty(t, b.Errors)
}

func TestApplyCSSExceptions_ScopedExceptionDropsMatchingRule(t *testing.T) {
	var b models.Buckets
	b.Add(models.CategoryCSSBlockingDomainSensitive, models.WebKitRule{
		Trigger: models.WebKitTrigger{URLFilter: models.AnyURLFilter, IfDomain: []string{"example.com"}},
		Action:  models.WebKitAction{Type: models.ActionCSSDisplayNone, Selector: ".ad"},
	})
	b.CSSExceptions = append(b.CSSExceptions, models.WebKitRule{
		Trigger: models.WebKitTrigger{URLFilter: models.AnyURLFilter, IfDomain: []string{"example.com"}},
		Action:  models.WebKitAction{Type: models.ActionIgnorePreviousRule, Selector: ".ad"},
	})

	ApplyCSSExceptions(&b)

	assert.Empty(t, b.Entries[models.CategoryCSSBlockingDomainSensitive])
	assert.Len(t, b.Errors, 1)
}

func TestApplyCSSExceptions_ConflictDropsRuleAsError(t *testing.T) {
	var b models.Buckets
	b.Add(models.CategoryCSSBlockingDomainSensitive, models.WebKitRule{
		Trigger: models.WebKitTrigger{URLFilter: models.AnyURLFilter, IfDomain: []string{"example.com"}, UnlessDomain: []string{"other.com"}},
		Action:  models.WebKitAction{Type: models.ActionCSSDisplayNone, Selector: ".ad"},
	})

	ApplyCSSExceptions(&b)

	assert.Empty(t, b.Entries[models.CategoryCSSBlockingDomainSensitive])
	assert.Len(t, b.Errors, 1)
}
