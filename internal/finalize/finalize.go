// Package finalize concatenates a converted rule set's buckets in
// precedence order, widens domain scopes to match subdomains, enforces the
// configured rule limit, and serializes the result to content blocker JSON.
package finalize

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/safari-content-blocker/internal/domainutil"
	"github.com/bnema/safari-content-blocker/internal/models"
)

// Result is the finalized, ready-to-serialize rule set. TotalCount is the
// rule count before limit truncation (after dedup); len(Rules) is the count
// after. The two differ only when OverLimit is true.
type Result struct {
	Rules      []models.WebKitRule
	TotalCount int
	OverLimit  bool
	Errors     []string
}

// Finalize concatenates b's buckets in category order, wildcards every
// if-domain/unless-domain entry, deduplicates, and truncates to limit (a
// non-positive limit means unlimited).
func Finalize(b *models.Buckets, limit int) Result {
	rules := b.Concat()
	for i := range rules {
		wildcardDomains(rules[i].Trigger.IfDomain)
		wildcardDomains(rules[i].Trigger.UnlessDomain)
	}

	rules = Deduplicate(rules)

	res := Result{
		TotalCount: len(rules),
		Errors:     append([]string(nil), b.Errors...),
	}

	if limit > 0 && len(rules) > limit {
		res.OverLimit = true
		res.Errors = append(res.Errors, fmt.Sprintf("%d limit is achieved. Next rules will be ignored.", limit))
		rules = rules[:limit]
	}

	res.Rules = rules
	return res
}

func wildcardDomains(domains []string) {
	for i, d := range domains {
		domains[i] = domainutil.Wildcard(d)
	}
}

// MarshalJSON serializes rules as the target engine expects: a JSON array,
// tab-indented.
func MarshalJSON(rules []models.WebKitRule) ([]byte, error) {
	if rules == nil {
		rules = []models.WebKitRule{}
	}
	return json.MarshalIndent(rules, "", "\t")
}
