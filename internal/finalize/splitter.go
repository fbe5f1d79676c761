package finalize

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/safari-content-blocker/internal/models"
)

// MaxRulesPerFile is the target engine's hard limit on entries in a single
// content blocker JSON list.
const MaxRulesPerFile = 50000

// Splitter divides a converted rule set across multiple files once it
// exceeds the target engine's per-file entry limit.
type Splitter struct {
	maxRules int
}

// NewSplitter creates a Splitter with the given per-file rule cap. A
// non-positive maxRules falls back to MaxRulesPerFile.
func NewSplitter(maxRules int) *Splitter {
	if maxRules <= 0 {
		maxRules = MaxRulesPerFile
	}
	return &Splitter{maxRules: maxRules}
}

// Split divides rules into one or more named chunks. A rule set at or
// under the cap is returned as a single chunk named baseName.
func (s *Splitter) Split(rules []models.WebKitRule, baseName string) map[string][]models.WebKitRule {
	result := make(map[string][]models.WebKitRule)

	if len(rules) <= s.maxRules {
		result[baseName] = rules
		return result
	}

	numParts := (len(rules) + s.maxRules - 1) / s.maxRules
	for i := 0; i < numParts; i++ {
		start := i * s.maxRules
		end := start + s.maxRules
		if end > len(rules) {
			end = len(rules)
		}
		result[fmt.Sprintf("%s-part%d", baseName, i+1)] = rules[start:end]
	}

	return result
}

// Deduplicate drops rules whose whole trigger and action exactly match an
// earlier rule's.
func Deduplicate(rules []models.WebKitRule) []models.WebKitRule {
	seen := make(map[string]bool, len(rules))
	result := make([]models.WebKitRule, 0, len(rules))

	for _, r := range rules {
		data, err := json.Marshal(r)
		if err != nil {
			result = append(result, r)
			continue
		}
		key := string(data)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, r)
	}

	return result
}
