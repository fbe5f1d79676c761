// Package agrule parses AdGuard/uBlock-style filter-list text into the
// structured models.Rule representation, classifying each line as a
// network rule, a cosmetic rule, or one of several unsupported shapes.
package agrule

import (
	"strings"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/bnema/safari-content-blocker/internal/domainutil"
	"github.com/bnema/safari-content-blocker/internal/models"
)

// Sentinel parse errors. These are distinct from the translator's rejection
// errors (package translator): a ParseError means the builder could not
// make sense of the line at all, before any rule-shape semantics apply.
const (
	ErrMalformedOption errors.Error = "malformed rule option"
	ErrEmptyCSSRule    errors.Error = "cosmetic rule has no selector"
)

// Stats tracks builder-level outcomes across every CreateRule call on one
// Builder.
type Stats struct {
	Total       int
	Network     int
	Exception   int
	Cosmetic    int
	Comments    int
	Unsupported int
	SkipReasons map[string]int
}

// Skip reason labels, surfaced in Stats.SkipReasons.
const (
	SkipScriptlet      = "scriptlet (##+js)"
	SkipHTMLFilter     = "html-filter (##^)"
	SkipScriptInject   = "script-inject (#%#)"
	SkipContentMask    = "content-rule-mask ($$/$@$)"
	SkipProcedural     = "procedural (:has, :xpath, etc)"
	SkipMalformedOpt   = "malformed-option"
	SkipBlankOrComment = "blank-or-comment"
)

// Builder turns filter-list lines into Rule values one at a time, tracking
// aggregate Stats for the CLI-facing run summary.
type Builder struct {
	stats Stats
}

// New creates a Builder.
func New() *Builder {
	return &Builder{stats: Stats{SkipReasons: make(map[string]int)}}
}

// Stats returns the builder's running statistics.
func (b *Builder) Stats() Stats { return b.stats }

func (b *Builder) skip(reason string) {
	b.stats.Unsupported++
	b.stats.SkipReasons[reason]++
}

// CreateRule parses one filter-list line. It returns (nil, nil) for
// comments, blank lines, lines beginning with a space, lines containing
// " - ", and constructs the builder considers entirely opaque (uBO HTML
// filters, script injection, content-rule masks) — none of these are
// ParseErrors, they are simply not rules. A non-nil error means the line
// looked like a rule but could not be parsed.
func (b *Builder) CreateRule(text string) (*models.Rule, error) {
	b.stats.Total++

	if isSilentlySkipped(text) {
		b.stats.Comments++
		b.skip(SkipBlankOrComment)
		return nil, nil
	}

	line := strings.TrimSpace(text)

	if strings.Contains(line, "##^") || strings.Contains(line, "#@#^") {
		b.skip(SkipHTMLFilter)
		return nil, nil
	}
	if strings.Contains(line, "#%#") {
		b.skip(SkipScriptInject)
		return nil, nil
	}
	if strings.Contains(line, "$$") || strings.Contains(line, "$@$") {
		b.skip(SkipContentMask)
		return nil, nil
	}

	if strings.Contains(line, "##+js(") || strings.Contains(line, "#@#+js(") {
		b.skip(SkipScriptlet)
		return &models.Rule{
			Kind:        models.KindScriptlet,
			RuleText:    line,
			IsWhiteList: strings.Contains(line, "#@#"),
		}, nil
	}

	if containsProcedural(line) {
		b.skip(SkipProcedural)
		return nil, nil
	}

	if idx := strings.Index(line, "##"); idx != -1 && !strings.Contains(line, "#@#") {
		return b.parseCosmetic(line, idx, false)
	}
	if idx := strings.Index(line, "#@#"); idx != -1 {
		return b.parseCosmetic(line, idx, true)
	}

	if strings.HasPrefix(line, "@@") {
		return b.parseNetwork(line, line[2:], true)
	}

	return b.parseNetwork(line, line, false)
}

func isSilentlySkipped(text string) bool {
	if strings.HasPrefix(text, " ") {
		return true
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, "!") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	if strings.Contains(text, " - ") {
		return true
	}
	return false
}

func containsProcedural(line string) bool {
	procedural := []string{
		":has(", ":has-text(", ":xpath(", ":matches-css(",
		":matches-attr(", ":min-text-length(", ":not(",
		":upward(", ":remove(", ":style(",
	}
	for _, p := range procedural {
		if strings.Contains(line, p) {
			return true
		}
	}
	return false
}

func (b *Builder) parseCosmetic(line string, sepIdx int, isException bool) (*models.Rule, error) {
	separator := "##"
	if isException {
		separator = "#@#"
	}

	selector := line[sepIdx+len(separator):]
	if selector == "" {
		b.skip(SkipMalformedOpt)
		return nil, errors.Annotate(ErrEmptyCSSRule, "rule %q: %w", line)
	}

	var include, exclude []string
	if sepIdx > 0 {
		for _, d := range parseDomainList(line[:sepIdx]) {
			if strings.HasPrefix(d, "~") {
				exclude = append(exclude, domainutil.Normalize(d[1:]))
			} else {
				include = append(include, domainutil.Normalize(d))
			}
		}
	}

	b.stats.Cosmetic++

	rule := &models.Rule{
		Kind:        models.KindCSS,
		RuleText:    line,
		IsWhiteList: isException,
		CSS: models.CSSRule{
			CSSSelector: selector,
			Domain:      "",
			Domains:     include,
			Excluded:    exclude,
		},
	}
	rule.ConvertedRuleText = rule.RuleText

	return rule, nil
}

func parseDomainList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	domains := make([]string, 0, len(parts))
	for _, d := range parts {
		d = strings.TrimSpace(d)
		if d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}
