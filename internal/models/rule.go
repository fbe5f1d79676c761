package models

import "regexp"

// Kind is the tag of the Rule sum type. Only KindURL and KindCSS advance
// past the translator; the rest are rejected with UnsupportedConstruct.
type Kind int

const (
	KindURL Kind = iota
	KindCSS
	KindScript
	KindScriptlet
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindCSS:
		return "css"
	case KindScript:
		return "script"
	case KindScriptlet:
		return "scriptlet"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Rule is the structured representation of one parsed filter-list line. It
// is a tagged variant: fields outside a Rule's Kind are left at their zero
// value and must not be consulted.
type Rule struct {
	Kind Kind

	// RuleText is the original, unmodified rule text as it appeared in the
	// source list.
	RuleText string
	// ConvertedRuleText is RuleText after upstream dialect normalization
	// (convertRule); it may equal RuleText.
	ConvertedRuleText string

	IsWhiteList bool
	IsImportant bool
	IsBadFilter bool
	// BadFilter is the rule text this rule cancels, set only when
	// IsBadFilter is true.
	BadFilter string

	URL URLRule
	CSS CSSRule
}

// URLRule holds the fields meaningful only when Kind == KindURL.
type URLRule struct {
	URLRuleText string
	URLRegExp   *regexp.Regexp
	IsRegexRule bool

	PermittedContentType  ContentType
	RestrictedContentType ContentType
	EnabledOptions        Options

	IsThirdParty      bool
	IsCheckThirdParty bool
	IsMatchCase       bool
	IsBlockPopups     bool
	IsCsp             bool
	HasReplace        bool

	// documentModifier records that this rule carried the $document
	// modifier (which implies the full optDocument option set); it backs
	// Rule.IsDocumentWhiteList.
	documentModifier bool

	PermittedDomain   string
	PermittedDomains  []string
	RestrictedDomain  string
	RestrictedDomains []string
}

// CSSRule holds the fields meaningful only when Kind == KindCSS.
type CSSRule struct {
	CSSSelector  string
	IsInjectRule bool
	ExtendedCSS  bool

	Domain   string
	Domains  []string
	Excluded []string
}

// SetDocumentModifier marks the rule as carrying the $document modifier,
// implying the full optDocument option set on top of whatever the builder
// already enabled explicitly.
func (r *Rule) SetDocumentModifier() {
	r.URL.documentModifier = true
	r.URL.EnabledOptions |= optDocument
}

// IsDocumentWhiteList reports whether this is a whitelist rule that carried
// the $document modifier.
func (r *Rule) IsDocumentWhiteList() bool {
	return r.IsWhiteList && r.URL.documentModifier
}

// IsCspRule reports whether this rule carries an (unsupported) $csp
// modifier.
func (r *Rule) IsCspRule() bool { return r.URL.IsCsp }

// GetReplace reports whether this rule carries an (unsupported) $replace
// modifier.
func (r *Rule) GetReplace() bool { return r.URL.HasReplace }

// IsSingleOption reports whether EnabledOptions is exactly option — exact
// equality, not a subset test (see models.Options).
func (r *Rule) IsSingleOption(option Options) bool {
	return r.URL.EnabledOptions == option
}

// IncludedDomains returns the permitted-domain set, combining the singular
// and plural accessors and skipping empty entries.
func (r *Rule) IncludedDomains() []string {
	return joinDomains(r.URL.PermittedDomain, r.URL.PermittedDomains)
}

// ExcludedDomains returns the restricted-domain set, combining the singular
// and plural accessors and skipping empty entries.
func (r *Rule) ExcludedDomains() []string {
	return joinDomains(r.URL.RestrictedDomain, r.URL.RestrictedDomains)
}

func joinDomains(single string, plural []string) []string {
	out := make([]string, 0, len(plural)+1)
	if single != "" {
		out = append(out, single)
	}
	for _, d := range plural {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}
