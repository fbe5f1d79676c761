package translator

import (
	"regexp"
	"strings"

	"github.com/bnema/safari-content-blocker/internal/domainutil"
)

// domainPrefixes are stripped, in order, from the start of a rule's URL
// text before the domain/path split in ParseRuleDomain.
var domainPrefixes = []string{
	"http://www.",
	"https://www.",
	"http://",
	"https://",
	"||",
	"//",
}

// reValidDomain validates a candidate domain.
var reValidDomain = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-.]*[a-zA-Z0-9]\.[a-zA-Z-]{2,}$`)

// ParseRuleDomain extracts the domain (and, separately, whether the rule
// carries a non-trivial path) from a url rule's text. ok is false when no
// valid domain could be parsed.
func ParseRuleDomain(ruleText string) (domain string, hasNonTrivialPath bool, ok bool) {
	start := 0
	if idx := strings.Index(ruleText, "$"); idx != -1 {
		if domIdx := strings.Index(ruleText[idx:], "domain="); domIdx != -1 {
			start = idx + domIdx + len("domain=")
		}
	}

	s := ruleText[start:]
	if start == 0 {
		for _, prefix := range domainPrefixes {
			if strings.HasPrefix(s, prefix) {
				s = s[len(prefix):]
				break
			}
		}
	}

	term := strings.IndexAny(s, "/^")
	var path string
	if term == -1 {
		domain = s
		path = ""
		hasNonTrivialPath = false
	} else {
		domain = s[:term]
		path = s[term:]
		hasNonTrivialPath = path != "" && path != "^" && path != "/"
	}

	if !reValidDomain.MatchString(domain) {
		return "", false, false
	}

	return domainutil.Normalize(domain), hasNonTrivialPath, true
}
