// Package domainutil normalizes filter-rule domain strings into the
// lowercase, punycode form the target content-blocker engine requires for
// if-domain/unless-domain hosts.
package domainutil

import (
	"strings"

	"golang.org/x/net/idna"
)

// profile is shared across calls; idna.Profile values are safe for
// concurrent use.
var profile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(true),
)

// Normalize lowercases and punycodes a single domain. Filter lists routinely
// carry internationalized domains (Cyrillic, CJK TLDs) that the WebKit
// engine cannot match against directly, so every domain reaching an
// if-domain/unless-domain list goes through this first.
//
// On an encoding error (malformed label) the lowercased input is returned
// unchanged rather than failing the whole rule: a slightly-wrong domain
// scope is preferable to dropping an otherwise-valid rule over one bad host.
func Normalize(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return ""
	}

	ascii, err := profile.ToASCII(domain)
	if err != nil {
		return domain
	}

	return ascii
}

// NormalizeAll applies Normalize to each domain, skipping empty results.
func NormalizeAll(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		if n := Normalize(d); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Wildcard prefixes a normalized domain with "*" for the finalizer's
// domain-wildcard pass, unless it already carries a "*" prefix.
func Wildcard(domain string) string {
	if strings.HasPrefix(domain, "*") {
		return domain
	}
	return "*" + domain
}
