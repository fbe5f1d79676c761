package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRuleDomain(t *testing.T) {
	cases := []struct {
		name         string
		text         string
		wantDomain   string
		wantNonTriv  bool
		wantOK       bool
	}{
		{"plain domain", "||example.com^", "example.com", false, true},
		{"bare domain", "example.com", "example.com", false, true},
		{"with scheme", "https://www.example.com^", "example.com", false, true},
		{"with path", "||example.com/ads/banner.js", "example.com", true, true},
		{"domain option", "||ads.example.com^$domain=example.com", "example.com", false, true},
		{"invalid domain", "||*", "", false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			domain, nonTrivial, ok := ParseRuleDomain(c.text)
			assert.Equal(t, c.wantOK, ok)
			if ok {
				assert.Equal(t, c.wantDomain, domain)
				assert.Equal(t, c.wantNonTriv, nonTrivial)
			}
		})
	}
}
