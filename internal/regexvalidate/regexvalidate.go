// Package regexvalidate enforces the target content-blocker engine's regex
// dialect restrictions. Each violation raises a distinct, precise error so
// the pipeline can log exactly why a rule's url-filter was rejected.
package regexvalidate

import (
	"regexp"

	"github.com/AdguardTeam/golibs/errors"
)

// Sentinel RegexRejected causes, one per dialect restriction.
const (
	ErrQuantifierBraces      errors.Error = "regex contains unsupported quantifier braces"
	ErrUnescapedAlternation  errors.Error = "regex contains unescaped alternation"
	ErrNonASCII              errors.Error = "regex contains non-ASCII characters"
	ErrNegativeLookahead     errors.Error = "regex contains negative lookahead"
	ErrUnsupportedMetachar   errors.Error = "regex contains an unsupported metacharacter"
)

var (
	reQuantifierBraces     = regexp.MustCompile(`\{[0-9,]+\}`)
	reUnescapedAlternation = regexp.MustCompile(`[^\\]+\|+\S*`)
	reNonASCII             = regexp.MustCompile(`[^\x00-\x7F]`)
	reNegativeLookahead    = regexp.MustCompile(`\(\?!.*\)`)
	reUnsupportedMetachar  = regexp.MustCompile(`[^\\]\\[bBdDfnrsStvwW]`)
)

// Validate checks pattern against every dialect restriction and returns the
// first violation found, annotated with the offending pattern.
func Validate(pattern string) error {
	switch {
	case reQuantifierBraces.MatchString(pattern):
		return errors.Annotate(ErrQuantifierBraces, "pattern %q: %w", pattern)
	case reUnescapedAlternation.MatchString(pattern):
		return errors.Annotate(ErrUnescapedAlternation, "pattern %q: %w", pattern)
	case reNonASCII.MatchString(pattern):
		return errors.Annotate(ErrNonASCII, "pattern %q: %w", pattern)
	case reNegativeLookahead.MatchString(pattern):
		return errors.Annotate(ErrNegativeLookahead, "pattern %q: %w", pattern)
	case reUnsupportedMetachar.MatchString(pattern):
		return errors.Annotate(ErrUnsupportedMetachar, "pattern %q: %w", pattern)
	default:
		return nil
	}
}
