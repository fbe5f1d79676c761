// Package regexconf holds the regex-building configuration used while
// building url-filter patterns: regexStartUrl and regexSeparator are
// swapped in for the duration of one conversion run and restored on every
// exit path, mirroring how the upstream rule engine this logic was adapted
// from keeps them as shared mutable state.
//
// Package convert saves, installs and restores a Config around each
// conversion. trigger.URLFilter takes the Config as an explicit parameter,
// but translator.TranslateURL supplies it from Current(), so a conversion
// run does read the guarded global below.
package regexconf

import "sync"

// Config is the pair of regex-construction constants used by
// trigger.URLFilter.
type Config struct {
	RegexStartURL string
	RegexSeparator string
}

// Default is the fixed configuration used outside of any explicit override.
var Default = Config{
	RegexStartURL:  `^[htpsw]+:\/\/([a-z0-9-]+\.)?`,
	RegexSeparator: `[/:&?]?`,
}

var (
	mu      sync.Mutex
	current = Default
)

// Begin installs conf as the process-wide configuration and returns a
// restore function that must be deferred immediately so the previous
// configuration is restored on every exit path, including a panic — this is
// the guarded scope a conversion run requires. Concurrent conversion runs
// are disallowed for the duration between Begin and the returned restore.
func Begin(conf Config) (restore func()) {
	mu.Lock()
	previous := current
	current = conf
	return func() {
		current = previous
		mu.Unlock()
	}
}

// Current returns the active call-scoped configuration. Outside any Begin
// scope it is Default.
func Current() Config {
	return current
}
