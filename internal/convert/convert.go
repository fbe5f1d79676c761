// Package convert wires the builder, pipeline, exception/compaction and
// finalize stages together into the two entry points the CLI and any future
// caller use: converting a whole filter list, or a single line.
package convert

import (
	"github.com/AdguardTeam/golibs/log"
	"github.com/bnema/safari-content-blocker/internal/agrule"
	"github.com/bnema/safari-content-blocker/internal/finalize"
	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/bnema/safari-content-blocker/internal/pipeline"
	"github.com/bnema/safari-content-blocker/internal/regexconf"
	"github.com/bnema/safari-content-blocker/internal/translator"
)

// Summary is the aggregate outcome of one conversion run, suitable for a
// CLI run manifest.
type Summary struct {
	TotalCount     int
	ConvertedCount int
	ErrorsCount    int
	OverLimit      bool
	Errors         []string
	Rules          []models.WebKitRule
}

// ConvertArray builds, routes and finalizes every line in lines into a
// ready-to-serialize Summary. regexConf, when the zero value, falls back to
// regexconf.Default.
func ConvertArray(lines []string, limit int, optimize bool, regexConf regexconf.Config) Summary {
	if (regexConf == regexconf.Config{}) {
		regexConf = regexconf.Default
	}
	restore := regexconf.Begin(regexConf)
	defer restore()

	builder := agrule.New()
	rules := make([]*models.Rule, 0, len(lines))
	for _, line := range lines {
		r, err := builder.CreateRule(line)
		if err != nil {
			log.Errorf("convert: skipping line %q: %s", line, err)
			continue
		}
		if r == nil {
			continue
		}
		if r.Kind != models.KindURL && r.Kind != models.KindCSS {
			continue
		}
		rules = append(rules, r)
	}

	result := pipeline.Run(rules)
	pipeline.ApplyCSSExceptions(&result.Buckets)
	pipeline.CompactWide(&result.Buckets, optimize)

	final := finalize.Finalize(&result.Buckets, limit)

	stats := builder.Stats()
	log.Infof("convert: parsed %d lines, %d network, %d cosmetic, %d comments, %d unsupported",
		stats.Total, stats.Network, stats.Cosmetic, stats.Comments, stats.Unsupported)

	return Summary{
		TotalCount:     final.TotalCount,
		ConvertedCount: len(final.Rules),
		ErrorsCount:    len(final.Errors),
		OverLimit:      final.OverLimit,
		Errors:         final.Errors,
		Rules:          final.Rules,
	}
}

// ConvertLine translates a single filter-list line into its output entry,
// or returns (nil, nil, false) for lines that carry no translatable rule
// (comments, scriptlets, unsupported constructs).
func ConvertLine(line string) (entry *models.WebKitRule, err error, ok bool) {
	builder := agrule.New()
	r, parseErr := builder.CreateRule(line)
	if parseErr != nil {
		return nil, parseErr, false
	}
	if r == nil {
		return nil, nil, false
	}

	switch r.Kind {
	case models.KindCSS:
		e, translateErr := translator.TranslateCSS(r)
		if translateErr != nil {
			return nil, translateErr, false
		}
		return &e, nil, true
	case models.KindURL:
		e, translateErr := translator.TranslateURL(r)
		if translateErr != nil {
			return nil, translateErr, false
		}
		return &e, nil, true
	default:
		return nil, nil, false
	}
}
