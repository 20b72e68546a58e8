package synth

import (
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
)

// applyPattern runs one pattern's strategy executor against text.
//
// Executors are pure: no I/O, no randomness, no clock reads. The boolean
// is false when the pattern cannot be applied to this specific document
// (regex does not match, anchor absent, unresolved placeholder) - the
// loop skips such patterns without counting them as applied.
func applyPattern(text string, p catalogue.Pattern, res gate.Result, vars map[string]string) (string, Record, bool) {
	switch p.Strategy {
	case catalogue.StrategySuggestion:
		return applySuggestion(text, p, res)
	case catalogue.StrategyRegexReplace:
		return applyRegexReplace(text, p, res)
	case catalogue.StrategyTemplateInsert:
		return applyTemplateInsert(text, p, res, vars)
	case catalogue.StrategyReorganize:
		return applyReorganize(text, p, res, vars)
	default:
		return text, Record{}, false
	}
}

// newRecord fills the audit fields every strategy shares. GateKey is the
// key the failing gate was actually reported under, which may be a
// sub-name of the pattern's registered key.
func newRecord(p catalogue.Pattern, res gate.Result) Record {
	return Record{
		PatternID:   p.ID,
		GateKey:     res.GateKey,
		Strategy:    p.Strategy,
		Priority:    p.Priority,
		Reason:      p.Reason,
		LegalSource: p.LegalSource,
	}
}

// applySuggestion never mutates the document. It emits an advisory record
// whose after equals before (vacuously: no changes), for fixes that need
// human judgment.
func applySuggestion(text string, p catalogue.Pattern, res gate.Result) (string, Record, bool) {
	return text, newRecord(p, res), true
}

// applyRegexReplace substitutes every non-overlapping occurrence of the
// pattern's match expression in one pass. Zero occurrences means the
// pattern is inapplicable; more than one means all are replaced and the
// record captures the full before/after span list.
func applyRegexReplace(text string, p catalogue.Pattern, res gate.Result) (string, Record, bool) {
	re := p.MatchRegexp()
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text, Record{}, false
	}

	rec := newRecord(p, res)
	for _, loc := range locs {
		before := text[loc[0]:loc[1]]
		rec.Changes = append(rec.Changes, Change{
			Start:  loc[0],
			Before: before,
			After:  re.ReplaceAllString(before, p.Replace),
		})
	}

	return re.ReplaceAllString(text, p.Replace), rec, true
}
