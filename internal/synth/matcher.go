package synth

import (
	"sort"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
)

// candidate pairs an applicable pattern with the failing result that
// selected it. The result supplies match context (spans, message) to the
// strategy executor.
type candidate struct {
	pattern catalogue.Pattern
	result  gate.Result
}

// matchPatterns resolves catalogue entries for the current failing set.
//
// Candidates are flattened across all failing gates, de-duplicated by
// pattern ID (a pattern selected by two gates applies once per
// iteration), and sorted by (priority, pattern ID). Failing gates with no
// catalogue entry come back as uncovered keys.
//
// The failing slice must already be in a deterministic order; the caller
// keeps it sorted by gate key.
func matchPatterns(cat *catalogue.Catalogue, failing []gate.Result) (cands []candidate, uncovered []string) {
	seen := make(map[string]bool)

	for _, res := range failing {
		patterns := cat.Lookup(res.GateKey)
		if len(patterns) == 0 {
			uncovered = append(uncovered, res.GateKey)
			continue
		}
		for _, p := range patterns {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			cands = append(cands, candidate{pattern: p, result: res})
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].pattern.Priority != cands[j].pattern.Priority {
			return cands[i].pattern.Priority < cands[j].pattern.Priority
		}
		return cands[i].pattern.ID < cands[j].pattern.ID
	})
	return cands, uncovered
}
