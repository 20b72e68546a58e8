package synth

import (
	"fmt"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/canon"
)

// OutputHash canonicalizes the ordered correction trail plus the final
// text and hashes them under the synthesis domain.
//
// Field order inside each record is fixed by canonical JSON key sorting;
// record order is the application order, which the loop guarantees is
// deterministic. No timestamps, no run tokens, no map iteration order.
func OutputHash(records []Record, finalText string) (string, error) {
	recs := make([]any, len(records))
	for i, r := range records {
		changes := make([]any, len(r.Changes))
		for j, ch := range r.Changes {
			changes[j] = map[string]any{
				"start":  ch.Start,
				"before": ch.Before,
				"after":  ch.After,
			}
		}
		recs[i] = map[string]any{
			"pattern_id":   r.PatternID,
			"gate_key":     r.GateKey,
			"strategy":     string(r.Strategy),
			"priority":     r.Priority,
			"reason":       r.Reason,
			"legal_source": r.LegalSource,
			"changes":      changes,
		}
	}

	data, err := canon.Marshal(map[string]any{
		"records":    recs,
		"final_text": finalText,
	})
	if err != nil {
		return "", fmt.Errorf("canonicalize correction trail: %w", err)
	}
	return canon.HashWithDomain(canon.DomainSynthesis, data), nil
}
