package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestionPattern(id, gateKey string, priority int) Pattern {
	return Pattern{
		ID:       id,
		GateKey:  gateKey,
		Strategy: StrategySuggestion,
		Priority: priority,
		Reason:   "advisory text",
	}
}

func TestNew_AssignsInsertionOrder(t *testing.T) {
	c, err := New([]Pattern{
		suggestionPattern("first", "a", 20),
		suggestionPattern("second", "b", 20),
	})
	require.NoError(t, err)

	p, ok := c.Get("second")
	require.True(t, ok)
	assert.Equal(t, 1, p.Ord())
}

func TestNew_DuplicateID(t *testing.T) {
	_, err := New([]Pattern{
		suggestionPattern("dup", "a", 20),
		suggestionPattern("dup", "b", 21),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate pattern id")
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern Pattern
		wantErr string
	}{
		{
			name:    "missing id",
			pattern: Pattern{GateKey: "a", Strategy: StrategySuggestion, Reason: "r"},
			wantErr: "missing id",
		},
		{
			name:    "missing gate key",
			pattern: Pattern{ID: "p", Strategy: StrategySuggestion, Reason: "r"},
			wantErr: "gate key is required",
		},
		{
			name:    "unknown strategy",
			pattern: Pattern{ID: "p", GateKey: "a", Strategy: "teleport"},
			wantErr: "unknown strategy",
		},
		{
			name: "priority outside band",
			pattern: Pattern{
				ID: "p", GateKey: "a", Strategy: StrategySuggestion,
				Priority: 35, Reason: "r",
			},
			wantErr: "outside suggestion band",
		},
		{
			name:    "suggestion without reason",
			pattern: Pattern{ID: "p", GateKey: "a", Strategy: StrategySuggestion},
			wantErr: "advisory reason",
		},
		{
			name: "regex_replace without match",
			pattern: Pattern{
				ID: "p", GateKey: "a", Strategy: StrategyRegexReplace, Replace: "x",
			},
			wantErr: "requires match expression",
		},
		{
			name: "regex_replace bad expression",
			pattern: Pattern{
				ID: "p", GateKey: "a", Strategy: StrategyRegexReplace, Match: "[unclosed",
			},
			wantErr: "invalid match expression",
		},
		{
			name: "template_insert without template",
			pattern: Pattern{
				ID: "p", GateKey: "a", Strategy: StrategyTemplateInsert,
				AnchorKind: AnchorDocumentEnd,
			},
			wantErr: "requires template body",
		},
		{
			name: "regex anchor without expression",
			pattern: Pattern{
				ID: "p", GateKey: "a", Strategy: StrategyTemplateInsert,
				AnchorKind: AnchorRegex, Template: "t",
			},
			wantErr: "requires anchor expression",
		},
		{
			name: "replace position without regex anchor",
			pattern: Pattern{
				ID: "p", GateKey: "a", Strategy: StrategyTemplateInsert,
				AnchorKind: AnchorDocumentEnd, Position: InsertReplace, Template: "t",
			},
			wantErr: "replace position requires a regex anchor",
		},
		{
			name: "reorganize without sections",
			pattern: Pattern{
				ID: "p", GateKey: "a", Strategy: StrategyReorganize, Skeleton: "s",
			},
			wantErr: "requires a section list",
		},
		{
			name: "reorganize without skeleton",
			pattern: Pattern{
				ID: "p", GateKey: "a", Strategy: StrategyReorganize,
				Sections: []string{"Intro"},
			},
			wantErr: "requires a skeleton template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]Pattern{tt.pattern})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_ZeroPriorityDefaultsToBandFloor(t *testing.T) {
	c, err := New([]Pattern{{
		ID: "p", GateKey: "a", Strategy: StrategyRegexReplace,
		Match: "x", Replace: "y",
	}})
	require.NoError(t, err)

	p, ok := c.Get("p")
	require.True(t, ok)
	assert.Equal(t, PriorityRegexReplace, p.Priority)
}

func TestLookup_ExactMatch(t *testing.T) {
	c, err := New([]Pattern{suggestionPattern("p", "gdpr.retention", 20)})
	require.NoError(t, err)

	got := c.Lookup("gdpr.retention")
	require.Len(t, got, 1)
	assert.Equal(t, "p", got[0].ID)
}

func TestLookup_BidirectionalSubstring(t *testing.T) {
	c, err := New([]Pattern{
		suggestionPattern("short-key", "accompaniment", 20),
		suggestionPattern("long-key", "employment.accompaniment_restrictions", 21),
	})
	require.NoError(t, err)

	// Registered short form resolves a longer reported key.
	got := c.Lookup("employment.accompaniment_restrictions")
	require.Len(t, got, 2)

	// Registered long form resolves a shorter reported key.
	got = c.Lookup("accompaniment")
	require.Len(t, got, 2)

	// Unrelated key resolves nothing.
	assert.Empty(t, c.Lookup("gdpr.retention"))
}

func TestLookup_SortedByPriorityThenInsertion(t *testing.T) {
	c, err := New([]Pattern{
		suggestionPattern("late-low", "key", 25),
		suggestionPattern("first-tied", "key", 22),
		suggestionPattern("second-tied", "key", 22),
		suggestionPattern("lowest", "key", 20),
	})
	require.NoError(t, err)

	got := c.Lookup("key")
	require.Len(t, got, 4)
	assert.Equal(t, "lowest", got[0].ID)
	assert.Equal(t, "first-tied", got[1].ID)
	assert.Equal(t, "second-tied", got[2].ID)
	assert.Equal(t, "late-low", got[3].ID)
}

func TestLookup_StableAcrossCalls(t *testing.T) {
	c, err := New([]Pattern{
		suggestionPattern("a", "key", 22),
		suggestionPattern("b", "key", 22),
		suggestionPattern("c", "key", 22),
	})
	require.NoError(t, err)

	first := c.Lookup("key")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Lookup("key"))
	}
}

func TestPatterns_ReturnsCopy(t *testing.T) {
	c, err := New([]Pattern{suggestionPattern("p", "a", 20)})
	require.NoError(t, err)

	patterns := c.Patterns()
	patterns[0].ID = "mutated"

	p, ok := c.Get("p")
	require.True(t, ok)
	assert.Equal(t, "p", p.ID)
}

func TestDefault_BuildsAndCoversKnownGates(t *testing.T) {
	c := Default()
	assert.Equal(t, 11, c.Len())

	// Scenario coverage spot checks.
	assert.NotEmpty(t, c.Lookup("hmrc_vat.vat_threshold"))
	assert.NotEmpty(t, c.Lookup("gdpr.consent_freely_given"))
	assert.NotEmpty(t, c.Lookup("gdpr.policy_structure"))

	// Deliberately uncovered: no deterministic content exists for a
	// contractual notice period.
	assert.Empty(t, c.Lookup("employment.notice_period"))
}

func TestDefault_PrioritiesInsideBands(t *testing.T) {
	for _, p := range Default().Patterns() {
		lo, hi, err := priorityBand(p.Strategy)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.Priority, lo, "pattern %s", p.ID)
		assert.LessOrEqual(t, p.Priority, hi, "pattern %s", p.ID)
	}
}
