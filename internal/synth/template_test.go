package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
)

func TestExpandTemplate(t *testing.T) {
	vars := map[string]string{
		"organization":  "Alpha Analytics Ltd",
		"contact_email": "privacy@alpha-analytics.co.uk",
	}

	got, ok := expandTemplate("Contact {{organization}} at {{contact_email}}.", vars)
	require.True(t, ok)
	assert.Equal(t, "Contact Alpha Analytics Ltd at privacy@alpha-analytics.co.uk.", got)
}

func TestExpandTemplate_NoPlaceholders(t *testing.T) {
	got, ok := expandTemplate("A fixed clause.", nil)
	require.True(t, ok)
	assert.Equal(t, "A fixed clause.", got)
}

func TestExpandTemplate_UnresolvedPlaceholderFailsWhole(t *testing.T) {
	// Emitting literal {{organization}} into a legal document is worse
	// than no correction, so the whole expansion fails.
	got, ok := expandTemplate("Run by {{organization}} since {{founded_year}}.",
		map[string]string{"organization": "Alpha"})
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestApplyTemplateInsert_DocumentEnd(t *testing.T) {
	p := compiled(t, catalogue.Pattern{
		ID:         "basis",
		GateKey:    "lawful_basis",
		Strategy:   catalogue.StrategyTemplateInsert,
		AnchorKind: catalogue.AnchorDocumentEnd,
		Position:   catalogue.InsertAfter,
		Template:   "Lawful basis: consent.",
	})

	got, rec, ok := applyPattern("Existing text.", p, failingResult("gdpr.lawful_basis"), nil)
	require.True(t, ok)
	assert.Equal(t, "Existing text.\n\nLawful basis: consent.", got)
	require.Len(t, rec.Changes, 1)
	assert.Equal(t, "Lawful basis: consent.", rec.Changes[0].After)
}

func TestApplyTemplateInsert_DocumentEndTrailingNewline(t *testing.T) {
	p := compiled(t, catalogue.Pattern{
		ID:         "basis",
		GateKey:    "lawful_basis",
		Strategy:   catalogue.StrategyTemplateInsert,
		AnchorKind: catalogue.AnchorDocumentEnd,
		Template:   "Lawful basis: consent.",
	})

	got, _, ok := applyPattern("Existing text.\n", p, failingResult("gdpr.lawful_basis"), nil)
	require.True(t, ok)
	assert.Equal(t, "Existing text.\n\nLawful basis: consent.", got)
}

func TestApplyTemplateInsert_DocumentStart(t *testing.T) {
	p := compiled(t, catalogue.Pattern{
		ID:         "notice",
		GateKey:    "controller_identity",
		Strategy:   catalogue.StrategyTemplateInsert,
		AnchorKind: catalogue.AnchorDocumentStart,
		Template:   "Issued by {{organization}}.",
	})

	got, rec, ok := applyPattern("Body.", p, failingResult("gdpr.controller_identity"),
		map[string]string{"organization": "Alpha"})
	require.True(t, ok)
	assert.Equal(t, "Issued by Alpha.\n\nBody.", got)
	assert.Equal(t, 0, rec.Changes[0].Start)
}

func TestApplyTemplateInsert_EmptyDocument(t *testing.T) {
	p := compiled(t, catalogue.Pattern{
		ID:         "basis",
		GateKey:    "lawful_basis",
		Strategy:   catalogue.StrategyTemplateInsert,
		AnchorKind: catalogue.AnchorDocumentEnd,
		Template:   "Lawful basis: consent.",
	})

	got, _, ok := applyPattern("", p, failingResult("gdpr.lawful_basis"), nil)
	require.True(t, ok)
	assert.Equal(t, "Lawful basis: consent.", got)
}

func TestApplyTemplateInsert_RegexAnchorReplace(t *testing.T) {
	p := compiled(t, catalogue.Pattern{
		ID:         "consent",
		GateKey:    "consent_freely_given",
		Strategy:   catalogue.StrategyTemplateInsert,
		AnchorKind: catalogue.AnchorRegex,
		Anchor:     `(?i)by using our website,? you agree[^.]*\.`,
		Position:   catalogue.InsertReplace,
		Template:   "Consent must be freely given.",
	})

	text := "Welcome. By using our website, you agree to everything. Bye."
	got, rec, ok := applyPattern(text, p, failingResult("gdpr.consent_freely_given"), nil)

	require.True(t, ok)
	assert.Equal(t, "Welcome. Consent must be freely given. Bye.", got)
	require.Len(t, rec.Changes, 1)
	assert.Equal(t, "By using our website, you agree to everything.", rec.Changes[0].Before)
}

func TestApplyTemplateInsert_RegexAnchorBeforeAndAfter(t *testing.T) {
	base := catalogue.Pattern{
		GateKey:    "k",
		Strategy:   catalogue.StrategyTemplateInsert,
		AnchorKind: catalogue.AnchorRegex,
		Anchor:     `ANCHOR`,
		Template:   "INSERTED",
	}

	before := base
	before.ID = "before"
	before.Position = catalogue.InsertBefore
	got, _, ok := applyPattern("aa ANCHOR bb", compiled(t, before), failingResult("m.k"), nil)
	require.True(t, ok)
	assert.Equal(t, "aa INSERTED\nANCHOR bb", got)

	after := base
	after.ID = "after"
	after.Position = catalogue.InsertAfter
	got, _, ok = applyPattern("aa ANCHOR bb", compiled(t, after), failingResult("m.k"), nil)
	require.True(t, ok)
	assert.Equal(t, "aa ANCHOR\nINSERTED bb", got)
}

func TestApplyTemplateInsert_MissingAnchorIsInapplicable(t *testing.T) {
	p := compiled(t, catalogue.Pattern{
		ID:         "consent",
		GateKey:    "consent_freely_given",
		Strategy:   catalogue.StrategyTemplateInsert,
		AnchorKind: catalogue.AnchorRegex,
		Anchor:     `no such anchor`,
		Position:   catalogue.InsertReplace,
		Template:   "Replacement.",
	})

	text := "Nothing to anchor on."
	got, _, ok := applyPattern(text, p, failingResult("gdpr.consent_freely_given"), nil)
	assert.False(t, ok)
	assert.Equal(t, text, got)
}

func TestApplyTemplateInsert_UnresolvedPlaceholderIsInapplicable(t *testing.T) {
	p := compiled(t, catalogue.Pattern{
		ID:         "contact",
		GateKey:    "controller_identity",
		Strategy:   catalogue.StrategyTemplateInsert,
		AnchorKind: catalogue.AnchorDocumentEnd,
		Template:   "Contact {{contact_email}}.",
	})

	text := "Body."
	got, _, ok := applyPattern(text, p, failingResult("gdpr.controller_identity"), nil)
	assert.False(t, ok)
	assert.Equal(t, text, got)
}
