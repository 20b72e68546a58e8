package catalogue

import "github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"

// Default returns the built-in UK correction catalogue.
//
// Coverage is deliberately not total: employment.notice_period has no
// pattern, because no deterministic content exists for a contractual
// notice period. Uncovered gates surface through the
// no-applicable-patterns termination path for human triage.
func Default() *Catalogue {
	c, err := New(defaultPatterns())
	if err != nil {
		// Built-in patterns are fixed at compile time; failing to build
		// them is a programming error.
		panic(err)
	}
	return c
}

func defaultPatterns() []Pattern {
	return []Pattern{
		// ── advice-only (priority band 20-29) ─────────────────
		{
			ID:          "gdpr-retention-advice",
			Module:      "gdpr",
			GateKey:     "retention",
			Strategy:    StrategySuggestion,
			Priority:    20,
			Reason:      "state specific retention periods and review dates for each category of personal data",
			LegalSource: "UK GDPR Art. 5(1)(e)",
			Severity:    gate.SeverityMedium,
		},
		{
			ID:          "vat-mtd-advice",
			Module:      "hmrc_vat",
			GateKey:     "making_tax_digital",
			Strategy:    StrategySuggestion,
			Priority:    21,
			Reason:      "describe the Making Tax Digital filing and digital record-keeping requirements that apply",
			LegalSource: "Finance (No.2) Act 2017 s.62",
			Severity:    gate.SeverityMedium,
		},
		{
			ID:          "employment-specifics-advice",
			Module:      "employment",
			GateKey:     "disciplinary_specifics",
			Strategy:    StrategySuggestion,
			Priority:    22,
			Reason:      "state the specific dates, incidents and evidence relied on",
			LegalSource: "Acas Code of Practice, para 9",
			Severity:    gate.SeverityMedium,
		},

		// ── surgical edits (priority band 30-39) ──────────────
		{
			ID:          "vat-threshold-2024",
			Module:      "hmrc_vat",
			GateKey:     "vat_threshold",
			Strategy:    StrategyRegexReplace,
			Priority:    30,
			Match:       `£85,000`,
			Replace:     `£90,000`,
			Reason:      "registration threshold uprated to £90,000 from 1 April 2024",
			LegalSource: "Value Added Tax Act 1994, Sch. 1",
			Severity:    gate.SeverityHigh,
		},
		{
			ID:          "vat-deregistration-2024",
			Module:      "hmrc_vat",
			GateKey:     "vat_deregistration",
			Strategy:    StrategyRegexReplace,
			Priority:    31,
			Match:       `£83,000`,
			Replace:     `£88,000`,
			Reason:      "deregistration limit uprated to £88,000 from 1 April 2024",
			LegalSource: "Value Added Tax Act 1994, Sch. 1",
			Severity:    gate.SeverityMedium,
		},

		// ── clause insertion (priority band 40-49) ────────────
		{
			ID:          "gdpr-consent-clause",
			Module:      "gdpr",
			GateKey:     "consent_freely_given",
			Strategy:    StrategyTemplateInsert,
			Priority:    40,
			AnchorKind:  AnchorRegex,
			Anchor:      `(?i)by (?:using|accessing|browsing|continuing to use) (?:this|our) (?:website|site|service)s?,?\s+you\s+(?:automatically\s+)?(?:agree|consent)[^.!?\n]*[.!?]?`,
			Position:    InsertReplace,
			Template:    "We will only collect personal data if you give explicit, freely given consent, and you may withdraw that consent at any time.",
			Reason:      "replaced implied-consent wording with freely given consent",
			LegalSource: "UK GDPR Art. 4(11), Art. 7",
			Severity:    gate.SeverityCritical,
		},
		{
			ID:          "gdpr-lawful-basis-clause",
			Module:      "gdpr",
			GateKey:     "lawful_basis",
			Strategy:    StrategyTemplateInsert,
			Priority:    41,
			AnchorKind:  AnchorDocumentEnd,
			Position:    InsertAfter,
			Template:    "Lawful basis: we process personal data under Article 6(1)(a) UK GDPR (consent).",
			Reason:      "added an Article 6 lawful basis statement",
			LegalSource: "UK GDPR Art. 6",
			Severity:    gate.SeverityHigh,
		},
		{
			ID:          "gdpr-rights-clause",
			Module:      "gdpr",
			GateKey:     "data_subject_rights",
			Strategy:    StrategyTemplateInsert,
			Priority:    42,
			AnchorKind:  AnchorDocumentEnd,
			Position:    InsertAfter,
			Template:    "You have the right to access, the right to rectification and the right to erasure of your personal data.",
			Reason:      "added a data subject rights statement",
			LegalSource: "UK GDPR Arts. 15-22",
			Severity:    gate.SeverityHigh,
		},
		{
			ID:          "gdpr-controller-contact",
			Module:      "gdpr",
			GateKey:     "controller_identity",
			Strategy:    StrategyTemplateInsert,
			Priority:    43,
			AnchorKind:  AnchorDocumentEnd,
			Position:    InsertAfter,
			Template:    "The data controller is {{organization}}. Questions about this notice can be sent to {{contact_email}}.",
			Reason:      "identified the controller and a contact point",
			LegalSource: "UK GDPR Art. 13(1)(a)-(b)",
			Severity:    gate.SeverityMedium,
		},
		{
			ID:          "employment-accompaniment-clause",
			Module:      "employment",
			GateKey:     "accompaniment",
			Strategy:    StrategyTemplateInsert,
			Priority:    44,
			AnchorKind:  AnchorDocumentEnd,
			Position:    InsertAfter,
			Template:    "You have the right to be accompanied at the hearing by a colleague or a trade union representative.",
			Reason:      "added the statutory right to be accompanied",
			LegalSource: "Employment Relations Act 1999, s.10",
			Severity:    gate.SeverityHigh,
		},

		// ── document reshaping (priority band 60-69) ──────────
		{
			ID:          "gdpr-policy-structure",
			Module:      "gdpr",
			GateKey:     "policy_structure",
			Strategy:    StrategyReorganize,
			Priority:    60,
			Sections:    []string{"Introduction", "Data We Collect", "Lawful Basis", "Your Rights", "Contact"},
			Skeleton:    "## {{section}}\n\nTo be completed.\n",
			Reason:      "reorganized the notice into the expected section order",
			LegalSource: "UK GDPR Art. 12(1)",
			Severity:    gate.SeverityLow,
		},
	}
}
