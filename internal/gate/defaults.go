package gate

import "regexp"

// Built-in UK compliance gates, grouped by module in declaration order.
//
// Each gate is a relevance guard plus a trigger pattern. Trigger wording is
// deliberately conservative: a gate that cannot decide stays silent
// (NOT_APPLICABLE) instead of guessing.
func defaultGates() []Definition {
	var (
		personalData = regexp.MustCompile(`(?i)(personal (?:data|information)|data collection|collect(?:s|ing)? (?:your )?(?:personal )?(?:data|information)|information we collect)`)
		vat          = regexp.MustCompile(`(?i)\bVAT\b`)
	)

	return []Definition{
		// ── gdpr ──────────────────────────────────────────────
		{
			Key:         "gdpr.consent_freely_given",
			Module:      "gdpr",
			Severity:    SeverityCritical,
			LegalSource: "UK GDPR Art. 4(11), Art. 7; ICO consent guidance",
			Message:     "consent is presented as automatic rather than freely given",
			Suggestion:  "ask for explicit, affirmative consent instead of implying it from use",
			Trigger:     regexp.MustCompile(`(?i)\bby (?:using|accessing|browsing|continuing to use) (?:this|our) (?:website|site|service)s?,?\s+you\s+(?:automatically\s+)?(?:agree|consent)\b`),
			Mode:        ViolationOnMatch,
		},
		{
			Key:         "gdpr.lawful_basis",
			Module:      "gdpr",
			Severity:    SeverityHigh,
			LegalSource: "UK GDPR Art. 6; Data Protection Act 2018 s.8",
			Message:     "no lawful basis for processing is stated",
			Suggestion:  "state the Article 6 lawful basis relied on for each processing purpose",
			Relevance:   personalData,
			Trigger:     regexp.MustCompile(`(?i)(lawful basis|legal basis|article 6)`),
			Mode:        ViolationOnAbsence,
		},
		{
			Key:         "gdpr.data_subject_rights",
			Module:      "gdpr",
			Severity:    SeverityHigh,
			LegalSource: "UK GDPR Arts. 15-22",
			Message:     "data subject rights are not described",
			Suggestion:  "describe the rights of access, rectification and erasure",
			Relevance:   personalData,
			Trigger:     regexp.MustCompile(`(?i)right to (?:access|erasure|rectification)`),
			Mode:        ViolationOnAbsence,
		},
		{
			Key:         "gdpr.retention",
			Module:      "gdpr",
			Severity:    SeverityMedium,
			LegalSource: "UK GDPR Art. 5(1)(e)",
			Message:     "retention is mentioned without a specific period",
			Suggestion:  "state specific retention periods and review dates",
			Relevance:   regexp.MustCompile(`(?i)(retain|retention|how long we (?:keep|store))`),
			Trigger:     regexp.MustCompile(`(?i)(retention period of|retained for|kept for no longer than|deleted after)`),
			Mode:        ViolationOnAbsence,
		},
		{
			Key:         "gdpr.controller_identity",
			Module:      "gdpr",
			Severity:    SeverityMedium,
			LegalSource: "UK GDPR Art. 13(1)(a)-(b)",
			Message:     "no controller contact point or DPO is identified",
			Suggestion:  "identify the controller and give a working contact address",
			Relevance:   regexp.MustCompile(`(?i)(data controller|privacy (?:policy|notice))`),
			Trigger:     regexp.MustCompile(`(?i)(data protection officer|[\w.+-]+@[\w-]+(?:\.[\w-]+)+)`),
			Mode:        ViolationOnAbsence,
		},
		{
			Key:         "gdpr.policy_structure",
			Module:      "gdpr",
			Severity:    SeverityLow,
			LegalSource: "UK GDPR Art. 12(1) (transparency)",
			Message:     "privacy notice lacks a recognizable rights section",
			Suggestion:  "structure the notice with a distinct 'Your Rights' section",
			Relevance:   regexp.MustCompile(`(?i)privacy (?:policy|notice)`),
			Trigger:     regexp.MustCompile(`(?im)^\s*(?:#{1,6}\s*)?your rights\s*$`),
			Mode:        ViolationOnAbsence,
		},

		// ── hmrc_vat ──────────────────────────────────────────
		{
			Key:         "hmrc_vat.vat_threshold",
			Module:      "hmrc_vat",
			Severity:    SeverityHigh,
			LegalSource: "Value Added Tax Act 1994, Sch. 1 (threshold uprated April 2024)",
			Message:     "states the superseded £85,000 registration threshold",
			Suggestion:  "the registration threshold is £90,000 from 1 April 2024",
			Relevance:   vat,
			Trigger:     regexp.MustCompile(`£85,000`),
			Mode:        ViolationOnMatch,
		},
		{
			Key:         "hmrc_vat.vat_deregistration",
			Module:      "hmrc_vat",
			Severity:    SeverityMedium,
			LegalSource: "Value Added Tax Act 1994, Sch. 1 (deregistration limit, April 2024)",
			Message:     "states the superseded £83,000 deregistration limit",
			Suggestion:  "the deregistration limit is £88,000 from 1 April 2024",
			Relevance:   vat,
			Trigger:     regexp.MustCompile(`£83,000`),
			Mode:        ViolationOnMatch,
		},
		{
			Key:         "hmrc_vat.making_tax_digital",
			Module:      "hmrc_vat",
			Severity:    SeverityMedium,
			LegalSource: "Finance (No.2) Act 2017 s.62; VAT Regulations 1995 Pt. 5A",
			Message:     "VAT record-keeping guidance omits Making Tax Digital",
			Suggestion:  "note the Making Tax Digital filing and record-keeping requirements",
			Relevance:   regexp.MustCompile(`(?i)(vat returns?|digital records|record[- ]keeping)`),
			Trigger:     regexp.MustCompile(`(?i)making tax digital`),
			Mode:        ViolationOnAbsence,
			Warn:        true,
		},

		// ── employment ────────────────────────────────────────
		{
			Key:         "employment.accompaniment",
			Module:      "employment",
			Severity:    SeverityHigh,
			LegalSource: "Employment Relations Act 1999, s.10",
			Message:     "no right to be accompanied at the hearing is stated",
			Suggestion:  "state the worker's right to be accompanied by a colleague or trade union representative",
			Relevance:   regexp.MustCompile(`(?i)(disciplinary|grievance)\s+(?:hearing|meeting|procedure)`),
			Trigger:     regexp.MustCompile(`(?i)(accompanied|accompaniment|companion)`),
			Mode:        ViolationOnAbsence,
		},
		{
			Key:         "employment.disciplinary_specifics",
			Module:      "employment",
			Severity:    SeverityMedium,
			LegalSource: "Acas Code of Practice on disciplinary and grievance procedures, para 9",
			Message:     "allegations are described in vague terms",
			Suggestion:  "state specific dates and incidents",
			Relevance:   regexp.MustCompile(`(?i)disciplinary`),
			Trigger:     regexp.MustCompile(`(?i)(recent incidents|various occasions|general conduct issues)`),
			Mode:        ViolationOnMatch,
			Warn:        true,
		},
		{
			Key:         "employment.notice_period",
			Module:      "employment",
			Severity:    SeverityMedium,
			LegalSource: "Employment Rights Act 1996, s.86",
			Message:     "termination is discussed without stating the notice period",
			Suggestion:  "state the statutory or contractual notice period that applies",
			Relevance:   regexp.MustCompile(`(?i)(dismissal|terminat(?:e|ion of) (?:your )?employment)`),
			Trigger:     regexp.MustCompile(`(?i)(notice period|statutory notice)`),
			Mode:        ViolationOnAbsence,
		},
	}
}
