package gate

// Status is a gate verdict.
type Status string

const (
	StatusPass          Status = "PASS"
	StatusFail          Status = "FAIL"
	StatusWarning       Status = "WARNING"
	StatusNotApplicable Status = "NOT_APPLICABLE"
)

// Severity grades how serious a violation is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Span is a half-open [Start, End) byte range in the evaluated document.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Result is the outcome of evaluating one gate against one document.
//
// GateKey is the stable "module.rule" identifier the gate is reported
// under. Everything else is diagnostic metadata; the synthesis engine
// treats LegalSource and Suggestion as opaque.
type Result struct {
	GateKey     string   `json:"gate_key"`
	Status      Status   `json:"status"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	LegalSource string   `json:"legal_source"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Spans       []Span   `json:"spans,omitempty"`
}

// Failing reports whether this result counts toward the failing set the
// synthesis loop tries to shrink. WARNING counts: a warning is a violation
// with lower urgency, not a pass.
func (r Result) Failing() bool {
	return r.Status == StatusFail || r.Status == StatusWarning
}

// CountFailing returns how many results are FAIL or WARNING.
func CountFailing(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Failing() {
			n++
		}
	}
	return n
}

// Failing filters results down to the failing set.
func Failing(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Failing() {
			out = append(out, r)
		}
	}
	return out
}
