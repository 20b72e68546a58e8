package gate

import (
	"fmt"
	"regexp"
	"sort"
)

// TriggerMode says what a trigger match means.
type TriggerMode int

const (
	// ViolationOnMatch fails the gate when the trigger pattern is present
	// (forbidden wording, outdated figures).
	ViolationOnMatch TriggerMode = iota

	// ViolationOnAbsence fails the gate when the trigger pattern is absent
	// (a required clause or statement is missing).
	ViolationOnAbsence
)

// Definition is one declarative compliance gate: a relevance check, a
// trigger pattern, and a verdict rule. Gates carry no behavior beyond this
// table - they are data, not subclasses.
type Definition struct {
	Key         string // "module.rule", e.g. "hmrc_vat.vat_threshold"
	Module      string
	Severity    Severity
	LegalSource string
	Message     string // violation message
	Suggestion  string // optional remediation hint, free text

	// Relevance guards the gate: when set and not matched, the verdict is
	// NOT_APPLICABLE. A nil relevance means the gate always applies.
	Relevance *regexp.Regexp

	Trigger *regexp.Regexp
	Mode    TriggerMode

	// Warn downgrades a violation from FAIL to WARNING.
	Warn bool
}

// Evaluate runs one gate against document text.
func (d Definition) Evaluate(text string) Result {
	res := Result{
		GateKey:     d.Key,
		Severity:    d.Severity,
		LegalSource: d.LegalSource,
	}

	if d.Relevance != nil && !d.Relevance.MatchString(text) {
		res.Status = StatusNotApplicable
		return res
	}

	violated := false
	switch d.Mode {
	case ViolationOnMatch:
		if locs := d.Trigger.FindAllStringIndex(text, -1); len(locs) > 0 {
			violated = true
			for _, loc := range locs {
				res.Spans = append(res.Spans, Span{Start: loc[0], End: loc[1]})
			}
		}
	case ViolationOnAbsence:
		violated = !d.Trigger.MatchString(text)
	}

	if !violated {
		res.Status = StatusPass
		return res
	}

	res.Status = StatusFail
	if d.Warn {
		res.Status = StatusWarning
	}
	res.Message = d.Message
	res.Suggestion = d.Suggestion
	return res
}

// Registry holds gate definitions grouped by module, in declaration order.
// A Registry is immutable after construction.
type Registry struct {
	modules map[string][]Definition
	order   []string
}

// NewRegistry builds a registry from definitions. Keys must be unique and
// must carry the "module." prefix of their module.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{modules: make(map[string][]Definition)}
	seen := make(map[string]bool, len(defs))

	for _, d := range defs {
		if d.Key == "" || d.Module == "" {
			return nil, fmt.Errorf("gate definition missing key or module: %+v", d)
		}
		if seen[d.Key] {
			return nil, fmt.Errorf("duplicate gate key: %s", d.Key)
		}
		if d.Trigger == nil {
			return nil, fmt.Errorf("gate %s: trigger is required", d.Key)
		}
		seen[d.Key] = true

		if _, ok := r.modules[d.Module]; !ok {
			r.order = append(r.order, d.Module)
		}
		r.modules[d.Module] = append(r.modules[d.Module], d)
	}
	return r, nil
}

// Modules returns the registered module names in declaration order.
func (r *Registry) Modules() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Gates returns the definitions for the requested modules, flattened in
// declaration order. Unknown modules are an error rather than a silent
// empty result - a typo in a module set must not look like compliance.
func (r *Registry) Gates(modules []string) ([]Definition, error) {
	if len(modules) == 0 {
		modules = r.order
	}
	var out []Definition
	for _, m := range modules {
		defs, ok := r.modules[m]
		if !ok {
			known := r.Modules()
			sort.Strings(known)
			return nil, fmt.Errorf("unknown module %q (known: %v)", m, known)
		}
		out = append(out, defs...)
	}
	return out, nil
}

// DefaultRegistry returns the built-in UK compliance gate set.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(defaultGates())
	if err != nil {
		// The built-in table is fixed at compile time; an invalid entry is
		// a programming error, not a runtime condition.
		panic(err)
	}
	return r
}
