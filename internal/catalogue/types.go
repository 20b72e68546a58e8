package catalogue

import (
	"fmt"
	"regexp"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
)

// Strategy identifies a correction mechanism, ordered by invasiveness.
type Strategy string

const (
	StrategySuggestion     Strategy = "suggestion"
	StrategyRegexReplace   Strategy = "regex_replace"
	StrategyTemplateInsert Strategy = "template_insert"
	StrategyReorganize     Strategy = "structural_reorganize"
)

// Priority bands per strategy. Bands are non-overlapping so a priority tie
// can only occur between patterns of the same strategy kind; the tie-break
// is then catalogue insertion order.
//
// Advice runs before surgical edits, edits before insertions, insertions
// before document reshaping.
const (
	PrioritySuggestion     = 20 // band 20-29
	PriorityRegexReplace   = 30 // band 30-39
	PriorityTemplateInsert = 40 // band 40-49
	PriorityReorganize     = 60 // band 60-69
)

// priorityBand returns the inclusive [lo, hi] priority band for a strategy.
func priorityBand(s Strategy) (lo, hi int, err error) {
	switch s {
	case StrategySuggestion:
		return PrioritySuggestion, PrioritySuggestion + 9, nil
	case StrategyRegexReplace:
		return PriorityRegexReplace, PriorityRegexReplace + 9, nil
	case StrategyTemplateInsert:
		return PriorityTemplateInsert, PriorityTemplateInsert + 9, nil
	case StrategyReorganize:
		return PriorityReorganize, PriorityReorganize + 9, nil
	default:
		return 0, 0, fmt.Errorf("unknown strategy %q", s)
	}
}

// AnchorKind selects how a TemplateInsert resolves its insertion point.
type AnchorKind string

const (
	AnchorRegex         AnchorKind = "regex"
	AnchorDocumentStart AnchorKind = "document_start"
	AnchorDocumentEnd   AnchorKind = "document_end"
)

// InsertPosition places the template relative to the resolved anchor.
type InsertPosition string

const (
	InsertBefore  InsertPosition = "before"
	InsertAfter   InsertPosition = "after"
	InsertReplace InsertPosition = "replace"
)

// Pattern is one catalogue entry: the recipe for correcting one kind of
// gate violation. Patterns are immutable once the catalogue is built.
//
// Payload fields are strategy-specific:
//   - RegexReplace: Match + Replace
//   - TemplateInsert: Anchor/AnchorKind/Position + Template
//   - StructuralReorganize: Sections + Skeleton
//   - Suggestion: no payload; Reason carries the advisory text
//
// Template and Skeleton bodies may contain {{name}} placeholders. Template
// placeholders resolve from the caller-supplied context; Skeleton
// additionally receives {{section}}, the name of the section being added.
type Pattern struct {
	ID          string
	Module      string
	GateKey     string // the gate key this pattern is registered to resolve
	Strategy    Strategy
	Priority    int
	Reason      string
	LegalSource string
	Severity    gate.Severity

	// RegexReplace payload.
	Match   string
	Replace string

	// TemplateInsert payload.
	Anchor     string
	AnchorKind AnchorKind
	Position   InsertPosition
	Template   string

	// StructuralReorganize payload.
	Sections []string
	Skeleton string

	// Set by catalogue construction.
	ord      int // insertion order, the same-priority tie-break
	matchRe  *regexp.Regexp
	anchorRe *regexp.Regexp
}

// Ord returns the pattern's catalogue insertion order.
func (p Pattern) Ord() int {
	return p.ord
}

// MatchRegexp returns the compiled RegexReplace match expression.
func (p Pattern) MatchRegexp() *regexp.Regexp {
	return p.matchRe
}

// AnchorRegexp returns the compiled TemplateInsert anchor expression, or
// nil for sentinel anchors.
func (p Pattern) AnchorRegexp() *regexp.Regexp {
	return p.anchorRe
}

// validate checks payload shape and compiles the pattern's expressions.
func (p *Pattern) validate() error {
	if p.ID == "" {
		return fmt.Errorf("pattern missing id")
	}
	if p.GateKey == "" {
		return fmt.Errorf("pattern %s: gate key is required", p.ID)
	}

	lo, hi, err := priorityBand(p.Strategy)
	if err != nil {
		return fmt.Errorf("pattern %s: %w", p.ID, err)
	}
	if p.Priority == 0 {
		p.Priority = lo
	}
	if p.Priority < lo || p.Priority > hi {
		return fmt.Errorf("pattern %s: priority %d outside %s band [%d, %d]",
			p.ID, p.Priority, p.Strategy, lo, hi)
	}

	switch p.Strategy {
	case StrategySuggestion:
		if p.Reason == "" {
			return fmt.Errorf("pattern %s: suggestion requires advisory reason text", p.ID)
		}

	case StrategyRegexReplace:
		if p.Match == "" {
			return fmt.Errorf("pattern %s: regex_replace requires match expression", p.ID)
		}
		re, err := regexp.Compile(p.Match)
		if err != nil {
			return fmt.Errorf("pattern %s: invalid match expression: %w", p.ID, err)
		}
		p.matchRe = re

	case StrategyTemplateInsert:
		if p.Template == "" {
			return fmt.Errorf("pattern %s: template_insert requires template body", p.ID)
		}
		if p.AnchorKind == "" {
			p.AnchorKind = AnchorRegex
		}
		if p.Position == "" {
			p.Position = InsertAfter
		}
		switch p.AnchorKind {
		case AnchorRegex:
			if p.Anchor == "" {
				return fmt.Errorf("pattern %s: regex anchor requires anchor expression", p.ID)
			}
			re, err := regexp.Compile(p.Anchor)
			if err != nil {
				return fmt.Errorf("pattern %s: invalid anchor expression: %w", p.ID, err)
			}
			p.anchorRe = re
		case AnchorDocumentStart, AnchorDocumentEnd:
			if p.Position == InsertReplace {
				return fmt.Errorf("pattern %s: replace position requires a regex anchor", p.ID)
			}
		default:
			return fmt.Errorf("pattern %s: unknown anchor kind %q", p.ID, p.AnchorKind)
		}

	case StrategyReorganize:
		if len(p.Sections) == 0 {
			return fmt.Errorf("pattern %s: structural_reorganize requires a section list", p.ID)
		}
		if p.Skeleton == "" {
			return fmt.Errorf("pattern %s: structural_reorganize requires a skeleton template", p.ID)
		}
	}

	return nil
}
