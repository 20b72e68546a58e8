package catalogue

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
)

// CompileError reports a problem in a CUE catalogue file with position
// information when CUE can provide it.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadDir compiles every .cue file in dir into a Catalogue.
//
// The files must together define a top-level "patterns" list. Pattern
// order across files follows CUE's deterministic instance ordering, so
// the same directory always produces the same catalogue (and therefore
// the same tie-breaks).
func LoadDir(dir string) (*Catalogue, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalogue directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalogue path is not a directory: %s", dir)
	}

	files, err := findCUEFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .cue files found in %s", dir)
	}

	insts := load.Instances(files, &load.Config{Dir: dir})
	ctx := cuecontext.New()
	values, err := ctx.BuildInstances(insts)
	if err != nil {
		return nil, formatCUEError(err)
	}

	var patterns []Pattern
	for _, v := range values {
		ps, err := CompilePatterns(v)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, ps...)
	}
	return New(patterns)
}

// CompileSource compiles a single CUE source string into a Catalogue.
// Used by tests and by callers that assemble catalogues programmatically.
func CompileSource(src string) (*Catalogue, error) {
	v := cuecontext.New().CompileString(src)
	patterns, err := CompilePatterns(v)
	if err != nil {
		return nil, err
	}
	return New(patterns)
}

// CompilePatterns parses the "patterns" list from a CUE value.
func CompilePatterns(v cue.Value) ([]Pattern, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	list := v.LookupPath(cue.ParsePath("patterns"))
	if !list.Exists() {
		return nil, &CompileError{
			Field:   "patterns",
			Message: "top-level patterns list is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := list.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var patterns []Pattern
	for iter.Next() {
		p, err := compilePattern(iter.Value())
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func compilePattern(v cue.Value) (Pattern, error) {
	var p Pattern
	var err error

	if p.ID, err = requiredString(v, "id"); err != nil {
		return Pattern{}, err
	}
	if p.GateKey, err = requiredString(v, "gate"); err != nil {
		return Pattern{}, err
	}

	strategy, err := requiredString(v, "strategy")
	if err != nil {
		return Pattern{}, err
	}
	p.Strategy = Strategy(strategy)

	p.Module = optionalString(v, "module")
	p.Reason = optionalString(v, "reason")
	p.LegalSource = optionalString(v, "legal_source")
	p.Severity = gate.Severity(optionalString(v, "severity"))

	if prio := v.LookupPath(cue.ParsePath("priority")); prio.Exists() {
		n, err := prio.Int64()
		if err != nil {
			return Pattern{}, formatCUEError(err)
		}
		p.Priority = int(n)
	}

	p.Match = optionalString(v, "match")
	p.Replace = optionalString(v, "replace")
	p.Anchor = optionalString(v, "anchor")
	p.AnchorKind = AnchorKind(optionalString(v, "anchor_kind"))
	p.Position = InsertPosition(optionalString(v, "position"))
	p.Template = optionalString(v, "template")
	p.Skeleton = optionalString(v, "skeleton")

	if sections := v.LookupPath(cue.ParsePath("sections")); sections.Exists() {
		iter, err := sections.List()
		if err != nil {
			return Pattern{}, formatCUEError(err)
		}
		for iter.Next() {
			s, err := iter.Value().String()
			if err != nil {
				return Pattern{}, formatCUEError(err)
			}
			p.Sections = append(p.Sections, s)
		}
	}

	return p, nil
}

func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalString(v cue.Value, field string) string {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return ""
	}
	s, err := fv.String()
	if err != nil {
		return ""
	}
	return s
}

// findCUEFiles returns .cue files directly under dir, sorted by name for
// deterministic load order.
func findCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalogue directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".cue") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	var sb strings.Builder
	for _, e := range errors.Errors(err) {
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	if sb.Len() == 0 {
		return err
	}
	return fmt.Errorf("cue: %s", sb.String())
}
