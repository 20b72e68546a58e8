package synth

import (
	"strings"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/document"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
)

// applyReorganize reshapes the document around the pattern's declared
// section list: recognized sections are reassembled in declared order,
// declared-but-missing sections are appended from the skeleton template,
// and unrecognized sections keep their relative order at the end.
//
// This is the most invasive strategy and runs last in priority order,
// because it can invalidate the spans and anchors simpler strategies
// rely on. If the document already conforms, the pattern is inapplicable.
func applyReorganize(text string, p catalogue.Pattern, res gate.Result, vars map[string]string) (string, Record, bool) {
	sections := document.Split(document.New(text))

	existing := make(map[string]document.Section)
	var preamble []string
	var extras []document.Section
	declared := make(map[string]bool, len(p.Sections))
	for _, name := range p.Sections {
		declared[document.NormalizeTitle(name)] = true
	}

	for _, s := range sections {
		switch {
		case s.Heading == "":
			preamble = append(preamble, s.Body)
		case declared[document.NormalizeTitle(s.Title)]:
			existing[document.NormalizeTitle(s.Title)] = s
		default:
			extras = append(extras, s)
		}
	}

	var parts []string
	var missing []string
	for _, body := range preamble {
		if strings.TrimSpace(body) != "" {
			parts = append(parts, strings.TrimRight(body, "\n"))
		}
	}
	for _, name := range p.Sections {
		if s, ok := existing[document.NormalizeTitle(name)]; ok {
			parts = append(parts, s.Heading+"\n"+strings.TrimRight(s.Body, "\n"))
			continue
		}
		skeleton, ok := expandSkeleton(p.Skeleton, name, vars)
		if !ok {
			return text, Record{}, false
		}
		parts = append(parts, skeleton)
		missing = append(missing, name)
	}
	for _, s := range extras {
		parts = append(parts, s.Heading+"\n"+strings.TrimRight(s.Body, "\n"))
	}

	newText := strings.Join(parts, "\n\n")
	if newText == text {
		return text, Record{}, false
	}

	rec := newRecord(p, res)
	for _, name := range missing {
		skeleton, _ := expandSkeleton(p.Skeleton, name, vars)
		rec.Changes = append(rec.Changes, Change{
			Start:  strings.Index(newText, skeleton),
			Before: "",
			After:  skeleton,
		})
	}
	return newText, rec, true
}

// expandSkeleton expands the skeleton template for one missing section.
// {{section}} resolves to the section name; any other placeholders
// resolve from the caller context.
func expandSkeleton(skeleton, section string, vars map[string]string) (string, bool) {
	merged := make(map[string]string, len(vars)+1)
	for k, v := range vars {
		merged[k] = v
	}
	merged["section"] = section
	out, ok := expandTemplate(skeleton, merged)
	if !ok {
		return "", false
	}
	return strings.TrimRight(out, "\n"), true
}
