package synth

import (
	"regexp"
	"strings"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
)

// Template placeholders look like {{organization}}. Names are lowercase
// snake_case by convention; anything else is left untouched and will fail
// resolution, which is the intended outcome for a typo.
var placeholderRe = regexp.MustCompile(`\{\{([a-z][a-z0-9_]*)\}\}`)

// expandTemplate substitutes context variables into a template body.
//
// An unresolved placeholder fails the whole expansion: emitting literal
// "{{organization}}" into a legal document is worse than no correction.
func expandTemplate(body string, vars map[string]string) (string, bool) {
	ok := true
	out := placeholderRe.ReplaceAllStringFunc(body, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		val, found := vars[name]
		if !found {
			ok = false
			return m
		}
		return val
	})
	if !ok {
		return "", false
	}
	return out, true
}

// applyTemplateInsert resolves the pattern's anchor and inserts the
// expanded template immediately before, after, or in place of it.
//
// A missing anchor returns inapplicable rather than inserting at a
// default location - silent mis-insertion is worse than no correction.
func applyTemplateInsert(text string, p catalogue.Pattern, res gate.Result, vars map[string]string) (string, Record, bool) {
	block, ok := expandTemplate(p.Template, vars)
	if !ok {
		return text, Record{}, false
	}

	rec := newRecord(p, res)

	switch p.AnchorKind {
	case catalogue.AnchorDocumentStart:
		sep := "\n\n"
		if text == "" {
			sep = ""
		}
		rec.Changes = []Change{{Start: 0, Before: "", After: block}}
		return block + sep + text, rec, true

	case catalogue.AnchorDocumentEnd:
		sep := "\n\n"
		if text == "" {
			sep = ""
		} else if strings.HasSuffix(text, "\n") {
			sep = "\n"
		}
		rec.Changes = []Change{{Start: len(text) + len(sep), Before: "", After: block}}
		return text + sep + block, rec, true

	case catalogue.AnchorRegex:
		loc := p.AnchorRegexp().FindStringIndex(text)
		if loc == nil {
			return text, Record{}, false
		}
		switch p.Position {
		case catalogue.InsertBefore:
			rec.Changes = []Change{{Start: loc[0], Before: "", After: block}}
			return text[:loc[0]] + block + "\n" + text[loc[0]:], rec, true
		case catalogue.InsertAfter:
			rec.Changes = []Change{{Start: loc[1] + 1, Before: "", After: block}}
			return text[:loc[1]] + "\n" + block + text[loc[1]:], rec, true
		case catalogue.InsertReplace:
			rec.Changes = []Change{{Start: loc[0], Before: text[loc[0]:loc[1]], After: block}}
			return text[:loc[0]] + block + text[loc[1]:], rec, true
		}
	}

	return text, Record{}, false
}
