package document

import (
	"regexp"
	"strings"
)

// Section is one heading-delimited region of a document.
//
// The zero-heading section (the preamble) holds any text before the first
// recognized heading. Body text excludes the heading line itself.
type Section struct {
	Heading string // heading line as written; empty for the preamble
	Title   string // heading text with markers stripped
	Body    string // content between this heading and the next
}

// Heading recognition covers the two forms UK compliance documents use in
// practice: markdown headings and standalone ALL-CAPS title lines.
// Numbered list items are deliberately NOT treated as headings - clause
// lists ("1. You must...") would otherwise shred the document.
var (
	markdownHeadingRe = regexp.MustCompile(`^#{1,6}\s+(.+?)\s*$`)
	capsHeadingRe     = regexp.MustCompile(`^[A-Z][A-Z0-9 &/\-]{2,}$`)
)

// Split divides a document into its preamble and heading-delimited sections.
//
// The result always round-trips: Join(Split(d)) equals d up to trailing
// whitespace within section bodies. Order of sections follows document order.
func Split(d Document) []Section {
	lines := strings.Split(d.Text(), "\n")

	sections := []Section{{}}
	var body []string

	flush := func() {
		sections[len(sections)-1].Body = strings.Join(body, "\n")
		body = nil
	}

	for _, line := range lines {
		if title, ok := headingTitle(line); ok {
			flush()
			sections = append(sections, Section{Heading: line, Title: title})
			continue
		}
		body = append(body, line)
	}
	flush()

	// Drop an empty preamble so callers see only real content.
	if sections[0].Heading == "" && strings.TrimSpace(sections[0].Body) == "" && len(sections) > 1 {
		sections = sections[1:]
	}
	return sections
}

// Join reassembles sections into a Document.
func Join(sections []Section) Document {
	var parts []string
	for _, s := range sections {
		if s.Heading != "" {
			parts = append(parts, s.Heading)
		}
		if s.Body != "" || s.Heading == "" {
			parts = append(parts, s.Body)
		}
	}
	return New(strings.Join(parts, "\n"))
}

// NormalizeTitle canonicalizes a heading title for comparison: lowercase,
// collapsed whitespace, trailing punctuation stripped.
func NormalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	title = strings.TrimRight(title, ":.")
	return strings.Join(strings.Fields(title), " ")
}

// HasSection reports whether the document contains a section whose
// normalized title equals the normalized form of name.
func HasSection(d Document, name string) bool {
	want := NormalizeTitle(name)
	for _, s := range Split(d) {
		if s.Heading != "" && NormalizeTitle(s.Title) == want {
			return true
		}
	}
	return false
}

func headingTitle(line string) (string, bool) {
	if m := markdownHeadingRe.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	trimmed := strings.TrimSpace(line)
	if trimmed != "" && trimmed == line && capsHeadingRe.MatchString(trimmed) {
		return trimmed, true
	}
	return "", false
}
