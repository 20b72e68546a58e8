// Package document defines the immutable text value the synthesis engine
// operates on, plus the heading-based section model shared by structural
// corrections and the compliance gates.
//
// A Document has no identity beyond its content. Corrections never mutate
// in place; every edit produces a new Document value. Equality is value
// equality on the underlying text.
package document

import "strings"

// Document is an immutable prose text value at a point in time.
type Document struct {
	text string
}

// New creates a Document from raw text.
// Line endings are normalized to LF so that section splitting, regex
// matching, and hashing see identical bytes regardless of source platform.
func New(text string) Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return Document{text: text}
}

// Text returns the document content.
func (d Document) Text() string {
	return d.text
}

// Equal reports value equality.
func (d Document) Equal(other Document) bool {
	return d.text == other.text
}

// Len returns the content length in bytes.
func (d Document) Len() int {
	return len(d.text)
}
