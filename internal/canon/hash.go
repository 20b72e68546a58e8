package canon

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for hash separation. The version suffix leaves room for
// algorithm migration without colliding with earlier trails.
const (
	// DomainSynthesis covers the (correction trail, final text) digest
	// emitted with every synthesis result.
	DomainSynthesis = "loki/synthesis/v1"

	// DomainDocument covers raw input document content, recorded in the
	// audit store so a run can be tied back to the exact input.
	DomainDocument = "loki/document/v1"
)

// HashWithDomain computes SHA-256 over domain + 0x00 + data.
// The null separator removes any ambiguity about where the domain string
// ends and the payload begins.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// HashDocument computes the content digest of raw document text.
func HashDocument(text string) string {
	return HashWithDomain(DomainDocument, []byte(text))
}
