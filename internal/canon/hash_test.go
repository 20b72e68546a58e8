package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashWithDomain_Stable(t *testing.T) {
	first := HashWithDomain(DomainSynthesis, []byte("payload"))
	assert.Equal(t, first, HashWithDomain(DomainSynthesis, []byte("payload")))
	assert.Len(t, first, 64) // hex-encoded SHA-256
}

func TestHashWithDomain_DomainsSeparate(t *testing.T) {
	data := []byte("identical payload")
	assert.NotEqual(t,
		HashWithDomain(DomainSynthesis, data),
		HashWithDomain(DomainDocument, data))
}

func TestHashWithDomain_NullSeparator(t *testing.T) {
	// Without the separator, ("ab", "c") and ("a", "bc") would collide.
	assert.NotEqual(t,
		HashWithDomain("ab", []byte("c")),
		HashWithDomain("a", []byte("bc")))
}

func TestHashWithDomain_MatchesManualConstruction(t *testing.T) {
	h := sha256.New()
	h.Write([]byte(DomainDocument))
	h.Write([]byte{0x00})
	h.Write([]byte("document text"))
	want := hex.EncodeToString(h.Sum(nil))

	assert.Equal(t, want, HashDocument("document text"))
}

func TestHashDocument_SensitiveToContent(t *testing.T) {
	assert.NotEqual(t, HashDocument("a"), HashDocument("b"))
	assert.NotEqual(t, HashDocument(""), HashDocument(" "))
}
