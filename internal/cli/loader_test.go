package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitModules(t *testing.T) {
	assert.Nil(t, splitModules(""))
	assert.Equal(t, []string{"gdpr"}, splitModules("gdpr"))
	assert.Equal(t, []string{"gdpr", "hmrc_vat"}, splitModules("gdpr,hmrc_vat"))
	assert.Equal(t, []string{"gdpr", "employment"}, splitModules(" gdpr , employment "))
	assert.Equal(t, []string{"gdpr"}, splitModules("gdpr,,"))
}

func TestLoadDocumentNormalizesLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.md")
	require.NoError(t, os.WriteFile(path, []byte("line one\r\nline two\r\n"), 0644))

	doc, err := loadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", doc.Text())
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := loadDocument(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read document")
}

func TestLoadContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")
	require.NoError(t, os.WriteFile(path, []byte("organization: Acme Ltd\ncontact_email: dpo@acme.co.uk\n"), 0644))

	vars, err := loadContext(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"organization":  "Acme Ltd",
		"contact_email": "dpo@acme.co.uk",
	}, vars)
}

func TestLoadContextEmptyPath(t *testing.T) {
	vars, err := loadContext("")
	require.NoError(t, err)
	assert.Nil(t, vars)
}

func TestLoadContextInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid\n"), 0644))

	_, err := loadContext(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse context")
}

func TestLoadCatalogueDefault(t *testing.T) {
	cat, err := loadCatalogue("")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Greater(t, cat.Len(), 0)
}
