package gather

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDashboard(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtractAccountData(t *testing.T) {
	path := writeDashboard(t, `# Acme

**Health**: green
**Renewal Date**: 2026-09-01
- ARR: 120000
* Owner: jane

Some prose that mentions a colon: but in a sentence far too long to be a key because of its length.
**Broken** no colon here
- : empty key
**Health**: red
`)

	got := ExtractAccountData(path)

	assert.Equal(t, map[string]string{
		"health":       "green",
		"renewal_date": "2026-09-01",
		"arr":          "120000",
		"owner":        "jane",
	}, got)
}

func TestExtractAccountData_Degenerate(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		assert.Nil(t, ExtractAccountData(filepath.Join(t.TempDir(), "absent.md")))
	})

	t.Run("no extractable lines", func(t *testing.T) {
		path := writeDashboard(t, "# Heading\n\nJust prose.\n")
		assert.Nil(t, ExtractAccountData(path))
	})

	t.Run("key cap", func(t *testing.T) {
		var content string
		for i := 0; i < 2*maxExtractedKeys; i++ {
			content += "**Key" + string(rune('a'+i%26)) + string(rune('a'+i/26)) + "**: value\n"
		}
		got := ExtractAccountData(writeDashboard(t, content))
		assert.Len(t, got, maxExtractedKeys)
	})
}
