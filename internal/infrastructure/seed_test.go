package infrastructure

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"adsplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNegativeLists_Defaults(t *testing.T) {
	lists, err := LoadNegativeLists("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultNegativeLists(), lists)

}

func TestLoadNegativeLists_MissingFile(t *testing.T) {
	_, err := LoadNegativeLists(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadNegativeLists_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.yaml")
	content := `lists:
  - id: brand
    name: Brand protection
    scope: custom
    keywords: [acme, globex]
    applied_campaign_ids: [c1]
  - name: Everywhere
    scope: universal
    keywords:
      - free
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lists, err := LoadNegativeLists(path)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "brand", lists[0].ID)
	assert.Equal(t, []string{"acme", "globex"}, lists[0].Keywords)
	assert.True(t, lists[0].AppliesTo("c1"))
	assert.Equal(t, domain.ScopeUniversal, lists[1].Scope)
	assert.NotEmpty(t, lists[1].ID)
}

func TestLoadNegativeLists_GeneratesDistinctIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.yaml")
	content := `lists:
  - name: A
    keywords: [free]
  - name: B
    keywords: [free]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lists, err := LoadNegativeLists(path)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.NotEmpty(t, lists[0].ID)
	assert.NotEmpty(t, lists[1].ID)
	assert.NotEqual(t, lists[0].ID, lists[1].ID)
}

func TestLoadNegativeLists_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("lists: [unterminated"), 0o644))
	_, err := LoadNegativeLists(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	unnamed := filepath.Join(dir, "unnamed.yaml")
	require.NoError(t, os.WriteFile(unnamed, []byte("lists:\n  - keywords: [x]\n"), 0o644))
	_, err = LoadNegativeLists(unnamed)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	duplicate := filepath.Join(dir, "duplicate.yaml")
	require.NoError(t, os.WriteFile(duplicate, []byte("lists:\n  - {id: x, name: A}\n  - {id: x, name: B}\n"), 0o644))
	_, err = LoadNegativeLists(duplicate)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
