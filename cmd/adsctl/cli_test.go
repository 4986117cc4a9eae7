package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"adsplanner/internal/domain"
	"adsplanner/pkg/logger"
	"adsplanner/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accountCSV = `Campaign,Ad Group,Keyword,Criterion Type,Budget,Ad type,Headline 1,Description 1
Shoes,,,,25,,,
Shoes,Running,,,,,,
Shoes,Running,free running shoes,Broad,,,,
Shoes,Running,trail shoes,Phrase,,,,
Shoes,Running,,,,Responsive search ad,Run Fast,Light shoes
`

func setup(t *testing.T) (string, *cobra.Command, *bytes.Buffer) {
	t.Helper()
	log = logger.Discard()
	m = metrics.NewWithRegistry(prometheus.NewRegistry())

	dir := t.TempDir()
	path := filepath.Join(dir, "account.csv")
	require.NoError(t, os.WriteFile(path, []byte(accountCSV), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	return path, cmd, &out
}

func TestImportCmd(t *testing.T) {
	path, cmd, out := setup(t)

	require.NoError(t, runImport(cmd, []string{path}))

	var summary domain.ImportSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.Equal(t, domain.ImportSummary{Campaigns: 1, AdGroups: 1, Keywords: 2, Ads: 1}, summary)
}

func TestImportCmd_SQLite(t *testing.T) {
	path, cmd, _ := setup(t)
	dbPath = filepath.Join(t.TempDir(), "ads.db")
	defer func() { dbPath = "" }()

	require.NoError(t, runImport(cmd, []string{path}))

	repo, closeRepo, err := openWorkspaceRepo()
	require.NoError(t, err)
	defer closeRepo()

	ws, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, ws.Keywords, 2)
}

func TestConflictsCmd(t *testing.T) {
	path, cmd, out := setup(t)

	require.NoError(t, runConflicts(cmd, []string{path}))

	var conflicts []domain.Conflict
	require.NoError(t, json.Unmarshal(out.Bytes(), &conflicts))
	require.Len(t, conflicts, 1)
	assert.Equal(t, "free running shoes", conflicts[0].Positive)
	assert.Equal(t, "free", conflicts[0].Negative)
	assert.Equal(t, "Shoes", conflicts[0].CampaignName)
}

func TestConflictsCmd_ListsFile(t *testing.T) {
	path, cmd, out := setup(t)
	listsFile = filepath.Join(t.TempDir(), "lists.yaml")
	defer func() { listsFile = "" }()
	require.NoError(t, os.WriteFile(listsFile, []byte("lists:\n  - name: A\n    keywords: [free]\n  - name: B\n    keywords: [free]\n"), 0o644))

	require.NoError(t, runConflicts(cmd, []string{path}))

	var conflicts []domain.Conflict
	require.NoError(t, json.Unmarshal(out.Bytes(), &conflicts))
	require.Len(t, conflicts, 2)
	assert.NotEqual(t, conflicts[0].ID, conflicts[1].ID)
	assert.NotEqual(t, conflicts[0].ListID, conflicts[1].ListID)
}

func TestConflictsCmd_MissingListsFile(t *testing.T) {
	path, cmd, out := setup(t)
	listsFile = filepath.Join(t.TempDir(), "typo.yaml")
	defer func() { listsFile = "" }()

	assert.ErrorIs(t, runConflicts(cmd, []string{path}), fs.ErrNotExist)
	assert.Empty(t, out.String())
}

func TestConflictsCmd_Grouped(t *testing.T) {
	path, cmd, out := setup(t)
	groupConflict = true
	defer func() { groupConflict = false }()

	require.NoError(t, runConflicts(cmd, []string{path}))

	var groups []domain.ConflictGroup
	require.NoError(t, json.Unmarshal(out.Bytes(), &groups))
	assert.Len(t, groups, 1)
}

func TestExportCmd(t *testing.T) {
	path, cmd, out := setup(t)
	exportFormat = "json"
	defer func() { exportFormat = "csv" }()

	require.NoError(t, runExport(cmd, []string{path}))

	var doc domain.ExportDocument
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Len(t, doc.Campaigns, 1)
	assert.Len(t, doc.Ads, 1)
	assert.Empty(t, doc.NegativeKeywordLists)
}

func TestExportCmd_File(t *testing.T) {
	path, cmd, _ := setup(t)
	exportFormat = "xlsx"
	exportOut = filepath.Join(t.TempDir(), "out.xlsx")
	defer func() { exportFormat, exportOut = "csv", "" }()

	require.NoError(t, runExport(cmd, []string{path}))

	info, err := os.Stat(exportOut)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportCmd_BadFormat(t *testing.T) {
	path, cmd, _ := setup(t)
	exportFormat = "pdf"
	defer func() { exportFormat = "csv" }()

	assert.ErrorIs(t, runExport(cmd, []string{path}), domain.ErrInvalidInput)
}
