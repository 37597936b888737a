package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtiwari1/docseed/internal/dataset"
	"github.com/mtiwari1/docseed/internal/scanner"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DOCSEED_SOURCE_DIR", "DOCSEED_CUSTOMER_ID", "DOCSEED_FORMAT",
		"DOCSEED_OUTPUT_NAME", "DOCSEED_SEED",
	} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func readExport(t *testing.T, path string) []dataset.DocumentRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := strings.TrimSpace(string(data))
	require.True(t, strings.HasPrefix(text, "export const documentData = "))
	body := strings.TrimSuffix(strings.TrimPrefix(text, "export const documentData = "), ";")

	var records []dataset.DocumentRecord
	require.NoError(t, json.Unmarshal([]byte(body), &records))
	return records
}

func TestRun_EndToEnd(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	files := map[string][]byte{
		"a.pdf": []byte("%PDF-1.7\x00\x01"),
		"b.jpg": {0xff, 0xd8, 0xff, 0xe0},
		"c.png": {0x89, 'P', 'N', 'G'},
		"d.txt": []byte("plain text"),
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), body, 0o644))
	}

	stdout, _, err := execute(t, dir, "--customer-id", "CUST-9", "--seed", "3")
	require.NoError(t, err)

	path := filepath.Join(dir, "documentData.js")
	assert.Equal(t, "Dataset written to "+path+"\n", stdout)

	records := readExport(t, path)
	require.Len(t, records, 4)

	wantSides := []dataset.PrintSide{dataset.SingleSide, dataset.DoubleSide, dataset.SingleSide, dataset.DoubleSide}
	wantSizes := []dataset.PageSize{dataset.PageA3, dataset.PageA4, dataset.PageA4, dataset.PageA4}
	wantStatus := []dataset.Status{dataset.StatusPending, dataset.StatusIsPrinting, dataset.StatusCompleted, dataset.StatusFailed}
	for i, r := range records {
		assert.Equal(t, "CUST-9", r.CustomerID)
		assert.Equal(t, wantSides[i], r.PrintSideType)
		assert.Equal(t, wantSizes[i], r.PageSize)
		assert.Equal(t, wantStatus[i], r.DocumentStatus)

		decoded, err := base64.StdEncoding.DecodeString(r.FileContent)
		require.NoError(t, err)
		assert.Equal(t, files[r.FileName], decoded)
	}
	assert.Equal(t, "a.pdf", records[0].FileName)
	assert.Equal(t, "d.txt", records[3].FileName)
}

func TestRun_RerunOverwrites(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("b"), 0o644))

	_, _, err := execute(t, dir)
	require.NoError(t, err)
	_, _, err = execute(t, dir)
	require.NoError(t, err)

	records := readExport(t, filepath.Join(dir, "documentData.js"))
	require.Len(t, records, 2)
	assert.Equal(t, "a.pdf", records[0].FileName)
	assert.Equal(t, "b.pdf", records[1].FileName)
}

func TestRun_EmptyDirectory(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, _, err := execute(t, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "documentData.js"))
	require.NoError(t, err)
	assert.Equal(t, "export const documentData = [];\n", string(data))
}

func TestRun_JSONFormatFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("a"), 0o644))
	t.Setenv("DOCSEED_SOURCE_DIR", dir)
	t.Setenv("DOCSEED_FORMAT", "json")

	stdout, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "documentData.json")

	data, err := os.ReadFile(filepath.Join(dir, "documentData.json"))
	require.NoError(t, err)
	var records []dataset.DocumentRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "pdf", records[0].FileType)
}

func TestRun_MissingDirectory(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing")

	stdout, logs, err := execute(t, missing)
	require.ErrorIs(t, err, scanner.ErrDirectoryAccess)
	assert.Empty(t, stdout)
	assert.Contains(t, logs, "generation failed")

	_, statErr := os.Stat(filepath.Join(missing, "documentData.js"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_InvalidFormat(t *testing.T) {
	clearEnv(t)

	_, _, err := execute(t, t.TempDir(), "--format", "xml")
	assert.ErrorContains(t, err, `format "xml"`)
}

func TestRun_TooManyArgs(t *testing.T) {
	clearEnv(t)

	_, _, err := execute(t, "a", "b")
	assert.Error(t, err)
}

func TestRun_FailingEntryKeepsPreviousDataset(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("a"), 0o644))

	_, _, err := execute(t, dir)
	require.NoError(t, err)
	path := filepath.Join(dir, "documentData.js")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, os.Symlink(filepath.Join(dir, "gone.pdf"), filepath.Join(dir, "b.pdf")))

	stdout, _, err := execute(t, dir)
	require.ErrorIs(t, err, scanner.ErrFileRead)
	assert.Empty(t, stdout)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRun_IgnoresLeftoverTempFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".documentData.js.4242.tmp"), []byte("export const docu"), 0o600))

	_, _, err := execute(t, dir)
	require.NoError(t, err)

	records := readExport(t, filepath.Join(dir, "documentData.js"))
	require.Len(t, records, 1)
	assert.Equal(t, "a.pdf", records[0].FileName)
}
