package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0644))
}

func TestForwardScripts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "V20260827120000__create_tables.sql")
	touch(t, dir, "V20260827120000__rollback.sql")
	touch(t, dir, "V20250101080000__create_tables.sql")
	touch(t, dir, "V20250101080000__rollback.sql")
	touch(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.sql"), 0755))

	r := New(dir, nil)
	files, err := r.forwardScripts()
	require.NoError(t, err)

	// Rollback scripts, non-SQL files and directories are skipped; older
	// batches sort first.
	assert.Equal(t, []string{
		"V20250101080000__create_tables.sql",
		"V20260827120000__create_tables.sql",
	}, files)
}

func TestForwardScriptsMissingDir(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "absent"), nil)
	_, err := r.forwardScripts()
	assert.Error(t, err)
}

func TestRollbackFor(t *testing.T) {
	rollback, err := rollbackFor("V20260827120000__create_tables.sql")
	require.NoError(t, err)
	assert.Equal(t, "V20260827120000__rollback.sql", rollback)

	_, err = rollbackFor("create_tables.sql")
	assert.ErrorContains(t, err, "batch prefix")
}

func TestReadScript(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "V1__create_tables.sql")

	r := New(dir, nil)
	sql, err := r.readScript("V1__create_tables.sql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1;", sql)

	_, err = r.readScript("missing.sql")
	assert.Error(t, err)
}

func TestChecksumStable(t *testing.T) {
	assert.Equal(t, checksum("CREATE TABLE t ();"), checksum("CREATE TABLE t ();"))
	assert.NotEqual(t, checksum("a"), checksum("b"))
	assert.Len(t, checksum("x"), 64)
}
