package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saltyorg/tutorials/internal/database"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	closeApp()
	return out.String(), err
}

func TestCLI_CRUD(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := execute(t, "", "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tutorials found.")

	out, err = execute(t, "", "--db", db, "add", "--title", "Go Basics", "--author", "Ann", "--url", "http://x", "--published", "2024-01-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Tutorial added successfully! ID: 1")

	_, err = execute(t, "", "--db", db, "update", "1", "--author", "Ann B.")
	require.NoError(t, err)

	out, err = execute(t, "", "--db", db, "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Tutorial(id=1, title=Go Basics, author=Ann B., url=http://x, publishedDate=2024-01-10)")

	_, err = execute(t, "", "--db", db, "update", "1", "--clear-published")
	require.NoError(t, err)

	out, err = execute(t, "", "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "publishedDate=null")

	out, err = execute(t, "", "--db", db, "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Tutorial with ID 1 deleted successfully!")

	_, err = execute(t, "", "--db", db, "get", "1")
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = execute(t, "", "--db", db, "delete", "1")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCLI_AddRequiresFlags(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := execute(t, "", "--db", db, "add", "--title", "Go Basics")
	assert.Error(t, err)
}

func TestCLI_AddRejectsBadDate(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := execute(t, "", "--db", db, "add", "--title", "t", "--author", "a", "--url", "u", "--published", "01/10/2024")
	assert.Error(t, err)

	out, err := execute(t, "", "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tutorials found.")
}

func TestCLI_BadID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := execute(t, "", "--db", db, "get", "one")
	assert.Error(t, err)
}

func TestCLI_InteractiveShell(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	input := "1\nGo Basics\nAnn\nhttp://x\n\n\n2\n\n0\n"
	out, err := execute(t, input, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Tutorial added successfully! ID: 1")
	assert.Contains(t, out, "publishedDate=null")
	assert.Contains(t, out, "Goodbye!")
}

func TestCLI_Maintain(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := execute(t, "", "--db", db, "maintain")
	require.NoError(t, err)
	assert.Contains(t, out, "Database maintenance complete (0 tutorials)")
}

func TestCLI_Version(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tutorials dev")
}
