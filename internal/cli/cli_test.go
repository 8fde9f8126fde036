package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/book-requests/internal/model"
)

// run executes bookctl with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedAndList(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "nested", "books.db")
	file := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(file, []byte("books:\n  - Dune\n  - Emma\n"), 0o644))

	out, err := run(t, "--db", db, "--log-level", "error", "seed", "--file", file, "Ulysses", "Dune")
	require.NoError(t, err)
	assert.Equal(t, "inserted 3 of 4 titles\n", out)

	out, err = run(t, "--db", db, "--log-level", "error", "books")
	require.NoError(t, err)
	assert.Equal(t, "1\tDune\n2\tEmma\n3\tUlysses\n", out)

	out, err = run(t, "--db", db, "--log-level", "error", "books", "--json")
	require.NoError(t, err)
	var books []model.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	assert.Len(t, books, 3)
}

func TestSeed_NothingToDo(t *testing.T) {
	db := filepath.Join(t.TempDir(), "books.db")

	_, err := run(t, "--db", db, "seed")
	assert.ErrorContains(t, err, "nothing to seed")
}

func TestSeed_BadFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "books.db")

	_, err := run(t, "--db", db, "seed", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	db := filepath.Join(t.TempDir(), "books.db")

	_, err := run(t, "--db", db, "--log-level", "chatty", "books")
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

func TestBooks_RejectsArgs(t *testing.T) {
	db := filepath.Join(t.TempDir(), "books.db")

	_, err := run(t, "--db", db, "books", "extra")
	assert.Error(t, err)
}
