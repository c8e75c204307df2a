package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tidy/internal/cli"
	"github.com/idilsaglam/tidy/internal/model"
	"github.com/idilsaglam/tidy/internal/store/jsonstore"
)

func run(t *testing.T, dir string, args ...string) int {
	t.Helper()
	return cli.Run(args, cli.Options{Dir: dir})
}

func load(t *testing.T, dir string) model.State {
	t.Helper()
	st, err := jsonstore.Open(dir).Load()
	require.NoError(t, err)
	return st
}

func TestAddCreatesAndPersistsItem(t *testing.T) {
	dir := t.TempDir()

	code := run(t, dir, "add", "Buy", "milk")
	require.Equal(t, 0, code)

	st := load(t, dir)
	require.Len(t, st.Todos, 2)
	assert.Equal(t, "Buy milk", st.Todos[0].Title)
	assert.Equal(t, 2, st.Todos[0].ID)
	assert.Equal(t, 4, st.NextID)
}

func TestDoneAndUndoneByIdentifier(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, 0, run(t, dir, "add", "task"))

	require.Equal(t, 0, run(t, dir, "done", "1"))
	st := load(t, dir)
	assert.True(t, st.Todos[1].Completed)
	assert.False(t, st.Todos[0].Completed)

	require.Equal(t, 0, run(t, dir, "undone", "1"))
	st = load(t, dir)
	assert.False(t, st.Todos[1].Completed)
}

func TestDoneUnknownIdentifierIsUsageError(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, 2, run(t, dir, "done", "99"))
	assert.Equal(t, 2, run(t, dir, "done", "nope"))
	assert.Equal(t, 2, run(t, dir, "done"))
}

func TestRmRemovesItem(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, 0, run(t, dir, "add", "task"))

	require.Equal(t, 0, run(t, dir, "rm", "1"))
	st := load(t, dir)
	require.Len(t, st.Todos, 1)
	assert.Equal(t, "task", st.Todos[0].Title)

	assert.Equal(t, 2, run(t, dir, "rm", "1"))
}

func TestClearDropsCompletedOnly(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, 0, run(t, dir, "add", "keep me"))
	require.Equal(t, 0, run(t, dir, "done", "1"))

	require.Equal(t, 0, run(t, dir, "clear"))
	st := load(t, dir)
	require.Len(t, st.Todos, 1)
	assert.Equal(t, "keep me", st.Todos[0].Title)
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, 2, run(t, dir, "frobnicate"))
	assert.Equal(t, 2, run(t, dir, "add"))
	assert.Equal(t, 2, run(t, dir))
	assert.Equal(t, 0, run(t, dir, "help"))
}
