package jsonstore_test

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tidy/internal/codec"
	"github.com/idilsaglam/tidy/internal/model"
	"github.com/idilsaglam/tidy/internal/store/jsonstore"
)

func TestLoadMissingFileYieldsInitialState(t *testing.T) {
	s := jsonstore.Open(t.TempDir())

	st, err := s.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(model.InitialState(), st); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	s := jsonstore.Open(dir)

	want := model.Reduce(model.Add{}, model.Reduce(model.UpdateField{Title: "persisted"}, model.InitialState()))
	require.NoError(t, s.Save(want))

	got, err := jsonstore.Open(dir).Load()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPropagatesDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	s := jsonstore.Open(dir)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{ not json"), 0o644))

	_, err := s.Load()
	var de *codec.DecodeError
	require.ErrorAs(t, err, &de)
}

func TestLoadOrInitialAbsorbsDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	s := jsonstore.Open(dir)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{ not json"), 0o644))

	st := s.LoadOrInitial()
	if diff := cmp.Diff(model.InitialState(), st); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestPollSeesOutsideEditsOnly(t *testing.T) {
	dir := t.TempDir()
	s := jsonstore.Open(dir)
	require.NoError(t, s.Save(model.InitialState()))

	// our own write is not a change
	_, changed, err := s.Poll()
	require.NoError(t, err)
	assert.False(t, changed)

	// an outside write is
	other := jsonstore.Open(dir)
	_, err = other.Load()
	require.NoError(t, err)
	outside := model.Reduce(model.Add{}, model.Reduce(model.UpdateField{Title: "from the other process"}, model.InitialState()))
	require.NoError(t, other.Save(outside))

	raw, changed, err := s.Poll()
	require.NoError(t, err)
	require.True(t, changed)

	got, err := codec.Decode(raw)
	require.NoError(t, err)
	if diff := cmp.Diff(outside, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}

	// and it is only reported once
	_, changed, err = s.Poll()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestPollMissingFileIsQuiet(t *testing.T) {
	s := jsonstore.Open(t.TempDir())

	_, changed, err := s.Poll()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestPollSeesSameSizeRewrite(t *testing.T) {
	dir := t.TempDir()
	s := jsonstore.Open(dir)
	require.NoError(t, s.Save(model.InitialState()))

	// rewrite identical bytes with a clearly newer timestamp
	b, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(), b, 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(s.Path(), future, future))

	_, changed, err := s.Poll()
	require.NoError(t, err)
	assert.True(t, changed)
}
