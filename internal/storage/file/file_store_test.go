package file

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brk3/streaks/internal/storage"
)

func TestPutGet(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.Get("streaks_habits_v1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put("streaks_habits_v1", []byte(`[]`)))
	v, found, err := s.Get("streaks_habits_v1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", string(v))
}

func TestPut_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put("a", []byte("1")))
	require.NoError(t, s.Put("a", []byte("2")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.json", entries[0].Name())
}

func TestKeyIsEscaped(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put("../escape", []byte("x")))
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "key must not address files outside the data dir")

	v, found, err := s.Get("../escape")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x", string(v))
}

func TestNextSequence(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	a, err := s.NextSequence()
	require.NoError(t, err)
	b, err := s.NextSequence()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), a)
	assert.Equal(t, uint64(2), b)

	require.NoError(t, s.Close())
	s, err = Open(dir)
	require.NoError(t, err)
	c, err := s.NextSequence()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), c)
}

func TestClosed(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Get("k")
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorIs(t, s.Put("k", nil), storage.ErrClosed)
	_, err = s.NextSequence()
	assert.ErrorIs(t, err, storage.ErrClosed)
}
