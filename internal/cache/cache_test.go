// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.Get("abc123", "gpt-4o")
	require.NoError(t, err)
	assert.False(t, found, "empty cache should miss")

	require.NoError(t, s.Put("abc123", "gpt-4o", 0, "# Page one\n"))

	got, found, err := s.Get("abc123", "gpt-4o")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "# Page one\n", got)
}

func TestStoreKeyedByModel(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("abc123", "gpt-4o", 0, "from gpt-4o"))

	_, found, err := s.Get("abc123", "claude-sonnet-4-5")
	require.NoError(t, err)
	assert.False(t, found, "a different model must not hit the same entry")
}

func TestStoreReplaceEntry(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("abc123", "gpt-4o", 0, "first"))
	require.NoError(t, s.Put("abc123", "gpt-4o", 0, "second"))

	got, found, err := s.Get("abc123", "gpt-4o")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", got)
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put("deadbeef", "gpt-4o", 2, "persisted"))
	require.NoError(t, s.Close())

	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, found, err := s2.Get("deadbeef", "gpt-4o")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "persisted", got)
}
