package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpired(t *testing.T) {
	assert.True(t, Expired(time.Now().Add(-time.Second)))
	assert.False(t, Expired(time.Now().Add(time.Minute)))
}

func TestDeduplicate(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Deduplicate([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{}, Deduplicate(nil))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "data.json")

	require.NoError(t, WriteFileAtomic(filename, []byte("first"), 0600))
	require.NoError(t, WriteFileAtomic(filename, []byte("second"), 0600))

	b, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
