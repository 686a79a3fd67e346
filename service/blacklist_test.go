package service

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	notified []string
	err      error
}

func (n *recordingNotifier) NotifyUser(userID string, message string) error {
	n.notified = append(n.notified, userID)
	return n.err
}

func TestBlacklistBanAndCheck(t *testing.T) {
	dir := t.TempDir()
	b := NewBlacklist(dir)

	banned, err := b.IsBanned("42")
	require.NoError(t, err)
	assert.False(t, banned)

	require.NoError(t, b.Ban("42"))
	banned, err = b.IsBanned("42")
	require.NoError(t, err)
	assert.True(t, banned)

	// durable before ack: a fresh store over the same dir sees the ban
	banned, err = NewBlacklist(dir).IsBanned("42")
	require.NoError(t, err)
	assert.True(t, banned)
}

func TestBlacklistBanIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	n := &recordingNotifier{}
	b := NewBlacklist(dir)
	b.Notifier = n

	require.NoError(t, b.Ban("42"))
	require.NoError(t, b.Ban("42"))

	raw, err := os.ReadFile(filepath.Join(dir, "banned-users.json"))
	require.NoError(t, err)
	var users []string
	require.NoError(t, jsoniter.Unmarshal(raw, &users))
	assert.Equal(t, []string{"42"}, users)

	// only the first insertion notifies
	assert.Equal(t, []string{"42"}, n.notified)
}

func TestBlacklistNotifyFailureKeepsBan(t *testing.T) {
	b := NewBlacklist(t.TempDir())
	b.Notifier = &recordingNotifier{err: fmt.Errorf("dm blocked")}

	require.NoError(t, b.Ban("42"))
	banned, err := b.IsBanned("42")
	require.NoError(t, err)
	assert.True(t, banned)
}

func TestBlacklistCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banned-users.json"), []byte("{not json"), 0600))
	b := NewBlacklist(dir)

	_, err := b.IsBanned("42")
	assert.Error(t, err)
	assert.Error(t, b.Ban("42"))
}

func TestBlacklistEmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "banned-users.json"), nil, 0600))
	banned, err := NewBlacklist(dir).IsBanned("42")
	require.NoError(t, err)
	assert.False(t, banned)
}
