package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/krex38/subgate/common"
	"github.com/krex38/subgate/pkg/log"
)

// Notifier delivers best-effort messages to a user on the chat platform.
type Notifier interface {
	NotifyUser(userID string, message string) error
}

const blacklistNotice = "Your account has been blacklisted from using the verification system for attempting to use fake screenshots."

// Blacklist is the persisted deny-list of user identifiers: a flat JSON
// array, reread on every check and rewritten atomically on every mutation.
// Presence denies all verification activity until manual intervention.
type Blacklist struct {
	// Notifier may be set after construction, before the pipeline runs.
	Notifier Notifier

	mu       sync.Mutex
	filename string
}

func NewBlacklist(confDir string) *Blacklist {
	return &Blacklist{
		filename: filepath.Join(confDir, "banned-users.json"),
	}
}

func (b *Blacklist) load() ([]string, error) {
	raw, err := os.ReadFile(b.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var users []string
	if err := jsoniter.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("corrupt blacklist file %v: %w", b.filename, err)
	}
	return users, nil
}

func (b *Blacklist) IsBanned(userID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	users, err := b.load()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u == userID {
			return true, nil
		}
	}
	return false, nil
}

// Ban inserts userID into the deny-list. The write is durable before Ban
// returns. The first insertion also notifies the user; a failed notification
// never rolls the ban back.
func (b *Blacklist) Ban(userID string) error {
	inserted, err := b.insert(userID)
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}
	log.Info("user %v has been blacklisted", userID)
	if b.Notifier != nil {
		if err := b.Notifier.NotifyUser(userID, blacklistNotice); err != nil {
			log.Warn("blacklist notification for %v: %v", userID, err)
		}
	}
	return nil
}

func (b *Blacklist) insert(userID string) (inserted bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	users, err := b.load()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u == userID {
			return false, nil
		}
	}
	users = append(users, userID)
	raw, err := jsoniter.MarshalIndent(users, "", "  ")
	if err != nil {
		return false, err
	}
	if err := common.WriteFileAtomic(b.filename, raw, 0600); err != nil {
		return false, err
	}
	return true, nil
}
