package service

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/krex38/subgate/common"
	"github.com/krex38/subgate/pkg/imghash"
)

// DecoyStore owns the fingerprints of administrator-seeded decoy images.
// Every decoy is persisted under the watermarks dir as a file named by its
// own fingerprint, so registering an identical image twice lands on the same
// file. Nothing ever removes an entry.
type DecoyStore struct {
	mu     sync.Mutex
	dir    string
	hashes map[string]struct{}
}

func NewDecoyStore(confDir string) (*DecoyStore, error) {
	dir := filepath.Join(confDir, "watermarks")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	s := &DecoyStore{
		dir:    dir,
		hashes: make(map[string]struct{}),
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		s.hashes[name] = struct{}{}
	}
	return s, nil
}

// RegisterDecoy fingerprints the image and persists it; registering the same
// image twice is a no-op.
func (s *DecoyStore) RegisterDecoy(imageBytes []byte) (hash string, err error) {
	hash, err = imghash.Fingerprint(imageBytes)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hashes[hash]; ok {
		return hash, nil
	}
	if err := common.WriteFileAtomic(filepath.Join(s.dir, hash+".png"), imageBytes, 0600); err != nil {
		return "", err
	}
	s.hashes[hash] = struct{}{}
	return hash, nil
}

// IsKnownDecoy reports whether the image normalizes to a registered decoy.
func (s *DecoyStore) IsKnownDecoy(imageBytes []byte) (bool, error) {
	hash, err := imghash.Fingerprint(imageBytes)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.hashes[hash]
	return ok, nil
}
