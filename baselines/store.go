package baselines

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/dsv-rl/daaf/util"
)

// Entry is one persisted baseline: the converged values plus the
// fingerprint of the MDP they were computed from
type Entry struct {
	Values      []float64 `json:"values"`
	Fingerprint string    `json:"fingerprint"`
}

// Store persists baseline entries by key
type Store interface {
	Load(key Key) (*Entry, bool, error)
	Save(key Key, entry *Entry) error
}

// FileStore keeps one JSON file per key under a root directory
type FileStore struct {
	Root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{Root: root}
}

var _ Store = &FileStore{}

func (s *FileStore) entryPath(key Key) string {
	return path.Join(s.Root, key.String()+".json")
}

func (s *FileStore) Load(key Key) (*Entry, bool, error) {
	bs, err := os.ReadFile(s.entryPath(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	entry := &Entry{}
	if err := json.Unmarshal(bs, entry); err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", s.entryPath(key), err)
	}
	return entry, true, nil
}

func (s *FileStore) Save(key Key, entry *Entry) error {
	if err := util.EnsureDir(s.Root); err != nil {
		return err
	}
	bs, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return os.WriteFile(s.entryPath(key), bs, 0644)
}
