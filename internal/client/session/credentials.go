package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gallerykeeper/internal/client/repositories/metadata"
)

// StorageKey names the single persisted slot holding {"sessionToken": ...}.
const StorageKey = "gallerykeeper-auth"

// CredentialStore persists the session credential between runs.
// Load returns an empty token when nothing is stored.
type CredentialStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type persistedAuth struct {
	SessionToken string `json:"sessionToken"`
}

// MetadataCredentialStore keeps the credential in the client's metadata
// repository under StorageKey.
type MetadataCredentialStore struct {
	repo metadata.Repository
}

// NewMetadataCredentialStore stores the credential in repo.
func NewMetadataCredentialStore(repo metadata.Repository) *MetadataCredentialStore {
	return &MetadataCredentialStore{repo: repo}
}

func (m *MetadataCredentialStore) Load(ctx context.Context) (string, error) {
	raw, err := m.repo.Get(ctx, StorageKey)
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", nil
	}

	var pa persistedAuth
	if err := json.Unmarshal(raw, &pa); err != nil {
		return "", fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	return pa.SessionToken, nil
}

func (m *MetadataCredentialStore) Save(ctx context.Context, token string) error {
	raw, err := json.Marshal(persistedAuth{SessionToken: token})
	if err != nil {
		return err
	}
	return m.repo.Set(ctx, StorageKey, raw)
}

func (m *MetadataCredentialStore) Clear(ctx context.Context) error {
	return m.repo.Delete(ctx, StorageKey)
}

// SavedAt reports when the credential was last persisted. It returns the
// zero time when nothing is stored or the repository keeps no timestamps.
func (m *MetadataCredentialStore) SavedAt(ctx context.Context) (time.Time, error) {
	tr, ok := m.repo.(interface {
		UpdatedAt(ctx context.Context, key string) (time.Time, error)
	})
	if !ok {
		return time.Time{}, nil
	}
	return tr.UpdatedAt(ctx, StorageKey)
}

// MemoryCredentialStore keeps the credential in process memory only.
type MemoryCredentialStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryCredentialStore starts with token already stored; pass "" for
// an empty store.
func NewMemoryCredentialStore(token string) *MemoryCredentialStore {
	return &MemoryCredentialStore{token: token}
}

func (m *MemoryCredentialStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryCredentialStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryCredentialStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
