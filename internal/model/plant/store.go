package plant

import "sync"

// Store exposes profile lookup and registration for HTTP handlers.
type Store interface {
	Put(profile Profile) error
	Get(ownerID, deviceID string) (Profile, bool)
	List() []Profile
}

// MemoryStore implements Store with a mutex-guarded map. Profiles live for
// the lifetime of the process; there is no persistence.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[Key]Profile
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[Key]Profile)}
}

// Put validates and then inserts or replaces the profile at its identity.
// Last write wins; profiles are never deleted.
func (s *MemoryStore) Put(profile Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.items[profile.Key()] = profile
	s.mu.Unlock()
	return nil
}

// Get looks up a profile by identity. Pure lookup, no side effects.
func (s *MemoryStore) Get(ownerID, deviceID string) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.items[NewKey(ownerID, deviceID)]
	return profile, ok
}

// List returns a snapshot of every configured profile.
func (s *MemoryStore) List() []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]Profile, 0, len(s.items))
	for _, profile := range s.items {
		items = append(items, profile)
	}
	return items
}
