package store

import (
	"sync"

	"glitchterm/internal/domain"
)

// MemoryAccountStore is an in-memory account cache keyed by account id
type MemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	onImport func(ids []string)
}

// NewMemoryAccountStore creates an empty account store
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

// OnImport registers a callback invoked after every import with the imported ids
func (s *MemoryAccountStore) OnImport(fn func(ids []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onImport = fn
}

// ImportAccounts upserts accounts by id. Moved-to accounts are imported as well.
func (s *MemoryAccountStore) ImportAccounts(accounts []domain.Account) {
	s.mu.Lock()
	ids := make([]string, 0, len(accounts))
	for i := range accounts {
		s.put(accounts[i])
		ids = append(ids, accounts[i].ID)
	}
	onImport := s.onImport
	s.mu.Unlock()

	if onImport != nil && len(ids) > 0 {
		onImport(ids)
	}
}

func (s *MemoryAccountStore) put(account domain.Account) {
	if account.ID == "" {
		return
	}
	if account.Moved != nil {
		s.put(*account.Moved)
		moved := *account.Moved
		moved.Moved = nil
		account.Moved = &moved
	}
	s.accounts[account.ID] = &account
}

// Account returns the stored account or nil
func (s *MemoryAccountStore) Account(id string) *domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts[id]
}

// Accounts returns the known accounts for ids in order, skipping unknown ids
func (s *MemoryAccountStore) Accounts(ids []string) []*domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		if a, ok := s.accounts[id]; ok {
			result = append(result, a)
		}
	}
	return result
}

// Len returns the number of stored accounts
func (s *MemoryAccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// MemoryRelationshipStore is an in-memory relationship cache keyed by account id
type MemoryRelationshipStore struct {
	mu            sync.RWMutex
	relationships map[string]*domain.Relationship
}

// NewMemoryRelationshipStore creates an empty relationship store
func NewMemoryRelationshipStore() *MemoryRelationshipStore {
	return &MemoryRelationshipStore{
		relationships: make(map[string]*domain.Relationship),
	}
}

func (s *MemoryRelationshipStore) ImportRelationships(rels []domain.Relationship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range rels {
		rel := rels[i]
		s.relationships[rel.ID] = &rel
	}
}

func (s *MemoryRelationshipStore) Relationship(id string) *domain.Relationship {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.relationships[id]
}
