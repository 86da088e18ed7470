package rules

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nerrad567/plain-automation/internal/translator"
)

// MemoryStore is an in-memory Store for tests and ephemeral setups.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]translator.NativeDocument
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]translator.NativeDocument),
	}
}

// Get returns the document stored under id.
func (s *MemoryStore) Get(_ context.Context, id string) (translator.NativeDocument, error) {
	if !ValidID(id) {
		return translator.NativeDocument{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return translator.NativeDocument{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return doc, nil
}

// Create stores a new document, failing if the identifier is taken.
func (s *MemoryStore) Create(_ context.Context, id string, doc translator.NativeDocument) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, id)
	}
	s.docs[id] = doc
	return nil
}

// Replace overwrites an existing document.
func (s *MemoryStore) Replace(_ context.Context, id string, doc translator.NativeDocument) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.docs[id] = doc
	return nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.docs, id)
	return nil
}

// List returns all stored documents sorted by identifier.
func (s *MemoryStore) List(_ context.Context) ([]Stored, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := make([]Stored, 0, len(s.docs))
	for id, doc := range s.docs {
		stored = append(stored, Stored{ID: id, Document: doc})
	}

	sort.Slice(stored, func(i, j int) bool {
		return stored[i].ID < stored[j].ID
	})

	return stored, nil
}
