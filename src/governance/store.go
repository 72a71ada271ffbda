package governance

import "sync"

// Store is the owned proposal collection behind the engine. Implementations
// must hand back independent copies: a caller mutating a returned record
// must never affect stored state except through Put.
type Store interface {
	// Get loads one proposal. The bool is false when the identity is
	// unknown; the error is reserved for storage failures.
	Get(id string) (Proposal, bool, error)
	// Put creates or replaces a proposal keyed by its ID.
	Put(p Proposal) error
	// Delete removes a proposal. Deleting an unknown identity is a no-op.
	Delete(id string) error
	// List returns every stored proposal in no particular order.
	List() ([]Proposal, error)
}

// MemoryStore keeps proposals in a mutex-guarded map. It backs tests and
// single-node deployments that do not need durability.
type MemoryStore struct {
	mu        sync.RWMutex
	proposals map[string]Proposal
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{proposals: make(map[string]Proposal)}
}

// Get implements Store.
func (s *MemoryStore) Get(id string) (Proposal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.proposals[id]
	if !ok {
		return Proposal{}, false, nil
	}
	return p.Clone(), true, nil
}

// Put implements Store.
func (s *MemoryStore) Put(p Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.proposals[p.ID] = p.Clone()
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.proposals, id)
	return nil
}

// List implements Store.
func (s *MemoryStore) List() ([]Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Proposal, 0, len(s.proposals))
	for _, p := range s.proposals {
		out = append(out, p.Clone())
	}
	return out, nil
}
