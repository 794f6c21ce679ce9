package sessionrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gostorefront/internal/domain"
	"gostorefront/internal/errors"
)

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// MemoryStore guarda sessões no processo. Adequado para uma única réplica e para testes.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return domain.Session{}, errors.NewNotFoundError(fmt.Sprintf("Sessão %s expirada ou inexistente.", id))
	}
	return entry.session.Clone(), nil
}

// Save grava uma cópia e renova a expiração.
func (s *MemoryStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = memoryEntry{session: session.Clone(), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Sweep remove sessões expiradas e devolve quantas foram removidas.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, removed := s.now(), 0
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper executa Sweep periodicamente até o contexto ser cancelado.
func (s *MemoryStore) RunSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
