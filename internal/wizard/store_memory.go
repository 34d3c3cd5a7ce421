package wizard

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-node development.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]string)}
}

func (s *MemoryStore) session(sessionID string) map[string]string {
	session, ok := s.sessions[sessionID]
	if !ok {
		session = make(map[string]string)
		s.sessions[sessionID] = session
	}
	return session
}

func (s *MemoryStore) Current(ctx context.Context, sessionID string) (Step, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.session(sessionID)[fieldCurrent]
	if !ok {
		return "", false, nil
	}
	step, ok := ParseStep(value)
	return step, ok, nil
}

func (s *MemoryStore) SetCurrent(ctx context.Context, sessionID string, step Step) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID)[fieldCurrent] = string(step)
	return nil
}

func (s *MemoryStore) StepData(ctx context.Context, sessionID string, step Step) (json.RawMessage, bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.session(sessionID)[fieldStepPrefix+string(step)]
	if !ok {
		return nil, false, nil
	}
	return json.RawMessage(value), true, nil
}

func (s *MemoryStore) SetStepData(ctx context.Context, sessionID string, step Step, data json.RawMessage) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID)[fieldStepPrefix+string(step)] = string(data)
	return nil
}

func (s *MemoryStore) Prefill(ctx context.Context, sessionID string) (map[string]string, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string)
	for field, value := range s.session(sessionID) {
		if strings.HasPrefix(field, PrefillKeyPrefix) {
			out[field] = value
		}
	}
	return out, nil
}

func (s *MemoryStore) SetPrefill(ctx context.Context, sessionID, key, value string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID)[key] = value
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
