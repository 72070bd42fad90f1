package storage

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-admin/internal/application/auth"
)

var _ Store = (*Memory)(nil)

// pruneEvery cada cuántas escrituras se recorren las sesiones vencidas.
const pruneEvery = 256

type memSession struct {
	values    map[string]string
	expiresAt time.Time
}

func (s *memSession) expired(now time.Time) bool {
	return !s.expiresAt.IsZero() && !now.Before(s.expiresAt)
}

// Memory store en proceso. Las sesiones vencen ttl después del último
// acceso (lectura o escritura); ttl <= 0 desactiva el vencimiento.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]*memSession
	ttl      time.Duration
	writes   int
	now      func() time.Time
}

// NewMemory construye el store en memoria.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{sessions: make(map[string]*memSession), ttl: ttl, now: time.Now}
}

// Session implementa Store.
func (m *Memory) Session(id string) auth.Storage {
	return &memView{m: m, id: id}
}

// Destroy implementa Store.
func (m *Memory) Destroy(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Close no-op.
func (m *Memory) Close() error { return nil }

// Len sesiones vivas.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	n := 0
	for _, s := range m.sessions {
		if !s.expired(now) {
			n++
		}
	}
	return n
}

// live devuelve la sesión si existe y no venció. Requiere m.mu.
func (m *Memory) live(id string) *memSession {
	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	if s.expired(m.now()) {
		delete(m.sessions, id)
		return nil
	}
	return s
}

// touch renueva el vencimiento de s. Requiere m.mu.
func (m *Memory) touch(s *memSession) {
	if m.ttl > 0 {
		s.expiresAt = m.now().Add(m.ttl)
	}
}

func (m *Memory) prune() {
	now := m.now()
	for id, s := range m.sessions {
		if s.expired(now) {
			delete(m.sessions, id)
		}
	}
}

type memView struct {
	m  *Memory
	id string
}

func (v *memView) Get(_ context.Context, key string) (string, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	s := v.m.live(v.id)
	if s == nil {
		return "", auth.ErrNoValue
	}
	v.m.touch(s)
	val, ok := s.values[key]
	if !ok {
		return "", auth.ErrNoValue
	}
	return val, nil
}

func (v *memView) Set(_ context.Context, key, value string) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	v.m.writes++
	if v.m.writes%pruneEvery == 0 {
		v.m.prune()
	}
	s := v.m.live(v.id)
	if s == nil {
		s = &memSession{values: make(map[string]string)}
		v.m.sessions[v.id] = s
	}
	s.values[key] = value
	v.m.touch(s)
	return nil
}

func (v *memView) Remove(_ context.Context, key string) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if s := v.m.live(v.id); s != nil {
		delete(s.values, key)
	}
	return nil
}
