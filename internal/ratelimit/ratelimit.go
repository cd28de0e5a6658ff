// Package ratelimit caps searches per client per minute.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Window is the length of one counting window.
const Window = time.Minute

// Limiter decides whether one more request from key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Memory is a per-process fixed-window limiter.
type Memory struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	now      func() time.Time
	calls    int
}

type visitor struct {
	window time.Time
	count  int
}

// NewMemory allows limit requests per key per minute. A limit of 0 or less
// disables limiting.
func NewMemory(limit int) *Memory {
	return &Memory{
		visitors: make(map[string]*visitor),
		limit:    limit,
		now:      time.Now,
	}
}

func (m *Memory) Allow(ctx context.Context, key string) (bool, error) {
	if m.limit <= 0 {
		return true, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	window := m.now().Truncate(Window)

	m.calls++
	if m.calls%1000 == 0 {
		m.sweep(window)
	}

	v, ok := m.visitors[key]
	if !ok || !v.window.Equal(window) {
		m.visitors[key] = &visitor{window: window, count: 1}
		return true, nil
	}

	if v.count >= m.limit {
		return false, nil
	}
	v.count++
	return true, nil
}

// sweep drops visitors from past windows. Caller holds mu.
func (m *Memory) sweep(current time.Time) {
	for key, v := range m.visitors {
		if v.window.Before(current) {
			delete(m.visitors, key)
		}
	}
}
