package tokenstore

import (
	"context"
	"sync"
)

type Memory struct {
	mu    sync.Mutex
	token string
}

func NewMemory(initial string) *Memory {
	return &Memory{token: initial}
}

func (m *Memory) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *Memory) Save(_ context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
