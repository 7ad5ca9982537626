package session

import (
	"context"
	"sync"
)

// fakeBackend scripts the backend load sequence for tests. All state lives on
// the backend so tests can inspect it without digging handles out of the
// manager.
type fakeBackend struct {
	mu sync.Mutex

	loadErr error
	ctxErr  error
	sessErr error
	genErr  error

	chunks []string

	// When set, LoadModel blocks until the channel is closed. Used to hold a
	// load in flight.
	loadGate chan struct{}
	// When set, Generate blocks until the channel is closed.
	genGate chan struct{}

	loads          int
	lastCtxLen     int
	lastPrompt     string
	lastParams     Params
	modelsClosed   int
	sessionsClosed int
}

func (b *fakeBackend) LoadModel(path string) (Model, error) {
	if b.loadGate != nil {
		<-b.loadGate
	}
	b.mu.Lock()
	b.loads++
	b.mu.Unlock()
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return &fakeModel{backend: b}, nil
}

type fakeModel struct {
	backend *fakeBackend
}

func (m *fakeModel) NewContext(contextLength int) (Context, error) {
	m.backend.mu.Lock()
	m.backend.lastCtxLen = contextLength
	m.backend.mu.Unlock()
	if m.backend.ctxErr != nil {
		return nil, m.backend.ctxErr
	}
	return &fakeContext{backend: m.backend}, nil
}

func (m *fakeModel) Close() error {
	m.backend.mu.Lock()
	m.backend.modelsClosed++
	m.backend.mu.Unlock()
	return nil
}

type fakeContext struct {
	backend *fakeBackend
}

func (c *fakeContext) NewSession() (ChatSession, error) {
	if c.backend.sessErr != nil {
		return nil, c.backend.sessErr
	}
	return &fakeSession{backend: c.backend}, nil
}

type fakeSession struct {
	backend *fakeBackend
}

func (s *fakeSession) Generate(ctx context.Context, prompt string, params Params, onChunk func(string) error) (string, error) {
	b := s.backend
	b.mu.Lock()
	b.lastPrompt = prompt
	b.lastParams = params
	b.mu.Unlock()
	if b.genGate != nil {
		select {
		case <-b.genGate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if b.genErr != nil {
		return "", b.genErr
	}
	var out string
	for _, ch := range b.chunks {
		if err := onChunk(ch); err != nil {
			return "", err
		}
		out += ch
	}
	return out, nil
}

func (s *fakeSession) Close() error {
	s.backend.mu.Lock()
	s.backend.sessionsClosed++
	s.backend.mu.Unlock()
	return nil
}
