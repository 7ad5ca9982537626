package session

import (
	"os"
	"path/filepath"
	"sync"

	"plannerd/pkg/types"
)

// State is the lifecycle state of the session manager.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// LoadOptions tunes a single load request.
type LoadOptions struct {
	// Token window for the inference context. <=0 uses DefaultContextLength.
	ContextLength int
}

// Manager holds at most one loaded model with its inference context and chat
// session, and gates loading and generation. Instances are independent; create
// one per daemon (or per test).
type Manager struct {
	mu sync.Mutex

	backend Backend

	loading    bool
	generating bool

	model   Model
	infCtx  Context
	chat    ChatSession
	path    string
}

// NewManager creates an empty session manager over the given backend.
func NewManager(backend Backend) *Manager {
	return &Manager{backend: backend}
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch {
	case m.loading:
		return StateLoading
	case m.chat != nil:
		return StateReady
	default:
		return StateEmpty
	}
}

// Loaded reports whether a session is currently ready. Pure query.
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chat != nil && !m.loading
}

// Describe returns the descriptor of the loaded model, or nil when not ready.
func (m *Manager) Describe() *types.LoadedModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chat == nil || m.loading {
		return nil
	}
	return &types.LoadedModel{Name: filepath.Base(m.path), Path: m.path}
}

// Load loads the model at path, replacing any session held before. Only one
// load may be in flight; a second concurrent call fails with AlreadyLoading
// and leaves the manager untouched. Any failure during the load sequence
// resets the manager to empty.
func (m *Manager) Load(path string, opts LoadOptions) (types.LoadedModel, error) {
	if opts.ContextLength <= 0 {
		opts.ContextLength = DefaultContextLength
	}

	m.mu.Lock()
	if m.loading {
		m.mu.Unlock()
		return types.LoadedModel{}, ErrAlreadyLoading()
	}
	if _, err := os.Stat(path); err != nil {
		m.mu.Unlock()
		return types.LoadedModel{}, ErrFileNotFound(path)
	}
	m.loading = true
	m.mu.Unlock()

	model, infCtx, chat, err := m.buildSession(path, opts.ContextLength)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	// The prior session, if any, is dropped either way: replaced on success,
	// cleared on failure so the next attempt starts clean.
	prior := m.chat
	priorModel := m.model
	if err != nil {
		m.model, m.infCtx, m.chat, m.path = nil, nil, nil, ""
		releaseSession(prior, priorModel)
		if IsBackendUnavailable(err) {
			return types.LoadedModel{}, err
		}
		return types.LoadedModel{}, ErrModelLoad(err)
	}
	m.model, m.infCtx, m.chat, m.path = model, infCtx, chat, path
	releaseSession(prior, priorModel)
	return types.LoadedModel{Name: filepath.Base(path), Path: path}, nil
}

// buildSession runs the backend load sequence without holding the lock.
func (m *Manager) buildSession(path string, contextLength int) (Model, Context, ChatSession, error) {
	model, err := m.backend.LoadModel(path)
	if err != nil {
		return nil, nil, nil, err
	}
	infCtx, err := model.NewContext(contextLength)
	if err != nil {
		_ = model.Close()
		return nil, nil, nil, err
	}
	chat, err := infCtx.NewSession()
	if err != nil {
		_ = model.Close()
		return nil, nil, nil, err
	}
	return model, infCtx, chat, nil
}

// Unload releases the held session. Returns false when there was nothing to
// unload; that is a normal outcome, not an error.
func (m *Manager) Unload() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chat == nil {
		return false
	}
	releaseSession(m.chat, m.model)
	m.model, m.infCtx, m.chat, m.path = nil, nil, nil, ""
	return true
}

// releaseSession closes session handles best effort. Close errors have nowhere
// useful to go; the handles are unreachable afterwards either way.
func releaseSession(chat ChatSession, model Model) {
	if chat != nil {
		_ = chat.Close()
	}
	if model != nil {
		_ = model.Close()
	}
}
