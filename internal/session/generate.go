package session

import "context"

// Generate forwards prompt and sampling parameters to the active chat session,
// invoking onChunk for every produced fragment in order, and returns the full
// concatenated text. Exactly one generation may be in flight; a second call
// fails with GenerationBusy. A failed generation leaves the session intact so
// the caller can retry against the same loaded model.
func (m *Manager) Generate(ctx context.Context, prompt string, params Params, onChunk func(string) error) (string, error) {
	m.mu.Lock()
	if m.chat == nil || m.loading {
		m.mu.Unlock()
		return "", ErrNoModelLoaded()
	}
	if m.generating {
		m.mu.Unlock()
		return "", ErrGenerationBusy()
	}
	m.generating = true
	chat := m.chat
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.generating = false
		m.mu.Unlock()
	}()

	text, err := chat.Generate(ctx, prompt, params.withDefaults(), onChunk)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", ErrGeneration(err)
	}
	return text, nil
}
