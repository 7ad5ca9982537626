//go:build llama

package session

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaBackend creates sessions over go-llama.cpp.
type llamaBackend struct {
	threads int
}

// NewLlamaBackend returns the llama.cpp backend. threads <=0 lets the runtime
// pick.
func NewLlamaBackend(threads int) Backend {
	return &llamaBackend{threads: threads}
}

// llamaModel defers the actual runtime load to NewContext: go-llama.cpp takes
// the context size as a model option, so model and context come up together.
type llamaModel struct {
	path    string
	threads int
	l       *llama.LLama
}

func (b *llamaBackend) LoadModel(path string) (Model, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	return &llamaModel{path: path, threads: b.threads}, nil
}

func (m *llamaModel) NewContext(contextLength int) (Context, error) {
	l, err := llama.New(m.path, llama.SetContext(contextLength))
	if err != nil {
		return nil, err
	}
	m.l = l
	return &llamaContext{model: m}, nil
}

func (m *llamaModel) Close() error {
	if m.l != nil {
		m.l.Free()
		m.l = nil
	}
	return nil
}

type llamaContext struct {
	model *llamaModel
}

func (c *llamaContext) NewSession() (ChatSession, error) {
	if c.model.l == nil {
		return nil, errors.New("llama model not initialized")
	}
	return &llamaSession{model: c.model}, nil
}

// llamaSession borrows the model's runtime handle; the model owns the memory.
type llamaSession struct {
	model *llamaModel
}

func (s *llamaSession) Generate(ctx context.Context, prompt string, params Params, onChunk func(string) error) (string, error) {
	l := s.model.l
	if l == nil {
		return "", errors.New("llama model not initialized")
	}

	// Bridge token streaming to onChunk and respect cancellation.
	l.SetTokenCallback(func(tok string) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if err := onChunk(tok); err != nil {
			return false
		}
		return true
	})

	po := []llama.PredictOption{
		llama.SetTokens(params.MaxTokens),
		llama.SetTemperature(float32(params.Temperature)),
		llama.SetTopK(params.TopK),
		llama.SetTopP(float32(params.TopP)),
	}
	if s.model.threads > 0 {
		po = append(po, llama.SetThreads(s.model.threads))
	}
	text, err := l.Predict(prompt, po...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}
	return text, nil
}

func (s *llamaSession) Close() error { return nil }
