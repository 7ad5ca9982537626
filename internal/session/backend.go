package session

import "context"

// Backend abstracts the inference runtime behind the session manager. The call
// sequence mirrors the runtime's own lifecycle: load a model file, size an
// inference context over it, open a chat session bound to that context.
type Backend interface {
	// LoadModel prepares the model at path. The returned Model owns the heavy
	// runtime resources and must be closed when the session is replaced or
	// unloaded.
	LoadModel(path string) (Model, error)
}

// Model is a loaded model file.
type Model interface {
	// NewContext creates an inference context with the given token window.
	NewContext(contextLength int) (Context, error)
	// Close releases the model and everything derived from it.
	Close() error
}

// Context is an inference context sized over a loaded model.
type Context interface {
	// NewSession opens a chat session bound to this context.
	NewSession() (ChatSession, error)
}

// ChatSession produces completions for prompts.
type ChatSession interface {
	// Generate streams incremental output for prompt. onChunk is invoked for
	// each produced fragment in production order; returning an error from it
	// stops the generation. The full concatenated text is returned at the end.
	// Implementations must return once ctx is canceled.
	Generate(ctx context.Context, prompt string, params Params, onChunk func(string) error) (string, error)
	// Close releases per-session resources.
	Close() error
}

// Params captures sampling parameters for one generation call.
type Params struct {
	MaxTokens   int
	Temperature float64
	TopK        int
	TopP        float64
}

// Defaults applied when the corresponding request fields are unset.
const (
	DefaultContextLength = 2048
	DefaultMaxTokens     = 512
	DefaultTemperature   = 0.7
	DefaultTopK          = 40
	DefaultTopP          = 0.9
)

// BackendBuilt reports whether this binary carries the real llama runtime
// (compiled with the 'llama' tag) or the refusing stub.
func BackendBuilt() bool { return llamaBuilt }

// withDefaults fills unset sampling parameters.
func (p Params) withDefaults() Params {
	if p.MaxTokens <= 0 {
		p.MaxTokens = DefaultMaxTokens
	}
	if p.Temperature <= 0 {
		p.Temperature = DefaultTemperature
	}
	if p.TopK <= 0 {
		p.TopK = DefaultTopK
	}
	if p.TopP <= 0 {
		p.TopP = DefaultTopP
	}
	return p
}
