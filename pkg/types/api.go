package types

// LoadModelRequest is the payload for POST /model/load.
type LoadModelRequest struct {
	// Required absolute path of the GGUF file to load.
	// example: /home/user/models/TinyLlama.Q4_K_M.gguf
	Path string `json:"path" example:"/home/user/models/TinyLlama.Q4_K_M.gguf"`
	// Token window for the inference context. 0 uses the server default (2048).
	// example: 2048
	ContextLength int `json:"context_length,omitempty" example:"2048"`
}

// LoadModelResponse is returned by POST /model/load on success.
type LoadModelResponse struct {
	Success bool `json:"success" example:"true"`
	// Absolute path of the loaded model.
	ModelPath string `json:"model_path" example:"/home/user/models/TinyLlama.Q4_K_M.gguf"`
	// File name of the loaded model.
	ModelName string `json:"model_name" example:"TinyLlama.Q4_K_M.gguf"`
}

// UnloadModelResponse is returned by POST /model/unload. Success is false when
// there was nothing to unload; that is a normal outcome, not an error.
type UnloadModelResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"no model loaded"`
}

// ModelLoadedResponse is returned by GET /model/loaded.
type ModelLoadedResponse struct {
	Loaded bool `json:"loaded" example:"true"`
}

// GenerateRequest is the payload for POST /generate.
type GenerateRequest struct {
	// Required prompt text to generate a completion for.
	// example: Outline the boss fight for level 3.
	Prompt string `json:"prompt" example:"Outline the boss fight for level 3."`
	// Maximum number of new tokens to generate. 0 uses the default (512).
	// example: 512
	MaxTokens int `json:"max_tokens,omitempty" example:"512"`
	// Sampling temperature (higher = more random). 0 uses the default (0.7).
	// example: 0.7
	Temperature float64 `json:"temperature,omitempty" example:"0.7"`
	// Top-K sampling: limit candidates to top K tokens. 0 uses the default (40).
	// example: 40
	TopK int `json:"top_k,omitempty" example:"40"`
	// Nucleus sampling probability. 0 uses the default (0.9).
	// example: 0.9
	TopP float64 `json:"top_p,omitempty" example:"0.9"`
}

// GenerateChunk is one NDJSON line of incremental output during generation.
type GenerateChunk struct {
	Chunk string `json:"chunk" example:"Hel"`
}

// GenerateDone is the final NDJSON line of a generation stream.
type GenerateDone struct {
	Done bool `json:"done" example:"true"`
	// Full concatenated generation output.
	Text string `json:"text" example:"Hello"`
}

// ModelsResponse wraps the list of model files returned by GET /models.
type ModelsResponse struct {
	Models []ModelFile `json:"models"`
}

// AppInfoResponse is returned by GET /app/info.
type AppInfoResponse struct {
	// Application version string.
	// example: 1.4.0
	Version string `json:"version" example:"1.4.0"`
	// Directory holding planner project documents.
	DataDir string `json:"data_dir" example:"/home/user/.local/share/plannerd"`
	// Whether this build carries the llama inference runtime.
	LlamaBuilt bool `json:"llama_built" example:"true"`
}

// ProjectsResponse wraps the project names returned by GET /projects.
type ProjectsResponse struct {
	Projects []string `json:"projects"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Session state: empty, loading or ready.
	// example: ready
	State string `json:"state" example:"ready"`
	// Currently loaded model, present only when state is ready.
	Model *LoadedModel `json:"model,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
