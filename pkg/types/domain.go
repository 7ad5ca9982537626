package types

// ModelFile describes a GGUF model file discovered on disk.
type ModelFile struct {
	// File name, used as the display name.
	// example: TinyLlama.Q4_K_M.gguf
	Name string `json:"name" example:"TinyLlama.Q4_K_M.gguf"`
	// Absolute path to the model file on disk.
	// example: /home/user/models/TinyLlama.Q4_K_M.gguf
	Path string `json:"path" example:"/home/user/models/TinyLlama.Q4_K_M.gguf"`
	// File size in bytes.
	// example: 668788096
	SizeBytes int64 `json:"size" example:"668788096"`
	// Human-readable file size.
	// example: 638 MiB
	SizeFormatted string `json:"size_formatted" example:"638 MiB"`
	// Last modification time in unix seconds.
	// example: 1700000000
	Modified int64 `json:"modified" example:"1700000000"`
}

// LoadedModel identifies the model currently held by the session manager.
type LoadedModel struct {
	// File name of the loaded model.
	// example: TinyLlama.Q4_K_M.gguf
	Name string `json:"name" example:"TinyLlama.Q4_K_M.gguf"`
	// Absolute path the model was loaded from.
	// example: /home/user/models/TinyLlama.Q4_K_M.gguf
	Path string `json:"path" example:"/home/user/models/TinyLlama.Q4_K_M.gguf"`
}
