// Package session owns the model assistant lifecycle for the planner: at most
// one loaded model with its inference context and chat session, plus the
// streaming generation bridge. It is structured into small files by concern:
//
//   - session.go: Manager type, lifecycle state, Load/Unload/Loaded/Describe.
//   - generate.go: Generate entry point and the in-flight generation gate.
//   - backend.go: Backend/Model/Context/ChatSession interfaces, Params and
//     the sampling/context defaults.
//   - errors.go: error types and predicates (IsAlreadyLoading, IsFileNotFound,
//     IsModelLoad, IsNoModelLoaded, IsGenerationBusy, IsGeneration,
//     IsBackendUnavailable).
//
// Build tags and runtimes:
//
//   - In-process llama: go-llama.cpp backend, enabled with `-tags=llama`
//     (llama.go). A no-CGO stub compiles otherwise (llama_stub.go) and fails
//     loads fast with a backend-unavailable error.
//
// External packages should treat this package as the assistant layer and use
// public methods only (NewManager, Load, Unload, Loaded, Describe, State,
// Generate). Internal fields are subject to change.
package session
