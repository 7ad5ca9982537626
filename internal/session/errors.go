package session

// alreadyLoadingError signals that a model load is already in flight (409 mapping).
type alreadyLoadingError struct{}

func (alreadyLoadingError) Error() string { return "a model load is already in progress" }

// ErrAlreadyLoading constructs the single-flight violation error.
func ErrAlreadyLoading() error { return alreadyLoadingError{} }

// IsAlreadyLoading reports whether err indicates a load already in flight.
func IsAlreadyLoading(err error) bool {
	_, ok := err.(alreadyLoadingError)
	return ok
}

// fileNotFoundError signals that the requested model path does not exist (404 mapping).
type fileNotFoundError struct{ path string }

func (e fileNotFoundError) Error() string { return "model file not found: " + e.path }

// ErrFileNotFound constructs a fileNotFoundError for the given path.
func ErrFileNotFound(path string) error { return fileNotFoundError{path: path} }

// IsFileNotFound reports whether err indicates a missing model file.
func IsFileNotFound(err error) bool {
	_, ok := err.(fileNotFoundError)
	return ok
}

// modelLoadError wraps an underlying backend failure during the load sequence.
type modelLoadError struct{ cause error }

func (e modelLoadError) Error() string { return "model load failed: " + e.cause.Error() }
func (e modelLoadError) Unwrap() error { return e.cause }

// ErrModelLoad wraps cause as a load failure.
func ErrModelLoad(cause error) error { return modelLoadError{cause: cause} }

// IsModelLoad reports whether err is a wrapped load failure.
func IsModelLoad(err error) bool {
	_, ok := err.(modelLoadError)
	return ok
}

// noModelLoadedError signals generation was requested without a ready session.
type noModelLoadedError struct{}

func (noModelLoadedError) Error() string { return "no model loaded" }

// ErrNoModelLoaded constructs the missing-session error.
func ErrNoModelLoaded() error { return noModelLoadedError{} }

// IsNoModelLoaded reports whether err indicates no ready session.
func IsNoModelLoaded(err error) bool {
	_, ok := err.(noModelLoadedError)
	return ok
}

// generationBusyError signals a generation already in flight (429 mapping).
type generationBusyError struct{}

func (generationBusyError) Error() string { return "a generation is already in progress" }

// ErrGenerationBusy constructs the concurrent-generation error.
func ErrGenerationBusy() error { return generationBusyError{} }

// IsGenerationBusy reports whether err indicates an in-flight generation.
func IsGenerationBusy(err error) bool {
	_, ok := err.(generationBusyError)
	return ok
}

// generationError wraps an underlying backend failure during generation.
type generationError struct{ cause error }

func (e generationError) Error() string { return "generation failed: " + e.cause.Error() }
func (e generationError) Unwrap() error { return e.cause }

// ErrGeneration wraps cause as a generation failure.
func ErrGeneration(cause error) error { return generationError{cause: cause} }

// IsGeneration reports whether err is a wrapped generation failure.
func IsGeneration(err error) bool {
	_, ok := err.(generationError)
	return ok
}

// backendUnavailableError signals a missing inference runtime (e.g. built without
// the 'llama' tag) so the HTTP layer can return 503 instead of 500.
type backendUnavailableError struct{ msg string }

func (e backendUnavailableError) Error() string { return e.msg }

// ErrBackendUnavailable constructs a backendUnavailableError.
func ErrBackendUnavailable(msg string) error { return backendUnavailableError{msg: msg} }

// IsBackendUnavailable reports whether err indicates a missing inference runtime.
func IsBackendUnavailable(err error) bool {
	_, ok := err.(backendUnavailableError)
	return ok
}
