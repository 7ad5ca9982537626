package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"plannerd/internal/catalog"
	"plannerd/internal/host"
	"plannerd/internal/project"
	"plannerd/internal/session"
	"plannerd/pkg/types"
)

// Service defines the session-manager methods required by the HTTP API layer.
type Service interface {
	Load(path string, opts session.LoadOptions) (types.LoadedModel, error)
	Unload() bool
	Loaded() bool
	Describe() *types.LoadedModel
	State() session.State
	Generate(ctx context.Context, prompt string, params session.Params, onChunk func(string) error) (string, error)
}

// ProjectStore defines the planning-document persistence used by the API.
type ProjectStore interface {
	Save(p project.Project) error
	Load(name string) (project.Project, error)
	List() ([]string, error)
	Delete(name string) error
	Root() string
}

// Deps wires the collaborators behind the HTTP boundary.
type Deps struct {
	Session   Service
	Projects  ProjectStore
	ModelsDir string
	// OpenDir opens a directory in the platform file manager. Defaults to
	// host.OpenInExplorer; injectable for tests.
	OpenDir func(dir string) error
	// StartTime feeds /status uptime. Defaults to NewMux call time.
	StartTime time.Time
}

func NewMux(deps Deps) http.Handler {
	if deps.OpenDir == nil {
		deps.OpenDir = host.OpenInExplorer
	}
	if deps.StartTime.IsZero() {
		deps.StartTime = time.Now()
	}

	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Get("/models", func(w http.ResponseWriter, r *http.Request) {
		models, err := catalog.ScanDir(deps.ModelsDir)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, types.ModelsResponse{Models: models})
	})

	r.Get("/models/info", func(w http.ResponseWriter, r *http.Request) {
		// Descriptor for a single file chosen via the UI file picker.
		path := r.URL.Query().Get("path")
		if strings.TrimSpace(path) == "" {
			writeJSONError(w, http.StatusBadRequest, "path is required")
			return
		}
		m, err := catalog.Describe(path)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, fs.ErrNotExist) {
				status = http.StatusNotFound
			}
			writeJSONError(w, status, err.Error())
			return
		}
		writeJSON(w, m)
	})

	r.Post("/models/open", func(w http.ResponseWriter, r *http.Request) {
		if err := deps.OpenDir(deps.ModelsDir); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, map[string]any{"success": true})
	})

	r.Get("/app/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.AppInfoResponse{
			Version:    host.Version,
			DataDir:    deps.Projects.Root(),
			LlamaBuilt: session.BackendBuilt(),
		})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		writeJSON(w, types.StatusResponse{
			State:          string(deps.Session.State()),
			Model:          deps.Session.Describe(),
			UptimeSeconds:  int64(now.Sub(deps.StartTime).Seconds()),
			ServerTimeUnix: now.Unix(),
		})
	})

	r.Post("/model/load", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoadModelRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Path) == "" {
			writeJSONError(w, http.StatusBadRequest, "path is required")
			return
		}
		start := time.Now()
		desc, err := deps.Session.Load(req.Path, session.LoadOptions{ContextLength: req.ContextLength})
		if err != nil {
			modelLoadsTotal.WithLabelValues("error").Inc()
			logEvent(r, "model load failed", time.Since(start), err)
			writeJSONError(w, sessionErrorStatus(err), err.Error())
			return
		}
		modelLoadsTotal.WithLabelValues("ok").Inc()
		logEvent(r, "model loaded", time.Since(start), nil)
		writeJSON(w, types.LoadModelResponse{Success: true, ModelPath: desc.Path, ModelName: desc.Name})
	})

	r.Post("/model/unload", func(w http.ResponseWriter, r *http.Request) {
		if deps.Session.Unload() {
			writeJSON(w, types.UnloadModelResponse{Success: true})
			return
		}
		writeJSON(w, types.UnloadModelResponse{Success: false, Message: "no model loaded"})
	})

	r.Get("/model/loaded", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, types.ModelLoadedResponse{Loaded: deps.Session.Loaded()})
	})

	r.Post("/generate", func(w http.ResponseWriter, r *http.Request) {
		var req types.GenerateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			writeJSONError(w, http.StatusBadRequest, "prompt is required")
			return
		}

		w.Header().Set("Content-Type", "application/x-ndjson")
		var flush func()
		if f, ok := w.(http.Flusher); ok {
			flush = f.Flush
		}
		start := time.Now()
		writer := io.Writer(w)
		lvl := requestLogLevel(r)
		if lvl >= LevelDebug {
			writer = io.MultiWriter(w, &loggingLineWriter{})
		}
		enc := json.NewEncoder(writer)

		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()

		streamed := false
		text, err := deps.Session.Generate(joinedCtx, req.Prompt, session.Params{
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
			TopK:        req.TopK,
			TopP:        req.TopP,
		}, func(chunk string) error {
			streamed = true
			generationChunksTotal.Inc()
			if err := enc.Encode(types.GenerateChunk{Chunk: chunk}); err != nil {
				return err
			}
			if flush != nil {
				flush()
			}
			return nil
		})
		if err != nil {
			generationsTotal.WithLabelValues("error").Inc()
			logEvent(r, "generate failed", time.Since(start), err)
			// If context was canceled (client disconnect or shutdown), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			if streamed {
				// Headers are gone; report the failure as a final NDJSON line.
				_ = enc.Encode(types.ErrorResponse{Error: err.Error(), Code: sessionErrorStatus(err)})
				return
			}
			writeJSONError(w, sessionErrorStatus(err), err.Error())
			return
		}
		if err := enc.Encode(types.GenerateDone{Done: true, Text: text}); err == nil && flush != nil {
			flush()
		}
		generationsTotal.WithLabelValues("ok").Inc()
		logEvent(r, "generate end", time.Since(start), nil)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			names, err := deps.Projects.List()
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if names == nil {
				names = []string{}
			}
			writeJSON(w, types.ProjectsResponse{Projects: names})
		})
		r.Get("/{name}", func(w http.ResponseWriter, r *http.Request) {
			p, err := deps.Projects.Load(chi.URLParam(r, "name"))
			if err != nil {
				writeJSONError(w, projectErrorStatus(err), err.Error())
				return
			}
			writeJSON(w, p)
		})
		r.Put("/{name}", func(w http.ResponseWriter, r *http.Request) {
			var p project.Project
			if !decodeJSON(w, r, &p) {
				return
			}
			// URL name wins over any name in the body.
			p.Name = chi.URLParam(r, "name")
			if err := deps.Projects.Save(p); err != nil {
				writeJSONError(w, projectErrorStatus(err), err.Error())
				return
			}
			writeJSON(w, map[string]any{"success": true})
		})
		r.Delete("/{name}", func(w http.ResponseWriter, r *http.Request) {
			if err := deps.Projects.Delete(chi.URLParam(r, "name")); err != nil {
				writeJSONError(w, projectErrorStatus(err), err.Error())
				return
			}
			writeJSON(w, map[string]any{"success": true})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		// The daemon serves planning data with or without a model; readiness
		// only means the process is up.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", metricsHandler())

	MountSwagger(r)

	return r
}

// decodeJSON enforces content type and body size, decoding into v. Returns
// false after writing the error response when decoding fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

func projectErrorStatus(err error) int {
	if errors.Is(err, project.ErrNotFound) {
		return http.StatusNotFound
	}
	if strings.Contains(err.Error(), "invalid project name") || strings.Contains(err.Error(), "empty project name") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func logEvent(r *http.Request, msg string, dur time.Duration, err error) {
	if requestLogLevel(r) < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Dur("dur", dur)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg(msg)
		return
	}
	if err != nil {
		log.Printf("%s path=%s dur=%s err=%v", msg, r.URL.Path, dur, err)
		return
	}
	log.Printf("%s path=%s dur=%s", msg, r.URL.Path, dur)
}
