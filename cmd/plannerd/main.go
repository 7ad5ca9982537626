package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"plannerd/internal/catalog"
	"plannerd/internal/config"
	"plannerd/internal/host"
	"plannerd/internal/httpapi"
	"plannerd/internal/project"
	"plannerd/internal/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// flag values feed a config.Config; file values fill anything the user did
// not set on the command line.
type cliOptions struct {
	configPath string
	cfg        config.Config
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "plannerd",
		Short:         "Local backend daemon for the game-dev planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Optional config file (.yaml/.json/.toml)")
	pf.StringVar(&opts.cfg.Addr, "addr", envDefault("PLANNERD_ADDR", "127.0.0.1:8090"), "HTTP listen address")
	pf.StringVar(&opts.cfg.ModelsDir, "models-dir", "~/models/llm", "Directory to scan for *.gguf model files")
	pf.StringVar(&opts.cfg.DataDir, "data-dir", "", "Directory for planner project documents (default: per-user config dir)")
	pf.IntVar(&opts.cfg.ContextLength, "context-length", session.DefaultContextLength, "Default token window for loaded models")
	pf.IntVar(&opts.cfg.Threads, "threads", 0, "Inference threads (0 = runtime default)")
	pf.BoolVar(&opts.cfg.CORSEnabled, "cors-enabled", false, "Enable CORS for the UI renderer")
	pf.StringSliceVar(&opts.cfg.CORSOrigins, "cors-origins", nil, "Allowed CORS origins")
	pf.StringVar(&opts.cfg.LogLevel, "log-level", envDefault("PLANNERD_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")

	root.AddCommand(newServeCmd(opts), newModelsCmd(opts), newVersionCmd())
	return root
}

// resolve merges an optional config file under the command-line flags. Flags
// the user set explicitly win.
func resolve(cmd *cobra.Command, opts *cliOptions) (config.Config, error) {
	cfg := opts.cfg
	if opts.configPath == "" {
		return cfg, nil
	}
	fileCfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	fl := cmd.Flags()
	if !fl.Changed("addr") && fileCfg.Addr != "" {
		cfg.Addr = fileCfg.Addr
	}
	if !fl.Changed("models-dir") && fileCfg.ModelsDir != "" {
		cfg.ModelsDir = fileCfg.ModelsDir
	}
	if !fl.Changed("data-dir") && fileCfg.DataDir != "" {
		cfg.DataDir = fileCfg.DataDir
	}
	if !fl.Changed("context-length") && fileCfg.ContextLength > 0 {
		cfg.ContextLength = fileCfg.ContextLength
	}
	if !fl.Changed("threads") && fileCfg.Threads > 0 {
		cfg.Threads = fileCfg.Threads
	}
	if !fl.Changed("cors-enabled") {
		cfg.CORSEnabled = cfg.CORSEnabled || fileCfg.CORSEnabled
	}
	if !fl.Changed("cors-origins") && len(fileCfg.CORSOrigins) > 0 {
		cfg.CORSOrigins = fileCfg.CORSOrigins
	}
	if !fl.Changed("log-level") && fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	return cfg, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger().Level(lvl)
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the planner backend daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)

			dataDir := cfg.DataDir
			if dataDir == "" {
				dataDir, err = host.DefaultDataDir()
				if err != nil {
					return err
				}
			}
			store, err := project.NewStore(dataDir)
			if err != nil {
				return fmt.Errorf("project store: %w", err)
			}

			mgr := session.NewManager(session.NewLlamaBackend(cfg.Threads))

			httpapi.SetLogger(logger)
			if cfg.CORSEnabled {
				origins := cfg.CORSOrigins
				if len(origins) == 0 {
					origins = []string{"*"}
				}
				httpapi.SetCORSOptions(true, origins,
					[]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
					[]string{"Content-Type", "X-Log-Level"})
			}

			baseCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			httpapi.SetBaseContext(baseCtx)

			mux := httpapi.NewMux(httpapi.Deps{
				Session:   mgr,
				Projects:  store,
				ModelsDir: cfg.ModelsDir,
				StartTime: time.Now(),
			})
			srv := &http.Server{Addr: cfg.Addr, Handler: mux}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().
					Str("addr", cfg.Addr).
					Str("models_dir", cfg.ModelsDir).
					Str("data_dir", dataDir).
					Msg("plannerd listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-baseCtx.Done():
			}
			// Graceful shutdown (Ctrl+C / SIGTERM)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("graceful shutdown")
			}
			mgr.Unload()
			return nil
		},
	}
}

func newModelsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List GGUF models in the models directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			models, err := catalog.ScanDir(cfg.ModelsDir)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tMODIFIED")
			for _, m := range models {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name, m.SizeFormatted, time.Unix(m.Modified, 0).Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the plannerd version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), host.Version)
		},
	}
}
