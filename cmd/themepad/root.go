// Package main provides the CLI entrypoint for themepad.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/themepad/internal/config"
	"github.com/jmylchreest/themepad/internal/dbus"
	"github.com/jmylchreest/themepad/internal/fetch"
	"github.com/jmylchreest/themepad/internal/store"
	"github.com/jmylchreest/themepad/internal/style"
	"github.com/jmylchreest/themepad/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		baseURL    string
		storePath  string
		stylesheet string
	}
	logger *slog.Logger

	// app holds the wired loader for the running command
	app *application
)

// application is the set of components every command works against.
type application struct {
	scope   *style.Scope
	kv      *store.FileKV
	prefs   *store.Preferences
	client  *fetch.Client
	loader  *theme.Loader
	emitter *dbus.Emitter
	cancel  context.CancelFunc
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "themepad",
	Short: "Remote theme loader and switcher",
	Long: `themepad fetches themes (named sets of CSS custom properties) from a
remote theme marketplace, applies them to a :root style scope, and remembers
the last applied theme.

Running themepad without a subcommand launches the interactive switcher.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(cfg)

		// A failed previous run skips the post-run hook
		if app != nil {
			app.close()
		}
		app = newApplication(cmd.Context(), cfg, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if app != nil {
			app.close()
			app = nil
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/themepad/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.baseURL, "base-url", "",
		"Theme source base URL (default: "+config.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&globalOpts.storePath, "store", "",
		"Path to preference file (default: ~/.local/share/themepad/preferences.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.stylesheet, "stylesheet", "",
		"Also write the applied :root stylesheet to this file")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// applyFlagOverrides lets command line flags win over the config file.
func applyFlagOverrides(c *config.Config) {
	if globalOpts.baseURL != "" {
		c.Source.BaseURL = globalOpts.baseURL
	}
	if globalOpts.storePath != "" {
		c.Store.Path = globalOpts.storePath
	}
	if globalOpts.stylesheet != "" {
		c.Output.Stylesheet = globalOpts.stylesheet
	}
}

// newApplication wires the loader from configuration.
func newApplication(ctx context.Context, c *config.Config, logger *slog.Logger) *application {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	a := &application{
		scope:  style.NewScope(),
		kv:     store.NewFileKV(c.PreferencePath()),
		cancel: cancel,
	}
	a.prefs = store.NewPreferences(a.kv)
	a.client = fetch.NewClient(c.Source.BaseURL,
		fetch.WithTimeout(c.Timeout()),
		fetch.WithLogger(logger))

	var sink style.Sink = a.scope
	if c.Output.Stylesheet != "" {
		sink = style.NewFileSink(a.scope, c.Output.Stylesheet)
	}

	a.loader = theme.NewLoader(a.client, sink, a.prefs,
		theme.WithLogger(logger),
		theme.WithStaleDrop(c.Loader.DropStale))

	if c.Broadcast.DBus {
		emitter := dbus.NewEmitter(logger)
		if err := emitter.Start(); err != nil {
			logger.Warn("D-Bus broadcast disabled", "error", err)
		} else {
			a.emitter = emitter
			go emitter.Forward(ctx, a.loader.Bus().Subscribe())
		}
	}

	logger.Debug("themepad initialised",
		"base_url", a.client.BaseURL(),
		"preferences", a.kv.Path(),
		"stylesheet", c.Output.Stylesheet)

	return a
}

// close releases background resources.
func (a *application) close() {
	a.cancel()
	if a.emitter != nil {
		if err := a.emitter.Stop(); err != nil {
			logger.Debug("failed to close D-Bus connection", "error", err)
		}
	}
	a.loader.Bus().Close()
}
