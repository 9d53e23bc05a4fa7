package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/flixops/flixctl/config"
	"github.com/flixops/flixctl/myflix"
	"github.com/flixops/flixctl/session"
)

var (
	cfgFile      string
	cfg          *config.Config
	logger       zerolog.Logger
	sessionStore *session.Store
	apiClient    *myflix.Client
	operations   *myflix.Operations

	version   = "dev"
	buildTime = "unknown"
)

// SetVersion sets the version information from build flags and wires
// it into the root command's --version output.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
	rootCmd.SetVersionTemplate(fmt.Sprintf("flixctl {{.Version}} (built %s)\n", bt))
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "flixctl",
	Short: "A command-line client for the myFlix movie catalog",
	Long: `flixctl is a CLI client for a myFlix movie-catalog server. It logs you
in, keeps the session token on disk, and lets you browse the catalog,
manage your profile, and maintain your favorites list.`,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration, session store and API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Open the durable session store
	sessionPath := cfg.Session.File
	if sessionPath == "" {
		sessionPath, err = session.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to resolve session path: %w", err)
		}
	}
	sessionStore, err = session.Open(sessionPath)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	// Create the API client and operations facade
	apiClient, err = myflix.NewClient(cfg.API.URL, sessionStore, logger,
		myflix.WithTimeout(time.Duration(cfg.API.TimeoutSeconds)*time.Second))
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	operations = myflix.NewOperations(apiClient, sessionStore, logger)
	if cfg.Cache.Enabled {
		operations.EnableCatalogCache(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
		logger.Debug().Int("ttl_seconds", cfg.Cache.TTLSeconds).Msg("Catalog cache enabled")
	}

	return nil
}

// requireSession guards commands that act on the logged-in user.
func requireSession() error {
	if !sessionStore.Get().Active() {
		return myflix.ErrNoSession
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when stderr is a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
