package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/krakenctl/config"
	"github.com/s0up4200/krakenctl/credentials"
	"github.com/s0up4200/krakenctl/kraken"
)

var (
	cfgFile   string
	credsFile string
	cfg       *config.Config
	logger    zerolog.Logger
	client    *kraken.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "krakenctl",
	Short: "A command line client for the Twitch Kraken API",
	Long: `krakenctl sends authenticated requests to the Twitch Kraken (v5) API and
helps obtain OAuth tokens for it.

Credentials are read from a TOML file (client_id, token) or from the
TWITCH_CLIENT_ID and TWITCH_OAUTH_TOKEN environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build metadata injected by the linker
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = v
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
	rootCmd.PersistentFlags().StringVar(&credsFile, "credentials", "", "credentials file (default is the environment)")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("credentials") {
		cfg.Credentials.File = credsFile
	}

	client, err = kraken.NewClient(credentialSource(),
		kraken.WithBaseURL(cfg.HTTP.BaseURL),
		kraken.WithTimeout(cfg.HTTP.Timeout),
		kraken.WithUserAgent(userAgent()),
		kraken.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create Kraken client: %w", err)
	}

	return nil
}

func credentialSource() credentials.Source {
	if cfg.Credentials.File != "" {
		return credentials.FromFile(cfg.Credentials.File)
	}
	return credentials.FromEnv()
}

func userAgent() string {
	if cfg.HTTP.UserAgent != "" {
		return cfg.HTTP.UserAgent
	}
	return "krakenctl/" + version
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
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

	// Console format
	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !tty,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
