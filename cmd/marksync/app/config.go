package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/marksync/pkg/constants"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Service credentials
	PinboardToken string // username:token
	RaindropToken string // personal test token

	// Service endpoints, overridable for testing against a stub
	PinboardURL string
	RaindropURL string

	// HTTP timeout for every service call
	Timeout time.Duration

	// Run lock location
	LockFile string

	// Logging configuration
	LogLevel    string // from --log-level; wins over everything
	LogLevelEnv string // from LOG_LEVEL
	LogFormat   string
	LogOutput   string
	LogFile     string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.marksync.yaml or ./.marksync.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile is LoadConfig with an explicit config file. An empty path
// searches the standard locations.
func LoadConfigFile(configFile string) (*Config, error) {
	v := viper.New()

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindTokens(v)

	v.SetDefault("timeout", constants.DefaultHTTPTimeout)
	v.SetDefault("pinboard_url", constants.PinboardAPIURL)
	v.SetDefault("raindrop_url", constants.RaindropAPIURL)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing default config is fine; a broken or missing explicit one is not.
		if _, notFound := err.(viper.ConfigFileNotFoundError); configFile != "" || !notFound {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		PinboardToken: v.GetString("pinboard_token"),
		RaindropToken: v.GetString("raindrop_token"),
		PinboardURL:   v.GetString("pinboard_url"),
		RaindropURL:   v.GetString("raindrop_url"),
		Timeout:       v.GetDuration("timeout"),
		LockFile:      v.GetString("lock_file"),

		LogLevelEnv: v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
		LogFile:     v.GetString("log_file"),
	}

	if config.Timeout <= 0 {
		config.Timeout = constants.DefaultHTTPTimeout
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Existing environment variables are never overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// bindTokens explicitly binds the service token variables to Viper.
func bindTokens(v *viper.Viper) {
	bindings := map[string]string{
		"pinboard_token": "PINBOARD_TOKEN",
		"raindrop_token": "RAINDROP_TOKEN",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", env, err)
		}
	}
}
