package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/revcheck/pkg/constants"
	"github.com/agentstation/revcheck/pkg/errors"
)

// envPrefix namespaces revcheck environment variables, e.g. REVCHECK_HOME.
const envPrefix = "REVCHECK"

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

	// Run defaults
	Client          string
	Home            string
	Output          string
	FormattedOutput string
	Report          string
	HistoryDB       string
	HistoryLimit    int
	Concurrency     int
	SkipStyling     bool

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (REVCHECK_ prefix)
// 3. .env files
// 4. Config file (~/.revcheck.yaml or ./.revcheck.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), os.Getenv(envPrefix+"_CONFIG"))
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	// .env files are loaded before Viper binds the environment
	loadEnvFiles()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".revcheck")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit config file must exist; the search path is optional.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.WrapConfig("config", "could not read "+v.ConfigFileUsed(), err)
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Client:          v.GetString("client"),
		Home:            v.GetString("home"),
		Output:          v.GetString("output"),
		FormattedOutput: v.GetString("formatted_output"),
		Report:          v.GetString("report"),
		HistoryDB:       v.GetString("history_db"),
		HistoryLimit:    v.GetInt("history_limit"),
		Concurrency:     v.GetInt("concurrency"),
		SkipStyling:     v.GetBool("skip_styling"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: firstNonEmpty(v.GetString("log_format"), getEnvOrDefault("LOG_FORMAT", "auto")),
		LogOutput: firstNonEmpty(v.GetString("log_output"), getEnvOrDefault("LOG_OUTPUT", "stderr")),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", constants.DefaultOutputFile)
	v.SetDefault("formatted_output", constants.DefaultFormattedFile)
	v.SetDefault("history_limit", constants.DefaultHistoryLimit)
	v.SetDefault("concurrency", constants.DefaultConcurrency)
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
// godotenv never overrides variables that are already set, so .env.local
// only fills what .env left unset.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
