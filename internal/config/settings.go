package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// AuthSettings configuration for authentication
type AuthSettings struct {
	Type    string            `mapstructure:"type"` // AuthTypeNone, AuthTypeBasic, or AuthTypeAPIKey
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// StoreSettings configuration for the remote article store
type StoreSettings struct {
	Owner       string `mapstructure:"owner"`
	Repo        string `mapstructure:"repo"`
	Branch      string `mapstructure:"branch"`
	Host        string `mapstructure:"host"`         // browse host for constructed article links
	APIBaseURL  string `mapstructure:"api_base_url"` // override for GitHub Enterprise or tests
	Token       string `mapstructure:"token"`        // optional, raises API rate limits
	Concurrency int    `mapstructure:"concurrency"`  // parallel content fetches per search
	Lenient     bool   `mapstructure:"lenient"`      // treat a failed article fetch as no match
	Recursive   bool   `mapstructure:"recursive"`    // list subdirectories as well as the root
	MaxResults  int    `mapstructure:"max_results"`  // result cap for content search
}

// Settings application settings
type Settings struct {
	Transport string        `mapstructure:"transport"`
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Auth      AuthSettings  `mapstructure:"auth"`
	Store     StoreSettings `mapstructure:"store"`
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Default values
	v.SetDefault("transport", "stdio")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("auth.type", AuthTypeNone)

	// Store defaults
	v.SetDefault("store.branch", "master")
	v.SetDefault("store.host", "github.com")
	v.SetDefault("store.concurrency", 4)
	v.SetDefault("store.lenient", false)
	v.SetDefault("store.recursive", false)
	v.SetDefault("store.max_results", 20)

	// Environment variables
	v.SetEnvPrefix("MDSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific env vars for nested config
	_ = v.BindEnv("auth.type", "MDSHELF_AUTH_TYPE")
	_ = v.BindEnv("auth.basic.username", "MDSHELF_AUTH_BASIC_USERNAME")
	_ = v.BindEnv("auth.basic.password", "MDSHELF_AUTH_BASIC_PASSWORD")
	_ = v.BindEnv("auth.api_keys", "MDSHELF_AUTH_API_KEYS")

	// Store env var bindings
	_ = v.BindEnv("store.owner", "MDSHELF_STORE_OWNER")
	_ = v.BindEnv("store.repo", "MDSHELF_STORE_REPO")
	_ = v.BindEnv("store.branch", "MDSHELF_STORE_BRANCH")
	_ = v.BindEnv("store.host", "MDSHELF_STORE_HOST")
	_ = v.BindEnv("store.api_base_url", "MDSHELF_STORE_API_BASE_URL")
	_ = v.BindEnv("store.token", "MDSHELF_STORE_TOKEN")
	_ = v.BindEnv("store.concurrency", "MDSHELF_STORE_CONCURRENCY")
	_ = v.BindEnv("store.lenient", "MDSHELF_STORE_LENIENT")
	_ = v.BindEnv("store.recursive", "MDSHELF_STORE_RECURSIVE")
	_ = v.BindEnv("store.max_results", "MDSHELF_STORE_MAX_RESULTS")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		_ = v.BindPFlag("transport", flags.Lookup("transport"))
		_ = v.BindPFlag("host", flags.Lookup("host"))
		_ = v.BindPFlag("port", flags.Lookup("port"))
		_ = v.BindPFlag("auth.type", flags.Lookup("auth-type"))
		_ = v.BindPFlag("auth.basic.username", flags.Lookup("auth-basic-username"))
		_ = v.BindPFlag("auth.basic.password", flags.Lookup("auth-basic-password"))
		_ = v.BindPFlag("auth.api_keys", flags.Lookup("auth-api-keys"))

		// Store CLI flags
		_ = v.BindPFlag("store.owner", flags.Lookup("owner"))
		_ = v.BindPFlag("store.repo", flags.Lookup("repo"))
		_ = v.BindPFlag("store.branch", flags.Lookup("branch"))
		_ = v.BindPFlag("store.host", flags.Lookup("store-host"))
		_ = v.BindPFlag("store.api_base_url", flags.Lookup("api-base-url"))
		_ = v.BindPFlag("store.token", flags.Lookup("token"))
		_ = v.BindPFlag("store.concurrency", flags.Lookup("concurrency"))
		_ = v.BindPFlag("store.lenient", flags.Lookup("lenient"))
		_ = v.BindPFlag("store.recursive", flags.Lookup("recursive"))
		_ = v.BindPFlag("store.max_results", flags.Lookup("max-results"))
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	// Handle explicit parsing of API keys if provided via env var as comma-separated string
	apiKeysEnv := os.Getenv("MDSHELF_AUTH_API_KEYS")
	if apiKeysEnv != "" {
		if len(settings.Auth.APIKeys) == 0 || (len(settings.Auth.APIKeys) == 1 && strings.Contains(settings.Auth.APIKeys[0], ",")) {
			settings.Auth.APIKeys = strings.Split(apiKeysEnv, ",")
		}
	}

	// Trim spaces from API keys
	for i := range settings.Auth.APIKeys {
		settings.Auth.APIKeys[i] = strings.TrimSpace(settings.Auth.APIKeys[i])
	}

	return &settings, nil
}

// ValidateSettings checks for conflicting configurations.
// Returns an error if the settings contain mutually exclusive or incomplete config.
func ValidateSettings(s *Settings) error {
	// Validate transport type
	switch s.Transport {
	case "stdio", "sse":
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	hasBasicCreds := s.Auth.Basic.Username != "" || s.Auth.Basic.Password != ""
	hasAPIKeys := len(s.Auth.APIKeys) > 0

	switch s.Auth.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if s.Auth.Basic.Username == "" || s.Auth.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + s.Auth.Type)
	}

	// Validate store settings
	if err := validateStoreSettings(&s.Store); err != nil {
		return err
	}

	return nil
}

// validateStoreSettings validates the article store configuration
func validateStoreSettings(st *StoreSettings) error {
	if st.Owner == "" {
		return errors.New("store owner is required (owner)")
	}

	if st.Repo == "" {
		return errors.New("store repository is required (repo)")
	}

	if st.Branch == "" {
		return errors.New("store branch cannot be empty")
	}

	if st.Host == "" {
		return errors.New("store host cannot be empty")
	}

	if st.Concurrency <= 0 {
		return errors.New("concurrency must be positive")
	}

	if st.MaxResults <= 0 {
		return errors.New("max-results must be positive")
	}

	return nil
}
