// Package config loads the settlement desk YAML configuration.
package config

import (
	"encoding/json"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/settlement-desk/internal/version"
	"github.com/rxtech-lab/settlement-desk/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvAlchemyAPIKey overrides tokens.api_key when set.
const EnvAlchemyAPIKey = "SETTLE_ALCHEMY_API_KEY"

// Config is the top-level configuration file.
type Config struct {
	Version string        `yaml:"version" json:"version,omitempty" jsonschema:"title=Version,description=Release the file was written for"`
	Account AccountConfig `yaml:"account" json:"account"`
	Store   StoreConfig   `yaml:"store" json:"store"`
	List    ListConfig    `yaml:"list" json:"list"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Tokens  TokensConfig  `yaml:"tokens" json:"tokens"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	// Timezone is the IANA zone used to read expiry dates typed in the wizard.
	Timezone string `yaml:"timezone" json:"timezone,omitempty" jsonschema:"title=Timezone,description=IANA zone for expiry dates,default=UTC"`
}

// AccountConfig identifies the user proposing trades.
type AccountConfig struct {
	Address string `yaml:"address" json:"address" jsonschema:"title=Address,description=Chain address that originates new trades" validate:"required,eth_addr"`
}

// StoreConfig selects the embedded trade database.
type StoreConfig struct {
	Driver string `yaml:"driver" json:"driver" jsonschema:"title=Driver,enum=duckdb,enum=sqlite,default=duckdb" validate:"required,oneof=duckdb sqlite"`
	Path   string `yaml:"path" json:"path" jsonschema:"title=Path,description=Database file; :memory: for a throwaway store" validate:"required"`
}

// ListConfig tunes the trade list.
type ListConfig struct {
	FetchLimit int `yaml:"fetch_limit" json:"fetch_limit" jsonschema:"title=Fetch limit,description=Trades loaded per refresh; 0 loads all,default=9" validate:"gte=0"`
	PageSize   int `yaml:"page_size" json:"page_size" jsonschema:"title=Page size,default=5" validate:"gt=0"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level" json:"level" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error,default=info" validate:"omitempty,oneof=debug info warn error"`
	Output string `yaml:"output" json:"output" jsonschema:"title=Output,description=stdout or stderr or a file path"`
}

// TokensConfig points at the token balance provider.
type TokensConfig struct {
	Endpoint string `yaml:"endpoint" json:"endpoint,omitempty" jsonschema:"title=Endpoint,description=Alchemy-compatible JSON-RPC URL" validate:"omitempty,url"`
	APIKey   string `yaml:"api_key" json:"api_key,omitempty" jsonschema:"title=API key"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr" jsonschema:"title=Listen address,default=:8080" validate:"omitempty,hostname_port"`
}

// Default returns a configuration usable without a file, apart from the
// account address which has no sensible default.
func Default() Config {
	return Config{
		Version: version.GetVersion(),
		Store: StoreConfig{
			Driver: "duckdb",
			Path:   "data/settlements.duckdb",
		},
		List: ListConfig{
			FetchLimit: 9,
			PageSize:   5,
		},
		Log: LogConfig{
			Level:  "info",
			Output: "data/settle.log",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Timezone: "UTC",
	}
}

// Load reads path on top of Default, applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg, err := Read(path, false)
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Read is Load without validation, so callers can apply flag overrides
// first. When optional is set a missing file yields Default.
func Read(path string, optional bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
		}
	case optional && os.IsNotExist(err):
	default:
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	cfg.applyEnv()

	if err := version.CheckConfigCompatibility(version.GetVersion(), cfg.Version); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if key := os.Getenv(EnvAlchemyAPIKey); key != "" {
		c.Tokens.APIKey = key
	}
}

// Validate checks struct tags and the timezone.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location resolves Timezone, defaulting to UTC.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "unknown timezone %q", c.Timezone)
	}

	return loc, nil
}

// Schema returns the JSON schema of Config.
func Schema() (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Config{})

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
