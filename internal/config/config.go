// Package config resolves eisen settings from defaults, an optional
// config.yaml under the config dir, and EISEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendSheets = "sheets"
	BackendMemory = "memory"
)

type Config struct {
	Backend  string `mapstructure:"backend" yaml:"backend"`
	DBPath   string `mapstructure:"db_path" yaml:"db_path"`
	Format   string `mapstructure:"format" yaml:"format"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	Sheets   SheetsConfig   `mapstructure:"sheets" yaml:"sheets"`
	Google   GoogleConfig   `mapstructure:"google" yaml:"google"`
	Speech   SpeechConfig   `mapstructure:"speech" yaml:"speech"`
	Grouping GroupingConfig `mapstructure:"grouping" yaml:"grouping"`
	Web      WebConfig      `mapstructure:"web" yaml:"web"`
}

type SheetsConfig struct {
	Spreadsheet     string `mapstructure:"spreadsheet" yaml:"spreadsheet"`
	TasksSheet      string `mapstructure:"tasks_sheet" yaml:"tasks_sheet"`
	TagsSheet       string `mapstructure:"tags_sheet" yaml:"tags_sheet"`
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	CredentialsB64  string `mapstructure:"credentials_b64" yaml:"credentials_b64"`
}

// GoogleConfig holds the API key shared by embeddings and speech.
type GoogleConfig struct {
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`
	EmbeddingModel string `mapstructure:"embedding_model" yaml:"embedding_model"`
}

type SpeechConfig struct {
	Locale string `mapstructure:"locale" yaml:"locale"`
	Slow   bool   `mapstructure:"slow" yaml:"slow"`
}

type GroupingConfig struct {
	Threshold float64 `mapstructure:"threshold" yaml:"threshold"`
}

type WebConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// ConfigDir is ~/.eisen unless EISEN_CONFIG_DIR is set.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("EISEN_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".eisen"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func DefaultConfig() *Config {
	dbPath := "eisen.sqlite"
	if dir, err := ConfigDir(); err == nil {
		dbPath = filepath.Join(dir, "eisen.sqlite")
	}
	return &Config{
		Backend:  BackendSQLite,
		DBPath:   dbPath,
		Format:   "text",
		LogLevel: "warn",
		Sheets: SheetsConfig{
			TasksSheet: "Tasks",
			TagsSheet:  "Tags",
		},
		Google: GoogleConfig{
			EmbeddingModel: "text-embedding-004",
		},
		Speech: SpeechConfig{
			Locale: "pt-BR",
		},
		Grouping: GroupingConfig{
			Threshold: 0.75,
		},
		Web: WebConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

func newViper(def *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("EISEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	setDefaults(v, def)

	// Unprefixed secret names are honored too.
	_ = v.BindEnv("google.api_key", "EISEN_GOOGLE_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("sheets.spreadsheet", "EISEN_SHEETS_SPREADSHEET", "GSHEETS_URL")
	_ = v.BindEnv("sheets.credentials_b64", "EISEN_SHEETS_CREDENTIALS_B64", "GSHEETS_CREDENTIALS_B64")
	return v
}

func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("backend", def.Backend)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("format", def.Format)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("sheets.spreadsheet", def.Sheets.Spreadsheet)
	v.SetDefault("sheets.tasks_sheet", def.Sheets.TasksSheet)
	v.SetDefault("sheets.tags_sheet", def.Sheets.TagsSheet)
	v.SetDefault("sheets.credentials_file", def.Sheets.CredentialsFile)
	v.SetDefault("sheets.credentials_b64", def.Sheets.CredentialsB64)
	v.SetDefault("google.api_key", def.Google.APIKey)
	v.SetDefault("google.embedding_model", def.Google.EmbeddingModel)
	v.SetDefault("speech.locale", def.Speech.Locale)
	v.SetDefault("speech.slow", def.Speech.Slow)
	v.SetDefault("grouping.threshold", def.Grouping.Threshold)
	v.SetDefault("web.addr", def.Web.Addr)
}

// Load reads path (or ConfigPath when empty) over DefaultConfig and applies
// the environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	def := DefaultConfig()
	v := newViper(def)

	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendSheets, BackendMemory:
	default:
		return fmt.Errorf("config: unknown backend %q (want sqlite, sheets or memory)", c.Backend)
	}
	if c.Grouping.Threshold <= 0 || c.Grouping.Threshold > 1 {
		return fmt.Errorf("config: grouping.threshold %v is outside (0, 1]", c.Grouping.Threshold)
	}
	return nil
}

// WriteDefault writes the defaults (without environment overrides) to path.
// An existing file is never overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())
	return v.WriteConfigAs(path)
}
