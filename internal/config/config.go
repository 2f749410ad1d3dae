package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LLM configures the model provider used to generate cards.
type LLM struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Prompt   string
	Timeout  time.Duration
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Log struct {
		Mode string
	}
	Export struct {
		Font string
	}
	LLM             LLM
	SessionLifetime time.Duration
	InsecureCookies bool
}

// Load reads config from environment (CUECARD_ prefix) and optional cuecard.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CUECARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("cuecard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "file:cuecard.db")
	v.SetDefault("log.mode", "development")
	v.SetDefault("session.lifetime", "24h")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.timeout", "60s")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Log.Mode = v.GetString("log.mode")
	cfg.Export.Font = v.GetString("export.font")
	cfg.InsecureCookies = v.GetBool("insecure_cookies")
	cfg.LLM.Provider = v.GetString("llm.provider")
	cfg.LLM.APIKey = v.GetString("llm.api_key")
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.BaseURL = v.GetString("llm.base_url")
	cfg.LLM.Prompt = v.GetString("llm.prompt")

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid CUECARD_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	timeout, err := time.ParseDuration(v.GetString("llm.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid CUECARD_LLM_TIMEOUT: %w", err)
	}
	cfg.LLM.Timeout = timeout

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("CUECARD_DB_DRIVER must be sqlite3, mysql, or postgres (got %q)", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("CUECARD_DB_DSN is required")
	}
	switch cfg.LLM.Provider {
	case "gemini", "anthropic", "openai", "openai-compatible":
	default:
		return nil, fmt.Errorf("unsupported CUECARD_LLM_PROVIDER: %q", cfg.LLM.Provider)
	}

	// A missing API key is not a load error: the web UI asks for one per session.
	return cfg, nil
}
