package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig selects the session store driver ("memory" or "redis").
type SessionConfig struct {
	Driver        string
	TTL           time.Duration
	SweepSchedule string
	// KeyPrefix namespaces session keys in a shared redis.
	KeyPrefix string
}

// RepositoryConfig selects the user/contact repository driver ("memory" or "postgres").
type RepositoryConfig struct {
	Driver string
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

type SupabaseConfig struct {
	URL     string
	AnonKey string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Session          SessionConfig
	Repository       RepositoryConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Archive          ArchiveConfig
	OpenAI           OpenAIConfig
	Supabase         SupabaseConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("CLEVERAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("allowcorsorigins", []string{})

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.readtimeout", "10s")
	// chat completions can take a while; keep above openai.timeout
	v.SetDefault("http.writetimeout", "90s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("session.driver", "memory")
	v.SetDefault("session.ttl", "168h") // 7 days
	v.SetDefault("session.sweepschedule", "0 0 * * * *")
	v.SetDefault("session.keyprefix", "session:")

	v.SetDefault("repository.driver", "memory")

	// AutomaticEnv only reaches keys viper already knows about
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.endpoint", "127.0.0.1:9000")
	v.SetDefault("archive.accesskey", "")
	v.SetDefault("archive.secretkey", "")
	v.SetDefault("archive.bucket", "cleverai-contacts")
	v.SetDefault("archive.usessl", false)
	v.SetDefault("archive.region", "us-east-1")

	v.SetDefault("openai.baseurl", "")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("openai.maxtokens", 1000)
	v.SetDefault("openai.timeout", "60s")
}

// bindLegacyEnv keeps the plain variable names used by existing deployments working.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"openai.apikey":    {"CLEVERAI_OPENAI_APIKEY", "OPENAI_API_KEY"},
		"supabase.url":     {"CLEVERAI_SUPABASE_URL", "SUPABASE_URL"},
		"supabase.anonkey": {"CLEVERAI_SUPABASE_ANONKEY", "SUPABASE_ANON_KEY"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

func (c *AppConfig) validate() error {
	switch c.Session.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session driver %q", c.Session.Driver)
	}
	switch c.Repository.Driver {
	case "memory":
	case "postgres":
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for the postgres repository driver")
		}
	default:
		return fmt.Errorf("unknown repository driver %q", c.Repository.Driver)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	return nil
}
