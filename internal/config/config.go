package config

import (
	"fmt"
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

// StorageConfig selects the backing store for user and history records.
// Driver is "postgres" or "memory".
type StorageConfig struct {
	Driver string
}

// SessionConfig selects the session token store. Driver is "redis" or
// "memory".
type SessionConfig struct {
	Driver string
	TTL    time.Duration
}

// ArtifactsConfig selects where generated images are kept. Driver is
// "local" (Dir) or "minio" (Endpoint and friends).
type ArtifactsConfig struct {
	Driver    string
	Dir       string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

// TextConfig configures the remote chat-completion upstream.
type TextConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ImageConfig configures the image synthesis backend. Backend is
// "builtin" or "diffusion" (remote txt2img endpoint).
type ImageConfig struct {
	Backend  string
	Endpoint string
	Timeout  time.Duration
	Width    int
	Height   int
	Steps    int
}

// PolicyConfig holds the auth-gating switches for the endpoints that
// historically ran both with and without a session.
type PolicyConfig struct {
	RequireAuthChat  bool
	RequireAuthImage bool
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Storage          StorageConfig
	Session          SessionConfig
	Artifacts        ArtifactsConfig
	Text             TextConfig
	Image            ImageConfig
	Policy           PolicyConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("STAGEAI")
	v.AutomaticEnv()

	setDefaults(v)

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

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "120s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.driver", "memory")

	v.SetDefault("session.driver", "memory")
	v.SetDefault("session.ttl", "720h") // 30 days

	v.SetDefault("artifacts.driver", "local")
	v.SetDefault("artifacts.dir", "generated_images")
	v.SetDefault("artifacts.bucket", "stageai-artifacts")
	v.SetDefault("artifacts.usessl", false)
	v.SetDefault("artifacts.region", "us-east-1")

	v.SetDefault("text.baseurl", "https://api.openai.com/v1")
	v.SetDefault("text.model", "gpt-3.5-turbo")
	v.SetDefault("text.timeout", "60s")

	v.SetDefault("image.backend", "builtin")
	v.SetDefault("image.timeout", "120s")
	v.SetDefault("image.width", 512)
	v.SetDefault("image.height", 512)
	v.SetDefault("image.steps", 20)

	v.SetDefault("policy.requireauthchat", false)
	v.SetDefault("policy.requireauthimage", false)
}
