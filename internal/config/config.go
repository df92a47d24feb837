package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	JWT       JWTConfig       `mapstructure:"jwt"`
	Auth      AuthConfig      `mapstructure:"auth"`
	AI        AIConfig        `mapstructure:"ai"`
	Wikipedia WikipediaConfig `mapstructure:"wikipedia"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type AuthConfig struct {
	// PasswordHash 为 bcrypt 哈希, 优先使用; 为空时回退到明文 Password 比较
	PasswordHash string `mapstructure:"password_hash"`
	Password     string `mapstructure:"password"`
}

type AIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	SummaryModel   string        `mapstructure:"summary_model"`
	QuestionModel  string        `mapstructure:"question_model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout_seconds"`
}

type WikipediaConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout_seconds"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("WIKIQUIZ")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Auth
	viper.BindEnv("auth.password", "AUTH_PASSWORD")
	viper.BindEnv("auth.password_hash", "AUTH_PASSWORD_HASH")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "AI_API_KEY")
	viper.BindEnv("ai.summary_model", "AI_SUMMARY_MODEL")
	viper.BindEnv("ai.question_model", "AI_QUESTION_MODEL")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.AI.RequestTimeout = cfg.AI.RequestTimeout * time.Second
	cfg.Wikipedia.RequestTimeout = cfg.Wikipedia.RequestTimeout * time.Second

	// 上游调用必须有超时兜底, 否则生成失败时请求会悬挂
	if cfg.AI.RequestTimeout <= 0 {
		cfg.AI.RequestTimeout = 60 * time.Second
	}
	if cfg.Wikipedia.RequestTimeout <= 0 {
		cfg.Wikipedia.RequestTimeout = 60 * time.Second
	}

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Auth.PasswordHash == "" && cfg.Auth.Password == "" {
		return nil, fmt.Errorf("auth.password_hash or auth.password must be configured")
	}

	return &cfg, nil
}
