package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Assistant AssistantConfig `mapstructure:"assistant"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// AssistantConfig RAG问答服务配置，由管理员在后台维护
type AssistantConfig struct {
	ServiceURL        string `mapstructure:"service_url"`
	APIToken          string `mapstructure:"api_token"`
	Timeout           int    `mapstructure:"timeout"`             // 秒
	EnableLogging     bool   `mapstructure:"enable_logging"`      // 是否记录问答日志
	MaxQuestionLength int    `mapstructure:"max_question_length"` // 问题最大字符数
}

// Configured 服务地址和令牌齐全才渲染聊天组件
func (c AssistantConfig) Configured() bool {
	return c.ServiceURL != "" && c.APIToken != ""
}

// RequestTimeout 单次外呼超时
func (c AssistantConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("COURSE_ASSISTANT")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Assistant / RAG service
	viper.BindEnv("assistant.service_url", "ASSISTANT_SERVICE_URL")
	viper.BindEnv("assistant.api_token", "ASSISTANT_API_TOKEN")
	viper.BindEnv("assistant.timeout", "ASSISTANT_TIMEOUT")
	viper.BindEnv("assistant.enable_logging", "ASSISTANT_ENABLE_LOGGING")
	viper.BindEnv("assistant.max_question_length", "ASSISTANT_MAX_QUESTION_LENGTH")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	viper.SetDefault("assistant.timeout", 10)
	viper.SetDefault("assistant.enable_logging", true)
	viper.SetDefault("assistant.max_question_length", 500)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Assistant.Timeout <= 0 {
		cfg.Assistant.Timeout = 10
	}
	if cfg.Assistant.MaxQuestionLength <= 0 {
		cfg.Assistant.MaxQuestionLength = 500
	}

	return &cfg, nil
}
