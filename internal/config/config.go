// Package config viper 配置装载
package config

import (
    "errors"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/spf13/viper"
)

type Server struct {
    Port int    `mapstructure:"port"`
    Mode string `mapstructure:"mode"` // debug / release
}

type Database struct {
    Driver string `mapstructure:"driver"` // sqlite / postgres
    DSN    string `mapstructure:"dsn"`
}

type Redis struct {
    Enabled  bool   `mapstructure:"enabled"`
    Addr     string `mapstructure:"addr"`
    Password string `mapstructure:"password"`
    DB       int    `mapstructure:"db"`
}

type JWT struct {
    Secret string        `mapstructure:"secret"`
    TTL    time.Duration `mapstructure:"ttl"`
}

// Admin 首个管理员播种；Email 为空则跳过
type Admin struct {
    Email    string `mapstructure:"email"`
    Name     string `mapstructure:"name"`
    Password string `mapstructure:"password"`
}

type Policy struct {
    DeleteRequiresAdmin bool `mapstructure:"delete_requires_admin"`
}

type Spam struct {
    Keywords []string `mapstructure:"keywords"`
}

type Notifier struct {
    Workers   int `mapstructure:"workers"`
    QueueSize int `mapstructure:"queue_size"`
}

type RateLimit struct {
    CommentsPerMinute int `mapstructure:"comments_per_minute"`
    Burst             int `mapstructure:"burst"`
}

type Log struct {
    Level  string `mapstructure:"level"`
    Format string `mapstructure:"format"`
}

type Telemetry struct {
    Enabled      bool   `mapstructure:"enabled"`
    OTLPEndpoint string `mapstructure:"otlp_endpoint"`
    SentryDSN    string `mapstructure:"sentry_dsn"`
}

type Config struct {
    Server    Server    `mapstructure:"server"`
    Database  Database  `mapstructure:"database"`
    Redis     Redis     `mapstructure:"redis"`
    JWT       JWT       `mapstructure:"jwt"`
    Admin     Admin     `mapstructure:"admin"`
    Policy    Policy    `mapstructure:"policy"`
    Spam      Spam      `mapstructure:"spam"`
    Notifier  Notifier  `mapstructure:"notifier"`
    RateLimit RateLimit `mapstructure:"rate_limit"`
    Log       Log       `mapstructure:"log"`
    Telemetry Telemetry `mapstructure:"telemetry"`
}

// Load 读取配置文件并叠加环境变量（PRESSROOM_SERVER_PORT 等）
func Load(path string) (*Config, error) {
    v := viper.New()
    v.SetConfigFile(path)
    v.SetEnvPrefix("PRESSROOM")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    v.SetDefault("server.port", 8080)
    v.SetDefault("server.mode", "release")
    v.SetDefault("database.driver", "sqlite")
    v.SetDefault("database.dsn", "pressroom.db")
    v.SetDefault("redis.enabled", false)
    v.SetDefault("redis.addr", "127.0.0.1:6379")
    v.SetDefault("jwt.ttl", 24*time.Hour)
    v.SetDefault("policy.delete_requires_admin", false)
    v.SetDefault("notifier.workers", 4)
    v.SetDefault("notifier.queue_size", 10000)
    v.SetDefault("rate_limit.comments_per_minute", 30)
    v.SetDefault("rate_limit.burst", 10)
    v.SetDefault("log.level", "info")
    v.SetDefault("log.format", "json")

    if err := v.ReadInConfig(); err != nil {
        // 允许无配置文件，仅靠默认值 + 环境变量
        if !errors.Is(err, os.ErrNotExist) {
            if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
                return nil, fmt.Errorf("read config: %w", err)
            }
        }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, fmt.Errorf("unmarshal config: %w", err)
    }
    if cfg.JWT.Secret == "" && cfg.Server.Mode == "release" {
        return nil, fmt.Errorf("jwt.secret is required in release mode")
    }
    if cfg.Admin.Email != "" && cfg.Admin.Password == "" {
        return nil, fmt.Errorf("admin.password is required when admin.email is set")
    }
    return &cfg, nil
}
