package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string
		Port string
	}
	Database struct {
		Driver       string
		Dsn          string
		MaxIdleConns int
		MaxOpenConns int
	}
	Jwt struct {
		Secret      string
		ExpireHours int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	RabbitMQ struct {
		Url   string
		Queue string
	}
}

// Load 读取 config/config.yml 并返回配置对象，敏感项可用环境变量覆盖
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// secrets from env take precedence over the file
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Jwt.Secret = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.Dsn = v
	}

	if cfg.Jwt.Secret == "" {
		return nil, fmt.Errorf("jwt secret not configured")
	}
	if cfg.Jwt.ExpireHours <= 0 {
		cfg.Jwt.ExpireHours = 72
	}

	return cfg, nil
}
