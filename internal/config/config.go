// internal/config/config.go
package config

import (
	"time"
)

// Config is the root application configuration. It is loaded once at
// startup and passed explicitly to components; nothing reads environment
// variables after Load returns.
type Config struct {
	Discord  DiscordConfig  `yaml:"discord"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DiscordConfig holds the messaging platform settings.
type DiscordConfig struct {
	Token   string `yaml:"token"   env:"DISCORD_TOKEN"        env-required:"true"`
	Channel string `yaml:"channel" env:"DISCORD_FOOD_CHANNEL" env-default:"food"`
}

// GeminiConfig holds the generative AI settings.
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key" env:"GEMINI_API_KEY" env-required:"true"`
	Model   string        `yaml:"model"   env:"GEMINI_MODEL"   env-default:"gemini-2.0-flash"`
	Timeout time.Duration `yaml:"timeout" env:"GEMINI_TIMEOUT" env-default:"60s"`
}

// DatabaseConfig holds the local SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"nutribot.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
