// Package config provides configuration loading and validation for the
// zulipbot gateway. Values come from defaults, an optional config.yaml,
// and ZULIPBOT_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration for the webhook server,
// the AI completion backend, the database, and the consent texts.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Server    ServerConfig    `mapstructure:"server"`
	AI        AIConfig        `mapstructure:"ai"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Consent   ConsentConfig   `mapstructure:"consent"`

	// Language is the default reply language directive injected into
	// every assembled conversation.
	Language string `mapstructure:"language" validate:"required"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// ServerConfig holds webhook server settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"             validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=1s,max=1m"`
}

// AIConfig holds completion backend settings. Token may be empty; the
// engine treats a missing credential as the backend being unavailable
// rather than refusing to start.
type AIConfig struct {
	Backend     string        `mapstructure:"backend"     validate:"oneof=openai gemini"`
	Token       string        `mapstructure:"token"`
	BaseURL     string        `mapstructure:"base_url"    validate:"url"`
	Model       string        `mapstructure:"model"       validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// SchedulerConfig holds settings for background maintenance jobs.
type SchedulerConfig struct {
	MaintenanceEnabled  bool   `mapstructure:"maintenance_enabled"`
	MaintenanceSchedule string `mapstructure:"maintenance_schedule"`
}

// ConsentConfig holds the reserved command keywords and the user-visible
// consent texts. Keywords are exact full-message matches against the
// normalized prompt; all strings are localizable via configuration.
type ConsentConfig struct {
	CmdGrantBasic  string `mapstructure:"cmd_grant_basic"  validate:"required"`
	CmdGrantFull   string `mapstructure:"cmd_grant_full"   validate:"required"`
	CmdRevoke      string `mapstructure:"cmd_revoke"       validate:"required"`
	CmdShowHistory string `mapstructure:"cmd_show_history" validate:"required"`

	RequestMessage string `mapstructure:"request_message" validate:"required"`
	UpdatedMessage string `mapstructure:"updated_message" validate:"required"`
}

// Load reads configuration from defaults, config.yaml (optional), and
// ZULIPBOT_* environment variables, then validates the result.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ZULIPBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config file is fine, defaults plus env cover everything.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("ai.backend", "openai")
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-3.5-turbo")
	v.SetDefault("ai.temperature", 1.0)
	v.SetDefault("ai.timeout", 2*time.Minute)

	v.SetDefault("database.path", "storage.db")

	v.SetDefault("scheduler.maintenance_enabled", true)
	v.SetDefault("scheduler.maintenance_schedule", "0 0 4 * * *")

	v.SetDefault("language", "Danish")

	v.SetDefault("consent.cmd_grant_basic", "tjoh")
	v.SetDefault("consent.cmd_grant_full", "ok")
	v.SetDefault("consent.cmd_revoke", "delete")
	v.SetDefault("consent.cmd_show_history", "history")

	v.SetDefault("consent.request_message",
		"Hej! Før du kan bruge mig, skal du acceptere at jeg sender dit navn, email og besked ud af EU (til OpenAI).\r\n"+
			"Du *KAN* vælge at jeg også gemmer en historik over dine beskeder, så jeg kan forbedre min respons i fremtiden.\r\n"+
			"Denne data gemmes i klartekst, og er synlig for min maintainer.\r\n"+
			"Giv venligst samtykke: \r\n"+
			"- `ok` for at acceptere \r\n"+
			"- `tjoh` for at acceptere basal brug UDEN at slå chat-historik til")

	v.SetDefault("consent.updated_message",
		"Din samtykke er blevet opdateret, og vil blive respekteret i fremtidige beskeder.\r\n"+
			"Du kan altid fjerne samtykke ved at skrive \"delete\" til mig.\r\n"+
			"Du kan se hvad jeg husker om dig ved at skrive \"history\" til mig.")
}
