// Package config provides YAML-based configuration loading for Teamforge.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// cronParser accepts standard 5-field cron expressions (minute, hour, dom,
// month, dow) for the assignment schedule.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Config is the top-level Teamforge configuration, loaded from forge.yaml.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Assignment AssignmentConfig `yaml:"assignment"`
	Notify     NotifyConfig     `yaml:"notify"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig holds connection settings for the MySQL server.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// AssignmentConfig controls the background assignment routine.
type AssignmentConfig struct {
	// Schedule is a 5-field cron expression for periodic passes.
	// Defaults to every five minutes.
	Schedule string `yaml:"schedule"`
}

// NotifyConfig holds optional chat-announcement settings. A platform is
// enabled when its token and channel are both set.
type NotifyConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
}

// SlackConfig holds Slack announcement settings.
type SlackConfig struct {
	BotToken string `yaml:"bot_token"`
	Channel  string `yaml:"channel"`
}

// DiscordConfig holds Discord announcement settings.
type DiscordConfig struct {
	BotToken string `yaml:"bot_token"`
	Channel  string `yaml:"channel"`
}

// Load reads a YAML config file from path and returns a validated Config.
// A .env file alongside the process, if present, overlays database and
// token settings (see applyEnv).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Host == "" {
		c.Database.Host = "127.0.0.1"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.User == "" {
		c.Database.User = "root"
	}
	if c.Database.Database == "" {
		c.Database.Database = "teamforge"
	}
	if c.Assignment.Schedule == "" {
		c.Assignment.Schedule = "*/5 * * * *"
	}
}

// applyEnv overlays secrets and connection settings from the environment,
// loading a .env file first when one exists.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	c.Database.Host = getEnv("DATABASE_HOST", c.Database.Host)
	c.Database.User = getEnv("DATABASE_USER", c.Database.User)
	c.Database.Password = getEnv("DATABASE_PASSWORD", c.Database.Password)
	c.Database.Database = getEnv("DATABASE_NAME", c.Database.Database)
	c.Notify.Slack.BotToken = getEnv("SLACK_BOT_TOKEN", c.Notify.Slack.BotToken)
	c.Notify.Discord.BotToken = getEnv("DISCORD_BOT_TOKEN", c.Notify.Discord.BotToken)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port %d out of range", c.Database.Port))
	}
	if c.Assignment.Schedule != "" {
		if _, err := cronParser.Parse(c.Assignment.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("assignment.schedule %q is not a valid cron expression", c.Assignment.Schedule))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Schedule returns the parsed cron schedule, or nil when scheduled passes
// are disabled. Parse errors are impossible after validate.
func (c *Config) Schedule() cron.Schedule {
	if c.Assignment.Schedule == "" {
		return nil
	}
	sched, err := cronParser.Parse(c.Assignment.Schedule)
	if err != nil {
		return nil
	}
	return sched
}
