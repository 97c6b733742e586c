// Package profile holds the runtime configuration for haruplan.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the assistant.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for the HTTP server
	Addr string
	// Port is the binding port for the HTTP server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where haruplan stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Timezone is the IANA name events are anchored in
	Timezone string
	// Location is the resolved Timezone, set by Validate
	Location *time.Location
	// PollInterval is the notifier polling window in seconds
	PollInterval int
	// Version is the current version of the assistant
	Version string

	// Notification channels. Empty credentials disable a channel.
	TelegramBotToken string // HARUPLAN_TELEGRAM_BOT_TOKEN
	TelegramChatID   string // HARUPLAN_TELEGRAM_CHAT_ID
	KakaoAccessToken string // HARUPLAN_KAKAO_ACCESS_TOKEN
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from HARUPLAN_* environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("HARUPLAN_MODE", p.Mode)
	p.Addr = getEnvOrDefault("HARUPLAN_ADDR", p.Addr)
	p.Data = getEnvOrDefault("HARUPLAN_DATA", p.Data)
	p.DSN = getEnvOrDefault("HARUPLAN_DSN", p.DSN)
	p.Driver = getEnvOrDefault("HARUPLAN_DRIVER", p.Driver)
	p.Timezone = getEnvOrDefault("HARUPLAN_TIMEZONE", p.Timezone)

	if v := os.Getenv("HARUPLAN_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			p.Port = port
		}
	}
	if v := os.Getenv("HARUPLAN_POLL_INTERVAL"); v != "" {
		if interval, err := strconv.Atoi(v); err == nil {
			p.PollInterval = interval
		}
	}

	p.TelegramBotToken = getEnvOrDefault("HARUPLAN_TELEGRAM_BOT_TOKEN", p.TelegramBotToken)
	p.TelegramChatID = getEnvOrDefault("HARUPLAN_TELEGRAM_CHAT_ID", p.TelegramChatID)
	p.KakaoAccessToken = getEnvOrDefault("HARUPLAN_KAKAO_ACCESS_TOKEN", p.KakaoAccessToken)
}

// Validate fills defaults and resolves derived fields. It is required
// before the profile is handed to the store or the server.
func (p *Profile) Validate() error {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}
	if p.Addr == "" {
		p.Addr = "127.0.0.1"
	}
	if p.Port == 0 {
		p.Port = 8230
	}
	if p.PollInterval <= 0 {
		p.PollInterval = 15
	}

	if p.Data == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.Wrap(err, "failed to resolve home directory")
		}
		p.Data = filepath.Join(home, ".haruplan")
	}
	if err := os.MkdirAll(p.Data, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create data directory %q", p.Data)
	}

	switch p.Driver {
	case "":
		p.Driver = "sqlite"
	case "sqlite", "postgres":
	default:
		return errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}
	if p.Driver == "sqlite" && p.DSN == "" {
		p.DSN = filepath.Join(p.Data, "haruplan.db")
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("postgres driver requires an explicit DSN")
	}

	if p.Timezone == "" {
		p.Timezone = "Asia/Seoul"
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return errors.Wrapf(err, "invalid timezone %q", p.Timezone)
	}
	p.Location = loc

	return nil
}

// ListenAddr is the host:port the HTTP server binds to.
func (p *Profile) ListenAddr() string {
	return fmt.Sprintf("%s:%d", p.Addr, p.Port)
}
