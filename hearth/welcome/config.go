package welcome

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/disgoorg/json"
)

const (
	DefaultMessage  = "Welcome to the server, {member}!"
	DefaultChannel  = "welcome"
	DefaultRoleName = "Members"
)

type Config struct {
	Message  string `json:"welcome_message"`
	Channel  string `json:"welcome_channel"`
	RoleName string `json:"members_role_name"`
}

func DefaultConfig() Config {
	return Config{
		Message:  DefaultMessage,
		Channel:  DefaultChannel,
		RoleName: DefaultRoleName,
	}
}

// LoadConfig reads the welcome settings from a JSON file. A missing or broken
// file yields the defaults, and so does every key left out of the file.
func LoadConfig(path string) Config {
	cfg, err := readConfig(path)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, fs.ErrNotExist) {
			level = slog.LevelInfo
		}
		slog.Log(context.Background(), level, "Using default welcome settings",
			slog.String("type", "sys"),
			slog.String("path", path),
			slog.Any("error", err))
		return DefaultConfig()
	}
	return cfg
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Message == "" {
		cfg.Message = DefaultMessage
	}
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.RoleName == "" {
		cfg.RoleName = DefaultRoleName
	}
	return cfg, nil
}
