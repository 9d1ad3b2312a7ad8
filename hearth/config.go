package hearth

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/ellavondegurechaff/hearth/hearth/database"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	StoreCSV      = "csv"
	StorePostgres = "postgres"
)

// LoadConfig reads the TOML config at path. A missing file yields the
// defaults. DISCORD_TOKEN, from the environment or a .env file, overrides
// bot.token.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("Config file not found, using defaults",
			slog.String("type", "sys"),
			slog.String("path", path),
		)
	case err != nil:
		return nil, fmt.Errorf("failed to open config: %w", err)
	default:
		defer file.Close()
		if err = toml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", slog.String("type", "sys"), slog.Any("error", err))
	}
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  slog.LevelInfo,
			Format: "text",
			File:   "discord_events.log",
		},
		Bot: BotConfig{
			Prefix: "!",
		},
		Reminders: RemindersConfig{
			Store:    StoreCSV,
			Path:     "reminders.csv",
			Interval: Duration(time.Minute),
		},
		Music: MusicConfig{
			YtDlp:     "yt-dlp",
			FFmpeg:    "ffmpeg",
			CacheSize: 256,
			CacheTTL:  Duration(30 * time.Minute),
		},
		Welcome: WelcomeConfig{
			ConfigPath: "config.json",
		},
		DB: database.DBConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "hearth",
			PoolSize: 10,
		},
	}
}

type Config struct {
	Log       LogConfig         `toml:"log"`
	Bot       BotConfig         `toml:"bot"`
	Reminders RemindersConfig   `toml:"reminders"`
	Music     MusicConfig       `toml:"music"`
	Welcome   WelcomeConfig     `toml:"welcome"`
	DB        database.DBConfig `toml:"db"`
	Spaces    SpacesConfig      `toml:"spaces"`
}

func (c *Config) Validate() error {
	switch c.Reminders.Store {
	case StoreCSV, StorePostgres:
	default:
		return fmt.Errorf("unknown reminders.store %q", c.Reminders.Store)
	}
	if c.Bot.Prefix == "" {
		c.Bot.Prefix = "!"
	}
	if c.Reminders.Interval <= 0 {
		c.Reminders.Interval = Duration(time.Minute)
	}
	return nil
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
	Prefix    string         `toml:"prefix"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
	File      string     `toml:"file"`
}

type RemindersConfig struct {
	Store    string   `toml:"store"`
	Path     string   `toml:"path"`
	Interval Duration `toml:"interval"`
}

type MusicConfig struct {
	YtDlp     string   `toml:"ytdlp"`
	FFmpeg    string   `toml:"ffmpeg"`
	CacheSize int      `toml:"cache_size"`
	CacheTTL  Duration `toml:"cache_ttl"`
}

type WelcomeConfig struct {
	ConfigPath string `toml:"config_path"`
}

// SpacesConfig enables CSV snapshots when Bucket is set.
type SpacesConfig struct {
	Key    string `toml:"key"`
	Secret string `toml:"secret"`
	Region string `toml:"region"`
	Bucket string `toml:"bucket"`
	Prefix string `toml:"prefix"`
}

func (s SpacesConfig) Enabled() bool {
	return s.Bucket != "" && s.Key != "" && s.Secret != ""
}

// Duration decodes TOML strings such as "90s" or "1m".
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
