package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/zap"
)

var Logger *zap.SugaredLogger

type configuration struct {
	// Address the HTTP server binds to.
	Address string
	// Workdir holds the SpriteCollab checkout and other scratch data.
	Workdir string
	// GitRepo is the clone URL of the SpriteCollab data repository.
	GitRepo string
	// GitAssetsURL is the base URL raw repository files are served from.
	GitAssetsURL string
	// SrvURL is the public base URL of this server, used in generated
	// asset links.
	SrvURL string

	RedisHost string
	RedisPort int

	// UpdateInterval is the delay between two data refreshes.
	UpdateInterval time.Duration

	// DiscordToken is optional. Without it the Discord bot is disabled.
	DiscordToken string

	ConfigDir string
}

var Configuration *configuration

func Load() {
	slogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Logger = slogger.Sugar()

	if err := godotenv.Load(); err != nil {
		Logger.Debug("No .env file loaded: ", err)
	}

	Configuration = &configuration{
		Address:        envOr("ADDRESS", ":3000"),
		Workdir:        envOr("WORKDIR", "workdir"),
		GitRepo:        envOr("GIT_REPO", "https://github.com/PMDCollab/SpriteCollab.git"),
		GitAssetsURL:   envOr("GIT_ASSETS_URL", "https://raw.githubusercontent.com/PMDCollab/SpriteCollab/master"),
		SrvURL:         envOr("SRV_URL", "http://localhost:3000"),
		RedisHost:      envOr("REDIS_HOST", "127.0.0.1"),
		RedisPort:      envInt("REDIS_PORT", 6379),
		UpdateInterval: envDuration("UPDATE_INTERVAL", 5*time.Minute),
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		ConfigDir:      envOr("CONFIG_DIR", "configs"),
	}
}

// LoadConfig reads a JSON5 config file from the config directory into v.
func LoadConfig(name string, v interface{}) error {
	path := filepath.Join(Configuration.ConfigDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", name, err)
	}
	if err := json5.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", name, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		Logger.Panicf("Invalid value for %s: %s", key, v)
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		Logger.Panicf("Invalid value for %s: %s", key, v)
	}
	return d
}
