package model

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	defaultRedisAddr   = "127.0.0.1:6379"
	defaultMetricsPort = "7011"
)

type Config struct {
	BotToken    string
	BotLink     string
	DatabaseURL string
	RedisAddr   string
	MetricsPort string
	DevChatIDs  []int64
}

// LoadConfig reads the process configuration from the environment, loading a
// local .env file first when one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		BotLink:     os.Getenv("BOT_LINK"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		MetricsPort: os.Getenv("METRICS_PORT"),
	}

	var missing []string
	if cfg.BotToken == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if cfg.BotLink == "" {
		missing = append(missing, "BOT_LINK")
	}
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("missing required environment variables (check your .env file): %s",
			strings.Join(missing, ", "))
	}

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = defaultRedisAddr
	}
	if cfg.MetricsPort == "" {
		cfg.MetricsPort = defaultMetricsPort
	}

	devChatIDs, err := parseChatIDs(os.Getenv("DEV_CHAT_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.DevChatIDs = devChatIDs

	return cfg, nil
}

func parseChatIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "failed parse DEV_CHAT_IDS")
		}
		ids = append(ids, id)
	}

	return ids, nil
}
