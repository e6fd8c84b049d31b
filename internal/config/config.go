package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken      string        `env:"TELEGRAM_TOKEN,required"`
	AdminID            int64         `env:"ADMIN_ID,required"`
	DataDir            string        `env:"DATA_DIR" envDefault:"users_data"`
	AssetsDir          string        `env:"ASSETS_DIR" envDefault:"assets"`
	FontChartPath      string        `env:"FONT_CHART_PATH" envDefault:"font.jpg"`
	SendDelay          time.Duration `env:"SEND_DELAY" envDefault:"500ms"`
	HTTPRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"30s"`
	Debug              bool          `env:"BOT_DEBUG" envDefault:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate required fields
	if cfg.AdminID == 0 {
		return nil, fmt.Errorf("admin ID is required")
	}

	return &cfg, nil
}
