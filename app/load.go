package app

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"github.com/AgencyAdmin/AgencyAdmin/internal/config"
	"github.com/AgencyAdmin/AgencyAdmin/internal/logger"
)

// loadConfig reads the dotenv file when present, then the config, then sets up logging.
func loadConfig() (config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config.Config{}, err
		}
	}

	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}

	if devMode {
		cfg.DevMode = true
	}

	if err := logger.Init(cfg.Log); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
