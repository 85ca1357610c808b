package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Transports understood by the terminal client.
const (
	TransportLocal = "local"
	TransportNATS  = "nats"
)

// ProcessConfig is the environment of a terminal client process.
type ProcessConfig struct {
	Transport  string `env:"VILLAGE_TRANSPORT" envDefault:"local"`
	NATSURL    string `env:"VILLAGE_NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	Room       string `env:"VILLAGE_ROOM"`
	Seat       int    `env:"VILLAGE_SEAT" envDefault:"0"`
	Bots       int    `env:"VILLAGE_BOTS" envDefault:"2"`
	ConfigPath string `env:"VILLAGE_CONFIG_PATH" envDefault:"data/game_config.json"`
	StatusAddr string `env:"VILLAGE_STATUS_ADDR"`
	HistoryDSN string `env:"VILLAGE_HISTORY_DSN"`
	LogLevel   string `env:"VILLAGE_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadProcessConfig reads an optional dotenv file and then the environment.
// Variables already set in the environment win over the file.
func LoadProcessConfig(dotenvPath string) (ProcessConfig, error) {
	var pc ProcessConfig
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return pc, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}
	if err := ParseEnv(&pc); err != nil {
		return pc, err
	}
	if err := pc.Validate(); err != nil {
		return pc, err
	}
	return pc, nil
}

func (pc ProcessConfig) Validate() error {
	switch pc.Transport {
	case TransportLocal, TransportNATS:
	default:
		return fmt.Errorf("unknown transport %q", pc.Transport)
	}
	if pc.Seat < 0 || pc.Seat > 2 {
		return fmt.Errorf("seat must be 0, 1 or 2, got %d", pc.Seat)
	}
	if pc.Bots < 0 || pc.Bots > 2 {
		return fmt.Errorf("bots must be between 0 and 2, got %d", pc.Bots)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
