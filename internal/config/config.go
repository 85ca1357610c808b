package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// Bot strategies understood by bot.NewBrain.
const (
	BotStrategyHand         = "hand"
	BotStrategyCatalogRange = "catalog_range"
	BotStrategyGreedy       = "greedy"
)

type GameConfig struct {
	TurnDurationSeconds     int      `json:"turn_duration_seconds"`
	BotActivationSeconds    int      `json:"bot_activation_seconds"`
	RevealDelaySeconds      int      `json:"reveal_delay_seconds"`
	TickIntervalMillis      int      `json:"tick_interval_millis"`
	ResendIntervalMillis    int      `json:"resend_interval_millis"`
	StartingTurnips         int      `json:"starting_turnips"`
	StartingBank            int      `json:"starting_bank"`
	BankLimit               int      `json:"bank_limit"`
	RelicCost               int      `json:"relic_cost"`
	RelicsToWin             int      `json:"relics_to_win"`
	StarterHand             []uint32 `json:"starter_hand"`
	BotStrategy             string   `json:"bot_strategy"`
	ForcedSelectionDistinct *bool    `json:"forced_selection_distinct,omitempty"`
	// BotAutoFill seats bots in empty places: at start on the CLI, after a delay in hosted rooms.
	BotAutoFill bool `json:"bot_auto_fill"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// Default returns the tuning used when no file is loaded.
func Default() GameConfig {
	distinct := true
	return GameConfig{
		TurnDurationSeconds:     60,
		BotActivationSeconds:    25,
		RevealDelaySeconds:      0,
		TickIntervalMillis:      100,
		ResendIntervalMillis:    2000,
		StartingTurnips:         1,
		StartingBank:            1,
		BankLimit:               5,
		RelicCost:               5,
		RelicsToWin:             3,
		StarterHand:             []uint32{domain.CardFarmer, domain.CardWall, domain.CardRaider, domain.CardMerchant},
		BotStrategy:             BotStrategyHand,
		ForcedSelectionDistinct: &distinct,
		BotAutoFill:             true,
	}
}

// Parse decodes a config document over the defaults.
func Parse(data []byte) (*GameConfig, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects values the engine cannot run with.
func (c *GameConfig) Validate() error {
	switch {
	case c.TurnDurationSeconds <= 0:
		return fmt.Errorf("turn_duration_seconds must be positive, got %d", c.TurnDurationSeconds)
	case c.BotActivationSeconds < 0 || c.BotActivationSeconds > c.TurnDurationSeconds:
		return fmt.Errorf("bot_activation_seconds must be within [0, %d], got %d", c.TurnDurationSeconds, c.BotActivationSeconds)
	case c.RevealDelaySeconds < 0:
		return fmt.Errorf("reveal_delay_seconds must not be negative")
	case c.TickIntervalMillis <= 0:
		return fmt.Errorf("tick_interval_millis must be positive, got %d", c.TickIntervalMillis)
	case c.ResendIntervalMillis < 0:
		return fmt.Errorf("resend_interval_millis must not be negative, got %d", c.ResendIntervalMillis)
	case c.BankLimit < 0:
		return fmt.Errorf("bank_limit must not be negative")
	case len(c.StarterHand) < domain.SelectionSize:
		return fmt.Errorf("starter_hand needs at least %d cards", domain.SelectionSize)
	}
	switch c.BotStrategy {
	case BotStrategyHand, BotStrategyCatalogRange, BotStrategyGreedy:
	default:
		return fmt.Errorf("unknown bot_strategy %q", c.BotStrategy)
	}
	return nil
}

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}
		cfg, loadErr = Parse(data)
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or the defaults if none was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		d := Default()
		return &d
	}
	return cfg
}

func (c *GameConfig) TurnDuration() time.Duration {
	return time.Duration(c.TurnDurationSeconds) * time.Second
}

func (c *GameConfig) BotActivation() time.Duration {
	return time.Duration(c.BotActivationSeconds) * time.Second
}

func (c *GameConfig) RevealDelay() time.Duration {
	return time.Duration(c.RevealDelaySeconds) * time.Second
}

func (c *GameConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMillis) * time.Millisecond
}

// ResendInterval is how often an unfinished round's own submissions are sent again.
func (c *GameConfig) ResendInterval() time.Duration {
	return time.Duration(c.ResendIntervalMillis) * time.Millisecond
}

// Distinct reports whether forced selection must pick two different cards.
func (c *GameConfig) Distinct() bool {
	return c.ForcedSelectionDistinct == nil || *c.ForcedSelectionDistinct
}

// StartingResources returns the resources every seat begins with.
func (c *GameConfig) StartingResources() domain.PlayerResources {
	return domain.PlayerResources{
		Turnips:   c.StartingTurnips,
		Bank:      min(c.StartingBank, c.BankLimit),
		BankLimit: c.BankLimit,
	}
}

// Rules returns the resolution constants.
func (c *GameConfig) Rules() domain.Rules {
	return domain.Rules{RelicCost: c.RelicCost, RelicsToWin: c.RelicsToWin}
}
