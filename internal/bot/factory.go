package bot

import (
	"fmt"
)

// Strategy names accepted by NewBrain.
const (
	StrategyHand         = "hand"
	StrategyCatalogRange = "catalog_range"
	StrategyGreedy       = "greedy"
)

// NewBrain creates a bot brain for the named strategy.
func NewBrain(strategy string) (Brain, error) {
	switch strategy {
	case StrategyHand, "":
		return &HandBot{}, nil
	case StrategyCatalogRange:
		return &CatalogRangeBot{}, nil
	case StrategyGreedy:
		return &GreedyBot{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot strategy: %q", strategy)
	}
}
