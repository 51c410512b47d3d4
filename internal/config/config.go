// Package config loads GameConfig: the small set of deal/matchmaking
// policy knobs spec.md leaves open (§4.4, §9 Open Questions).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GameConfig holds the deterministic policy choices the core leaves to the
// operator: opening hand size, the matchmaking group size ceiling, and the
// moves_left every dealt player starts with.
type GameConfig struct {
	OpeningHandSize         int  `json:"opening_hand_size"`
	MaxMatchmakingGroupSize int  `json:"max_matchmaking_group_size"`
	DefaultMovesLeft        *int `json:"default_moves_left"`
}

// Defaults returns the OPEN QUESTION RESOLUTIONS default: a 4-card opening
// hand, matches up to 8 players, and unbounded moves_left.
func Defaults() GameConfig {
	return GameConfig{
		OpeningHandSize:         4,
		MaxMatchmakingGroupSize: 8,
		DefaultMovesLeft:        nil,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path, falling
// back to Defaults if path is empty. Only the first call does any work;
// later calls observe the same cfg/err, matching the reference server's
// sync.Once-guarded global config.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		if path == "" {
			d := Defaults()
			cfg = &d
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Defaults()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or nil if
// LoadGameConfig has not been called yet.
func GetGameConfig() *GameConfig {
	return cfg
}
