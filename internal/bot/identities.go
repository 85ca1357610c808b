package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

// fallbackBotPrefix prefixes the user ids of the generated personas used when
// no identity file was loaded.
const fallbackBotPrefix = "bot-"

// BotIdentity is the persona shown for a bot seat.
type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Strategy    string `json:"strategy"`
}

var (
	identityMu    sync.RWMutex
	botIdentities []BotIdentity
	botsByUserID  map[string]BotIdentity
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot personas from the given path. Later calls are no-ops.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		var ids []BotIdentity
		if err := json.Unmarshal(data, &ids); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		setIdentities(ids)
	})
	return loadErr
}

func setIdentities(ids []BotIdentity) {
	identityMu.Lock()
	defer identityMu.Unlock()
	botIdentities = ids
	botsByUserID = make(map[string]BotIdentity, len(ids))
	for _, identity := range ids {
		if identity.UserID != "" {
			botsByUserID[identity.UserID] = identity
		}
	}
}

// ProvisionBots makes sure every persona with a device id has a Nakama account
// tagged as a bot, and records the resulting user ids.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		identityMu.RLock()
		ids := append([]BotIdentity(nil), botIdentities...)
		identityMu.RUnlock()

		for i := range ids {
			identity := &ids[i]
			if identity.DeviceID == "" {
				continue
			}
			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{"is_bot": true, "strategy": identity.Strategy}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: failed to update bot account %s: %v", userID, err)
			}
			logger.Info("ProvisionBots: bot %s (%s) ready", identity.DisplayName, userID)
		}
		setIdentities(ids)
	})
}

// GetBotIdentity returns a persona by index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	identityMu.RLock()
	defer identityMu.RUnlock()
	if len(botIdentities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("%s%d", fallbackBotPrefix, index),
			Username:    fmt.Sprintf("bot%d", index),
			DisplayName: fmt.Sprintf("Villager %d", index),
		}
	}
	if index < 0 {
		index = -index
	}
	return botIdentities[index%len(botIdentities)]
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	identityMu.RLock()
	defer identityMu.RUnlock()
	if len(botIdentities) == 0 {
		return strings.HasPrefix(userID, fallbackBotPrefix)
	}
	_, ok := botsByUserID[userID]
	return ok
}

// GetBotDisplayName returns the display name for a bot user ID, or "" if it is not a bot.
func GetBotDisplayName(userID string) string {
	identityMu.RLock()
	defer identityMu.RUnlock()
	identity, ok := botsByUserID[userID]
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}
