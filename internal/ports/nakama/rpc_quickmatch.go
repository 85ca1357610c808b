package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// QuickMatchResponse is the payload returned to clients when requesting a room.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch)
}

// quickMatchQuery finds lobby rooms of this game with at least one open seat.
var quickMatchQuery = fmt.Sprintf("+label.game:%s +label.state:%s +label.open:>=1", GameLabel, labelStateLobby)

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 10
	authoritative := true
	minSize := 1
	maxSize := domain.SeatCount - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery)
	if err != nil {
		logger.Error("quick_match [user:%s]: MatchList error: %v", userID, err)
		return "", err
	}

	if len(matches) > 0 {
		logger.Debug("quick_match [user:%s]: joining %s", userID, matches[0].MatchId)
		b, _ := json.Marshal(QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false})
		return string(b), nil
	}

	// Seat and owner assignment happen in MatchJoin.
	matchID, err := nk.MatchCreate(ctx, MatchNameVillage, map[string]interface{}{})
	if err != nil {
		logger.Error("quick_match [user:%s]: MatchCreate error: %v", userID, err)
		return "", err
	}
	logger.Info("quick_match [user:%s]: created %s", userID, matchID)

	b, _ := json.Marshal(QuickMatchResponse{MatchID: matchID, IsNew: true})
	return string(b), nil
}
