package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
)

const (
	roundsCollectionPrefix = "village_rounds:"
	grantsCollection       = "village_market_grants"
	storageListPage        = 100
)

// StorageModule is the part of runtime.NakamaModule the storage adapter needs.
type StorageModule interface {
	StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error)
	StorageList(ctx context.Context, callerID, userID, collection string, limit int, cursor string) ([]*api.StorageObject, string, error)
}

// NakamaStorageAdapter keeps round history and market grants in Nakama storage
// as system-owned objects. Every object is written once.
type NakamaStorageAdapter struct {
	nk StorageModule
}

// NewNakamaStorageAdapter creates a new storage adapter.
func NewNakamaStorageAdapter(nk StorageModule) *NakamaStorageAdapter {
	return &NakamaStorageAdapter{nk: nk}
}

func roundsCollection(room string) string {
	return roundsCollectionPrefix + room
}

// writeOnce stores value under key unless the key already exists.
func (a *NakamaStorageAdapter) writeOnce(ctx context.Context, collection, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", collection, key, err)
	}
	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{
		{
			Collection:      collection,
			Key:             key,
			Value:           string(data),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_PUBLIC_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	})
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return nil
		}
		return fmt.Errorf("failed to write %s/%s: %w", collection, key, err)
	}
	return nil
}

// AppendRound stores the outcome of one round. The first write for a round wins.
func (a *NakamaStorageAdapter) AppendRound(ctx context.Context, room string, outcome domain.RoundOutcome) error {
	rec := ports.RoundRecord{
		Room:       room,
		Round:      outcome.Round,
		Plays:      outcome.Plays,
		After:      outcome.After,
		Winners:    outcome.Winners,
		ResolvedAt: time.Now().UTC(),
	}
	return a.writeOnce(ctx, roundsCollection(room), fmt.Sprintf("%010d", outcome.Round), rec)
}

// Rounds returns up to limit records for room, newest first.
func (a *NakamaStorageAdapter) Rounds(ctx context.Context, room string, limit int) ([]ports.RoundRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	var recs []ports.RoundRecord
	cursor := ""
	for {
		objects, next, err := a.nk.StorageList(ctx, "", "", roundsCollection(room), storageListPage, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list rounds: %w", err)
		}
		for _, obj := range objects {
			var rec ports.RoundRecord
			if err := json.Unmarshal([]byte(obj.GetValue()), &rec); err != nil {
				return nil, fmt.Errorf("failed to unmarshal round %s: %w", obj.GetKey(), err)
			}
			recs = append(recs, rec)
		}
		if next == "" || len(objects) == 0 {
			break
		}
		cursor = next
	}

	sort.Slice(recs, func(i, j int) bool { return recs[i].Round > recs[j].Round })
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// GrantPurchase records a market grant once per (room, round, seat, side, kind).
func (a *NakamaStorageAdapter) GrantPurchase(ctx context.Context, room string, round uint32, grant domain.MarketGrant) error {
	key := fmt.Sprintf("%s:%010d:%d:%s:%s", room, round, grant.Seat, grant.Side, grant.Kind)
	value := map[string]interface{}{
		"room":  room,
		"round": round,
		"grant": grant,
	}
	return a.writeOnce(ctx, grantsCollection, key, value)
}

var (
	_ ports.HistoryPort = (*NakamaStorageAdapter)(nil)
	_ ports.MarketPort  = (*NakamaStorageAdapter)(nil)
)
