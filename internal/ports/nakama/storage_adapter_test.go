package nakama

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// fakeStorage keeps objects per collection and honours the "*" version of
// create-only writes.
type fakeStorage struct {
	objects  map[string]map[string]string
	pageSize int
	failList error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]map[string]string), pageSize: 2}
}

func (f *fakeStorage) StorageWrite(_ context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	acks := make([]*api.StorageObjectAck, 0, len(writes))
	for _, w := range writes {
		col := f.objects[w.Collection]
		if col == nil {
			col = make(map[string]string)
			f.objects[w.Collection] = col
		}
		if _, exists := col[w.Key]; exists && w.Version == "*" {
			return nil, runtime.ErrStorageRejectedVersion
		}
		col[w.Key] = w.Value
		acks = append(acks, &api.StorageObjectAck{Collection: w.Collection, Key: w.Key})
	}
	return acks, nil
}

func (f *fakeStorage) StorageList(_ context.Context, _, _, collection string, limit int, cursor string) ([]*api.StorageObject, string, error) {
	if f.failList != nil {
		return nil, "", f.failList
	}
	keys := make([]string, 0, len(f.objects[collection]))
	for k := range f.objects[collection] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start, _ := strconv.Atoi(cursor)
	end := min(start+min(limit, f.pageSize), len(keys))
	var out []*api.StorageObject
	for _, k := range keys[start:end] {
		out = append(out, &api.StorageObject{Collection: collection, Key: k, Value: f.objects[collection][k]})
	}
	next := ""
	if end < len(keys) {
		next = strconv.Itoa(end)
	}
	return out, next, nil
}

func outcome(round uint32, turnips int) domain.RoundOutcome {
	o := domain.RoundOutcome{Round: round}
	for i := range o.After {
		o.Plays[i] = domain.RoundSubmission{Round: round, Seat: uint8(i), LeftCardID: domain.CardFarmer, RightCardID: domain.CardWall}
		o.After[i] = domain.PlayerResources{Turnips: turnips, BankLimit: 5}
	}
	return o
}

func TestStorageAdapter_AppendRoundKeepsFirstRecord(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage()
	a := NewNakamaStorageAdapter(store)

	if err := a.AppendRound(ctx, "room-1", outcome(1, 4)); err != nil {
		t.Fatalf("AppendRound: %v", err)
	}
	if err := a.AppendRound(ctx, "room-1", outcome(1, 9)); err != nil {
		t.Fatalf("second AppendRound should be absorbed, got %v", err)
	}

	recs, err := a.Rounds(ctx, "room-1", 10)
	if err != nil {
		t.Fatalf("Rounds: %v", err)
	}
	if len(recs) != 1 || recs[0].After[0].Turnips != 4 {
		t.Fatalf("records = %+v", recs)
	}
	if recs[0].Plays[2].Seat != 2 || recs[0].Room != "room-1" {
		t.Fatalf("record lost fields: %+v", recs[0])
	}
}

func TestStorageAdapter_RoundsNewestFirstAcrossPages(t *testing.T) {
	ctx := context.Background()
	a := NewNakamaStorageAdapter(newFakeStorage())
	for round := uint32(1); round <= 11; round++ {
		if err := a.AppendRound(ctx, "room-1", outcome(round, int(round))); err != nil {
			t.Fatalf("AppendRound %d: %v", round, err)
		}
	}
	if err := a.AppendRound(ctx, "room-2", outcome(1, 0)); err != nil {
		t.Fatalf("AppendRound other room: %v", err)
	}

	tests := []struct {
		name  string
		limit int
		want  []uint32
	}{
		{name: "Limited", limit: 3, want: []uint32{11, 10, 9}},
		{name: "All", limit: 50, want: []uint32{11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}},
		{name: "Zero", limit: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recs, err := a.Rounds(ctx, "room-1", test.limit)
			if err != nil {
				t.Fatalf("Rounds: %v", err)
			}
			if len(recs) != len(test.want) {
				t.Fatalf("got %d records, want %d", len(recs), len(test.want))
			}
			for i, r := range recs {
				if r.Round != test.want[i] {
					t.Errorf("record %d is round %d, want %d", i, r.Round, test.want[i])
				}
			}
		})
	}
}

func TestStorageAdapter_RoundsListError(t *testing.T) {
	store := newFakeStorage()
	store.failList = errors.New("storage down")
	if _, err := NewNakamaStorageAdapter(store).Rounds(context.Background(), "room-1", 5); err == nil {
		t.Fatal("expected list error")
	}
}

func TestStorageAdapter_GrantPurchaseIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStorage()
	a := NewNakamaStorageAdapter(store)
	grants := []domain.MarketGrant{
		{Seat: 0, Side: domain.SideLeft, Kind: domain.GrantCard},
		{Seat: 0, Side: domain.SideLeft, Kind: domain.GrantCard},
		{Seat: 0, Side: domain.SideRight, Kind: domain.GrantCard},
		{Seat: 1, Side: domain.SideLeft, Kind: domain.GrantFreeCard},
	}
	for _, g := range grants {
		if err := a.GrantPurchase(ctx, "room-1", 3, g); err != nil {
			t.Fatalf("GrantPurchase(%+v): %v", g, err)
		}
	}
	if n := len(store.objects[grantsCollection]); n != 3 {
		t.Fatalf("stored %d grants, want 3", n)
	}
	if _, ok := store.objects[grantsCollection]["room-1:0000000003:0:left:card"]; !ok {
		t.Fatalf("unexpected keys: %v", store.objects[grantsCollection])
	}
}
