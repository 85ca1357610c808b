// Package sqlite stores round history and market grants in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
	"github.com/Bokan96/VillagePillage/internal/storage"
)

//go:embed schema.sql
var schema string

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

type Store struct {
	sqlDB *sql.DB
}

var (
	_ ports.HistoryPort = (*Store)(nil)
	_ ports.MarketPort  = (*Store)(nil)
	_ ports.GrantReader = (*Store)(nil)
)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := path
	if path != MemoryPath {
		dsn = filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection: SQLite serializes writers anyway and :memory: is per connection.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendRound stores one resolved round. A second append for the same round is ignored.
func (s *Store) AppendRound(ctx context.Context, room string, outcome domain.RoundOutcome) error {
	cols, err := storage.Encode(outcome)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO rounds (room, round, plays, resources, winners, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (room, round) DO NOTHING`,
		room, int64(outcome.Round), string(cols.Plays), string(cols.Resources), string(cols.Winners), toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("append round %d: %w", outcome.Round, err)
	}
	return nil
}

// Rounds returns up to limit rounds of room, newest first.
func (s *Store) Rounds(ctx context.Context, room string, limit int) ([]ports.RoundRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT round, plays, resources, winners, resolved_at
		   FROM rounds
		  WHERE room = ?
		  ORDER BY round DESC
		  LIMIT ?`,
		room, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var out []ports.RoundRecord
	for rows.Next() {
		var (
			round                 int64
			plays, after, winners string
			resolvedAt            int64
		)
		if err := rows.Scan(&round, &plays, &after, &winners, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rec := ports.RoundRecord{Room: room, Round: uint32(round), ResolvedAt: fromMillis(resolvedAt)}
		cols := storage.Columns{Plays: []byte(plays), Resources: []byte(after), Winners: []byte(winners)}
		if err := storage.Decode(cols, &rec); err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GrantPurchase records a market grant once.
func (s *Store) GrantPurchase(ctx context.Context, room string, round uint32, grant domain.MarketGrant) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO market_grants (room, round, seat, side, kind, granted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		room, int64(round), grant.Seat, grant.Side.String(), string(grant.Kind), toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("grant %s to seat %d: %w", grant.Kind, grant.Seat, err)
	}
	return nil
}

// Grants lists the grants recorded for one round of room, in seat order.
func (s *Store) Grants(ctx context.Context, room string, round uint32) ([]domain.MarketGrant, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT seat, side, kind FROM market_grants
		  WHERE room = ? AND round = ?
		  ORDER BY seat, side, kind`,
		room, int64(round),
	)
	if err != nil {
		return nil, fmt.Errorf("query grants: %w", err)
	}
	defer rows.Close()

	var out []domain.MarketGrant
	for rows.Next() {
		var (
			g          domain.MarketGrant
			side, kind string
		)
		if err := rows.Scan(&g.Seat, &side, &kind); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		if err := g.Side.UnmarshalText([]byte(side)); err != nil {
			return nil, err
		}
		g.Kind = domain.GrantKind(kind)
		out = append(out, g)
	}
	return out, rows.Err()
}
