// Package postgres stores round history and market grants in PostgreSQL for
// hosted rooms.
package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Bokan96/VillagePillage/internal/domain"
	"github.com/Bokan96/VillagePillage/internal/ports"
	"github.com/Bokan96/VillagePillage/internal/storage"
)

//go:embed schema.sql
var schema string

type Store struct{ *pgxpool.Pool }

var (
	_ ports.HistoryPort = (*Store)(nil)
	_ ports.MarketPort  = (*Store)(nil)
	_ ports.GrantReader = (*Store)(nil)
)

func Open(ctx context.Context, dsn string) (*Store, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{p}, nil
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.Exec(ctx, schema)
	return err
}

func (s *Store) Close() error {
	s.Pool.Close()
	return nil
}

func (s *Store) AppendRound(ctx context.Context, room string, outcome domain.RoundOutcome) error {
	cols, err := storage.Encode(outcome)
	if err != nil {
		return err
	}
	_, err = s.Exec(ctx, `
        INSERT INTO rounds (room, round, plays, resources, winners)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (room, round) DO NOTHING
    `, room, int64(outcome.Round), cols.Plays, cols.Resources, cols.Winners)
	if err != nil {
		return fmt.Errorf("append round %d: %w", outcome.Round, err)
	}
	return nil
}

func (s *Store) Rounds(ctx context.Context, room string, limit int) ([]ports.RoundRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.Query(ctx, `
		SELECT round, plays, resources, winners, resolved_at
		  FROM rounds
		 WHERE room = $1
		 ORDER BY round DESC
		 LIMIT $2
	`, room, limit)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	var out []ports.RoundRecord
	for rows.Next() {
		var (
			round      int64
			cols       storage.Columns
			resolvedAt time.Time
		)
		if err := rows.Scan(&round, &cols.Plays, &cols.Resources, &cols.Winners, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}
		rec := ports.RoundRecord{Room: room, Round: uint32(round), ResolvedAt: resolvedAt.UTC()}
		if err := storage.Decode(cols, &rec); err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) GrantPurchase(ctx context.Context, room string, round uint32, grant domain.MarketGrant) error {
	_, err := s.Exec(ctx, `
		INSERT INTO market_grants (room, round, seat, side, kind)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`, room, int64(round), int16(grant.Seat), grant.Side.String(), string(grant.Kind))
	if err != nil {
		return fmt.Errorf("grant %s to seat %d: %w", grant.Kind, grant.Seat, err)
	}
	return nil
}

func (s *Store) Grants(ctx context.Context, room string, round uint32) ([]domain.MarketGrant, error) {
	rows, err := s.Query(ctx, `
		SELECT seat, side, kind
		  FROM market_grants
		 WHERE room = $1 AND round = $2
		 ORDER BY seat, side, kind
	`, room, int64(round))
	if err != nil {
		return nil, fmt.Errorf("query grants: %w", err)
	}
	defer rows.Close()

	var out []domain.MarketGrant
	for rows.Next() {
		var (
			seat       int16
			side, kind string
		)
		if err := rows.Scan(&seat, &side, &kind); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		g := domain.MarketGrant{Seat: int(seat), Kind: domain.GrantKind(kind)}
		if err := g.Side.UnmarshalText([]byte(side)); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
