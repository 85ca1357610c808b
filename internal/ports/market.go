package ports

import (
	"context"

	"github.com/Bokan96/VillagePillage/internal/domain"
)

// MarketPort receives the purchase rights granted by card effects.
// The market itself (stock, prices, card delivery) lives behind this port.
type MarketPort interface {
	// GrantPurchase records a grant. Granting the same (room, round, grant) twice is a no-op.
	GrantPurchase(ctx context.Context, room string, round uint32, grant domain.MarketGrant) error
}

// GrantReader lists the grants recorded for one round, in seat order.
type GrantReader interface {
	Grants(ctx context.Context, room string, round uint32) ([]domain.MarketGrant, error)
}
