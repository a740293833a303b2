package port

import (
	"context"

	"github.com/stockd/inventory-ledger/internal/core/domain"
)

type Journal interface {
	// Append records an applied adjustment and bumps the per-kind call counter
	Append(ctx context.Context, adj domain.Adjustment) error

	// History returns up to limit most recent adjustments for the item,
	// newest first
	History(ctx context.Context, itemName string, limit int) ([]domain.Adjustment, error)

	// CallCount returns how many adjustments of the given kind were journaled
	CallCount(ctx context.Context, kind domain.AdjustmentKind) (int64, error)
}
