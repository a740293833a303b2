package port

import (
	"context"

	"github.com/stockd/inventory-ledger/internal/core/domain"
)

type LedgerStore interface {
	// GetItem retrieves an item by name, nil when the item does not exist
	GetItem(ctx context.Context, name string) (*domain.Item, error)

	// ApplyDecrement atomically subtracts number from the item's quantity,
	// guarded so quantity never goes negative. Returns the resulting
	// quantity on success, domain.ErrItemNotFound or
	// domain.ErrInsufficientStock otherwise.
	ApplyDecrement(ctx context.Context, name string, number int) (int, error)

	// ApplyIncrement adds number to the item's quantity, creating the item
	// at that quantity when absent. Returns the resulting quantity.
	ApplyIncrement(ctx context.Context, name string, number int) (int, error)
}
