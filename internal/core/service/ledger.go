package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockd/inventory-ledger/internal/core/domain"
	"github.com/stockd/inventory-ledger/internal/port"
)

// Ledger owns the mutation path to item quantities. Stock mutations commit
// synchronously against the store; journal writes are queued and drained by
// workers so a journal outage never fails an order.
type Ledger struct {
	store       port.LedgerStore
	journal     port.Journal
	adjustments chan domain.Adjustment
}

func NewLedger(store port.LedgerStore, journal port.Journal, queueSize int) *Ledger {
	return &Ledger{
		store:       store,
		journal:     journal,
		adjustments: make(chan domain.Adjustment, queueSize),
	}
}

// RecordOrder applies the order's decrement as one atomic store transaction.
// Calling it twice with the same order decrements twice; the ledger keeps no
// order identity.
func (l *Ledger) RecordOrder(ctx context.Context, order domain.Order) error {
	if order.Number <= 0 {
		return domain.ErrInvalidOrderQuantity
	}

	resulting, err := l.store.ApplyDecrement(ctx, order.ItemName, order.Number)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) || errors.Is(err, domain.ErrInsufficientStock) {
			return err
		}
		return fmt.Errorf("apply decrement: %w", err)
	}

	l.adjustments <- domain.Adjustment{
		ID:        uuid.NewString(),
		ItemName:  order.ItemName,
		Kind:      domain.AdjustmentOrder,
		Delta:     -order.Number,
		Resulting: resulting,
		AppliedAt: time.Now(),
	}

	return nil
}

// Restock adds stock to an item, creating it when absent. Used for catalog
// seeding and replenishment.
func (l *Ledger) Restock(ctx context.Context, itemName string, number int) error {
	if number <= 0 {
		return domain.ErrInvalidRestockQuantity
	}

	resulting, err := l.store.ApplyIncrement(ctx, itemName, number)
	if err != nil {
		return fmt.Errorf("apply increment: %w", err)
	}

	l.adjustments <- domain.Adjustment{
		ID:        uuid.NewString(),
		ItemName:  itemName,
		Kind:      domain.AdjustmentRestock,
		Delta:     number,
		Resulting: resulting,
		AppliedAt: time.Now(),
	}

	return nil
}

// GetItem reads the authoritative item record.
func (l *Ledger) GetItem(ctx context.Context, itemName string) (*domain.Item, error) {
	item, err := l.store.GetItem(ctx, itemName)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// History returns the most recent journaled adjustments for an item, newest
// first.
func (l *Ledger) History(ctx context.Context, itemName string, limit int) ([]domain.Adjustment, error) {
	history, err := l.journal.History(ctx, itemName, limit)
	if err != nil {
		return nil, fmt.Errorf("journal history: %w", err)
	}
	return history, nil
}

// Stats reports how many adjustments of each kind have been journaled.
func (l *Ledger) Stats(ctx context.Context) (map[domain.AdjustmentKind]int64, error) {
	stats := make(map[domain.AdjustmentKind]int64, 2)
	for _, kind := range []domain.AdjustmentKind{domain.AdjustmentOrder, domain.AdjustmentRestock} {
		count, err := l.journal.CallCount(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("call count %s: %w", kind, err)
		}
		stats[kind] = count
	}
	return stats, nil
}

func (l *Ledger) Adjustments() <-chan domain.Adjustment {
	return l.adjustments
}

func (l *Ledger) Close() {
	close(l.adjustments)
}
