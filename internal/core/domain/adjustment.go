package domain

import "time"

type AdjustmentKind string

const (
	AdjustmentOrder   AdjustmentKind = "order"
	AdjustmentRestock AdjustmentKind = "restock"
)

// Adjustment is one applied stock mutation, kept in the journal. Delta is
// negative for orders and positive for restocks; Resulting is the quantity
// after the mutation committed.
type Adjustment struct {
	ID        string         `json:"id"`
	ItemName  string         `json:"item_name"`
	Kind      AdjustmentKind `json:"kind"`
	Delta     int            `json:"delta"`
	Resulting int            `json:"resulting"`
	AppliedAt time.Time      `json:"applied_at"`
}
