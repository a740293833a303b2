package domain

import "time"

// Order is a request to consume stock of a named item. Orders are created by
// the order-placement collaborator and are immutable once created; the ledger
// applies exactly one adjustment per accepted order and keeps no record of
// order identity.
type Order struct {
	ID       string
	ItemName string
	Number   int
	PlacedAt time.Time
}
