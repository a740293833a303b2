package domain

import "time"

// Item is a catalog entry. Quantity is never negative; the ledger is the
// only writer of this field.
type Item struct {
	Name      string    `db:"name"`
	Quantity  int       `db:"quantity"`
	Version   int       `db:"version"` // optimistic locking on the restock path
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
