package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/stockd/inventory-ledger/internal/core/domain"
)

type MySQLStore struct {
	db *sqlx.DB
}

func NewMySQLStore(db *sqlx.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) GetItem(ctx context.Context, name string) (*domain.Item, error) {
	var item domain.Item
	err := s.db.GetContext(ctx, &item, `
		SELECT name, quantity, version, created_at, updated_at
		FROM items WHERE name = ?`, name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}

	return &item, nil
}

// ApplyDecrement runs the guarded decrement as a single conditional UPDATE.
// The WHERE clause keeps the quantity from going negative: zero rows affected
// means the item is missing or the guard failed, and nothing was mutated.
func (s *MySQLStore) ApplyDecrement(ctx context.Context, name string, number int) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE items
		SET quantity = quantity - ?, version = version + 1, updated_at = NOW()
		WHERE name = ? AND quantity >= ?`,
		number, name, number,
	)
	if err != nil {
		return 0, fmt.Errorf("update item: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM items WHERE name = ?)`, name); err != nil {
			return 0, fmt.Errorf("classify failed decrement: %w", err)
		}
		if !exists {
			return 0, domain.ErrItemNotFound
		}
		return 0, domain.ErrInsufficientStock
	}

	var resulting int
	if err := tx.GetContext(ctx, &resulting, `SELECT quantity FROM items WHERE name = ?`, name); err != nil {
		return 0, fmt.Errorf("read back quantity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return resulting, nil
}

func (s *MySQLStore) ApplyIncrement(ctx context.Context, name string, number int) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO items (name, quantity, version, created_at, updated_at)
		VALUES (?, ?, 0, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			version = version + 1,
			updated_at = NOW()`,
		name, number,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert item: %w", err)
	}

	var resulting int
	if err := tx.GetContext(ctx, &resulting, `SELECT quantity FROM items WHERE name = ?`, name); err != nil {
		return 0, fmt.Errorf("read back quantity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return resulting, nil
}
