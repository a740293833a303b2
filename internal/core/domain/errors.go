package domain

import "errors"

var (
	ErrInvalidOrderQuantity   = errors.New("invalid order quantity")
	ErrInvalidRestockQuantity = errors.New("invalid restock quantity")
	ErrItemNotFound           = errors.New("item not found")
	ErrInsufficientStock      = errors.New("insufficient stock")
)
