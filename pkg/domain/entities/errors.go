package entities

import "errors"

var (
	// ErrInvalidArgument marks structurally invalid calls (bad capacity, bad period).
	ErrInvalidArgument = errors.New("invalid argument")
	ErrItemNotFound    = errors.New("item not found")
)
