package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidInput       = errors.New("invalid input")
	ErrGateway            = errors.New("persistence error")
	ErrNoClientsSelected  = errors.New("no clients selected")
	ErrNoShipmentsCreated = errors.New("no shipments could be created")
)

// invalid wraps a validation failure so callers can match ErrInvalidInput
// and still reach the field errors with errors.As.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// gateway maps a persistence failure onto the service error taxonomy. The
// store's own message is kept.
func gateway(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return fmt.Errorf("%w: %s: %s", ErrGateway, what, err)
}
