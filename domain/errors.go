package domain

import "errors"

var (
	ErrNoVendorsAvailable = errors.New("no vendors available")
	ErrInvalidInput       = errors.New("invalid input")
)
