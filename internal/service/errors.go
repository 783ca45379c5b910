package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyExists     = errors.New("already exists")
	ErrLicenseIneligible = errors.New("license does not permit motorcycle rental")
	ErrMotoHasRentals    = errors.New("moto has rentals")
	ErrMotoUnavailable   = errors.New("moto is already rented for the period")
)
