package pricing

import (
	"time"

	"github.com/nurpe/moto-rental/internal/model"
)

type ReturnTiming string

const (
	EarlyReturn  ReturnTiming = "EARLY"
	LateReturn   ReturnTiming = "LATE"
	OnTimeReturn ReturnTiming = "ON_TIME"
)

// SelectTiming compares the return date with the contracted end date.
func SelectTiming(rental model.Rental, returnDate time.Time) ReturnTiming {
	switch diff := DaysBetween(rental.EndDate, returnDate); {
	case diff < 0:
		return EarlyReturn
	case diff > 0:
		return LateReturn
	default:
		return OnTimeReturn
	}
}
