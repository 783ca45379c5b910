package pricing

import "errors"

var (
	ErrInvalidPlanDuration    = errors.New("rental period does not match any plan")
	ErrEndDateBeforeStartDate = errors.New("return date is before the rental start date")
	// ErrUnknownPlanType means a rental carries a plan outside the rate table.
	// It indicates corrupted data upstream and must never be priced.
	ErrUnknownPlanType = errors.New("unknown rental plan type")
)
