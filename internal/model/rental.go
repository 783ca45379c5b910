package model

import (
	"time"

	"github.com/google/uuid"
)

// Rental is a booked contract. StartDate and EndDate carry no time component
// and EndDate-StartDate always equals PlanType days.
type Rental struct {
	ID               uuid.UUID
	MotoID           uuid.UUID
	DeliveryPersonID uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	PlanType         RentalPlanType
	CreatedAt        time.Time
}
