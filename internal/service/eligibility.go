package service

import (
	"fmt"

	"github.com/nurpe/moto-rental/internal/model"
)

// CheckEligibility fails unless the person's license includes category A.
func CheckEligibility(person model.DeliveryPerson) error {
	if !person.CanRideMotorcycle() {
		return fmt.Errorf("%w: license category %s", ErrLicenseIneligible, person.License.Category())
	}
	return nil
}
