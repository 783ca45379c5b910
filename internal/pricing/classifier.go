package pricing

import (
	"fmt"
	"time"

	"github.com/nurpe/moto-rental/internal/model"
)

// Classify maps a rental interval onto the plan with exactly that many days.
func Classify(start, end time.Time) (model.RentalPlanType, error) {
	days := DaysBetween(start, end)
	plan := model.RentalPlanType(days)
	if !plan.IsValid() {
		return 0, fmt.Errorf("%w: %s to %s spans %d days",
			ErrInvalidPlanDuration, formatDate(start), formatDate(end), days)
	}
	return plan, nil
}

// EndDateFor returns the contracted end date of a plan starting on start.
func EndDateFor(start time.Time, plan model.RentalPlanType) (time.Time, error) {
	if !plan.IsValid() {
		return time.Time{}, fmt.Errorf("%w: %d", ErrUnknownPlanType, int(plan))
	}
	return AddDays(start, plan.Days()), nil
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
