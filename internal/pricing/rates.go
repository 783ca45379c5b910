package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nurpe/moto-rental/internal/model"
)

// LateFeePerDay is charged for every day past the contracted end date,
// regardless of plan.
var LateFeePerDay = decimal.NewFromInt(50)

var dailyRates = map[model.RentalPlanType]decimal.Decimal{
	model.PlanSevenDays:     decimal.NewFromInt(30),
	model.PlanFifteenDays:   decimal.NewFromInt(28),
	model.PlanThirtyDays:    decimal.NewFromInt(22),
	model.PlanFortyFiveDays: decimal.NewFromInt(20),
	model.PlanFiftyDays:     decimal.NewFromInt(18),
}

// Fraction of the daily rate charged per unused day on early return.
var penaltyRates = map[model.RentalPlanType]decimal.Decimal{
	model.PlanSevenDays:     decimal.RequireFromString("0.20"),
	model.PlanFifteenDays:   decimal.RequireFromString("0.40"),
	model.PlanThirtyDays:    decimal.Zero,
	model.PlanFortyFiveDays: decimal.Zero,
	model.PlanFiftyDays:     decimal.Zero,
}

func DailyRate(plan model.RentalPlanType) (decimal.Decimal, error) {
	rate, ok := dailyRates[plan]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrUnknownPlanType, int(plan))
	}
	return rate, nil
}

func PenaltyRate(plan model.RentalPlanType) (decimal.Decimal, error) {
	rate, ok := penaltyRates[plan]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrUnknownPlanType, int(plan))
	}
	return rate, nil
}
