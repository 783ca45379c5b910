package model

import "fmt"

// RentalPlanType is a fixed-duration rental contract. Its value is the number
// of calendar days the contract spans.
type RentalPlanType int

const (
	PlanSevenDays     RentalPlanType = 7
	PlanFifteenDays   RentalPlanType = 15
	PlanThirtyDays    RentalPlanType = 30
	PlanFortyFiveDays RentalPlanType = 45
	PlanFiftyDays     RentalPlanType = 50
)

func AllPlanTypes() []RentalPlanType {
	return []RentalPlanType{
		PlanSevenDays,
		PlanFifteenDays,
		PlanThirtyDays,
		PlanFortyFiveDays,
		PlanFiftyDays,
	}
}

func (p RentalPlanType) IsValid() bool {
	switch p {
	case PlanSevenDays, PlanFifteenDays, PlanThirtyDays, PlanFortyFiveDays, PlanFiftyDays:
		return true
	}
	return false
}

func (p RentalPlanType) Days() int {
	return int(p)
}

func (p RentalPlanType) String() string {
	switch p {
	case PlanSevenDays:
		return "SevenDays"
	case PlanFifteenDays:
		return "FifteenDays"
	case PlanThirtyDays:
		return "ThirtyDays"
	case PlanFortyFiveDays:
		return "FortyFiveDays"
	case PlanFiftyDays:
		return "FiftyDays"
	default:
		return fmt.Sprintf("RentalPlanType(%d)", int(p))
	}
}
