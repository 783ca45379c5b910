package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/moto-rental/internal/model"
)

// Quote is the priced outcome of returning a rental on a given date.
type Quote struct {
	Timing     ReturnTiming
	ReturnDate time.Time
	RentedDays int
	EarlyDays  int
	LateDays   int
	DailyRate  decimal.Decimal
	Base       decimal.Decimal
	Surcharge  decimal.Decimal
	Total      decimal.Decimal
}

// Strategy prices a rental for one return timing. Implementations hold no
// state and never modify the rental.
type Strategy interface {
	Price(rental model.Rental, returnDate time.Time) (Quote, error)
}

var strategies = map[ReturnTiming]Strategy{
	EarlyReturn:  earlyReturn{},
	LateReturn:   lateReturn{},
	OnTimeReturn: onTimeReturn{},
}

// StrategyFor returns the pricing strategy for a timing.
func StrategyFor(timing ReturnTiming) (Strategy, error) {
	strategy, ok := strategies[timing]
	if !ok {
		return nil, fmt.Errorf("no pricing strategy for timing %q", timing)
	}
	return strategy, nil
}

type onTimeReturn struct{}

func (onTimeReturn) Price(rental model.Rental, returnDate time.Time) (Quote, error) {
	q, err := baseQuote(rental, returnDate)
	if err != nil {
		return Quote{}, err
	}
	q.Timing = OnTimeReturn
	q.Total = q.Base
	return q, nil
}

type earlyReturn struct{}

func (earlyReturn) Price(rental model.Rental, returnDate time.Time) (Quote, error) {
	q, err := baseQuote(rental, returnDate)
	if err != nil {
		return Quote{}, err
	}
	penalty, err := PenaltyRate(rental.PlanType)
	if err != nil {
		return Quote{}, err
	}
	q.Timing = EarlyReturn
	q.EarlyDays = DaysBetween(returnDate, rental.EndDate)
	q.Surcharge = q.DailyRate.Mul(penalty).Mul(decimal.NewFromInt(int64(q.EarlyDays)))
	q.Total = q.Base.Add(q.Surcharge)
	return q, nil
}

type lateReturn struct{}

func (lateReturn) Price(rental model.Rental, returnDate time.Time) (Quote, error) {
	q, err := baseQuote(rental, returnDate)
	if err != nil {
		return Quote{}, err
	}
	q.Timing = LateReturn
	q.LateDays = DaysBetween(rental.EndDate, returnDate)
	q.Surcharge = LateFeePerDay.Mul(decimal.NewFromInt(int64(q.LateDays)))
	q.Total = q.Base.Add(q.Surcharge)
	return q, nil
}

func baseQuote(rental model.Rental, returnDate time.Time) (Quote, error) {
	rate, err := DailyRate(rental.PlanType)
	if err != nil {
		return Quote{}, err
	}
	rented := DaysBetween(rental.StartDate, returnDate)
	return Quote{
		ReturnDate: DateOnly(returnDate),
		RentedDays: rented,
		DailyRate:  rate,
		Base:       rate.Mul(decimal.NewFromInt(int64(rented))),
		Surcharge:  decimal.Zero,
	}, nil
}
