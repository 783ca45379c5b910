package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/moto-rental/internal/model"
)

// QuoteReturn prices returning the rental on returnDate.
func QuoteReturn(rental model.Rental, returnDate time.Time) (Quote, error) {
	if DaysBetween(rental.StartDate, returnDate) < 0 {
		return Quote{}, fmt.Errorf("%w: return %s, start %s",
			ErrEndDateBeforeStartDate, formatDate(returnDate), formatDate(rental.StartDate))
	}
	strategy, err := StrategyFor(SelectTiming(rental, returnDate))
	if err != nil {
		return Quote{}, err
	}
	return strategy.Price(rental, returnDate)
}

// ComputeCost returns the total owed for returning the rental on returnDate.
func ComputeCost(rental model.Rental, returnDate time.Time) (decimal.Decimal, error) {
	quote, err := QuoteReturn(rental, returnDate)
	if err != nil {
		return decimal.Zero, err
	}
	return quote.Total, nil
}
