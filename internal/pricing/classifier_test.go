package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nurpe/moto-rental/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyAcceptsEveryPlan(t *testing.T) {
	start := date(2024, time.March, 1)
	for _, plan := range model.AllPlanTypes() {
		t.Run(plan.String(), func(t *testing.T) {
			got, err := Classify(start, start.AddDate(0, 0, plan.Days()))
			require.NoError(t, err)
			require.Equal(t, plan, got)
		})
	}
}

func TestClassifyRejectsOtherDurations(t *testing.T) {
	start := date(2024, time.March, 1)
	for _, days := range []int{-1, 0, 1, 6, 8, 14, 16, 29, 31, 44, 46, 49, 51, 60, 365} {
		_, err := Classify(start, start.AddDate(0, 0, days))
		require.Truef(t, errors.Is(err, ErrInvalidPlanDuration), "days=%d err=%v", days, err)
	}
}

func TestClassifyIgnoresClockTime(t *testing.T) {
	start := time.Date(2024, time.January, 25, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, time.February, 1, 0, 1, 0, 0, time.UTC)

	plan, err := Classify(start, end)
	require.NoError(t, err)
	require.Equal(t, model.PlanSevenDays, plan)
}

func TestClassifyAcrossMonthAndYear(t *testing.T) {
	plan, err := Classify(date(2023, time.December, 20), date(2024, time.January, 19))
	require.NoError(t, err)
	require.Equal(t, model.PlanThirtyDays, plan)

	plan, err = Classify(date(2024, time.February, 20), date(2024, time.March, 6))
	require.NoError(t, err)
	require.Equal(t, model.PlanFifteenDays, plan)
}

func TestEndDateFor(t *testing.T) {
	end, err := EndDateFor(date(2024, time.February, 25), model.PlanSevenDays)
	require.NoError(t, err)
	require.Equal(t, date(2024, time.March, 3), end)

	_, err = EndDateFor(date(2024, time.February, 25), model.RentalPlanType(8))
	require.ErrorIs(t, err, ErrUnknownPlanType)
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 0, DaysBetween(date(2024, 1, 1), date(2024, 1, 1)))
	require.Equal(t, 31, DaysBetween(date(2024, 1, 1), date(2024, 2, 1)))
	require.Equal(t, 29, DaysBetween(date(2024, 2, 1), date(2024, 3, 1)))
	require.Equal(t, -2, DaysBetween(date(2024, 3, 1), date(2024, 2, 28)))
}
