package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestBuildMonthlySeriesNoGaps(t *testing.T) {
	records := []models.UsageRecord{
		{DrugID: "d1", BranchID: "b1", DispensedAt: date(2025, time.January, 3), Quantity: 10},
		{DrugID: "d1", BranchID: "b1", DispensedAt: date(2025, time.January, 20), Quantity: 5},
		// February and March have no records at all
		{DrugID: "d1", BranchID: "b1", DispensedAt: date(2025, time.April, 7), Quantity: 8},
	}

	series, err := BuildMonthlySeries(records, date(2025, time.January, 1), date(2025, time.April, 30))
	assert.NoError(t, err)

	// one entry per calendar month, sparse or not
	assert.Len(t, series, 4)
	assert.Equal(t, models.MonthlyUsage{Month: "2025-01", Quantity: 15}, series[0])
	assert.Equal(t, models.MonthlyUsage{Month: "2025-02", Quantity: 0}, series[1])
	assert.Equal(t, models.MonthlyUsage{Month: "2025-03", Quantity: 0}, series[2])
	assert.Equal(t, models.MonthlyUsage{Month: "2025-04", Quantity: 8}, series[3])
}

func TestBuildMonthlySeriesEmptyHistory(t *testing.T) {
	series, err := BuildMonthlySeries(nil, date(2025, time.March, 1), date(2025, time.May, 31))
	assert.NoError(t, err)

	assert.Len(t, series, 3)
	for _, m := range series {
		assert.Equal(t, 0, m.Quantity)
	}
}

func TestBuildMonthlySeriesIgnoresRecordsOutsideWindow(t *testing.T) {
	records := []models.UsageRecord{
		{DispensedAt: date(2024, time.December, 31), Quantity: 100},
		{DispensedAt: date(2025, time.January, 15), Quantity: 7},
		{DispensedAt: date(2025, time.February, 2), Quantity: 100},
	}

	series, err := BuildMonthlySeries(records, date(2025, time.January, 1), date(2025, time.January, 31))
	assert.NoError(t, err)
	assert.Len(t, series, 1)
	assert.Equal(t, 7, series[0].Quantity)
}

func TestBuildMonthlySeriesClampsNegativeMonths(t *testing.T) {
	// A return batch larger than the month's dispenses must not produce
	// negative usage.
	records := []models.UsageRecord{
		{DispensedAt: date(2025, time.June, 5), Quantity: 3},
		{DispensedAt: date(2025, time.June, 6), Quantity: -10},
	}

	series, err := BuildMonthlySeries(records, date(2025, time.June, 1), date(2025, time.June, 30))
	assert.NoError(t, err)
	assert.Equal(t, 0, series[0].Quantity)
}

func TestBuildMonthlySeriesInvalidWindow(t *testing.T) {
	_, err := BuildMonthlySeries(nil, date(2025, time.May, 1), date(2025, time.January, 1))
	if err == nil {
		t.Fatalf("expected error for start after end")
	}
}

func TestBuildMonthlySeriesSpansYearBoundary(t *testing.T) {
	series, err := BuildMonthlySeries(nil, date(2024, time.November, 10), date(2025, time.February, 5))
	assert.NoError(t, err)
	assert.Len(t, series, 4)
	assert.Equal(t, "2024-11", series[0].Month)
	assert.Equal(t, "2025-02", series[3].Month)
}
