package forecast

// Policy holds the tunable thresholds of the forecasting engine. The defaults
// are a starting point meant to be validated against real dispensing history;
// every value can be overridden through configuration.
type Policy struct {
	// LookbackMonths is how many months of history feed the series.
	LookbackMonths int

	// MinNonZeroMonths is the minimum number of months with actual usage
	// before any statistic is trusted. Below it the drug is a cold start.
	MinNonZeroMonths int

	// ShortHistoryMonths is the series length at or below which confidence
	// is capped at LOW.
	ShortHistoryMonths int

	// MediumHistoryMonths is the series length at or below which confidence
	// is capped at MEDIUM.
	MediumHistoryMonths int

	// MaxCoefficientOfVariation is the relative-variance ceiling; a series
	// above it is classified LOW regardless of length.
	MaxCoefficientOfVariation float64

	// ColdStartFloor is the minimum suggested monthly quantity for a drug
	// with no usable history and no reorder level to fall back on.
	ColdStartFloor int

	// CriticalStockoutDays marks the stockout horizon below which an order
	// line becomes CRITICAL.
	CriticalStockoutDays float64

	// TrendSignalThreshold is the |trend| above which callers treat usage
	// as meaningfully increasing or decreasing.
	TrendSignalThreshold float64

	// MaxMonthsAhead bounds the requestable forecast horizon.
	MaxMonthsAhead int
}

// DefaultPolicy returns the stock policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		LookbackMonths:            12,
		MinNonZeroMonths:          2,
		ShortHistoryMonths:        4,
		MediumHistoryMonths:       8,
		MaxCoefficientOfVariation: 0.5,
		ColdStartFloor:            10,
		CriticalStockoutDays:      15,
		TrendSignalThreshold:      0.1,
		MaxMonthsAhead:            3,
	}
}
