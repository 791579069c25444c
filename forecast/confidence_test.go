package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"app/models"
)

func TestClassifyConfidenceColdStart(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, models.ConfidenceColdStart, ClassifyConfidence(nil, policy))
	assert.Equal(t, models.ConfidenceColdStart, ClassifyConfidence(series(0, 0, 0, 0), policy))
	// a single active month is still a cold start
	assert.Equal(t, models.ConfidenceColdStart, ClassifyConfidence(series(0, 0, 30, 0), policy))
}

func TestClassifyConfidenceShortHistoryIsLow(t *testing.T) {
	policy := DefaultPolicy()
	assert.Equal(t, models.ConfidenceLow, ClassifyConfidence(series(100, 110, 121), policy))
}

func TestClassifyConfidenceMediumHistory(t *testing.T) {
	policy := DefaultPolicy()
	assert.Equal(t, models.ConfidenceMedium, ClassifyConfidence(series(50, 52, 48, 51, 49, 50), policy))
}

func TestClassifyConfidenceLongStableHistoryIsHigh(t *testing.T) {
	policy := DefaultPolicy()
	s := series(100, 102, 98, 101, 99, 100, 103, 97, 100, 101, 99, 100)
	assert.Equal(t, models.ConfidenceHigh, ClassifyConfidence(s, policy))
}

func TestClassifyConfidenceVolatileHistoryCappedAtLow(t *testing.T) {
	policy := DefaultPolicy()
	// twelve months, but wildly unstable: high CV wins over length
	s := series(0, 200, 0, 200, 0, 200, 0, 200, 0, 200, 0, 200)
	assert.Equal(t, models.ConfidenceLow, ClassifyConfidence(s, policy))
}

func TestClassifyConfidenceMonotonicInLength(t *testing.T) {
	policy := DefaultPolicy()
	rank := map[models.Confidence]int{
		models.ConfidenceColdStart: 0,
		models.ConfidenceLow:       1,
		models.ConfidenceMedium:    2,
		models.ConfidenceHigh:      3,
	}

	prev := -1
	var s []models.MonthlyUsage
	for i := 0; i < 14; i++ {
		s = append(s, models.MonthlyUsage{Month: "2025-01", Quantity: 100})
		got := rank[ClassifyConfidence(s, policy)]
		assert.GreaterOrEqual(t, got, prev, "confidence dropped when history grew to %d months", len(s))
		prev = got
	}
}
