package config

import (
	"os"
	"strconv"

	"app/forecast"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	JWTSecret string
	Forecast  forecast.Policy
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// LoadForecastPolicy builds the forecast policy from environment variables,
// falling back to the defaults for anything unset. The numeric thresholds are
// tunable policy, not structural requirements, so they stay configurable.
func LoadForecastPolicy() forecast.Policy {
	policy := forecast.DefaultPolicy()

	if v := envInt("FORECAST_LOOKBACK_MONTHS"); v > 0 {
		policy.LookbackMonths = v
	}
	if v := envInt("FORECAST_MIN_NONZERO_MONTHS"); v > 0 {
		policy.MinNonZeroMonths = v
	}
	if v := envInt("FORECAST_COLD_START_FLOOR"); v > 0 {
		policy.ColdStartFloor = v
	}
	if v := envFloat("FORECAST_MAX_CV"); v > 0 {
		policy.MaxCoefficientOfVariation = v
	}
	if v := envFloat("FORECAST_CRITICAL_STOCKOUT_DAYS"); v > 0 {
		policy.CriticalStockoutDays = v
	}

	return policy
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

func envFloat(key string) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return 0
	}
	return v
}
