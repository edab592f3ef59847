package models

// Requests and responses for the forecast HTTP endpoints. Defined in domain
// for consistency and reuse.

// ForecastRequest carries the single policy lever. The lever is a pointer so
// a missing field is distinguishable from an explicit zero and rejected by
// validation rather than silently forecast against a 0% rate.
type ForecastRequest struct {
	LendingRate *float64 `json:"lending_rate" validate:"required"`
}

// TargetForecast is one bounded forecast plus the unclamped raw value for
// diagnostics.
type TargetForecast struct {
	Value   float64 `json:"value"`
	Raw     float64 `json:"raw"`
	Clamped bool    `json:"clamped"`
}

// ForecastResponse carries the three named bounded forecasts for one lever.
type ForecastResponse struct {
	LendingRate  float64        `json:"lending_rate"`
	ForecastYear int            `json:"forecast_year"`
	Inflation    TargetForecast `json:"inflation"`
	GDPGrowth    TargetForecast `json:"gdp_growth"`
	Unemployment TargetForecast `json:"unemployment"`
}

// HealthResponse reports serving-path readiness.
type HealthResponse struct {
	Status       string `json:"status"`
	ModelsLoaded int    `json:"models_loaded"`
	LagYear      int    `json:"lag_year"`
}
