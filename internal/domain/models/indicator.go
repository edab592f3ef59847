package models

// Indicator identifies one economic series handled by the pipeline.
type Indicator string

const (
	IndicatorInflation    Indicator = "inflation"
	IndicatorUnemployment Indicator = "unemployment"
	IndicatorGDPGrowth    Indicator = "gdp_growth"
	IndicatorLendingRate  Indicator = "lending_rate"
	IndicatorGDPLevel     Indicator = "gdp_current_usd"
)

// Targets returns the modeled target indicators in canonical order.
// The order is fixed; model artifacts and response payloads follow it.
func Targets() []Indicator {
	return []Indicator{IndicatorInflation, IndicatorGDPGrowth, IndicatorUnemployment}
}

// IsTarget reports whether the indicator has its own fitted model.
func (i Indicator) IsTarget() bool {
	switch i {
	case IndicatorInflation, IndicatorGDPGrowth, IndicatorUnemployment:
		return true
	}
	return false
}

// Valid reports whether the indicator is one the pipeline knows about.
func (i Indicator) Valid() bool {
	switch i {
	case IndicatorInflation, IndicatorUnemployment, IndicatorGDPGrowth,
		IndicatorLendingRate, IndicatorGDPLevel:
		return true
	}
	return false
}

func (i Indicator) String() string { return string(i) }

// Frequency is the native observation cadence of a raw source.
type Frequency string

const (
	FreqMonthly   Frequency = "monthly"
	FreqQuarterly Frequency = "quarterly"
	FreqAnnual    Frequency = "annual"
)

// Valid reports whether the frequency is supported.
func (f Frequency) Valid() bool {
	switch f {
	case FreqMonthly, FreqQuarterly, FreqAnnual:
		return true
	}
	return false
}
