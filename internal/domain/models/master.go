package models

// MasterRecord is one fully aligned year: the policy lever plus every
// modeled indicator's realized value. A year only becomes a MasterRecord
// when all required series cover it.
type MasterRecord struct {
	Year         int
	LendingRate  float64
	Inflation    float64
	Unemployment float64
	GDPGrowth    float64
}

// Target returns the realized value of a target indicator for this year.
func (r MasterRecord) Target(i Indicator) float64 {
	switch i {
	case IndicatorInflation:
		return r.Inflation
	case IndicatorUnemployment:
		return r.Unemployment
	case IndicatorGDPGrowth:
		return r.GDPGrowth
	}
	return 0
}

// LagState is the most recent complete MasterRecord row, i.e. the t-1
// indicator values fed into a next-period forecast.
type LagState struct {
	Year         int     `json:"year"`
	Inflation    float64 `json:"inflation"`
	Unemployment float64 `json:"unemployment"`
	GDPGrowth    float64 `json:"gdp_growth"`
}

// LagStateOf extracts the lag state from a master record.
func LagStateOf(r MasterRecord) LagState {
	return LagState{
		Year:         r.Year,
		Inflation:    r.Inflation,
		Unemployment: r.Unemployment,
		GDPGrowth:    r.GDPGrowth,
	}
}
