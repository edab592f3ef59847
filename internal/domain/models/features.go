package models

// NumFeatures is the fixed width of every feature vector.
const NumFeatures = 4

// FeatureVector is the model input for one year t: the exogenous policy
// lever at t and each indicator's realized value at t-1. Current-year
// indicator values must never appear here.
type FeatureVector struct {
	LendingRate     float64
	InflationLag    float64
	UnemploymentLag float64
	GDPGrowthLag    float64
}

// Slice returns the vector in canonical column order. Training and
// inference both go through this, so the order cannot drift.
func (v FeatureVector) Slice() []float64 {
	return []float64{v.LendingRate, v.InflationLag, v.UnemploymentLag, v.GDPGrowthLag}
}

// Features builds the feature vector for a next-period forecast from the
// lag state and a lever value.
func (ls LagState) Features(lever float64) FeatureVector {
	return FeatureVector{
		LendingRate:     lever,
		InflationLag:    ls.Inflation,
		UnemploymentLag: ls.Unemployment,
		GDPGrowthLag:    ls.GDPGrowth,
	}
}

// TargetValues holds the realized target values of one year.
type TargetValues struct {
	Inflation    float64
	Unemployment float64
	GDPGrowth    float64
}

// Value returns the realized value for a target indicator.
func (t TargetValues) Value(i Indicator) float64 {
	switch i {
	case IndicatorInflation:
		return t.Inflation
	case IndicatorUnemployment:
		return t.Unemployment
	case IndicatorGDPGrowth:
		return t.GDPGrowth
	}
	return 0
}

// Sample is one labeled training row: features for year t, targets at t.
type Sample struct {
	Year     int
	Features FeatureVector
	Targets  TargetValues
}
