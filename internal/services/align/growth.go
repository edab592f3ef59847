package align

import "MacroSim/internal/domain/models"

// DeriveGrowth converts a nominal GDP level series into annual growth
// percentages: growth(t) = (gdp(t)/gdp(t-1) - 1) * 100. A year only gets
// a growth value when both it and its predecessor have a positive level,
// so the derived series naturally starts one year later than the input.
func DeriveGrowth(gdp models.AnnualSeries) models.AnnualSeries {
	out := models.AnnualSeries{
		Source:    gdp.Source,
		Indicator: models.IndicatorGDPGrowth,
		Values:    make(map[int]float64, gdp.Len()),
	}
	for _, y := range gdp.Years() {
		cur, _ := gdp.Value(y)
		prev, ok := gdp.Value(y - 1)
		if !ok || prev <= 0 || cur <= 0 {
			continue
		}
		out.Values[y] = (cur/prev - 1) * 100
	}
	return out
}
