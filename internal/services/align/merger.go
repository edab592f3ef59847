package align

import (
	"errors"
	"fmt"
	"sort"

	"MacroSim/internal/domain/models"
)

// ErrEmptyIntersection means zero years survived the join. Fatal to a
// training run: there would be no training data at all.
var ErrEmptyIntersection = errors.New("empty year intersection")

// Inputs are the four required annual series entering the join.
type Inputs struct {
	LendingRate  models.AnnualSeries
	Inflation    models.AnnualSeries
	Unemployment models.AnnualSeries
	GDPGrowth    models.AnnualSeries
}

// Merge inner-joins the required series on the year key and returns the
// master record table in ascending year order. Years missing from any
// series are dropped silently: a partial year would bias downstream lag
// construction, so it never reaches the table.
func Merge(in Inputs) ([]models.MasterRecord, error) {
	required := []models.AnnualSeries{in.LendingRate, in.Inflation, in.Unemployment, in.GDPGrowth}
	for _, s := range required {
		if s.Len() == 0 {
			return nil, fmt.Errorf("%w: series %s/%s is empty", ErrEmptyIntersection, s.Source, s.Indicator)
		}
	}

	years := make([]int, 0, in.LendingRate.Len())
	for _, y := range in.LendingRate.Years() {
		if _, ok := in.Inflation.Value(y); !ok {
			continue
		}
		if _, ok := in.Unemployment.Value(y); !ok {
			continue
		}
		if _, ok := in.GDPGrowth.Value(y); !ok {
			continue
		}
		years = append(years, y)
	}
	if len(years) == 0 {
		return nil, ErrEmptyIntersection
	}
	sort.Ints(years)

	out := make([]models.MasterRecord, 0, len(years))
	for _, y := range years {
		rate, _ := in.LendingRate.Value(y)
		inf, _ := in.Inflation.Value(y)
		unemp, _ := in.Unemployment.Value(y)
		growth, _ := in.GDPGrowth.Value(y)
		out = append(out, models.MasterRecord{
			Year:         y,
			LendingRate:  rate,
			Inflation:    inf,
			Unemployment: unemp,
			GDPGrowth:    growth,
		})
	}
	return out, nil
}
