package features

import "MacroSim/internal/domain/models"

// Build constructs the labeled training sequence from the master table.
// One sample per year t where year t-1 is also present: the features take
// the lever at t and the indicators at t-1, the targets take the
// indicators at t. The input must be in ascending year order, as the
// merger produces it. Re-running on the same table yields the same
// samples in the same order.
func Build(master []models.MasterRecord) []models.Sample {
	if len(master) < 2 {
		return nil
	}
	out := make([]models.Sample, 0, len(master)-1)
	for i := 1; i < len(master); i++ {
		cur := master[i]
		prev := master[i-1]
		if prev.Year != cur.Year-1 {
			// A gap in the table: no lag row exists for this year.
			continue
		}
		out = append(out, models.Sample{
			Year: cur.Year,
			Features: models.FeatureVector{
				LendingRate:     cur.LendingRate,
				InflationLag:    prev.Inflation,
				UnemploymentLag: prev.Unemployment,
				GDPGrowthLag:    prev.GDPGrowth,
			},
			Targets: models.TargetValues{
				Inflation:    cur.Inflation,
				Unemployment: cur.Unemployment,
				GDPGrowth:    cur.GDPGrowth,
			},
		})
	}
	return out
}

// LatestLagState returns the lag state for a next-period forecast: the
// last row of the master table.
func LatestLagState(master []models.MasterRecord) (models.LagState, bool) {
	if len(master) == 0 {
		return models.LagState{}, false
	}
	return models.LagStateOf(master[len(master)-1]), true
}
