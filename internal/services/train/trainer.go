package train

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"MacroSim/internal/domain/models"
)

// ErrInsufficientSamples means the training set is underdetermined: fewer
// rows than feature dimensions plus one.
var ErrInsufficientSamples = errors.New("insufficient training samples")

// Trainer fits one standardized ridge regression per target indicator.
// The regularization strength is a fixed hyperparameter; it is never
// re-derived from data. For fixed data and alpha the fit is the unique
// convex optimum, so training is fully reproducible.
type Trainer struct {
	alpha float64
}

// New creates a trainer with the given L2 regularization strength.
func New(alpha float64) *Trainer {
	return &Trainer{alpha: alpha}
}

// Fit trains one model for the given target. It fits the per-column
// standardization on the training set, then solves the ridge normal
// equations on the standardized features:
//
//	w = (ZᵀZ + αI)⁻¹ Zᵀ (y - ȳ)
//
// with the intercept left unpenalized (it equals ȳ because the
// standardized columns are mean-zero). The lever and its own lagged value
// tend to be collinear over the historical sample; the α ridge keeps the
// coefficients stable under that collinearity.
func (t *Trainer) Fit(target models.Indicator, samples []models.Sample) (models.FittedModel, error) {
	if !target.IsTarget() {
		return models.FittedModel{}, fmt.Errorf("train: %q is not a modeled target", target)
	}
	n := len(samples)
	p := models.NumFeatures
	if n < p+1 {
		return models.FittedModel{}, fmt.Errorf("%w: target %s has %d rows, need at least %d",
			ErrInsufficientSamples, target, n, p+1)
	}

	x := make([][]float64, n)
	y := make([]float64, n)
	for i, s := range samples {
		x[i] = s.Features.Slice()
		y[i] = s.Targets.Value(target)
	}

	means, stds := fitStandardizer(x)

	// Standardized design matrix.
	z := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			z.Set(i, j, (x[i][j]-means[j])/stds[j])
		}
	}

	yMean := 0.0
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(n)
	yc := mat.NewVecDense(n, nil)
	for i, v := range y {
		yc.SetVec(i, v-yMean)
	}

	var ztz mat.Dense
	ztz.Mul(z.T(), z)
	for j := 0; j < p; j++ {
		ztz.Set(j, j, ztz.At(j, j)+t.alpha)
	}
	var zty mat.VecDense
	zty.MulVec(z.T(), yc)

	var w mat.VecDense
	if err := w.SolveVec(&ztz, &zty); err != nil {
		return models.FittedModel{}, fmt.Errorf("train %s: solve normal equations: %w", target, err)
	}

	m := models.FittedModel{
		Target:    target,
		Means:     means,
		Stds:      stds,
		Weights:   make([]float64, p),
		Intercept: yMean,
		Alpha:     t.alpha,
		TrainedAt: time.Now().UTC(),
	}
	for j := 0; j < p; j++ {
		m.Weights[j] = w.AtVec(j)
	}
	return m, nil
}

// fitStandardizer computes the per-column sample mean and standard
// deviation of the training set only. A zero-variance column gets std 1
// so its standardized values collapse to exactly 0 instead of NaN.
func fitStandardizer(x [][]float64) (means, stds []float64) {
	n := len(x)
	p := models.NumFeatures
	means = make([]float64, p)
	stds = make([]float64, p)
	for j := 0; j < p; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += x[i][j]
		}
		means[j] = sum / float64(n)

		ss := 0.0
		for i := 0; i < n; i++ {
			d := x[i][j] - means[j]
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(n-1))
		if sd == 0 {
			sd = 1
		}
		stds[j] = sd
	}
	return means, stds
}
