// Package bootstrap implements the bias-corrected and accelerated (BCa)
// percentile bootstrap. The battery applies it twice to the per-block
// entropy estimates: at the entropy level with the mean as statistic and,
// when enough blocks are available, at the parameter level with the
// minimum as statistic. Raw samples are not resampled and the estimators
// are not re-run per round. Resampling rounds run concurrently on a worker
// pool, since each round is independent given its own RNG sub-stream.
package bootstrap

import (
	"math"
	"sort"

	"github.com/JekaMas/workerpool"

	"github.com/larkspur-labs/minentropy/pkg/numkit"
	"github.com/larkspur-labs/minentropy/pkg/rng"
)

// Config controls a BCa bootstrap run.
type Config struct {
	Rounds      int     // number of bootstrap resamples
	Confidence  float64 // e.g. 0.99 for a 99% confidence bound
	ThreadCount int     // worker-pool size for resampling
	Seed        uint64
}

// DefaultConfig matches the battery's default bootstrap parameters.
func DefaultConfig() Config {
	return Config{
		Rounds:      15000,
		Confidence:  0.99,
		ThreadCount: defaultThreadCount(),
	}
}

func defaultThreadCount() int {
	// mirrors the battery's "ceil(1.3 * logical CPUs)" default; callers
	// that know runtime.NumCPU() should override ThreadCount directly.
	return 4
}

// Result is the outcome of a BCa bootstrap: the point estimate, the
// one-sided lower confidence bound at Config.Confidence, and the full
// sorted resample distribution (kept for diagnostics/reporting).
type Result struct {
	PointEstimate float64
	LowerBound    float64
	Resamples     []float64
}

// Run performs a BCa bootstrap over n observations, each resampled
// in parallel by drawing n indices with replacement (via the sub-stream
// assigned to that round) and applying statistic to the resulting sample.
// original is the full observed sample, and statistic reduces any
// resampled subset of it to a scalar (e.g. the mean block entropy).
func Run(cfg Config, original []float64, statistic func([]float64) float64, seed uint64) Result {
	n := len(original)
	if n == 0 {
		return Result{}
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultConfig().Rounds
	}
	if cfg.ThreadCount <= 0 {
		cfg.ThreadCount = DefaultConfig().ThreadCount
	}
	if cfg.Confidence <= 0 || cfg.Confidence >= 1 {
		cfg.Confidence = 0.99
	}

	root := rng.NewStream(seed)
	streams := root.Split(cfg.Rounds)

	pointEstimate := statistic(original)

	resamples := make([]float64, cfg.Rounds)
	wp := workerpool.New(cfg.ThreadCount)
	for i := 0; i < cfg.Rounds; i++ {
		i := i
		wp.Submit(func() {
			resamples[i] = resampleOnce(streams[i], original, statistic)
		})
	}
	wp.StopWait()

	sorted := append([]float64(nil), resamples...)
	sort.Float64s(sorted)

	z0 := biasCorrection(sorted, pointEstimate)
	accel := acceleration(original, statistic)

	alpha := 1 - cfg.Confidence
	lower := bcaPercentile(sorted, z0, accel, alpha)

	return Result{
		PointEstimate: pointEstimate,
		LowerBound:    lower,
		Resamples:     sorted,
	}
}

func resampleOnce(s *rng.Stream, original []float64, statistic func([]float64) float64) float64 {
	n := len(original)
	sample := make([]float64, n)
	for j := 0; j < n; j++ {
		sample[j] = original[s.IntN(n)]
	}
	return statistic(sample)
}

// biasCorrection computes z0, the proportion of bootstrap resamples below
// the original point estimate, expressed as a standard-normal quantile.
func biasCorrection(sorted []float64, pointEstimate float64) float64 {
	below := 0
	for _, v := range sorted {
		if v < pointEstimate {
			below++
		}
	}
	n := float64(len(sorted))
	prop := float64(below) / n
	if prop <= 0 {
		prop = 1 / (2 * n)
	}
	if prop >= 1 {
		prop = 1 - 1/(2*n)
	}
	return standardNormalQuantile(prop)
}

// acceleration estimates the BCa acceleration constant via the jackknife
// (leave-one-out) skewness of statistic over original.
func acceleration(original []float64, statistic func([]float64) float64) float64 {
	n := len(original)
	if n < 2 {
		return 0
	}
	jk := make([]float64, n)
	leaveOneOut := make([]float64, n-1)
	for i := 0; i < n; i++ {
		k := 0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			leaveOneOut[k] = original[j]
			k++
		}
		jk[i] = statistic(leaveOneOut)
	}

	mean := numkit.Mean(jk)
	var num, den numkit.CompensatedAccumulator
	for _, v := range jk {
		d := mean - v
		num.Add(d * d * d)
		den.Add(d * d)
	}
	denom := den.Sum()
	if denom == 0 {
		return 0
	}
	denomPow := math.Pow(denom, 1.5)
	if denomPow == 0 {
		return 0
	}
	return num.Sum() / (6 * denomPow)
}

// bcaPercentile computes the BCa-adjusted one-sided percentile of the
// bootstrap distribution corresponding to the nominal alpha level.
func bcaPercentile(sorted []float64, z0, accel, alpha float64) float64 {
	zAlpha := standardNormalQuantile(alpha)
	adjusted := z0 + (z0+zAlpha)/(1-accel*(z0+zAlpha))
	p := standardNormalCDF(adjusted)
	return numkit.SortedPercentile(sorted, p)
}

// standardNormalQuantile inverts the standard normal CDF via Acklam's
// rational approximation, accurate to about 1e-9.
func standardNormalQuantile(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	if p >= 1 {
		return math.Inf(1)
	}
	// Acklam's algorithm coefficients.
	a := []float64{-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02, 1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00}
	b := []float64{-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02, 6.680131188771972e+01, -1.328068155288572e+01}
	c := []float64{-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00, -2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00}
	d := []float64{7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00, 3.754408661907416e+00}

	const pLow = 0.02425
	switch {
	case p < pLow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p > 1-pLow:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	default:
		q := p - 0.5
		r := q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	}
}

// standardNormalCDF is Phi(x) via math.Erf.
func standardNormalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
