// Package battery implements the orchestrator (C11): for each block, run
// translate then every estimator, record the block result, and after all
// blocks are processed run the entropy-level bootstrap (and, if enough
// blocks are available and configured, the parameter-level bootstrap).
// The final reported min-entropy is the minimum across every estimator
// output in every block, clipped to [0, bitWidth].
package battery

import (
	"fmt"
	"math"
	"time"

	"github.com/larkspur-labs/minentropy/pkg/bootstrap"
	"github.com/larkspur-labs/minentropy/pkg/estimator"
	"github.com/larkspur-labs/minentropy/pkg/healthtest"
	"github.com/larkspur-labs/minentropy/pkg/metrics"
	"github.com/larkspur-labs/minentropy/pkg/predictor"
	"github.com/larkspur-labs/minentropy/pkg/sample"
)

// minParameterBootstrapBlocks is the smallest block count at which the
// parameter-level bootstrap is statistically meaningful.
const minParameterBootstrapBlocks = 200

// Run drives the full battery over raw (already-translated-to-uint16)
// samples, splitting them into blocks of cfg.BlockSize (or treating the
// whole input as one block when BlockSize <= 0), and returns the
// aggregated Result.
func Run(cfg Config, samples []uint16, bitWidth int, reg *metrics.Registry) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("%w: empty sample sequence", ErrInputMalformed)
	}
	if cfg.BootstrapParams {
		blocks := blockCount(len(samples), cfg.BlockSize)
		if blocks < minParameterBootstrapBlocks {
			return Result{}, fmt.Errorf("%w: parameter-level bootstrap requires >= %d blocks, got %d",
				ErrUnsupported, minParameterBootstrapBlocks, blocks)
		}
	}

	started := time.Now()
	result := NewResult(started)
	result.BitWidth = bitWidth

	blockSize := cfg.BlockSize
	if blockSize <= 0 {
		blockSize = len(samples)
	}

	for start := 0; start < len(samples); start += blockSize {
		end := start + blockSize
		if end > len(samples) {
			end = len(samples)
		}
		block := append([]uint16(nil), samples[start:end]...)
		blockStarted := time.Now()
		br, err := runBlock(cfg, block)
		if err != nil {
			return Result{}, err
		}
		result.Blocks = append(result.Blocks, br)
		if reg != nil {
			reg.ObserveBlock(br.MinEntropy)
			reg.ObserveBlockDuration(time.Since(blockStarted))
		}
	}

	entropies := make([]float64, len(result.Blocks))
	for i, br := range result.Blocks {
		entropies[i] = br.MinEntropy
	}

	bcaCfg := bootstrap.Config{
		Rounds:      cfg.BootstrapRounds,
		Confidence:  cfg.BootstrapConfidence,
		ThreadCount: cfg.ThreadCount,
	}
	seed := cfg.Seed
	entropyLevel := bootstrap.Run(bcaCfg, entropies, mean, seed)
	result.EntropyLevelLowerBound = entropyLevel.LowerBound

	if cfg.BootstrapParams && len(result.Blocks) >= minParameterBootstrapBlocks {
		paramLevel := bootstrap.Run(bcaCfg, entropies, minStat, seed+1)
		result.ParameterLevelLowerBound = paramLevel.LowerBound
		result.ParameterLevelRun = true
	}

	overall := entropyLevel.LowerBound
	if result.ParameterLevelRun && result.ParameterLevelLowerBound < overall {
		overall = result.ParameterLevelLowerBound
	}
	for _, br := range result.Blocks {
		if br.MinEntropy < overall {
			overall = br.MinEntropy
		}
	}
	result.AssessedMinEntropy = clip(overall, 0, float64(bitWidth))

	runHealthTests(cfg, samples, result.AssessedMinEntropy, &result)
	if reg != nil {
		reg.ObserveHealthTests(result.RCT.Failed, result.APT.Failed, result.CrossRCT.Failed)
	}

	result.Duration = time.Since(started)
	return result, nil
}

func runBlock(cfg Config, block []uint16) (BlockResult, error) {
	translateResult := sample.Translate(block)
	k := translateResult.K
	if k == 0 {
		return BlockResult{}, fmt.Errorf("%w: empty block after translation", ErrInputMalformed)
	}

	br := BlockResult{K: k, Length: len(block)}
	br.MCV = estimator.MCV(block, k)
	br.Collision = estimator.Collision(block, k)
	br.Compression = estimator.Compression(block)
	br.SuffixGroup = estimator.TTupleAndLRS(block)

	bitsPerSymbol := sample.BitsPerSymbol(k)
	bits := block
	var bitSeq []uint8
	if k <= 2 {
		bitSeq = make([]uint8, len(bits))
		for i, v := range bits {
			bitSeq[i] = uint8(v)
		}
	} else {
		bitSeq = sample.ExpandToBits(block, bitsPerSymbol)
	}
	br.Markov = estimator.Markov(bitSeq)

	mcw := predictor.NewMultiMCW(k)
	br.MultiMCW = predictor.Run(mcw, block, k)

	lag := predictor.NewLag()
	br.Lag = predictor.Run(lag, block, k)

	mmc := predictor.NewMultiMMC(k)
	br.MultiMMC = predictor.Run(mmc, block, k)
	mmc.Close()

	lz := predictor.NewLZ78Y(k)
	br.LZ78Y = predictor.Run(lz, block, k)
	lz.Close()

	br.MinEntropy = minOfMinima(br)
	return br, nil
}

// minOfMinima returns the smallest entropy value among every estimator
// that produced a result for this block.
func minOfMinima(br BlockResult) float64 {
	best := math.Inf(1)
	consider := func(done bool, entropy float64) {
		if done && entropy < best {
			best = entropy
		}
	}
	consider(br.MCV.Done, br.MCV.Entropy)
	consider(br.Collision.Done, br.Collision.Entropy)
	consider(br.Markov.Done, br.Markov.Entropy)
	consider(br.Compression.Done, br.Compression.Entropy)
	consider(br.SuffixGroup.TTupleDone, br.SuffixGroup.TTupleEntropy)
	consider(br.SuffixGroup.LRSDone, br.SuffixGroup.LRSEntropy)
	consider(br.MultiMCW.Done, br.MultiMCW.Entropy)
	consider(br.Lag.Done, br.Lag.Entropy)
	consider(br.MultiMMC.Done, br.MultiMMC.Entropy)
	consider(br.LZ78Y.Done, br.LZ78Y.Entropy)
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}

func runHealthTests(cfg Config, samples []uint16, assessedEntropy float64, result *Result) {
	alpha := cfg.HealthAlpha
	if alpha <= 0 {
		alpha = 1e-6
	}
	window := cfg.APTWindow
	if window <= 1 {
		window = 512
	}
	result.RCT = healthtest.RCT(samples, assessedEntropy, alpha)
	result.APT = healthtest.APT(samples, window, assessedEntropy, alpha)
	result.CrossRCT = healthtest.CrossRCT(samples, assessedEntropy, alpha)
}

func blockCount(total, blockSize int) int {
	if blockSize <= 0 {
		return 1
	}
	return (total + blockSize - 1) / blockSize
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func minStat(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
