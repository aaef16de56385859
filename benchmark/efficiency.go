package benchmark

import (
	"context"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/rotation/logging"
	"go.viam.com/rotation/spatialmath"
	"go.viam.com/rotation/utils"
)

// The timed computation paths, in report order.
const (
	// PathTaitBryanQuaternion computes Tait-Bryan angles through Quaternion values.
	PathTaitBryanQuaternion = "tb_qc"
	// PathTaitBryanArray computes Tait-Bryan angles on quaternion arrays.
	PathTaitBryanArray = "tb_qf"
	// PathTaitBryanMatrix computes the raw matrix angles through rotation matrices.
	PathTaitBryanMatrix = "tb_m"
	// PathDistanceQuaternion computes the distance through Quaternion values.
	PathDistanceQuaternion = "f_qc"
	// PathDistanceArray computes the distance on quaternion arrays.
	PathDistanceArray = "f_qf"
)

// Paths lists every timed path in report order.
var Paths = []string{
	PathTaitBryanQuaternion,
	PathTaitBryanArray,
	PathTaitBryanMatrix,
	PathDistanceQuaternion,
	PathDistanceArray,
}

// sinks keep the compiler from discarding the timed work.
var (
	angleSink    spatialmath.TaitBryanAngles
	rawSink      spatialmath.MatrixAngles
	distanceSink float64
)

type timedPath func(vectors []spatialmath.RotationVector, layout int) error

var timedPaths = map[string]timedPath{
	PathTaitBryanQuaternion: func(vectors []spatialmath.RotationVector, _ int) error {
		for i := 1; i < len(vectors); i++ {
			q1, err := spatialmath.NewQuaternionFromRotationVector(vectors[i-1])
			if err != nil {
				return err
			}
			q2, err := spatialmath.NewQuaternionFromRotationVector(vectors[i])
			if err != nil {
				return err
			}
			angleSink = q1.Difference(q2).TaitBryan()
		}
		return nil
	},
	PathTaitBryanArray: func(vectors []spatialmath.RotationVector, _ int) error {
		for i := 1; i < len(vectors); i++ {
			angles, err := spatialmath.TaitBryanAngleChange(vectors[i-1], vectors[i])
			if err != nil {
				return err
			}
			angleSink = angles
		}
		return nil
	},
	PathTaitBryanMatrix: func(vectors []spatialmath.RotationVector, layout int) error {
		var r1, r2 [spatialmath.Matrix4Len]float64
		previous, current := r1[:layout], r2[:layout]
		for i := 1; i < len(vectors); i++ {
			if err := spatialmath.RotationMatrixFromVector(previous, vectors[i-1]); err != nil {
				return err
			}
			if err := spatialmath.RotationMatrixFromVector(current, vectors[i]); err != nil {
				return err
			}
			raw, err := spatialmath.AngleChange(current, previous)
			if err != nil {
				return err
			}
			rawSink = raw
		}
		return nil
	},
	PathDistanceQuaternion: func(vectors []spatialmath.RotationVector, _ int) error {
		for i := 1; i < len(vectors); i++ {
			q1, err := spatialmath.NewQuaternionFromRotationVector(vectors[i-1])
			if err != nil {
				return err
			}
			q2, err := spatialmath.NewQuaternionFromRotationVector(vectors[i])
			if err != nil {
				return err
			}
			distanceSink = q1.Distance(q2)
		}
		return nil
	},
	PathDistanceArray: func(vectors []spatialmath.RotationVector, _ int) error {
		for i := 1; i < len(vectors); i++ {
			d, err := spatialmath.DistanceChange(vectors[i-1], vectors[i])
			if err != nil {
				return err
			}
			distanceSink = d
		}
		return nil
	},
}

// Run holds the timings of one repeat at one size. Durations is indexed like Paths.
type Run struct {
	Size      int             `json:"size"`
	Repeat    int             `json:"repeat"`
	Durations []time.Duration `json:"durations"`
}

// PathSummary aggregates the repeats of one path at one size.
type PathSummary struct {
	Size   int           `json:"size"`
	Path   string        `json:"path"`
	Mean   time.Duration `json:"mean"`
	Median time.Duration `json:"median"`
	StdDev time.Duration `json:"std_dev"`
}

// Efficiency times every path in Paths over freshly generated vectors, cfg.Repeats times for each
// of cfg.Sizes. Vectors come from GenerateVectors seeded with cfg.Seed. Time is read from clk.
func Efficiency(ctx context.Context, cfg Config, clk clock.Clock, logger logging.Logger) ([]Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src := NewSource(cfg.Seed)
	runs := make([]Run, 0, len(cfg.Sizes)*cfg.Repeats)
	for _, size := range cfg.Sizes {
		stop := utils.SlowLogger(ctx, clk, "efficiency benchmark still running", "size", strconv.Itoa(size), logger)
		for repeat := 0; repeat < cfg.Repeats; repeat++ {
			run, err := timeRun(ctx, clk, GenerateVectors(size, src), cfg.Layout)
			if err != nil {
				stop()
				return nil, errors.Wrapf(err, "size %d repeat %d", size, repeat)
			}
			run.Size = size
			run.Repeat = repeat
			logger.Debugw("timed run", "size", size, "repeat", repeat, "durations", run.Durations)
			runs = append(runs, run)
		}
		stop()
		logger.Infow("finished size", "size", size, "repeats", cfg.Repeats)
	}
	return runs, nil
}

func timeRun(ctx context.Context, clk clock.Clock, vectors []spatialmath.RotationVector, layout int) (Run, error) {
	run := Run{Durations: make([]time.Duration, len(Paths))}
	for i, name := range Paths {
		if err := ctx.Err(); err != nil {
			return Run{}, err
		}
		start := clk.Now()
		if err := timedPaths[name](vectors, layout); err != nil {
			return Run{}, errors.Wrap(err, name)
		}
		run.Durations[i] = clk.Since(start)
	}
	return run, nil
}

// Summarize returns the mean, median and standard deviation of every path at every size, in the
// order the sizes first appear in runs.
func Summarize(runs []Run) ([]PathSummary, error) {
	var sizes []int
	samples := map[int][][]float64{}
	for _, run := range runs {
		if len(run.Durations) != len(Paths) {
			return nil, utils.NewInvalidLengthError("run durations", len(run.Durations), len(Paths))
		}
		bySize, ok := samples[run.Size]
		if !ok {
			sizes = append(sizes, run.Size)
			bySize = make([][]float64, len(Paths))
		}
		for i, d := range run.Durations {
			bySize[i] = append(bySize[i], float64(d))
		}
		samples[run.Size] = bySize
	}

	summaries := make([]PathSummary, 0, len(sizes)*len(Paths))
	for _, size := range sizes {
		for i, path := range Paths {
			data := stats.Float64Data(samples[size][i])
			mean, err := data.Mean()
			median, err2 := data.Median()
			stdDev, err3 := data.StandardDeviation()
			if err := multierr.Combine(err, err2, err3); err != nil {
				return nil, errors.Wrapf(err, "summarizing %s at size %d", path, size)
			}
			summaries = append(summaries, PathSummary{
				Size:   size,
				Path:   path,
				Mean:   time.Duration(mean),
				Median: time.Duration(median),
				StdDev: time.Duration(stdDev),
			})
		}
	}
	return summaries, nil
}
