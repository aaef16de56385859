package benchmark

import (
	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/multierr"

	"go.viam.com/rotation/logging"
	"go.viam.com/rotation/spatialmath"
)

// Config controls the benchmarks. Files are json5 and only need the fields they override.
type Config struct {
	// Sizes are the numbers of vectors the efficiency benchmark runs with.
	Sizes []int `json:"sizes"`
	// Repeats is how many times each size is timed.
	Repeats int `json:"repeats"`
	// Seed seeds every random vector generator.
	Seed uint64 `json:"seed"`
	// Layout is the rotation matrix buffer length, 9 or 16.
	Layout int `json:"layout"`
	// Tolerance is the largest disagreement, in radians, the consistency sweep accepts.
	Tolerance float64 `json:"tolerance"`
	// ConsistencyCount is how many random orientations the consistency sweep generates.
	ConsistencyCount int `json:"consistency_count"`
	// SampleInterval is the time in seconds between consecutive vectors of a walked dataset. The
	// default of 1 makes walk rates radians per sample.
	SampleInterval float64 `json:"sample_interval"`
	// LogLevels sets the levels of the per command loggers, e.g. {pattern: "rotation.walk", level: "debug"}.
	LogLevels []logging.LoggerPatternConfig `json:"log_levels"`
}

// DefaultConfig returns the configuration of the classic run: ten sizes from 100000 to 1000000
// vectors, each timed ten times.
func DefaultConfig() Config {
	sizes := make([]int, 10)
	for i := range sizes {
		sizes[i] = (i + 1) * 100000
	}
	return Config{
		Sizes:            sizes,
		Repeats:          10,
		Seed:             1,
		Layout:           spatialmath.Matrix4Len,
		Tolerance:        1e-6,
		ConsistencyCount: 10000,
		SampleInterval:   1,
	}
}

// ParseConfig decodes json5 data over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadConfig reads and parses the config file at path. References to environment variables such as
// ${ROTATION_SEED} are substituted before parsing.
func ReadConfig(path string) (Config, error) {
	data, err := envsubst.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %q", path)
	}
	return ParseConfig(data)
}

// Validate returns every problem with the config at once.
func (cfg Config) Validate() error {
	var errs error
	if len(cfg.Sizes) == 0 {
		errs = multierr.Append(errs, errors.New("sizes must not be empty"))
	}
	for i, size := range cfg.Sizes {
		if size < 2 {
			errs = multierr.Append(errs, errors.Errorf("sizes[%d] must be at least 2 but is %d", i, size))
		}
	}
	if cfg.Repeats < 1 {
		errs = multierr.Append(errs, errors.Errorf("repeats must be at least 1 but is %d", cfg.Repeats))
	}
	if cfg.Layout != spatialmath.Matrix3Len && cfg.Layout != spatialmath.Matrix4Len {
		errs = multierr.Append(errs, errors.Errorf("layout must be %d or %d but is %d",
			spatialmath.Matrix3Len, spatialmath.Matrix4Len, cfg.Layout))
	}
	if cfg.Tolerance <= 0 {
		errs = multierr.Append(errs, errors.Errorf("tolerance must be positive but is %v", cfg.Tolerance))
	}
	if cfg.ConsistencyCount < 2 {
		errs = multierr.Append(errs, errors.Errorf("consistency_count must be at least 2 but is %d", cfg.ConsistencyCount))
	}
	if cfg.SampleInterval <= 0 {
		errs = multierr.Append(errs, errors.Errorf("sample_interval must be positive but is %v", cfg.SampleInterval))
	}
	for i, lpc := range cfg.LogLevels {
		if _, err := logging.LevelFromString(lpc.Level); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "log_levels[%d]", i))
		}
	}
	return errs
}
