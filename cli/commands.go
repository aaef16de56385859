package cli

import (
	"os"
	"runtime/debug"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.viam.com/rotation/benchmark"
	"go.viam.com/rotation/logging"
	"go.viam.com/rotation/spatialmath"
)

// WalkAction prints the change between consecutive vectors of a dataset.
func WalkAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, closeLogger, err := newCommandLogger(c, cfg, "walk")
	if err != nil {
		return err
	}
	defer closeLogger()

	if c.IsSet(datasetFlag) && c.IsSet(bagFlag) {
		return errors.Errorf("--%s and --%s cannot be used together", datasetFlag, bagFlag)
	}
	var vectors []spatialmath.RotationVector
	switch {
	case c.String(datasetFlag) != "":
		path := c.String(datasetFlag)
		//nolint:gosec
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read dataset %q", path)
		}
		vectors, err = benchmark.ParseVectors(data)
		if err != nil {
			return err
		}
	case c.String(bagFlag) != "":
		var interval float64
		vectors, interval, err = benchmark.ReadBagOrientations(c.String(bagFlag), c.String(topicFlag))
		if err != nil {
			return err
		}
		logger.Debugw("read rosbag", "topic", c.String(topicFlag), "messages", len(vectors), "interval", interval)
		if interval > 0 && !c.IsSet(intervalFlag) {
			cfg.SampleInterval = interval
		}
	default:
		vectors, err = benchmark.SampleDataset()
		if err != nil {
			return err
		}
	}

	steps, err := benchmark.Walk(vectors, spatialmath.Strategies(cfg.Layout), cfg.SampleInterval, logger)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", benchmark.WalkTable(steps))
	if c.Bool(rawFlag) {
		printf(c.App.Writer, "%s", benchmark.RawTable(steps))
	}
	return nil
}

// EfficiencyAction times every computation path and prints the summary.
func EfficiencyAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, closeLogger, err := newCommandLogger(c, cfg, "efficiency")
	if err != nil {
		return err
	}
	defer closeLogger()

	if logger.GetLevel() == logging.DEBUG || c.Bool(debugFlag) {
		warningf(c.App.ErrWriter, "debug logging is enabled and will skew the timings")
	}
	runs, err := benchmark.Efficiency(c.Context, cfg, clock.New(), logger)
	if err != nil {
		return err
	}
	summaries, err := benchmark.Summarize(runs)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", benchmark.EfficiencyTable(summaries))
	if path := c.String(plotFlag); path != "" {
		if err := benchmark.SaveEfficiencyPlot(summaries, path); err != nil {
			return err
		}
		logger.Infow("saved efficiency plot", "path", path)
	}
	return nil
}

// AccuracyAction runs the accuracy cases and fails if any result is off by more than the
// configured tolerance.
func AccuracyAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, closeLogger, err := newCommandLogger(c, cfg, "accuracy")
	if err != nil {
		return err
	}
	defer closeLogger()

	results, err := benchmark.Accuracy(cfg.Layout)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", benchmark.AccuracyTable(results))

	var failed int
	for _, r := range results {
		if r.Error > cfg.Tolerance || r.DistanceError > cfg.Tolerance {
			logger.Errorw("inaccurate result", "case", r.Case, "strategy", r.Strategy, "error", r.Error)
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d results exceed tolerance %g", failed, len(results), cfg.Tolerance)
	}
	return nil
}

// ConsistencyAction sweeps random orientations and fails if the strategies disagree.
func ConsistencyAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, closeLogger, err := newCommandLogger(c, cfg, "consistency")
	if err != nil {
		return err
	}
	defer closeLogger()

	vectors := benchmark.GenerateOrientations(cfg.ConsistencyCount, benchmark.NewSource(cfg.Seed))
	logger.Debugw("generated orientations", "count", len(vectors), "seed", cfg.Seed)
	report, err := benchmark.Consistency(c.Context, vectors, spatialmath.Strategies(cfg.Layout), cfg.Tolerance)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", benchmark.ConsistencyTable(report))
	if bins := c.Int(histogramFlag); bins > 0 {
		for _, d := range report.Strategies[1:] {
			hist, err := benchmark.DisagreementHistogram(d, bins, histogramWidth(c.App.Writer))
			if err != nil {
				return err
			}
			printf(c.App.Writer, "%s", hist)
		}
	}
	if !report.OK() {
		return errors.Errorf("strategies disagree by more than %g", cfg.Tolerance)
	}
	return nil
}

// VersionAction prints the version of the module the binary was built from.
func VersionAction(c *cli.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("error reading build info")
	}
	version := info.Main.Version
	if version == "" || version == "(devel)" {
		version = "(dev)"
	}
	printf(c.App.Writer, "version %s go=%s", version, info.GoVersion)
	return nil
}

// loadConfig reads the --config file, or starts from the defaults, and applies flag overrides.
func loadConfig(c *cli.Context) (benchmark.Config, error) {
	cfg := benchmark.DefaultConfig()
	if path := c.String(configFlag); path != "" {
		var err error
		cfg, err = benchmark.ReadConfig(path)
		if err != nil {
			return benchmark.Config{}, err
		}
	}

	if c.IsSet(layoutFlag) {
		cfg.Layout = c.Int(layoutFlag)
	}
	if c.IsSet(seedFlag) {
		cfg.Seed = c.Uint64(seedFlag)
	}
	if c.IsSet(sizesFlag) {
		cfg.Sizes = c.IntSlice(sizesFlag)
	}
	if c.IsSet(repeatsFlag) {
		cfg.Repeats = c.Int(repeatsFlag)
	}
	if c.IsSet(countFlag) {
		cfg.ConsistencyCount = c.Int(countFlag)
	}
	if c.IsSet(toleranceFlag) {
		cfg.Tolerance = c.Float64(toleranceFlag)
	}
	if c.IsSet(intervalFlag) {
		cfg.SampleInterval = c.Float64(intervalFlag)
	}
	if err := cfg.Validate(); err != nil {
		return benchmark.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// newCommandLogger returns the "rotation.<command>" logger writing to the error writer, and to the
// --log-file when given, with levels set from the configured patterns. The returned function
// flushes and closes the log file.
func newCommandLogger(c *cli.Context, cfg benchmark.Config, command string) (logging.Logger, func(), error) {
	root := logging.NewBlankLogger("rotation")
	root.SetLevel(logging.INFO)
	root.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))

	closeLogger := func() {}
	if path := c.String(logFileFlag); path != "" {
		logFile := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    100,
			MaxBackups: 3,
		}
		root.AddAppender(logging.NewWriterAppender(logFile))
		closeLogger = func() {
			goutils.UncheckedError(root.Sync())
			goutils.UncheckedError(logFile.Close())
		}
	}

	registry := logging.NewRegistry()
	logger, err := registry.Sublogger(root, command)
	if err == nil {
		err = registry.UpdateConfig(cfg.LogLevels, root)
	}
	if err != nil {
		closeLogger()
		return nil, nil, err
	}
	return logger, closeLogger, nil
}
