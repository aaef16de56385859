// Package cli contains the rotation command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"go.viam.com/rotation/benchmark"
	"go.viam.com/rotation/logging"
)

const (
	// Flags.
	configFlag    = "config"
	debugFlag     = "debug"
	layoutFlag    = "layout"
	seedFlag      = "seed"
	datasetFlag   = "dataset"
	rawFlag       = "raw"
	sizesFlag     = "sizes"
	repeatsFlag   = "repeats"
	countFlag     = "count"
	toleranceFlag = "tolerance"
	logFileFlag   = "log-file"
	plotFlag      = "plot"
	histogramFlag = "histogram"
	intervalFlag  = "interval"
	bagFlag       = "bag"
	topicFlag     = "topic"
)

var app = &cli.App{
	Name:            "rotation",
	Usage:           "compare ways of differencing 3D orientations",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:      configFlag,
			Aliases:   []string{"c"},
			Usage:     "load benchmark configuration from json5 `FILE`",
			TakesFile: true,
		},
		&cli.BoolFlag{
			Name:    debugFlag,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.StringFlag{
			Name:      logFileFlag,
			Usage:     "also write logs to `FILE`, rotated when it grows large",
			TakesFile: true,
		},
		&cli.IntFlag{
			Name:        layoutFlag,
			Usage:       "rotation matrix buffer length, 9 or 16",
			DefaultText: "16",
		},
		&cli.Uint64Flag{
			Name:        seedFlag,
			Usage:       "seed of the random vector generators",
			DefaultText: "1",
		},
	},
	Before: func(c *cli.Context) error {
		if c.Bool(debugFlag) {
			logging.GlobalLogLevel.SetLevel(zap.DebugLevel)
		}
		return nil
	},
	Commands: []*cli.Command{
		{
			Name:  "walk",
			Usage: "print the change between consecutive orientations of a sequence",
			Description: `Walk the recorded sensor sequence, or the json5 array of rotation vectors given
with --dataset, and print the Tait-Bryan angles and distance every strategy computes for each pair,
along with the angular rate between the pair.`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:      datasetFlag,
					Usage:     "json5 `FILE` holding an array of rotation vectors",
					TakesFile: true,
				},
				&cli.BoolFlag{
					Name:  rawFlag,
					Usage: "also print the raw matrix path angles",
				},
				&cli.StringFlag{
					Name:      bagFlag,
					Usage:     "ROS `BAG` to walk the sensor_msgs/Imu orientations of, instead of a dataset",
					TakesFile: true,
				},
				&cli.StringFlag{
					Name:  topicFlag,
					Usage: "IMU topic to read from --bag",
					Value: benchmark.DefaultIMUTopic,
				},
				&cli.Float64Flag{
					Name:  intervalFlag,
					Usage: "`SECONDS` between consecutive vectors, used for the rate column; defaults to the bag's message spacing",
				},
			},
			Action: WalkAction,
		},
		{
			Name:  "efficiency",
			Usage: "time every computation path over random vectors",
			Flags: []cli.Flag{
				&cli.IntSliceFlag{
					Name:  sizesFlag,
					Usage: "numbers of vectors to time",
				},
				&cli.IntFlag{
					Name:  repeatsFlag,
					Usage: "times to repeat each size",
				},
				&cli.StringFlag{
					Name:      plotFlag,
					Usage:     "save a chart of the mean times to `FILE` (png, svg or pdf)",
					TakesFile: true,
				},
			},
			Action: EfficiencyAction,
		},
		{
			Name:   "accuracy",
			Usage:  "check every strategy against rotations with known answers",
			Action: AccuracyAction,
		},
		{
			Name:  "consistency",
			Usage: "check that every strategy agrees on random orientations",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  countFlag,
					Usage: "number of random orientations",
				},
				&cli.Float64Flag{
					Name:  toleranceFlag,
					Usage: "largest accepted disagreement in radians",
				},
				&cli.IntFlag{
					Name:  histogramFlag,
					Usage: "print a histogram with this many bins of each strategy's disagreement",
				},
			},
			Action: ConsistencyAction,
		},
		{
			Name:   "version",
			Usage:  "print version info for this program",
			Action: VersionAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
