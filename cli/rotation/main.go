// Package main is the rotation command itself.
package main

import (
	"os"

	"go.viam.com/rotation/cli"
	"go.viam.com/rotation/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("rotation").Fatalw("rotation failed", "error", err)
	}
}
