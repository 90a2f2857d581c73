// Package main plans joint-space motion requests read from files.
package main

import (
	"io"
	"log"
	"os"
	"runtime"

	"github.com/urfave/cli/v2"

	"go.viam.com/chomp/logging"
	"go.viam.com/chomp/utils"
)

const (
	// Flags.
	flagModel     = "model"
	flagSRDF      = "srdf"
	flagParams    = "params"
	flagObstacles = "obstacles"
	flagLoop      = "loop"
	flagParallel  = "parallel"
	flagPlot      = "plot"
	flagOut       = "out"
	flagWaypoints = "waypoints"
	flagVerbose   = "verbose"
)

var defaultParallel = utils.MaxInt(runtime.NumCPU()/2, 1)

func init() {
	defaultParallel = utils.GetenvInt("CHOMP_NUM_THREADS", defaultParallel)
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "chomp-plan",
		Usage:     "seed and check joint-space trajectories for motion request files",
		ArgsUsage: "<request.json> [request.json...]",
		Writer:    out,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  flagModel,
				Usage: "kinematic model, .urdf or .json (required)",
			},
			&cli.PathFlag{
				Name:  flagSRDF,
				Usage: "SRDF file defining joint groups",
			},
			&cli.PathFlag{
				Name:  flagParams,
				Usage: "JSON5 planning parameters; unrecognized keys go to the optimizer",
			},
			&cli.PathFlag{
				Name:  flagObstacles,
				Usage: "JSON5 list of joint-space obstacles",
			},
			&cli.IntFlag{
				Name:  flagLoop,
				Value: 1,
				Usage: "plan each request this many times and report timing statistics",
			},
			&cli.IntFlag{
				Name:    flagParallel,
				Value:   defaultParallel,
				EnvVars: []string{"CHOMP_NUM_THREADS"},
				Usage:   "number of requests planned at once",
			},
			&cli.BoolFlag{
				Name:  flagPlot,
				Usage: "draw joint positions over time for every successful plan",
			},
			&cli.PathFlag{
				Name:  flagOut,
				Value: ".",
				Usage: "directory plots are written to",
			},
			&cli.BoolFlag{
				Name:  flagWaypoints,
				Usage: "print every waypoint of successful plans",
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "log debug output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "print the JSON schema of request files",
				Action: schemaAction,
			},
		},
		Action: func(c *cli.Context) error {
			logger := logging.NewLogger("chomp-plan")
			if c.Bool(flagVerbose) {
				logger.SetLevel(logging.DEBUG)
			}
			return planAction(c, logger)
		},
	}
}
