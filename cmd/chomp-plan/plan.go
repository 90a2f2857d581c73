package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"golang.org/x/sync/errgroup"

	"go.viam.com/chomp/logging"
	"go.viam.com/chomp/motionplan"
	"go.viam.com/chomp/motionplan/chomp"
	"go.viam.com/chomp/referenceframe"
)

type planJob struct {
	file string
	req  *motionplan.MotionRequest
}

// planOutcome holds every attempt at one request, in order.
type planOutcome struct {
	planJob
	responses []*chomp.MotionResponse
	err       error
}

func (o planOutcome) last() *chomp.MotionResponse {
	if len(o.responses) == 0 {
		return nil
	}
	return o.responses[len(o.responses)-1]
}

func (o planOutcome) name() string {
	return strings.TrimSuffix(filepath.Base(o.file), filepath.Ext(o.file))
}

func planAction(c *cli.Context, logger logging.Logger) error {
	if c.Path(flagModel) == "" {
		return errors.Errorf("--%s is required", flagModel)
	}
	if c.Args().Len() == 0 {
		return errors.New("need at least one request file")
	}

	scene, err := loadScene(c.Path(flagModel), c.Path(flagSRDF), c.Path(flagObstacles))
	if err != nil {
		return err
	}
	logger.Debugw("loaded model", "model", scene.Model().Name(), "groups", scene.Model().GroupNames())

	params := chomp.NewBasicParameters()
	if path := c.Path(flagParams); path != "" {
		if params, err = chomp.ReadParametersFile(path); err != nil {
			return err
		}
	}
	if err := params.Validate(); err != nil {
		return err
	}

	jobs, err := loadRequests(c.Args().Slice())
	if err != nil {
		return err
	}
	logger.Infof("planning %d request(s), %d at a time", len(jobs), c.Int(flagParallel))

	planner := chomp.NewPlanner(logger.Sublogger("planner"), nil)
	outcomes, err := planAll(c.Context, planner, scene, params, jobs, c.Int(flagParallel), c.Int(flagLoop))
	if err != nil {
		return err
	}

	w := c.App.Writer
	//nolint:errcheck
	fmt.Fprintln(w, summaryTable(outcomes))
	if c.Int(flagLoop) > 1 {
		table, err := timingTable(outcomes)
		if err != nil {
			return err
		}
		//nolint:errcheck
		fmt.Fprintln(w, table)
		if err := timingHistogram(w, outcomes); err != nil {
			return err
		}
	}

	failed := 0
	for _, o := range outcomes {
		resp := o.last()
		if resp == nil || resp.ErrorCode != chomp.Success {
			failed++
			continue
		}
		if c.Bool(flagWaypoints) {
			//nolint:errcheck
			fmt.Fprintln(w, waypointTable(resp, params.TrajectoryDiscretization))
		}
		if c.Bool(flagPlot) {
			path := filepath.Join(c.Path(flagOut), o.name()+".png")
			if err := plotTrajectory(path, o.name(), resp, params.TrajectoryDiscretization); err != nil {
				return err
			}
			logger.Infof("wrote %s", path)
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d request(s) failed", failed, len(outcomes))
	}
	return nil
}

func loadScene(modelFile, srdfFile, obstaclesFile string) (*motionplan.PlanningScene, error) {
	model, err := referenceframe.ParseModelFile(modelFile, "")
	if err != nil {
		return nil, err
	}
	if srdfFile != "" {
		if err := referenceframe.AddSRDFGroupsFromFile(model, srdfFile); err != nil {
			return nil, err
		}
	}
	scene := motionplan.NewPlanningScene(model)
	if obstaclesFile == "" {
		return scene, nil
	}

	var obstacles []motionplan.JointSpaceObstacle
	if err := readJSON5(obstaclesFile, &obstacles); err != nil {
		return nil, err
	}
	if err := scene.AddObstacles(obstacles...); err != nil {
		return nil, err
	}
	return scene, nil
}

func loadRequests(files []string) ([]planJob, error) {
	jobs := make([]planJob, 0, len(files))
	for _, file := range files {
		req := &motionplan.MotionRequest{}
		if err := readJSON5(file, req); err != nil {
			return nil, err
		}
		jobs = append(jobs, planJob{file: file, req: req})
	}
	return jobs, nil
}

func readJSON5(filename string, into interface{}) error {
	//nolint:gosec
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := json5.Unmarshal(data, into); err != nil {
		return errors.Wrapf(err, "cannot parse %q", filename)
	}
	return nil
}

// planAll plans every job loop times, running up to parallel jobs at once against the shared scene.
// Planning failures are recorded in the outcomes; only cancellation stops the run.
func planAll(
	ctx context.Context,
	planner *chomp.Planner,
	scene motionplan.Scene,
	params *chomp.PlanningParameters,
	jobs []planJob,
	parallel, loop int,
) ([]planOutcome, error) {
	if parallel < 1 {
		parallel = 1
	}
	if loop < 1 {
		loop = 1
	}

	outcomes := make([]planOutcome, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			outcome := planOutcome{planJob: job}
			for n := 0; n < loop; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				resp, err := planner.Solve(ctx, scene, job.req, params)
				outcome.responses = append(outcome.responses, resp)
				outcome.err = err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func schemaAction(c *cli.Context) error {
	schema := jsonschema.Reflect(&motionplan.MotionRequest{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	//nolint:errcheck
	fmt.Fprintln(c.App.Writer, string(data))
	return nil
}
