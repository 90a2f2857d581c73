package main

import (
	"fmt"
	"io"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"go.viam.com/chomp/motionplan/chomp"
)

// summaryTable prints one row per request with the result of its last attempt.
func summaryTable(outcomes []planOutcome) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Request", "Group", "Status", "Failed stage", "Waypoints", "Joint path length", "Time"})
	for i, o := range outcomes {
		resp := o.last()
		if resp == nil {
			continue
		}
		stage, waypoints, length := "", "", ""
		if resp.ErrorCode == chomp.Success {
			waypoints = fmt.Sprintf("%d", len(resp.Trajectory.Points))
			length = fmt.Sprintf("%.4f", pathLength(resp))
		} else {
			stage = resp.FailedStage.String()
		}
		t.AppendRow(table.Row{
			i + 1,
			o.file,
			resp.GroupName,
			resp.ErrorCode.String(),
			stage,
			waypoints,
			length,
			lastProcessingTime(resp),
		})
	}
	return t.Render()
}

// timingTable summarizes processing times over every attempt at each request.
func timingTable(outcomes []planOutcome) (string, error) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Request", "Runs", "Mean (ms)", "Median (ms)", "P95 (ms)", "Stddev (ms)", "Max (ms)"})
	for _, o := range outcomes {
		data := stats.Float64Data(lo.Map(o.responses, func(r *chomp.MotionResponse, _ int) float64 {
			return float64(lastProcessingTime(r)) / float64(time.Millisecond)
		}))
		mean, err := data.Mean()
		if err != nil {
			return "", err
		}
		median, err := data.Median()
		if err != nil {
			return "", err
		}
		p95, err := data.Percentile(95)
		if err != nil {
			return "", err
		}
		stddev, err := data.StandardDeviation()
		if err != nil {
			return "", err
		}
		maxTime, err := data.Max()
		if err != nil {
			return "", err
		}
		t.AppendRow(table.Row{
			o.file,
			data.Len(),
			fmt.Sprintf("%.3f", mean),
			fmt.Sprintf("%.3f", median),
			fmt.Sprintf("%.3f", p95),
			fmt.Sprintf("%.3f", stddev),
			fmt.Sprintf("%.3f", maxTime),
		})
	}
	return t.Render(), nil
}

// timingHistogram prints the distribution of processing times over every attempt at every request.
func timingHistogram(w io.Writer, outcomes []planOutcome) error {
	var times []float64
	for _, o := range outcomes {
		for _, r := range o.responses {
			times = append(times, float64(lastProcessingTime(r))/float64(time.Millisecond))
		}
	}
	if len(times) < 2 {
		return nil
	}
	//nolint:errcheck
	fmt.Fprintln(w, "processing time (ms):")
	if floats.Min(times) == floats.Max(times) {
		//nolint:errcheck
		fmt.Fprintf(w, "all %d runs took %.3f\n", len(times), times[0])
		return nil
	}
	return histogram.Fprint(w, histogram.Hist(10, times), histogram.Linear(40))
}

// waypointTable prints every waypoint of a successful response. Times assume the waypoints are
// spaced by the planning discretization.
func waypointTable(resp *chomp.MotionResponse, discretization float64) string {
	t := table.NewWriter()
	t.SetTitle(resp.GroupName)
	header := table.Row{"#", "t (s)"}
	for _, name := range resp.Trajectory.JointNames {
		header = append(header, name)
	}
	t.AppendHeader(header)
	for i, pt := range resp.Trajectory.Points {
		row := table.Row{i, fmt.Sprintf("%.3f", float64(i)*discretization)}
		for _, v := range pt.Positions {
			row = append(row, fmt.Sprintf("%.4f", v))
		}
		t.AppendRow(row)
	}
	return t.Render()
}

// pathLength is the summed joint-space L2 distance between consecutive waypoints.
func pathLength(resp *chomp.MotionResponse) float64 {
	total := 0.
	points := resp.Trajectory.Points
	for i := 1; i < len(points); i++ {
		total += floats.Distance(points[i-1].Positions, points[i].Positions, 2)
	}
	return total
}

func lastProcessingTime(resp *chomp.MotionResponse) time.Duration {
	if resp == nil || len(resp.ProcessingTime) == 0 {
		return 0
	}
	return resp.ProcessingTime[len(resp.ProcessingTime)-1]
}

// plotTrajectory draws each joint's position over time to a PNG at path.
func plotTrajectory(path, title string, resp *chomp.MotionResponse, discretization float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "position"

	for j, name := range resp.Trajectory.JointNames {
		pts := make(plotter.XYs, len(resp.Trajectory.Points))
		for i, pt := range resp.Trajectory.Points {
			pts[i] = plotter.XY{X: float64(i) * discretization, Y: pt.Positions[j]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(j)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
