package chomp

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// InvocationCounters counts how often a stage ran and the time spent in it.
type InvocationCounters struct {
	calls     atomic.Int64
	timeNanos atomic.Int64
}

// PlanMeta is timing data about one planning request.
type PlanMeta struct {
	RequestID string
	Duration  time.Duration

	timingMu sync.Mutex
	Timing   map[string]*InvocationCounters
}

// NewPlanMeta constructs PlanMeta.
func NewPlanMeta(requestID string) *PlanMeta {
	return &PlanMeta{
		RequestID: requestID,
		Timing:    make(map[string]*InvocationCounters),
	}
}

// AddTiming increments the invocation count and time spent for an operation.
func (pm *PlanMeta) AddTiming(opName string, dur time.Duration) {
	pm.timingMu.Lock()
	defer pm.timingMu.Unlock()

	if counters, exists := pm.Timing[opName]; exists {
		counters.calls.Add(1)
		counters.timeNanos.Add(dur.Nanoseconds())
	} else {
		counters := &InvocationCounters{}
		counters.calls.Store(1)
		counters.timeNanos.Store(dur.Nanoseconds())
		pm.Timing[opName] = counters
	}
}

// StageTiming returns the counters for a stage, or nil if it never ran.
func (pm *PlanMeta) StageTiming(stage Stage) *InvocationCounters {
	pm.timingMu.Lock()
	defer pm.timingMu.Unlock()
	return pm.Timing[stage.String()]
}

// OutputTiming pretty-prints the per-stage timing of a request.
func (pm *PlanMeta) OutputTiming(outputWriter io.Writer) {
	//nolint:errcheck
	fmt.Fprintf(outputWriter, `Solve %s:		%v
  validating:		%v
  seeding:			%v
  normalizing:		%v
  initializing:		%v
  optimizing:		%v
  post-validating:	%v
`,
		pm.RequestID,
		pm.Duration,
		pm.StageTiming(StageValidating),
		pm.StageTiming(StageSeeding),
		pm.StageTiming(StageNormalizing),
		pm.StageTiming(StageInitializing),
		pm.StageTiming(StageOptimizing),
		pm.StageTiming(StagePostValidating),
	)
}

// Calls returns the number of times a stage ran.
func (ic *InvocationCounters) Calls() int64 {
	if ic == nil {
		return 0
	}

	return ic.calls.Load()
}

// TotalTime returns the accumulated time spent in a stage.
func (ic *InvocationCounters) TotalTime() time.Duration {
	if ic == nil {
		return 0
	}

	return time.Duration(ic.timeNanos.Load())
}

// Average returns the average time per run, or zero when the stage never ran.
func (ic *InvocationCounters) Average() time.Duration {
	calls := ic.Calls()
	if calls == 0 {
		return time.Duration(0)
	}

	return ic.TotalTime() / time.Duration(calls)
}

// String is a pretty-formatted representation of calls, total time and average.
func (ic *InvocationCounters) String() string {
	return fmt.Sprintf("Calls: %3d Total time: %-13s Average time: %v",
		ic.Calls(), ic.TotalTime(), ic.Average())
}
