package chomp

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Grid is the N×J trajectory matrix the optimizer works on. Row 0 is the start, row N-1 is the
// goal, and column j is the j-th active joint of the planning group.
type Grid struct {
	data *mat.Dense
}

// NewGrid allocates a zeroed grid. A trajectory needs at least a start and a goal row.
func NewGrid(numPoints, numJoints int) (*Grid, error) {
	if numPoints < 2 {
		return nil, errors.Errorf("a trajectory grid needs at least 2 points, got %d", numPoints)
	}
	if numJoints < 1 {
		return nil, errors.Errorf("a trajectory grid needs at least 1 joint, got %d", numJoints)
	}
	return &Grid{data: mat.NewDense(numPoints, numJoints, nil)}, nil
}

// NewGridFromRows builds a grid from equal-length rows.
func NewGridFromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, errors.New("no rows given")
	}
	g, err := NewGrid(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := g.SetPoint(i, row); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// NumPoints returns N.
func (g *Grid) NumPoints() int {
	r, _ := g.data.Dims()
	return r
}

// NumJoints returns J.
func (g *Grid) NumJoints() int {
	_, c := g.data.Dims()
	return c
}

// StartIndex is the row of the start configuration.
func (g *Grid) StartIndex() int {
	return 0
}

// GoalIndex is the row of the goal configuration.
func (g *Grid) GoalIndex() int {
	return g.NumPoints() - 1
}

// At returns the position of joint j at waypoint i.
func (g *Grid) At(i, j int) float64 {
	return g.data.At(i, j)
}

// Set writes the position of joint j at waypoint i.
func (g *Grid) Set(i, j int, v float64) {
	g.data.Set(i, j, v)
}

// Point returns waypoint i. The slice aliases the grid.
func (g *Grid) Point(i int) []float64 {
	return g.data.RawRowView(i)
}

// SetPoint overwrites waypoint i.
func (g *Grid) SetPoint(i int, values []float64) error {
	if len(values) != g.NumJoints() {
		return errors.Errorf("waypoint has %d values, grid has %d joints", len(values), g.NumJoints())
	}
	g.data.SetRow(i, values)
	return nil
}

// Start returns the start row. The slice aliases the grid.
func (g *Grid) Start() []float64 {
	return g.Point(g.StartIndex())
}

// Goal returns the goal row. The slice aliases the grid.
func (g *Grid) Goal() []float64 {
	return g.Point(g.GoalIndex())
}

// Rows returns a copy of every waypoint.
func (g *Grid) Rows() [][]float64 {
	rows := make([][]float64, g.NumPoints())
	for i := range rows {
		rows[i] = mat.Row(nil, i, g.data)
	}
	return rows
}

// Matrix exposes the backing matrix to optimizers.
func (g *Grid) Matrix() *mat.Dense {
	return g.data
}

// Copy returns an independent copy of the grid.
func (g *Grid) Copy() *Grid {
	return &Grid{data: mat.DenseCopyOf(g.data)}
}
