package wfc

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	ErrContradiction   = errors.New("wfc: contradiction - no valid tiles for cell")
	ErrStepLimit       = errors.New("wfc: exceeded maximum steps")
	ErrStalled         = errors.New("wfc: no informed cell left to observe")
	ErrInvalidSize     = errors.New("wfc: invalid grid size")
	ErrAlreadyObserved = errors.New("wfc: cell already observed")
	ErrNoSolution      = errors.New("wfc: failed to find valid solution")
)

// ContradictionError reports the cell whose weights admit no tile.
type ContradictionError struct {
	Cell    int
	X, Y, Z int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("wfc: contradiction at cell %d (%d,%d,%d)", e.Cell, e.X, e.Y, e.Z)
}

func (e *ContradictionError) Unwrap() error {
	return ErrContradiction
}

// State is the solver's position in its lifecycle
type State int

const (
	Unsolved      State = iota // Seed placed, nothing propagated
	Solving                    // Observe/propagate loop running
	Solved                     // Every cell observed
	Contradiction              // A cell had no valid tile
	Stalled                    // Unobserved cells remain but none is informed
	StepLimit                  // MaxSteps reached
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Unsolved:
		return "unsolved"
	case Solving:
		return "solving"
	case Solved:
		return "solved"
	case Contradiction:
		return "contradiction"
	case Stalled:
		return "stalled"
	case StepLimit:
		return "step_limit"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further steps are possible
func (s State) Terminal() bool {
	return s != Unsolved && s != Solving
}

// DefaultMaxDistance is the propagation radius used when Options leaves it unset.
const DefaultMaxDistance = 4

// Options tunes a solver. Zero values select defaults.
type Options struct {
	Seed        int64
	Rand        *rand.Rand // overrides Seed when set
	MaxDistance int        // edges a single propagation may travel
	MaxSteps    int        // observe calls before giving up; default cells*2
}

// Solver runs wave function collapse over one graph. It is not safe for concurrent
// use; the TileSet and Graph it reads may be shared.
type Solver struct {
	tiles *TileSet
	graph *Graph
	rng   *rand.Rand

	maxDistance int
	maxSteps    int

	weights      [][]float64
	entropy      []float64
	observations []int // -1 until observed
	observed     int

	state State
	steps int
	err   error
}

// NewSolver prepares the cell table and pre-observes the seed cell
func NewSolver(tiles *TileSet, graph *Graph, opts Options) *Solver {
	s := &Solver{
		tiles:        tiles,
		graph:        graph,
		rng:          opts.Rand,
		maxDistance:  opts.MaxDistance,
		maxSteps:     opts.MaxSteps,
		weights:      make([][]float64, graph.Len()),
		entropy:      make([]float64, graph.Len()),
		observations: make([]int, graph.Len()),
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(opts.Seed))
	}
	if s.maxDistance <= 0 {
		s.maxDistance = DefaultMaxDistance
	}
	if s.maxSteps <= 0 {
		s.maxSteps = graph.Len() * 2
	}

	n := tiles.Len()
	for id := range s.weights {
		s.weights[id] = make([]float64, n)
		s.entropy[id] = math.Inf(1)
		s.observations[id] = -1
	}
	s.collapse(graph.SeedCell(), tiles.SeedID())
	return s
}

// State returns the current lifecycle state
func (s *Solver) State() State { return s.state }

// Err returns the error that ended the run, if any
func (s *Solver) Err() error { return s.err }

// Steps returns the number of successful observations made by Step
func (s *Solver) Steps() int { return s.steps }

// ObservedCount returns how many cells hold a tile, seed included
func (s *Solver) ObservedCount() int { return s.observed }

// Weights returns a copy of a cell's weight vector
func (s *Solver) Weights(cell int) []float64 {
	out := make([]float64, len(s.weights[cell]))
	copy(out, s.weights[cell])
	return out
}

// Entropy returns a cell's entropy. +Inf means no propagation has reached it.
func (s *Solver) Entropy(cell int) float64 { return s.entropy[cell] }

// Observation returns the tile chosen for a cell
func (s *Solver) Observation(cell int) (int, bool) {
	id := s.observations[cell]
	return id, id >= 0
}

func (s *Solver) collapse(cell, tile int) {
	w := s.weights[cell]
	for i := range w {
		w[i] = 0
	}
	w[tile] = 1
	s.entropy[cell] = 0
	s.observations[cell] = tile
	s.observed++
}

func (s *Solver) contradiction(cell int) error {
	x, y, z := s.graph.Position(cell)
	return &ContradictionError{Cell: cell, X: x, Y: y, Z: z}
}

// Observe samples a tile for cell in proportion to its weights and collapses the cell
// onto it. All-zero or otherwise unusable weights yield a *ContradictionError.
func (s *Solver) Observe(cell int) (int, error) {
	if s.observations[cell] >= 0 {
		return -1, fmt.Errorf("%w: cell %d", ErrAlreadyObserved, cell)
	}
	w := s.weights[cell]
	total := 0.0
	for _, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return -1, s.contradiction(cell)
		}
		total += v
	}
	if total <= 0 || math.IsInf(total, 0) {
		return -1, s.contradiction(cell)
	}

	pick := -1
	r := s.rng.Float64() * total
	for i, v := range w {
		if v <= 0 {
			continue
		}
		pick = i
		r -= v
		if r < 0 {
			break
		}
	}
	s.collapse(cell, pick)
	return pick, nil
}

// SelectNextCell returns the unobserved cell with the lowest entropy among those
// reached by propagation. Ties go to the lowest cell id.
func (s *Solver) SelectNextCell() (int, bool) {
	best, bestEntropy := -1, math.Inf(1)
	for cell, e := range s.entropy {
		if s.observations[cell] >= 0 {
			continue
		}
		if e < bestEntropy {
			best, bestEntropy = cell, e
		}
	}
	return best, best >= 0
}

type propagationNode struct {
	cell     int
	distance int
}

// arrival is the shortest path found so far into a cell during one propagation.
type arrival struct {
	distance  int
	direction Direction
}

// Propagate pushes the observed tile of origin outward up to the configured distance.
// The walk records, for every cell reached, the direction of the last edge on its
// shortest path; a cell found again by a strictly shorter path is expanded again.
// Once the walk ends each unobserved cell reached is updated exactly once, with the
// signal of origin's tile in that direction. Observed cells are passed through but
// never modified.
func (s *Solver) Propagate(origin int) error {
	tile, ok := s.Observation(origin)
	if !ok {
		return fmt.Errorf("wfc: propagate from unobserved cell %d", origin)
	}

	best := map[int]arrival{origin: {}}
	var reached []int
	stack := []propagationNode{{cell: origin}}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.distance > best[node.cell].distance {
			continue
		}
		for _, l := range s.graph.Edges(node.cell) {
			distance := node.distance + 1
			prev, seen := best[l.Cell]
			if seen && prev.distance <= distance {
				continue
			}
			if !seen {
				reached = append(reached, l.Cell)
			}
			best[l.Cell] = arrival{distance: distance, direction: l.Direction}
			if distance < s.maxDistance {
				stack = append(stack, propagationNode{cell: l.Cell, distance: distance})
			}
		}
	}

	for _, cell := range reached {
		if s.observations[cell] < 0 {
			s.absorb(cell, s.tiles.Compatibility(tile, best[cell].direction))
		}
	}
	return nil
}

// absorb adds the positive part of signal to a cell, renormalizes and refreshes its
// entropy. A cell left all zero gets entropy 0 so selection reaches it next.
func (s *Solver) absorb(cell int, signal []float64) {
	w := s.weights[cell]
	total := 0.0
	for i, v := range signal {
		if v > 0 {
			w[i] += v
		}
		total += w[i]
	}
	if total <= 0 {
		s.entropy[cell] = 0
		return
	}
	for i := range w {
		w[i] /= total
	}
	s.entropy[cell] = shannon(w)
}

// shannon returns the entropy in nats of a normalized distribution.
func shannon(p []float64) float64 {
	h := 0.0
	for _, v := range p {
		if v > 0 {
			h -= v * math.Log(v)
		}
	}
	if h < 0 {
		return 0
	}
	return h
}

// Step advances the solver by one transition. The first call propagates from the
// seed; later calls select, observe and propagate one cell. Terminal states return
// their error again without doing work.
func (s *Solver) Step() (State, error) {
	if s.state.Terminal() {
		return s.state, s.err
	}
	if s.state == Unsolved {
		s.state = Solving
		if err := s.Propagate(s.graph.SeedCell()); err != nil {
			return s.fail(Contradiction, err)
		}
		return s.state, nil
	}

	cell, ok := s.SelectNextCell()
	if !ok {
		if s.observed == s.graph.Len() {
			s.state = Solved
			return s.state, nil
		}
		return s.fail(Stalled, fmt.Errorf("%w: %d of %d cells observed", ErrStalled, s.observed, s.graph.Len()))
	}
	if s.steps >= s.maxSteps {
		return s.fail(StepLimit, fmt.Errorf("%w: %d", ErrStepLimit, s.maxSteps))
	}
	if _, err := s.Observe(cell); err != nil {
		return s.fail(Contradiction, err)
	}
	s.steps++
	if err := s.Propagate(cell); err != nil {
		return s.fail(Contradiction, err)
	}
	return s.state, nil
}

func (s *Solver) fail(state State, err error) (State, error) {
	s.state = state
	s.err = err
	return state, err
}

// Run steps until a terminal state and returns the solution when every cell is
// observed.
func (s *Solver) Run() (*Solution, error) {
	for {
		state, err := s.Step()
		if err != nil {
			return nil, err
		}
		if state == Solved {
			return s.Solution(), nil
		}
	}
}

// Solution snapshots the observed tiles. It returns nil until the solver is Solved.
func (s *Solver) Solution() *Solution {
	if s.state != Solved {
		return nil
	}
	ids := make([]int, len(s.observations))
	copy(ids, s.observations)
	return &Solution{
		Dimensions: s.graph.Dimensions(),
		TileIDs:    ids,
		Steps:      s.steps,
		tiles:      s.tiles,
	}
}
