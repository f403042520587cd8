package nesting

import (
	"math"

	"polygo/internal/pattern/geometry"
	"polygo/internal/pattern/scheme"
)

// MinDisplacement is the per-step movement below which the sequence is
// considered to have reached its center.
const MinDisplacement = 0.1

// ============================================================
// State
// ============================================================

type State int

const (
	Iterating State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "TERMINATED"
	}
	return "ITERATING"
}

// Reason tells why an engine stopped.
type Reason int

const (
	Running Reason = iota
	// Converged: every vertex moved less than MinDisplacement.
	Converged
	// Degenerate: a fixed displacement would collapse a side.
	Degenerate
	// DepthReached: the configured finite depth was produced.
	DepthReached
)

func (r Reason) String() string {
	switch r {
	case Converged:
		return "converged"
	case Degenerate:
		return "degenerate"
	case DepthReached:
		return "depth reached"
	default:
		return "running"
	}
}

// ============================================================
// Params & step
// ============================================================

// Params is the part of a scheme the engine reads.
type Params struct {
	Mode       scheme.DisplacementMode
	Amount     float64
	Direction  scheme.Direction
	Infinite   bool
	Iterations int
}

func ParamsFrom(s *scheme.Scheme) Params {
	return Params{
		Mode:       s.DisplacementMode,
		Amount:     float64(s.Displacement),
		Direction:  s.Direction,
		Infinite:   s.Infinite,
		Iterations: s.Iterations,
	}
}

// Forward returns the index each vertex moves toward.
func Forward(v, n int, d scheme.Direction) int {
	if d == scheme.Counterclockwise {
		return (v - 1 + n) % n
	}
	return (v + 1) % n
}

// Step derives the polygon nested inside p. It returns the largest vertex
// displacement and Running on success, or a nil polygon with the reason the
// sequence ends here.
func Step(p *geometry.Polygon, prm Params) (*geometry.Polygon, float64, Reason) {
	n := p.Len()
	next := geometry.NewPolygon(n)
	maxDisp := 0.0

	for v := 0; v < n; v++ {
		point := p.Vertices[v]
		neighbor := p.Vertices[Forward(v, n, prm.Direction)]
		orientation := geometry.Orientation(point, neighbor)
		side := geometry.Distance(point, neighbor)

		var dist float64
		if prm.Mode == scheme.Fixed {
			if prm.Amount >= side-1 {
				return nil, 0, Degenerate
			}
			dist = prm.Amount
		} else {
			dist = side * prm.Amount / 100
		}

		moved := geometry.AddPolar(point, dist, orientation)
		next.Vertices[v] = moved
		maxDisp = math.Max(maxDisp, geometry.Distance(point, moved))
	}

	if maxDisp < MinDisplacement {
		return nil, maxDisp, Converged
	}
	return next, maxDisp, Running
}

// ============================================================
// Engine
// ============================================================

type lookahead struct {
	polygon *geometry.Polygon
	maxDisp float64
	reason  Reason
}

// Engine walks the nested sequence one polygon at a time. The seed has
// iteration 0. Once terminated an engine never advances again.
type Engine struct {
	prm       Params
	current   *geometry.Polygon
	iteration int
	state     State
	reason    Reason
	lastDisp  float64
	peeked    *lookahead
}

// New starts an engine at seed, which must already be in device units.
func New(seed *geometry.Polygon, s *scheme.Scheme) *Engine {
	return NewWithParams(seed, ParamsFrom(s))
}

func NewWithParams(seed *geometry.Polygon, prm Params) *Engine {
	return &Engine{prm: prm, current: seed.Clone()}
}

func (e *Engine) Current() *geometry.Polygon { return e.current }
func (e *Engine) Iteration() int             { return e.iteration }
func (e *Engine) State() State               { return e.state }
func (e *Engine) Reason() Reason             { return e.reason }

// LastDisplacement is the largest vertex movement of the last committed step.
func (e *Engine) LastDisplacement() float64 { return e.lastDisp }

// Next commits one step and returns the new current polygon. It returns
// false and moves to Terminated when the sequence is exhausted.
func (e *Engine) Next() (*geometry.Polygon, bool) {
	if e.state == Terminated {
		return nil, false
	}
	if e.depthExceeded(e.iteration + 1) {
		e.terminate(DepthReached)
		return nil, false
	}

	la := e.step()
	e.peeked = nil
	if la.reason != Running {
		e.terminate(la.reason)
		return nil, false
	}

	e.current = la.polygon
	e.iteration++
	e.lastDisp = la.maxDisp
	return e.current, true
}

// PeekNext returns the polygon Next would produce without committing it, or
// nil when there is none.
func (e *Engine) PeekNext() *geometry.Polygon {
	if e.state == Terminated || e.depthExceeded(e.iteration+1) {
		return nil
	}
	return e.step().polygon
}

func (e *Engine) step() *lookahead {
	if e.peeked == nil {
		next, maxDisp, reason := Step(e.current, e.prm)
		e.peeked = &lookahead{polygon: next, maxDisp: maxDisp, reason: reason}
	}
	return e.peeked
}

func (e *Engine) depthExceeded(iteration int) bool {
	return !e.prm.Infinite && iteration > e.prm.Iterations
}

func (e *Engine) terminate(r Reason) {
	e.state = Terminated
	e.reason = r
}

// Sequence runs a fresh engine to completion and returns every polygon,
// seed first.
func Sequence(seed *geometry.Polygon, prm Params) ([]*geometry.Polygon, Reason) {
	e := NewWithParams(seed, prm)
	out := []*geometry.Polygon{e.Current()}
	for {
		p, ok := e.Next()
		if !ok {
			return out, e.Reason()
		}
		out = append(out, p)
	}
}
