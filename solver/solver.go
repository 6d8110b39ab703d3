// Package solver implements the sketch constraint solver: a
// Levenberg-Marquardt least-squares solve over the (x,y) coordinates of a
// sketch's non-fixed points, with DOF analysis and component partitioning
// (spec.md 4.2).
package solver

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samwillis/solidtype-sub007/sketch"
	v2 "github.com/samwillis/solidtype-sub007/vec/v2"
)

// ErrNoFreePoints is returned when a sketch (or component) has no non-fixed
// points to solve for.
var ErrNoFreePoints = errors.New("solver: no free points to solve")

// Status is the solver's diagnostic classification (spec.md 4.2).
type Status int

const (
	StatusSolved Status = iota
	StatusUnderConstrained
	StatusOverConstrained
	StatusInconsistent
	StatusSingular
	StatusNotConverged
)

// String renders a Status the way it is named in spec.md 4.2.
func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusUnderConstrained:
		return "under_constrained"
	case StatusOverConstrained:
		return "over_constrained"
	case StatusInconsistent:
		return "inconsistent"
	case StatusSingular:
		return "singular"
	case StatusNotConverged:
		return "not_converged"
	default:
		return "unknown"
	}
}

// Options configures the solve. Zero value is not usable; use
// DefaultOptions.
type Options struct {
	MaxIterations int
	Tolerance     float64 // residual-norm convergence threshold: converged once the sum of squared residuals is below Tolerance²
	InitialLambda float64
	DrivenWeight  float64
}

// DefaultOptions returns spec.md 4.2's stated defaults: 100 iterations,
// tolerance 1e-10, initial lambda 1e-3, driven weight 1000.
func DefaultOptions() Options {
	return Options{MaxIterations: 100, Tolerance: 1e-10, InitialLambda: 1e-3, DrivenWeight: 1000}
}

// Result is the outcome of solving one connected component (or, from
// Solve, the aggregate of every component).
type Result struct {
	Status         Status
	Iterations     int
	MaxResidual    float64
	RemainingDOF   int
	Components     int
}

// Solve partitions sk's points into independent connected components
// (spec.md 4.2, "Partitioning") and solves each with Levenberg-Marquardt,
// warm-started from the points' current positions. driven supplies
// optional drag targets by point id.
func Solve(sk *sketch.Sketch, driven map[sketch.PointId]v2.Vec, opts Options) (Result, error) {
	parts := Partition(sk)
	agg := Result{Status: StatusSolved, Components: len(parts)}
	worst := StatusSolved
	for _, comp := range parts {
		r, err := solveComponent(sk, comp, driven, opts)
		if err != nil {
			return Result{}, err
		}
		agg.Iterations += r.Iterations
		if r.MaxResidual > agg.MaxResidual {
			agg.MaxResidual = r.MaxResidual
		}
		agg.RemainingDOF += r.RemainingDOF
		if rank(r.Status) > rank(worst) {
			worst = r.Status
		}
	}
	agg.Status = worst
	return agg, nil
}

// rank orders Status values worst-first so Solve can report the single
// worst status across components.
func rank(s Status) int {
	switch s {
	case StatusSolved:
		return 0
	case StatusUnderConstrained:
		return 1
	case StatusNotConverged:
		return 2
	case StatusOverConstrained:
		return 3
	case StatusInconsistent:
		return 4
	case StatusSingular:
		return 5
	default:
		return 6
	}
}

func solveComponent(sk *sketch.Sketch, comp Component, driven map[sketch.PointId]v2.Vec, opts Options) (Result, error) {
	idx := make(map[sketch.PointId]int, len(comp.Points))
	free := make([]sketch.PointId, 0, len(comp.Points))
	for _, p := range comp.Points {
		pt, err := sk.Point(p)
		if err != nil {
			return Result{}, err
		}
		if pt.Fixed {
			continue
		}
		idx[p] = len(free) * 2
		free = append(free, p)
	}
	if len(free) == 0 {
		return Result{Status: StatusSolved, RemainingDOF: 0}, nil
	}

	n := len(free) * 2
	state := make([]float64, n)
	for _, p := range free {
		pt, _ := sk.Point(p)
		state[idx[p]] = pt.X
		state[idx[p]+1] = pt.Y
	}

	lambda := opts.InitialLambda
	var rows []residualRow
	cost := func(s []float64) ([]residualRow, float64) {
		rows := buildResiduals(sk, comp, idx, s, driven, opts.DrivenWeight)
		sum := 0.0
		for _, r := range rows {
			sum += r.value * r.value
		}
		return rows, sum
	}

	rows, curCost := cost(state)
	iter := 0
	converged := curCost < opts.Tolerance*opts.Tolerance
	singular := false

	for ; iter < opts.MaxIterations && !converged; iter++ {
		m := len(rows)
		J := mat.NewDense(m, n, nil)
		r := mat.NewVecDense(m, nil)
		for i, row := range rows {
			r.SetVec(i, row.value)
			for sIdx, partial := range row.partials {
				J.Set(i, sIdx, partial)
			}
		}

		var jtj mat.Dense
		jtj.Mul(J.T(), J)
		for i := 0; i < n; i++ {
			jtj.Set(i, i, jtj.At(i, i)+lambda)
		}
		var jtr mat.VecDense
		jtr.MulVec(J.T(), r)

		var delta mat.VecDense
		if err := delta.SolveVec(&jtj, &jtr); err != nil {
			// Normal matrix is singular at this lambda; increase damping
			// and retry rather than declaring failure immediately.
			lambda *= 10
			if lambda > 1e12 {
				singular = true
				break
			}
			iter--
			continue
		}

		trial := make([]float64, n)
		for i := range trial {
			trial[i] = state[i] - delta.AtVec(i)
		}
		trialRows, trialCost := cost(trial)
		if trialCost < curCost {
			state = trial
			rows = trialRows
			curCost = trialCost
			lambda = math.Max(lambda/10, 1e-12)
			converged = curCost < opts.Tolerance*opts.Tolerance
		} else {
			lambda *= 10
			if lambda > 1e12 {
				singular = true
				break
			}
		}
	}

	for _, p := range free {
		pt, err := sk.Point(p)
		if err != nil {
			continue
		}
		pt.X, pt.Y = state[idx[p]], state[idx[p]+1]
		_ = sk.SetPoint(p, pt)
	}

	maxResidual := 0.0
	for _, row := range rows {
		if row.isDriven {
			continue
		}
		if a := math.Abs(row.value); a > maxResidual {
			maxResidual = a
		}
	}

	hardResiduals := 0
	for _, row := range rows {
		if !row.isDriven {
			hardResiduals++
		}
	}
	dof := estimateDOF(n, hardResiduals, rows)

	status := StatusSolved
	switch {
	case singular:
		status = StatusSingular
	case !converged:
		status = StatusNotConverged
	case dof > 0:
		status = StatusUnderConstrained
	case dof < 0 && maxResidual > math.Sqrt(opts.Tolerance):
		status = StatusInconsistent
	case dof < 0:
		status = StatusOverConstrained
	}

	return Result{
		Status:       status,
		Iterations:   iter,
		MaxResidual:  maxResidual,
		RemainingDOF: dof,
	}, nil
}
