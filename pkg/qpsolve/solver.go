package qpsolve

import (
	"math"

	"github.com/depictlang/depict/internal/config"
	"github.com/depictlang/depict/pkg/constraint"
	"github.com/depictlang/depict/pkg/depicterrors"
)

// Result is a solved Problem's coordinates.
type Result struct {
	// X is the solved horizontal centerline per variable, indexed the same
	// way as the Problem's VarIndex. Rounded to the configured increment.
	X          []float64
	Iterations int
}

// cgTolerance and cgMaxIterDelta govern the inner linear solve each ADMM
// iteration runs; they are deliberately tighter/shorter than the outer
// loop's own tolerance and cap since the inner solve only needs to be
// accurate enough for the outer iteration to make progress.
const (
	cgTolerance    = 1e-8
	cgMaxIterDelta = 50
)

// Solve runs ADMM operator splitting on p until the primal and dual
// residuals both drop below cfg.SolverTolerance or cfg.SolverMaxIterations
// is reached. Splits on the linear constraint Ax = z, z ∈ [L, U]:
//
//	x^{k+1} = argmin_x (1/2)x^T P x + q^T x + (rho/2)||Ax - z^k + y^k/rho||^2
//	z^{k+1} = clamp(A x^{k+1} + y^k/rho, L, U)
//	y^{k+1} = y^k + rho(A x^{k+1} - z^{k+1})
//
// The x-update's normal equations (P + rho A^T A) x = rhs are solved by
// conjugate gradient rather than a sparse direct factorization, since
// AnchorEpsilon keeps P (and hence P + rho A^T A) positive definite.
func Solve(p *constraint.Problem, cfg config.Config) (*Result, error) {
	n := p.NumVars
	m := len(p.L)
	rho := cfg.SolverRho
	if rho <= 0 {
		rho = 1
	}

	x := make([]float64, n)
	z := make([]float64, m)
	y := make([]float64, m)

	applyH := func(v []float64) []float64 {
		pv := matVec(p.P, v)
		av := matVec(p.A, v)
		atav := matVecT(p.A, av)
		out := make([]float64, n)
		for i := range out {
			out[i] = pv[i] + rho*atav[i]
		}
		return out
	}

	maxIter := cfg.SolverMaxIterations
	if maxIter <= 0 {
		maxIter = 4000
	}

	for iter := 1; iter <= maxIter; iter++ {
		atz := matVecT(p.A, z)
		aty := matVecT(p.A, y)
		rhs := make([]float64, n)
		for i := range rhs {
			rhs[i] = -p.Q[i] + rho*atz[i] - aty[i]
		}

		xNew := conjugateGradient(applyH, rhs, cgTolerance, n+cgMaxIterDelta)

		ax := matVec(p.A, xNew)
		zNew := make([]float64, m)
		for i := range zNew {
			zNew[i] = clamp(ax[i]+y[i]/rho, p.L[i], p.U[i])
		}

		yNew := make([]float64, m)
		var primalResidual, dualResidual float64
		for i := range yNew {
			r := ax[i] - zNew[i]
			yNew[i] = y[i] + rho*r
			primalResidual += r * r
		}
		for i := range xNew {
			d := xNew[i] - x[i]
			dualResidual += d * d
		}
		primalResidual = math.Sqrt(primalResidual)
		dualResidual = math.Sqrt(dualResidual)

		x, z, y = xNew, zNew, yNew

		if primalResidual < cfg.SolverTolerance && dualResidual < cfg.SolverTolerance {
			return &Result{X: roundCoordinates(x, cfg.CoordinateRounding), Iterations: iter}, nil
		}

		// A dual variable growing without bound while the primal residual
		// fails to shrink is ADMM's standard signature of primal
		// infeasibility: no x can satisfy Ax ∈ [L, U], so the penalty
		// keeps pushing y further in the same direction every iteration.
		if dualNorm := math.Sqrt(dot(yNew, yNew)); dualNorm > infeasibilityDualNorm {
			return nil, &depicterrors.LayoutError{
				SubKind:         depicterrors.Infeasible,
				VariableCount:   n,
				ConstraintCount: m,
				Detail:          "dual variables diverged; constraints are primal infeasible",
			}
		}
	}

	return nil, &depicterrors.LayoutError{
		SubKind:         depicterrors.NonConvergent,
		VariableCount:   n,
		ConstraintCount: m,
		Detail:          "ADMM did not converge within SolverMaxIterations",
	}
}

// infeasibilityDualNorm is the dual-variable norm above which ADMM is
// declared diverging rather than merely slow to converge.
const infeasibilityDualNorm = 1e10

func roundCoordinates(x []float64, increment float64) []float64 {
	if increment <= 0 {
		return x
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Round(v/increment) * increment
	}
	return out
}
