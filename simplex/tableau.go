package simplex

import (
	"errors"
	"math/big"
)

// maxPivotFactor bounds the phase-1 pivot count at
// maxPivotFactor × (rows + columns). Bland's rule cannot cycle, so the
// bound only trips on internal bugs.
const maxPivotFactor = 2048

var errUnboundedPhase1 = errors.New("simplex: phase-1 objective unbounded")

// tableau is the slack/artificial extension of the assertion stack,
// in shifted space: yⱼ = xⱼ − loⱼ ≥ 0.
type tableau struct {
	rows  [][]*big.Rat // rows × (ncols + 1); last column is the RHS
	basis []int        // basic column per row
	ncols int
	isArt []bool // per column: artificial?
}

// solveTableau runs phase-1 simplex over the solver's current stack.
func solveTableau(s *Solver) (*Model, error) {
	n := len(s.lower)
	m := len(s.cons)

	// 1) Count columns: structural + one slack per LE + one artificial
	//    per row that needs one.
	nSlack := 0
	for _, c := range s.cons {
		if c.kind == opLE {
			nSlack++
		}
	}
	// Shifted RHS per row, and whether the row needs sign-flipping.
	shifted := make([]*big.Rat, m)
	needArt := make([]bool, m)
	for i, c := range s.cons {
		b := new(big.Rat).SetInt64(c.rhs)
		for v, coef := range c.coefs {
			// b' = b − Σ coef·lo
			term := new(big.Rat).SetInt64(coef)
			term.Mul(term, new(big.Rat).SetInt64(s.lower[v]))
			b.Sub(b, term)
		}
		shifted[i] = b
		// LE rows with non-negative shifted RHS start feasible on their
		// slack; everything else needs an artificial.
		needArt[i] = c.kind == opEQ || b.Sign() < 0
	}
	nArt := 0
	for _, a := range needArt {
		if a {
			nArt++
		}
	}

	t := &tableau{
		ncols: n + nSlack + nArt,
		basis: make([]int, m),
	}
	t.isArt = make([]bool, t.ncols)
	for j := n + nSlack; j < t.ncols; j++ {
		t.isArt[j] = true
	}

	// 2) Assemble rows. Sign-normalize so every RHS is ≥ 0, then seed
	//    the basis with the slack or artificial of each row.
	zero := func() *big.Rat { return new(big.Rat) }
	slackAt, artAt := n, n+nSlack
	t.rows = make([][]*big.Rat, m)
	for i, c := range s.cons {
		row := make([]*big.Rat, t.ncols+1)
		for j := range row {
			row[j] = zero()
		}
		neg := shifted[i].Sign() < 0
		for v, coef := range c.coefs {
			cr := new(big.Rat).SetInt64(coef)
			if neg {
				cr.Neg(cr)
			}
			row[int(v)].Add(row[int(v)], cr)
		}
		rhs := new(big.Rat).Set(shifted[i])
		if neg {
			rhs.Neg(rhs)
		}
		row[t.ncols] = rhs

		if c.kind == opLE {
			if neg {
				row[slackAt].SetInt64(-1)
			} else {
				row[slackAt].SetInt64(1)
				t.basis[i] = slackAt
			}
			slackAt++
		}
		if needArt[i] {
			row[artAt].SetInt64(1)
			t.basis[i] = artAt
			artAt++
		}
		t.rows[i] = row
	}

	// 3) Phase 1: minimize the sum of artificials with Bland's rule.
	if err := t.minimizeArtificials(m); err != nil {
		return nil, err
	}

	// 4) Feasible iff every artificial sits at zero.
	for i, b := range t.basis {
		if t.isArt[b] && t.rows[i][t.ncols].Sign() != 0 {
			return nil, nil // infeasible
		}
	}

	// 5) Extract the model: basic structural variables read their RHS,
	//    nonbasic ones sit at their lower bound (y = 0).
	values := make([]*big.Rat, n)
	for j := range values {
		values[j] = new(big.Rat).SetInt64(s.lower[j])
	}
	for i, b := range t.basis {
		if b < n {
			values[b].Add(new(big.Rat).SetInt64(s.lower[b]), t.rows[i][t.ncols])
		}
	}

	return &Model{values: values}, nil
}

// minimizeArtificials runs the Bland-rule pivot loop. m is the row
// count (used for the pivot budget).
func (t *tableau) minimizeArtificials(m int) error {
	budget := maxPivotFactor * (m + t.ncols + 1)
	for pivots := 0; ; pivots++ {
		if pivots > budget {
			return ErrPivotLimit
		}

		enter := t.enteringColumn()
		if enter < 0 {
			return nil // optimal
		}
		leave := t.leavingRow(enter)
		if leave < 0 {
			return errUnboundedPhase1
		}
		t.pivot(leave, enter)
	}
}

// enteringColumn returns the smallest column with negative reduced
// cost, or -1 at optimality. Cost is 1 on artificials, 0 elsewhere, so
// the reduced cost of column j is c_j − Σ (artificial-basic rows)[j].
func (t *tableau) enteringColumn() int {
	d := new(big.Rat)
	for j := 0; j < t.ncols; j++ {
		d.SetInt64(0)
		if t.isArt[j] {
			d.SetInt64(1)
		}
		for i, b := range t.basis {
			if t.isArt[b] {
				d.Sub(d, t.rows[i][j])
			}
		}
		if d.Sign() < 0 {
			return j
		}
	}

	return -1
}

// leavingRow performs the minimum-ratio test on column enter, breaking
// ties by smallest basic column (Bland). Returns -1 when no row has a
// positive pivot entry.
func (t *tableau) leavingRow(enter int) int {
	leave := -1
	best := new(big.Rat)
	ratio := new(big.Rat)
	for i, row := range t.rows {
		if row[enter].Sign() <= 0 {
			continue
		}
		ratio.Quo(row[t.ncols], row[enter])
		switch {
		case leave < 0, ratio.Cmp(best) < 0:
			leave = i
			best.Set(ratio)
		case ratio.Cmp(best) == 0 && t.basis[i] < t.basis[leave]:
			leave = i
		}
	}

	return leave
}

// pivot makes column enter basic in row leave.
func (t *tableau) pivot(leave, enter int) {
	prow := t.rows[leave]
	inv := new(big.Rat).Inv(prow[enter])
	for j := range prow {
		prow[j].Mul(prow[j], inv)
	}
	factor := new(big.Rat)
	for i, row := range t.rows {
		if i == leave || row[enter].Sign() == 0 {
			continue
		}
		factor.Set(row[enter])
		for j := range row {
			row[j].Sub(row[j], new(big.Rat).Mul(factor, prow[j]))
		}
	}
	t.basis[leave] = enter
}
