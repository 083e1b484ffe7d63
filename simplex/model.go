package simplex

import (
	"math"
	"math/big"
)

// Model is a satisfying assignment for the stack that produced it.
// Values are exact rationals; Scaled converts them to integers.
type Model struct {
	values []*big.Rat
}

// Value returns the assignment of v. The returned rational must not be
// mutated. Unknown variables yield nil.
func (m *Model) Value(v Var) *big.Rat {
	if int(v) < 0 || int(v) >= len(m.values) {
		return nil
	}

	return m.values[v]
}

// Scaled multiplies the whole model by the least common multiple of
// its denominators and returns the resulting integers. Scaling by a
// positive constant preserves every homogeneous comparison between
// variable sums as well as each lower bound, so a scaled model
// satisfies the same ordering constraints as the exact one. Returns
// ErrModelOverflow when a scaled value leaves the int64 range.
func (m *Model) Scaled() ([]int64, error) {
	lcm := big.NewInt(1)
	tmp := new(big.Int)
	for _, r := range m.values {
		d := r.Denom()
		tmp.GCD(nil, nil, lcm, d)
		lcm.Div(lcm, tmp)
		lcm.Mul(lcm, d)
	}

	maxI := big.NewInt(math.MaxInt64)
	out := make([]int64, len(m.values))
	q := new(big.Int)
	for i, r := range m.values {
		// r·lcm = num·(lcm/denom), always integral.
		q.Div(lcm, r.Denom())
		q.Mul(q, r.Num())
		if q.CmpAbs(maxI) > 0 {
			return nil, ErrModelOverflow
		}
		out[i] = q.Int64()
	}

	return out, nil
}
