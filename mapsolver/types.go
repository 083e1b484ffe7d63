package mapsolver

import (
	"errors"
	"fmt"
)

// ErrNoIntents indicates a generator over an empty universe.
var ErrNoIntents = errors.New("mapsolver: empty intent universe")

// Bias selects which result kind the seed order favors.
type Bias uint8

const (
	// BiasMUSes favors maximal seeds: large subsets tend to be UNSAT
	// and feed the shrinker.
	BiasMUSes Bias = iota

	// BiasMSSes favors minimal seeds: small subsets tend to be SAT
	// and grow into MSSes.
	BiasMSSes
)

// String implements fmt.Stringer.
func (b Bias) String() string {
	switch b {
	case BiasMUSes:
		return "MUSes"
	case BiasMSSes:
		return "MSSes"
	default:
		return fmt.Sprintf("Bias(%d)", uint8(b))
	}
}

// ParseBias maps the CLI spelling to a Bias.
func ParseBias(s string) (Bias, error) {
	switch s {
	case "MUSes", "muses":
		return BiasMUSes, nil
	case "MSSes", "msses":
		return BiasMSSes, nil
	default:
		return 0, fmt.Errorf("mapsolver: unknown bias %q (want MUSes or MSSes)", s)
	}
}
