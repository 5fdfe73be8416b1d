package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Row is one table entry covering the closed key range [Min, Max].
type Row[T any] struct {
	Min   float64
	Max   float64 `validate:"gtefield=Min"`
	Value T
}

// Table is a list of rows with non-overlapping key ranges, in any order.
type Table[T any] []Row[T]

// Curve is a numeric table that can be interpolated.
type Curve = Table[float64]

// rowYAML is the on-disk form: key is a number or a "min-max" range.
type rowYAML[T any] struct {
	Key   string `yaml:"key"`
	Value T      `yaml:"value"`
}

// UnmarshalYAML decodes {key: "10-20", value: ...} into a Row.
func (r *Row[T]) UnmarshalYAML(n *yaml.Node) error {
	var raw rowYAML[T]
	if err := n.Decode(&raw); err != nil {
		return err
	}
	lo, hi, err := ParseRange(raw.Key)
	if err != nil {
		return errors.Wrapf(err, "line %d", n.Line)
	}
	r.Min, r.Max, r.Value = lo, hi, raw.Value

	return nil
}

// MarshalYAML writes the row back in its on-disk form.
func (r Row[T]) MarshalYAML() (any, error) {
	key := strconv.FormatFloat(r.Min, 'f', -1, 64)
	if r.Max != r.Min {
		key += "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
	}

	return rowYAML[T]{Key: key, Value: r.Value}, nil
}

// ParseRange reads "x" as [x, x] and "a-b" as [a, b]. Either bound may
// carry its own sign, as in "-10--5".
func ParseRange(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	sep := -1
	for i := 1; i < len(s); i++ {
		if s[i] != '-' || s[i-1] == '-' || s[i-1] == 'e' || s[i-1] == 'E' {
			continue
		}
		if sep >= 0 {
			return 0, 0, errors.Errorf("catalog: table key %q has more than one range separator", s)
		}
		sep = i
	}

	if sep < 0 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "catalog: bad table key %q", s)
		}

		return v, v, nil
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(s[:sep]), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "catalog: bad range start in %q", s)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(s[sep+1:]), 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "catalog: bad range end in %q", s)
	}

	return lo, hi, nil
}

// LowerBound returns the row containing x, otherwise the row with the
// smallest Min above x.
func (t Table[T]) LowerBound(x float64) (T, bool) {
	var (
		best  T
		found bool
		key   = math.Inf(1)
	)
	for _, r := range t {
		if r.Min <= x && x <= r.Max {
			return r.Value, true
		}
		if r.Min > x && r.Min < key {
			key, best, found = r.Min, r.Value, true
		}
	}

	return best, found
}

// UpperBound returns the row containing x, otherwise the row whose range
// ends closest below x.
func (t Table[T]) UpperBound(x float64) (T, bool) {
	var (
		best  T
		found bool
		key   = math.Inf(-1)
	)
	for _, r := range t {
		if r.Min <= x && x <= r.Max {
			return r.Value, true
		}
		if r.Min <= x && math.Min(r.Max, x) > key {
			key, best, found = math.Min(r.Max, x), r.Value, true
		}
	}

	return best, found
}

// Interpolate returns the value of the row containing x, otherwise a
// linear blend of the nearest rows on either side. Outside the table the
// nearest end value is used, unless strict is set, in which case ok is
// false.
func Interpolate(t Curve, x float64, strict bool) (float64, bool) {
	lowKey, highKey := math.Inf(-1), math.Inf(1)
	var lowVal, highVal float64
	var haveLow, haveHigh bool

	for _, r := range t {
		if r.Min <= x && x <= r.Max {
			return r.Value, true
		}
		if r.Min > x && r.Min < highKey {
			highKey, highVal, haveHigh = r.Min, r.Value, true
		}
		if r.Max < x && r.Max >= lowKey {
			lowKey, lowVal, haveLow = r.Max, r.Value, true
		}
	}

	switch {
	case !haveLow && !haveHigh:
		return 0, false
	case !haveLow:
		return highVal, !strict
	case !haveHigh:
		return lowVal, !strict
	}
	lw := (highKey - x) / (highKey - lowKey)
	hw := (x - lowKey) / (highKey - lowKey)

	return lw*lowVal + hw*highVal, true
}

// Polynomial holds coefficients in ascending order: c0 + c1·x + c2·x² + …
type Polynomial []float64

// Eval evaluates p at x by Horner's rule.
func (p Polynomial) Eval(x float64) float64 {
	v := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + p[i]
	}

	return v
}
