package jsoncomb

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v2"
	"github.com/pkg/errors"
)

var (
	minInt64 = apd.New(math.MinInt64, 0)
	maxInt64 = apd.New(math.MaxInt64, 0)
)

// ParseInt64 converts a JSON number literal to int64 without loss. Literals
// in exponent form are accepted when their value is integral ("1e3").
func ParseInt64(lit string) (int64, error) {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return i, nil
	}
	d, err := ParseDecimal(lit)
	if err != nil {
		return 0, err
	}
	var integ, frac apd.Decimal
	d.Modf(&integ, &frac)
	if !frac.IsZero() {
		return 0, errors.Errorf("number %s has a fractional part", lit)
	}
	if integ.Cmp(minInt64) < 0 || integ.Cmp(maxInt64) > 0 {
		return 0, errors.Errorf("number %s overflows int64", lit)
	}
	return integ.Int64()
}

// ParseFloat64 converts a JSON number literal to float64. Literals outside the
// float64 range are rejected instead of becoming infinities.
func ParseFloat64(lit string) (float64, error) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errors.Errorf("number %s overflows float64", lit)
		}
		return 0, errors.Wrapf(err, "invalid number %q", lit)
	}
	return f, nil
}

// ParseDecimal converts a JSON number literal to an exact decimal.
func ParseDecimal(lit string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(lit)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid number %q", lit)
	}
	if d.Form != apd.Finite {
		return nil, errors.Errorf("invalid number %q", lit)
	}
	return d, nil
}
