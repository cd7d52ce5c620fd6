package content

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{float64(42), 42, true},
		{float64(-3), -3, true},
		{1.5, 0, false},
		{math.Inf(1), 0, false},
		{math.NaN(), 0, false},
		{9223372036854775808.0, 0, false},
		{float64(math.MinInt64), math.MinInt64, true},
		{json.Number("7"), 7, true},
		{json.Number("7.5"), 0, false},
		{"7", 0, false},
	}
	for _, tc := range cases {
		got, ok := toInt64(tc.in)
		assert.Equal(t, tc.ok, ok, "%v", tc.in)
		assert.Equal(t, tc.want, got, "%v", tc.in)
	}
}

func TestCoerce_IntOutOfRange(t *testing.T) {
	f := Field{Name: "count", Kind: Int}
	_, reason := f.coerce(9223372036854775808.0)
	assert.NotEmpty(t, reason)
}
