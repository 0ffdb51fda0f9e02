package actions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		input  any
		want   int64
		wantOK bool
	}{
		{"1500", 1500, true},
		{"  42", 42, true},
		{"1500ms", 1500, true},
		{"12.9", 12, true},
		{"-7", -7, true},
		{"+3", 3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999", math.MaxInt64, true},
		{7, 7, true},
		{int64(8), 8, true},
		{float64(9.7), 9, true},
		{math.NaN(), 0, false},
		{nil, 0, false},
		{true, 0, false},
	}

	for _, tt := range tests {
		got, ok := toInt(tt.input)
		assert.Equal(t, tt.wantOK, ok, "toInt(%#v)", tt.input)
		assert.Equal(t, tt.want, got, "toInt(%#v)", tt.input)
	}
}

func TestIsBlank(t *testing.T) {
	for _, v := range []any{nil, "", 0, int64(0), float64(0), false} {
		assert.True(t, isBlank(v), "%#v", v)
	}
	for _, v := range []any{"0", "x", 1, float64(0.5), true} {
		assert.False(t, isBlank(v), "%#v", v)
	}
}
