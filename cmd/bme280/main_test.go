package main

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	cases := []struct {
		in   float64
		prec int
		out  float64
	}{
		{25.082421875, 2, 25.08},
		{1006.5325390625, 1, 1006.5},
		{-0.004, 2, 0},
		{-2.345, 1, -2.3},
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{42, 2, 42},
	}

	for _, tc := range cases {
		if res := round(tc.in, tc.prec); res != tc.out {
			t.Errorf("%v != expected %v for %v, %d", res, tc.out, tc.in, tc.prec)
		}
	}

	if res := round(math.Inf(1), 2); !math.IsInf(res, 1) {
		t.Errorf("%v != expected +Inf", res)
	}
	if res := round(-0.0, 2); math.Signbit(res) {
		t.Error("negative zero returned")
	}
}
