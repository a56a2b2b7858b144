package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitAmount(t *testing.T) {
	cases := []struct {
		name         string
		amountCents  int
		feeBps       int
		wantEarnings int
		wantFee      int
	}{
		{"default fee on round amount", 50000, 1500, 42500, 7500},
		{"accepted bid below budget", 38000, 1500, 32300, 5700},
		{"rounds half up", 33333, 1500, 28333, 5000},
		{"one cent", 1, 1500, 1, 0},
		{"zero amount", 0, 1500, 0, 0},
		{"zero fee", 38000, 0, 38000, 0},
		{"full fee", 38000, 10000, 0, 38000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			earnings, fee := SplitAmount(tc.amountCents, tc.feeBps)
			require.Equal(t, tc.wantEarnings, earnings)
			require.Equal(t, tc.wantFee, fee)
		})
	}
}

func TestSplitAmountReconstructs(t *testing.T) {
	for amount := 0; amount < 2000; amount += 7 {
		for _, feeBps := range []int{0, 100, 1500, 3333, 9999, 10000} {
			earnings, fee := SplitAmount(amount, feeBps)
			require.Equal(t, amount, earnings+fee, "amount=%d feeBps=%d", amount, feeBps)
			require.GreaterOrEqual(t, fee, 0)
			require.GreaterOrEqual(t, earnings, 0)
		}
	}
}
