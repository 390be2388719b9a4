package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCommission(t *testing.T) {
	tests := []struct {
		name           string
		amount         string
		percent        string
		wantCommission string
		wantNet        string
	}{
		{"zero percent", "100000", "0", "0", "100000"},
		{"whole percent", "100000", "1", "1000", "99000"},
		{"terminal rate", "250000", "0.2", "500", "249500"},
		{"odd amount", "99999", "1", "999.99", "98999.01"},
		{"fractional amount", "10.01", "2.5", "0.25", "9.76"},
		{"full commission", "5000", "100", "5000", "0"},
		{"zero amount", "0", "1.5", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commission, net := SplitCommission(MustMoney(tt.amount), MustMoney(tt.percent))

			assert.True(t, MustMoney(tt.wantCommission).Equal(commission),
				"commission: want %s, got %s", tt.wantCommission, commission)
			assert.True(t, MustMoney(tt.wantNet).Equal(net),
				"net: want %s, got %s", tt.wantNet, net)
		})
	}
}

// The split must reassemble into the original amount exactly,
// whatever the rounding of the commission did.
func TestSplitCommission_SumInvariant(t *testing.T) {
	amounts := []string{"0.01", "1", "33.33", "99999.99", "123456.78", "1000000"}
	percents := []string{"0", "0.2", "1", "1.5", "2.75", "33.333", "100"}

	for _, a := range amounts {
		for _, p := range percents {
			amount := MustMoney(a)
			commission, net := SplitCommission(amount, MustMoney(p))

			assert.True(t, commission.Add(net).Equal(amount),
				"amount=%s percent=%s: %s + %s != %s", a, p, commission, net, a)
			assert.False(t, commission.IsNegative(), "amount=%s percent=%s", a, p)
		}
	}
}

func TestValidPercent(t *testing.T) {
	assert.True(t, ValidPercent(MustMoney("0")))
	assert.True(t, ValidPercent(MustMoney("1.5")))
	assert.True(t, ValidPercent(MustMoney("100")))
	assert.False(t, ValidPercent(MustMoney("-0.01")))
	assert.False(t, ValidPercent(MustMoney("100.01")))
}
