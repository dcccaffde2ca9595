package fee

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawncarry/internal/money"
)

func TestPolicy_Compute(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		wantFee   string
		wantTotal string
		wantErr   bool
	}{
		{name: "200 at 5%", amount: "200", wantFee: "10.00", wantTotal: "210.00"},
		{name: "100 at 5%", amount: "100", wantFee: "5.00", wantTotal: "105.00"},
		{name: "odd cents round half up", amount: "0.10", wantFee: "0.01", wantTotal: "0.11"},
		{name: "smallest amount", amount: "0.01", wantFee: "0.00", wantTotal: "0.01"},
		{name: "large amount", amount: "123456.78", wantFee: "6172.84", wantTotal: "129629.62"},
		{name: "zero", amount: "0", wantErr: true},
		{name: "negative", amount: "-5", wantErr: true},
	}

	policy := DefaultPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, total, err := policy.Compute(money.MustParse(tt.amount))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFee, fee.String())
			assert.Equal(t, tt.wantTotal, total.String())
		})
	}
}

func TestPolicy_Deterministic(t *testing.T) {
	policy := DefaultPolicy()
	amount := money.MustParse("33.33")

	firstFee, firstTotal, err := policy.Compute(amount)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		fee, total, err := policy.Compute(amount)
		require.NoError(t, err)
		assert.Equal(t, firstFee, fee)
		assert.Equal(t, firstTotal, total)
	}
}

func TestPolicy_CustomRate(t *testing.T) {
	policy := NewPolicy(decimal.RequireFromString("0.10"))
	fee, total, err := policy.Compute(money.MustParse("50"))
	require.NoError(t, err)
	assert.Equal(t, "5.00", fee.String())
	assert.Equal(t, "55.00", total.String())
}
