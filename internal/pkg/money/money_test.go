//go:build unit

package money_test

import (
	"encoding/json"
	"testing"

	"salon-backoffice/internal/pkg/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "integer", in: "80", want: "80.00"},
		{name: "decimal comma", in: "12,5", want: "12.50"},
		{name: "rounds to cents", in: "10.005", want: "10.01"},
		{name: "empty", in: "  ", wantErr: true},
		{name: "garbage", in: "abc", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := money.Parse(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, money.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestArithmeticHasNoCentDrift(t *testing.T) {
	total := money.Zero()
	for range 10 {
		total = total.Add(money.MustParse("0.10"))
	}
	assert.True(t, total.Equal(money.FromInt(1)))
	assert.Equal(t, int64(100), total.Cents())
}

func TestClampZeroAndMin(t *testing.T) {
	neg := money.FromInt(10).Sub(money.FromInt(25))
	assert.True(t, neg.IsNegative())
	assert.True(t, neg.ClampZero().IsZero())
	assert.True(t, money.Min(money.FromInt(50), money.FromInt(80)).Equal(money.FromInt(50)))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "20€", money.FromInt(20).Display())
	assert.Equal(t, "12.50€", money.FromCents(1250).Display())
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount money.Money `json:"amount"`
	}{Amount: money.FromCents(6000)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":60.00}`, string(b))

	var fromNumber, fromString money.Money
	require.NoError(t, json.Unmarshal([]byte(`19.9`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"19.90"`), &fromString))
	assert.True(t, fromNumber.Equal(fromString))
	assert.Error(t, json.Unmarshal([]byte(`"x"`), &fromNumber))
}
