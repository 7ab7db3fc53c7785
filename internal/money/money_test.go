package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahinestrog/bookorders/internal/apperr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"10.00", 1000, true},
		{"10", 1000, true},
		{"5.5", 550, true},
		{"5.50", 550, true},
		{"0", 0, true},
		{"0.01", 1, true},
		{"1234567.89", 123456789, true},
		{"-1", 0, false},
		{"1.999", 0, false}, // sub-cent
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		m, err := Parse(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err), tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.cents, m.Cents, tt.in)
	}
}

func TestArithmeticIsExact(t *testing.T) {
	price, err := Parse("10.00")
	require.NoError(t, err)

	// the same inputs always produce the same cents, run after run
	for i := 0; i < 1000; i++ {
		assert.Equal(t, int64(5000), price.Mul(5).Cents)
	}
	assert.Equal(t, int64(5550), price.Mul(5).Add(FromCents(550)).Cents)
}

func TestString(t *testing.T) {
	assert.Equal(t, "50.00", FromCents(5000).String())
	assert.Equal(t, "5.50", FromCents(550).String())
	assert.Equal(t, "0.01", FromCents(1).String())
	assert.Equal(t, "0.00", Money{}.String())
}

func TestJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(FromCents(550))
	require.NoError(t, err)
	assert.Equal(t, `"5.50"`, string(b))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"10.00"`), &m))
	assert.Equal(t, int64(1000), m.Cents)

	assert.Error(t, json.Unmarshal([]byte(`"-3"`), &m))
}
