package numberutil

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	n, err := ParseUnits("1", TokenDecimals)
	require.NoError(t, err)
	require.Equal(t, "1000000000000000000", n.String())

	n, err = ParseUnits("0.5", TokenDecimals)
	require.NoError(t, err)
	require.Equal(t, "500000000000000000", n.String())

	n, err = ParseUnits("  12.25 ", TokenDecimals)
	require.NoError(t, err)
	require.Equal(t, "12250000000000000000", n.String())

	n, err = ParseUnits("0", TokenDecimals)
	require.NoError(t, err)
	require.Equal(t, "0", n.String())
}

func TestParseUnitsInvalid(t *testing.T) {
	_, err := ParseUnits("", TokenDecimals)
	require.Error(t, err)

	_, err = ParseUnits("abc", TokenDecimals)
	require.Error(t, err)

	_, err = ParseUnits("1.5", 0)
	require.Error(t, err)

	// 19 fractional digits with 18-digit precision.
	_, err = ParseUnits("0.0000000000000000001", TokenDecimals)
	require.Error(t, err)
}

func TestFormatUnits(t *testing.T) {
	n, ok := new(big.Int).SetString("1500000000000000000", 10)
	require.True(t, ok)
	require.Equal(t, "1.5", FormatUnits(n, TokenDecimals))

	require.Equal(t, "0", FormatUnits(big.NewInt(0), TokenDecimals))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, amount := range []string{"1", "0.25", "1000000", "0.000000000000000001"} {
		n, err := ParseUnits(amount, TokenDecimals)
		require.NoError(t, err)
		require.Equal(t, amount, FormatUnits(n, TokenDecimals))
	}
}
