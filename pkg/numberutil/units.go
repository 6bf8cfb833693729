package numberutil

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// TokenDecimals is the fixed-point precision of all on-chain token amounts.
const TokenDecimals = 18

// ParseUnits converts a human-readable decimal amount into its integer
// representation with the given number of fractional digits. It rejects
// amounts with more fractional digits than the token supports.
func ParseUnits(amount string, decimals int32) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	scaled := d.Shift(decimals)
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("amount %q has more than %d decimal digits", amount, decimals)
	}

	return scaled.BigInt(), nil
}

// FormatUnits is the inverse of ParseUnits, trimming trailing zeros.
func FormatUnits(amount *big.Int, decimals int32) string {
	return decimal.NewFromBigInt(amount, -decimals).String()
}
