package streak_contract

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackApproveStreaks(t *testing.T) {
	data, err := PackApproveStreaks(
		[]*big.Int{big.NewInt(42)},
		[]*big.Int{big.NewInt(10)},
	)
	require.NoError(t, err)
	require.Greater(t, len(data), 4)

	other, err := PackApproveStreaks(
		[]*big.Int{big.NewInt(43)},
		[]*big.Int{big.NewInt(10)},
	)
	require.NoError(t, err)
	require.NotEqual(t, data, other)
	// Same function, same selector.
	require.Equal(t, data[:4], other[:4])
}

func TestPackRejectStreaks(t *testing.T) {
	data, err := PackRejectStreaks([]*big.Int{big.NewInt(1)}, []string{"blurry photo"})
	require.NoError(t, err)
	require.Greater(t, len(data), 4)

	approve, err := PackApproveStreaks([]*big.Int{big.NewInt(1)}, []*big.Int{big.NewInt(1)})
	require.NoError(t, err)
	require.NotEqual(t, approve[:4], data[:4])
}
