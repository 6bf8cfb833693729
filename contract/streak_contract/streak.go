// Package streak_contract packs calls to the Streak contract, which holds
// streak submissions and their review lifecycle.
package streak_contract

import (
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const StreakContractABI = `[
  {
    "inputs": [
      {"internalType": "uint256[]", "name": "submissionIds", "type": "uint256[]"},
      {"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"}
    ],
    "name": "approveStreaks",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256[]", "name": "submissionIds", "type": "uint256[]"},
      {"internalType": "string[]", "name": "reasons", "type": "string[]"}
    ],
    "name": "rejectStreaks",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  }
]`

var (
	parsedABI abi.ABI
	parseOnce sync.Once
	parseErr  error
)

func contractABI() (abi.ABI, error) {
	parseOnce.Do(func() {
		parsedABI, parseErr = abi.JSON(strings.NewReader(StreakContractABI))
	})
	return parsedABI, parseErr
}

// PackApproveStreaks packs approveStreaks(submissionIds, amounts). The two
// slices must be parallel.
func PackApproveStreaks(submissionIDs, amounts []*big.Int) ([]byte, error) {
	contract, err := contractABI()
	if err != nil {
		return nil, err
	}

	return contract.Pack("approveStreaks", submissionIDs, amounts)
}

// PackRejectStreaks packs rejectStreaks(submissionIds, reasons). The two
// slices must be parallel.
func PackRejectStreaks(submissionIDs []*big.Int, reasons []string) ([]byte, error) {
	contract, err := contractABI()
	if err != nil {
		return nil, err
	}

	return contract.Pack("rejectStreaks", submissionIDs, reasons)
}
