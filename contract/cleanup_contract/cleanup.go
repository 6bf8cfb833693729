// Package cleanup_contract packs calls to the Cleanup contract, which owns
// the cleanup event lifecycle and its reward distribution.
package cleanup_contract

import (
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const CleanupContractABI = `[
  {
    "inputs": [
      {"internalType": "uint256", "name": "cleanupId", "type": "uint256"}
    ],
    "name": "publishCleanup",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "cleanupId", "type": "uint256"}
    ],
    "name": "unpublishCleanup",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "cleanupId", "type": "uint256"},
      {"internalType": "uint8", "name": "status", "type": "uint8"}
    ],
    "name": "updateCleanupStatus",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "cleanupId", "type": "uint256"},
      {"internalType": "address[]", "name": "participants", "type": "address[]"},
      {"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"}
    ],
    "name": "distributeRewards",
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
		parsedABI, parseErr = abi.JSON(strings.NewReader(CleanupContractABI))
	})
	return parsedABI, parseErr
}

func PackPublishCleanup(cleanupID *big.Int) ([]byte, error) {
	contract, err := contractABI()
	if err != nil {
		return nil, err
	}

	return contract.Pack("publishCleanup", cleanupID)
}

func PackUnpublishCleanup(cleanupID *big.Int) ([]byte, error) {
	contract, err := contractABI()
	if err != nil {
		return nil, err
	}

	return contract.Pack("unpublishCleanup", cleanupID)
}

func PackUpdateCleanupStatus(cleanupID *big.Int, status uint8) ([]byte, error) {
	contract, err := contractABI()
	if err != nil {
		return nil, err
	}

	return contract.Pack("updateCleanupStatus", cleanupID, status)
}

func PackDistributeRewards(
	cleanupID *big.Int, participants []common.Address, amounts []*big.Int,
) ([]byte, error) {
	contract, err := contractABI()
	if err != nil {
		return nil, err
	}

	return contract.Pack("distributeRewards", cleanupID, participants, amounts)
}
