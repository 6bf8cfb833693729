// Package rewards_contract packs calls to the RewardsManager contract.
package rewards_contract

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Reward types accepted by sendRewards.
const (
	RewardTypeReferral = 0
	RewardTypeBonus    = 1
	RewardTypeOthers   = 2
)

const RewardsManagerABI = `[
  {
    "inputs": [
      {"internalType": "uint256[]", "name": "submissionIds", "type": "uint256[]"},
      {"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"}
    ],
    "name": "distributeStreaksReward",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "address[]", "name": "recipients", "type": "address[]"},
      {"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"},
      {"internalType": "uint8[]", "name": "rewardTypes", "type": "uint8[]"}
    ],
    "name": "sendRewards",
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
		parsedABI, parseErr = abi.JSON(strings.NewReader(RewardsManagerABI))
	})
	return parsedABI, parseErr
}

func PackDistributeStreaksReward(submissionIDs, amounts []*big.Int) ([]byte, error) {
	contract, err := contractABI()
	if err != nil {
		return nil, err
	}

	return contract.Pack("distributeStreaksReward", submissionIDs, amounts)
}

func PackSendRewards(
	recipients []common.Address, amounts []*big.Int, rewardTypes []uint8,
) ([]byte, error) {
	for _, t := range rewardTypes {
		if t > RewardTypeOthers {
			return nil, fmt.Errorf("unknown reward type %d", t)
		}
	}

	contract, err := contractABI()
	if err != nil {
		return nil, err
	}

	return contract.Pack("sendRewards", recipients, amounts, rewardTypes)
}
