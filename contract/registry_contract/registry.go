// Package registry_contract packs calls to the UserRegistry contract.
package registry_contract

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const UserRegistryABI = `[
  {
    "inputs": [
      {"internalType": "address", "name": "user", "type": "address"},
      {"internalType": "string", "name": "referralCode", "type": "string"}
    ],
    "name": "setUserReferralCode",
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
		parsedABI, parseErr = abi.JSON(strings.NewReader(UserRegistryABI))
	})
	return parsedABI, parseErr
}

func PackSetUserReferralCode(user common.Address, referralCode string) ([]byte, error) {
	contract, err := contractABI()
	if err != nil {
		return nil, err
	}

	return contract.Pack("setUserReferralCode", user, referralCode)
}
