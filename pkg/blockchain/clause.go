package blockchain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Clause is a single contract call ready for submission: the target
// contract, the attached native value and the ABI-packed calldata.
type Clause struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// ConfirmFunc is invoked exactly once per submitted transaction, when the
// receipt arrives or when confirmation times out. success reports whether
// the transaction was mined with a successful status.
type ConfirmFunc func(ctx context.Context, txHash string, success bool)

// TxSender signs and dispatches contract calls with the admin wallet.
type TxSender interface {
	// Configured reports whether a signing key is available. Callers must
	// check this before building any clause.
	Configured() bool

	// Address returns the admin wallet address.
	Address() common.Address

	// Send signs the clause, dispatches it and registers onConfirm to be
	// called when the transaction confirms or times out. It returns the
	// transaction hash.
	Send(ctx context.Context, clause Clause, onConfirm ConfirmFunc) (string, error)
}
