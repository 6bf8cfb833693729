package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// MockTxSender records every sent clause and lets tests confirm them on
// demand.
type MockTxSender struct {
	NotConfigured bool
	SendErr       error

	Clauses  []Clause
	confirms map[string]ConfirmFunc
}

func NewMockTxSender() *MockTxSender {
	return &MockTxSender{confirms: make(map[string]ConfirmFunc)}
}

func (s *MockTxSender) Configured() bool {
	return !s.NotConfigured
}

func (s *MockTxSender) Address() common.Address {
	return common.HexToAddress("0x00000000000000000000000000000000000000ad")
}

func (s *MockTxSender) Send(
	ctx context.Context, clause Clause, onConfirm ConfirmFunc,
) (string, error) {
	if s.SendErr != nil {
		return "", s.SendErr
	}

	s.Clauses = append(s.Clauses, clause)
	hash := fmt.Sprintf("0xmock%04d", len(s.Clauses))
	s.confirms[hash] = onConfirm
	return hash, nil
}

// Confirm fires the confirmation callback registered for hash.
func (s *MockTxSender) Confirm(ctx context.Context, hash string, success bool) {
	if onConfirm, ok := s.confirms[hash]; ok {
		delete(s.confirms, hash)
		onConfirm(ctx, hash, success)
	}
}

// LastHash returns the hash of the most recently sent transaction.
func (s *MockTxSender) LastHash() string {
	return fmt.Sprintf("0xmock%04d", len(s.Clauses))
}
