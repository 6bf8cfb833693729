package domain

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
)

type TransactionDomain interface {
	GetList(context.Context, *model.GetTransactionsRequest) (*model.GetTransactionsResponse, error)
}

// transactionDomain exposes the local history of dispatched transactions.
type transactionDomain struct {
	txRepo repository.BlockchainTransactionRepository
}

func NewTransactionDomain(txRepo repository.BlockchainTransactionRepository) *transactionDomain {
	return &transactionDomain{txRepo: txRepo}
}

func (d *transactionDomain) GetList(
	ctx context.Context, req *model.GetTransactionsRequest,
) (*model.GetTransactionsResponse, error) {
	offset, limit, err := paging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	transactions, err := d.txRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load transactions: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetTransactionsResponse{}
	for _, tx := range transactions {
		resp.Transactions = append(resp.Transactions, model.BlockchainTransaction{
			TxHash:    tx.TxHash,
			Chain:     tx.Chain,
			Purpose:   string(tx.Purpose),
			Status:    string(tx.Status),
			CreatedAt: tx.CreatedAt,
		})
	}

	return resp, nil
}
