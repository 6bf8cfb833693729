package repository

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
)

type BlockchainTransactionRepository interface {
	Create(ctx context.Context, tx *entity.BlockchainTransaction) error
	UpdateStatusByTxHash(
		ctx context.Context, txHash string, newStatus entity.BlockchainTransactionStatusType,
	) error
	GetByTxHash(ctx context.Context, txHash string) (*entity.BlockchainTransaction, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.BlockchainTransaction, error)
}

type blockchainTransactionRepository struct{}

func NewBlockchainTransactionRepository() *blockchainTransactionRepository {
	return &blockchainTransactionRepository{}
}

func (r *blockchainTransactionRepository) Create(
	ctx context.Context, tx *entity.BlockchainTransaction,
) error {
	return xcontext.DB(ctx).Create(tx).Error
}

func (r *blockchainTransactionRepository) UpdateStatusByTxHash(
	ctx context.Context, txHash string, newStatus entity.BlockchainTransactionStatusType,
) error {
	return xcontext.DB(ctx).Model(&entity.BlockchainTransaction{}).
		Where("tx_hash=?", txHash).
		Update("status", newStatus).Error
}

func (r *blockchainTransactionRepository) GetByTxHash(
	ctx context.Context, txHash string,
) (*entity.BlockchainTransaction, error) {
	var result entity.BlockchainTransaction
	if err := xcontext.DB(ctx).Take(&result, "tx_hash=?", txHash).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *blockchainTransactionRepository) GetList(
	ctx context.Context, offset, limit int,
) ([]entity.BlockchainTransaction, error) {
	var result []entity.BlockchainTransaction
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
