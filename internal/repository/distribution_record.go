package repository

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
)

type DistributionRecordRepository interface {
	Create(ctx context.Context, record *entity.DistributionRecord) error
	GetList(ctx context.Context, offset, limit int) ([]entity.DistributionRecord, error)
	CountWithSameBatch(ctx context.Context, submissionIDs entity.Array[string]) (int64, error)
}

type distributionRecordRepository struct{}

func NewDistributionRecordRepository() *distributionRecordRepository {
	return &distributionRecordRepository{}
}

func (r *distributionRecordRepository) Create(
	ctx context.Context, record *entity.DistributionRecord,
) error {
	return xcontext.DB(ctx).Create(record).Error
}

func (r *distributionRecordRepository) GetList(
	ctx context.Context, offset, limit int,
) ([]entity.DistributionRecord, error) {
	var result []entity.DistributionRecord
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

// CountWithSameBatch counts confirmed distributions carrying exactly the
// same submission set. Used only to warn about likely double payouts.
func (r *distributionRecordRepository) CountWithSameBatch(
	ctx context.Context, submissionIDs entity.Array[string],
) (int64, error) {
	value, err := submissionIDs.Value()
	if err != nil {
		return 0, err
	}

	var count int64
	err = xcontext.DB(ctx).Model(&entity.DistributionRecord{}).
		Where("submission_ids=?", value).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
