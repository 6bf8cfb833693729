package repository

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ServiceCredentialRepository interface {
	Upsert(ctx context.Context, credential *entity.ServiceCredential) error
	Get(ctx context.Context, service entity.ServiceType) (*entity.ServiceCredential, error)
	GetAll(ctx context.Context) ([]entity.ServiceCredential, error)
	Delete(ctx context.Context, service entity.ServiceType) error
}

type serviceCredentialRepository struct{}

func NewServiceCredentialRepository() *serviceCredentialRepository {
	return &serviceCredentialRepository{}
}

func (r *serviceCredentialRepository) Upsert(
	ctx context.Context, credential *entity.ServiceCredential,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "service"}},
			DoUpdates: clause.Assignments(map[string]any{
				"base_url": credential.BaseURL,
				"api_key":  credential.APIKey,
			}),
		}).Create(credential).Error
}

func (r *serviceCredentialRepository) Get(
	ctx context.Context, service entity.ServiceType,
) (*entity.ServiceCredential, error) {
	var result entity.ServiceCredential
	if err := xcontext.DB(ctx).Take(&result, "service=?", service).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *serviceCredentialRepository) GetAll(ctx context.Context) ([]entity.ServiceCredential, error) {
	var result []entity.ServiceCredential
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *serviceCredentialRepository) Delete(ctx context.Context, service entity.ServiceType) error {
	tx := xcontext.DB(ctx).Delete(&entity.ServiceCredential{}, "service=?", service)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
