package entity

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&ServiceCredential{},
		&BlockchainTransaction{},
		&DistributionRecord{},
	)
}
