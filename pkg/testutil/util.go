package testutil

import (
	"context"
	"time"

	"github.com/cleanmate-lab/admin-backend/config"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/pkg/logger"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "secret",
				Expiration: time.Minute,
			},
		},
		Chain: config.ChainConfigs{
			Chain:   "testchain",
			ChainID: 1337,
			Contracts: config.ContractConfigs{
				Streak:         "0x0000000000000000000000000000000000000001",
				RewardsManager: "0x0000000000000000000000000000000000000002",
				Cleanup:        "0x0000000000000000000000000000000000000003",
				UserRegistry:   "0x0000000000000000000000000000000000000004",
			},
		},
		Subgraph: config.SubgraphConfigs{
			PageSize: 10,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithOperatorID(operatorID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), operatorID)
}
