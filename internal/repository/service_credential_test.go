package repository

import (
	"testing"

	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestServiceCredentialRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewServiceCredentialRepository()

	err := repo.Upsert(ctx, &entity.ServiceCredential{
		Base:    entity.Base{ID: uuid.NewString()},
		Service: entity.ServiceKyc,
		BaseURL: "https://kyc.example.com",
		APIKey:  "key-1",
	})
	require.NoError(t, err)

	credential, err := repo.Get(ctx, entity.ServiceKyc)
	require.NoError(t, err)
	require.Equal(t, "key-1", credential.APIKey)

	// A second upsert for the same service replaces the stored key.
	err = repo.Upsert(ctx, &entity.ServiceCredential{
		Base:    entity.Base{ID: uuid.NewString()},
		Service: entity.ServiceKyc,
		BaseURL: "https://kyc.example.com",
		APIKey:  "key-2",
	})
	require.NoError(t, err)

	credential, err = repo.Get(ctx, entity.ServiceKyc)
	require.NoError(t, err)
	require.Equal(t, "key-2", credential.APIKey)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, entity.ServiceKyc))
	_, err = repo.Get(ctx, entity.ServiceKyc)
	require.Error(t, err)
}

func TestBlockchainTransactionRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewBlockchainTransactionRepository()

	err := repo.Create(ctx, &entity.BlockchainTransaction{
		Base:       entity.Base{ID: uuid.NewString()},
		Chain:      "testchain",
		TxHash:     "0xabc",
		OperatorID: "operator-1",
		Purpose:    entity.TransactionPurposeApproveStreak,
		Status:     entity.BlockchainTransactionStatusTypeInProgress,
	})
	require.NoError(t, err)

	err = repo.UpdateStatusByTxHash(ctx, "0xabc", entity.BlockchainTransactionStatusTypeSuccess)
	require.NoError(t, err)

	tx, err := repo.GetByTxHash(ctx, "0xabc")
	require.NoError(t, err)
	require.Equal(t, entity.BlockchainTransactionStatusTypeSuccess, tx.Status)

	list, err := repo.GetList(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestDistributionRecordRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewDistributionRecordRepository()

	record := &entity.DistributionRecord{
		Base:          entity.Base{ID: uuid.NewString()},
		TxHash:        "0xdef",
		OperatorID:    "operator-1",
		SubmissionIDs: entity.Array[string]{"42", "43"},
		Amounts:       entity.Array[string]{"10", "12.5"},
	}
	require.NoError(t, repo.Create(ctx, record))

	list, err := repo.GetList(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, entity.Array[string]{"42", "43"}, list[0].SubmissionIDs)

	count, err := repo.CountWithSameBatch(ctx, entity.Array[string]{"42", "43"})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	count, err = repo.CountWithSameBatch(ctx, entity.Array[string]{"42"})
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
