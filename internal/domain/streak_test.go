package domain

import (
	"context"
	"math/big"
	"testing"

	"github.com/cleanmate-lab/admin-backend/contract/streak_contract"
	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/pubsub"
	"github.com/cleanmate-lab/admin-backend/pkg/testutil"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"github.com/cleanmate-lab/admin-backend/pkg/xredis"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func pendingSubmission(id string) *model.StreakSubmission {
	return &model.StreakSubmission{
		ID:           id,
		User:         "0x00000000000000000000000000000000000000aa",
		Status:       model.StreakStatusPending,
		RewardAmount: "1000000000000000000",
		SubmittedAt:  "1700000000",
	}
}

type streakFixture struct {
	ctx       context.Context
	sender    *blockchain.MockTxSender
	subgraph  *client.MockSubgraphClient
	publisher *pubsub.MockPublisher
	cache     *common.QueryCache
	domain    *streakDomain
}

func newStreakFixture(t *testing.T) *streakFixture {
	t.Helper()

	f := &streakFixture{
		ctx:       testutil.MockContextWithOperatorID("operator-1"),
		sender:    blockchain.NewMockTxSender(),
		subgraph:  &client.MockSubgraphClient{},
		publisher: pubsub.NewMockPublisher(),
		cache:     common.NewQueryCache(xredis.NewMockClient()),
	}

	f.domain = NewStreakDomain(f.subgraph, NewDispatcher(
		f.sender, repository.NewBlockchainTransactionRepository(), f.publisher, f.cache), f.cache)
	return f
}

func TestReviewApprove(t *testing.T) {
	f := newStreakFixture(t)
	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		return pendingSubmission(id), nil
	}

	resp, err := f.domain.Review(f.ctx, &model.ReviewStreakRequest{
		ID:     "42",
		Action: model.ReviewActionApprove,
		Amount: "10",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.TxHash)

	// One clause to the streak contract, carrying 10 tokens in fixed point.
	require.Len(t, f.sender.Clauses, 1)
	streakAddr := xcontext.Configs(f.ctx).Chain.Contracts.Streak
	require.Equal(t, ethcommon.HexToAddress(streakAddr), f.sender.Clauses[0].To)

	wei, _ := new(big.Int).SetString("10000000000000000000", 10)
	expected, err := streak_contract.PackApproveStreaks(
		[]*big.Int{big.NewInt(42)}, []*big.Int{wei})
	require.NoError(t, err)
	require.Equal(t, expected, f.sender.Clauses[0].Data)

	// The transaction is recorded inprogress, then resolved on confirm.
	txRepo := repository.NewBlockchainTransactionRepository()
	tx, err := txRepo.GetByTxHash(f.ctx, resp.TxHash)
	require.NoError(t, err)
	require.Equal(t, entity.BlockchainTransactionStatusTypeInProgress, tx.Status)
	require.Equal(t, entity.TransactionPurposeApproveStreak, tx.Purpose)

	f.sender.Confirm(f.ctx, resp.TxHash, true)
	tx, err = txRepo.GetByTxHash(f.ctx, resp.TxHash)
	require.NoError(t, err)
	require.Equal(t, entity.BlockchainTransactionStatusTypeSuccess, tx.Status)
}

func TestReviewApproveInvalidAmount(t *testing.T) {
	f := newStreakFixture(t)
	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		return pendingSubmission(id), nil
	}

	// A non-numeric amount is rejected before any clause is built.
	for _, amount := range []string{"abc", "", "0", "-1"} {
		_, err := f.domain.Review(f.ctx, &model.ReviewStreakRequest{
			ID:     "42",
			Action: model.ReviewActionApprove,
			Amount: amount,
		})
		require.Error(t, err)
	}

	require.Empty(t, f.sender.Clauses)
}

func TestReviewRejectNeedsReason(t *testing.T) {
	f := newStreakFixture(t)
	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		return pendingSubmission(id), nil
	}

	_, err := f.domain.Review(f.ctx, &model.ReviewStreakRequest{
		ID:     "42",
		Action: model.ReviewActionReject,
		Reason: "   ",
	})
	require.Error(t, err)
	require.Empty(t, f.sender.Clauses)

	resp, err := f.domain.Review(f.ctx, &model.ReviewStreakRequest{
		ID:     "42",
		Action: model.ReviewActionReject,
		Reason: "blurry photo",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.TxHash)
	require.Len(t, f.sender.Clauses, 1)
}

func TestReviewOnlyPending(t *testing.T) {
	f := newStreakFixture(t)
	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		submission := pendingSubmission(id)
		submission.Status = model.StreakStatusApproved
		return submission, nil
	}

	_, err := f.domain.Review(f.ctx, &model.ReviewStreakRequest{
		ID:     "42",
		Action: model.ReviewActionApprove,
		Amount: "10",
	})
	require.Error(t, err)
	require.Empty(t, f.sender.Clauses)
}

func TestReviewWithoutWallet(t *testing.T) {
	f := newStreakFixture(t)
	f.sender.NotConfigured = true

	subgraphCalled := false
	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		subgraphCalled = true
		return pendingSubmission(id), nil
	}

	// No wallet fails fast, before any network call.
	_, err := f.domain.Review(f.ctx, &model.ReviewStreakRequest{
		ID:     "42",
		Action: model.ReviewActionApprove,
		Amount: "10",
	})
	require.ErrorIs(t, err, errWalletNotConnected)
	require.False(t, subgraphCalled)
}

func TestReviewInvalidatesCaches(t *testing.T) {
	f := newStreakFixture(t)
	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		return pendingSubmission(id), nil
	}
	f.subgraph.GetStreakSubmissionsFunc = func(
		ctx context.Context, filter client.StreakSubmissionFilter,
	) ([]model.StreakSubmission, bool, error) {
		return []model.StreakSubmission{*pendingSubmission("42")}, false, nil
	}

	// Warm the list cache.
	_, err := f.domain.GetSubmissions(f.ctx, &model.GetStreakSubmissionsRequest{})
	require.NoError(t, err)

	var cached model.GetStreakSubmissionsResponse
	listKey := common.ListKey(common.KeyStreakList, "", "", 10, 0)
	require.True(t, f.cache.Get(f.ctx, listKey, &cached))

	resp, err := f.domain.Review(f.ctx, &model.ReviewStreakRequest{
		ID:     "42",
		Action: model.ReviewActionApprove,
		Amount: "10",
	})
	require.NoError(t, err)

	// Still cached until the transaction confirms.
	require.True(t, f.cache.Get(f.ctx, listKey, &cached))

	f.sender.Confirm(f.ctx, resp.TxHash, true)
	require.False(t, f.cache.Get(f.ctx, listKey, &cached))
}

func TestReviewSendFailureSurfacedVerbatim(t *testing.T) {
	f := newStreakFixture(t)
	f.sender.SendErr = errorForTest("user rejected the request")
	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		return pendingSubmission(id), nil
	}

	_, err := f.domain.Review(f.ctx, &model.ReviewStreakRequest{
		ID:     "42",
		Action: model.ReviewActionApprove,
		Amount: "10",
	})
	require.Error(t, err)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.TransactionFailed, errx.Code)
	require.Equal(t, "user rejected the request", errx.Message)
}

type errorForTest string

func (e errorForTest) Error() string { return string(e) }
