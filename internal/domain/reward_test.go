package domain

import (
	"context"
	"math/big"
	"testing"

	"github.com/cleanmate-lab/admin-backend/contract/rewards_contract"
	"github.com/cleanmate-lab/admin-backend/internal/cart"
	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain"
	"github.com/cleanmate-lab/admin-backend/pkg/pubsub"
	"github.com/cleanmate-lab/admin-backend/pkg/testutil"
	"github.com/cleanmate-lab/admin-backend/pkg/xredis"
	"github.com/stretchr/testify/require"
)

type rewardFixture struct {
	ctx       context.Context
	sender    *blockchain.MockTxSender
	subgraph  *client.MockSubgraphClient
	cart      *cart.Container
	cache     *common.QueryCache
	publisher *pubsub.MockPublisher
	domain    *rewardDomain
}

func newRewardFixture(t *testing.T) *rewardFixture {
	t.Helper()

	f := &rewardFixture{
		ctx:       testutil.MockContextWithOperatorID("operator-1"),
		sender:    blockchain.NewMockTxSender(),
		subgraph:  &client.MockSubgraphClient{},
		cart:      cart.NewContainer(cart.NewMemoryStore()),
		cache:     common.NewQueryCache(xredis.NewMockClient()),
		publisher: pubsub.NewMockPublisher(),
	}

	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		return &model.StreakSubmission{
			ID:           id,
			User:         "0x00000000000000000000000000000000000000aa",
			Status:       model.StreakStatusApproved,
			RewardAmount: "1500000000000000000",
			SubmittedAt:  "1700000000",
		}, nil
	}

	f.domain = NewRewardDomain(f.cart, f.subgraph, NewDispatcher(
		f.sender, repository.NewBlockchainTransactionRepository(), f.publisher, f.cache),
		repository.NewDistributionRecordRepository(), f.cache)
	return f
}

func (f *rewardFixture) items(t *testing.T) []model.CartItem {
	t.Helper()
	resp, err := f.domain.GetCart(f.ctx, &model.GetCartRequest{})
	require.NoError(t, err)
	return resp.Items
}

func TestAddToCartDefaultsAmountFromReward(t *testing.T) {
	f := newRewardFixture(t)

	resp, err := f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: "42"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "1.5", resp.Items[0].Amount)

	// An unreadable on-chain reward falls back to "0".
	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		return &model.StreakSubmission{ID: id, Status: model.StreakStatusApproved}, nil
	}
	resp, err = f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: "43"})
	require.NoError(t, err)
	require.Equal(t, "0", resp.Items[1].Amount)
}

func TestAddToCartDuplicateKeepsFirst(t *testing.T) {
	f := newRewardFixture(t)

	_, err := f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: "7"})
	require.NoError(t, err)

	_, err = f.domain.UpdateCartAmount(f.ctx, &model.UpdateCartAmountRequest{
		SubmissionID: "7", Amount: "2.5",
	})
	require.NoError(t, err)

	resp, err := f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: "7"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "2.5", resp.Items[0].Amount)
}

func TestAddToCartOnlyApproved(t *testing.T) {
	f := newRewardFixture(t)
	f.subgraph.GetStreakSubmissionFunc = func(ctx context.Context, id string) (*model.StreakSubmission, error) {
		return &model.StreakSubmission{ID: id, Status: model.StreakStatusPending}, nil
	}

	_, err := f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: "42"})
	require.Error(t, err)
	require.Empty(t, f.items(t))
}

func TestDistributeConvertsAndClearsOnConfirm(t *testing.T) {
	f := newRewardFixture(t)

	_, err := f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: "42"})
	require.NoError(t, err)
	_, err = f.domain.UpdateCartAmount(f.ctx, &model.UpdateCartAmountRequest{
		SubmissionID: "42", Amount: "10",
	})
	require.NoError(t, err)

	resp, err := f.domain.DistributeStreakRewards(f.ctx, &model.DistributeStreakRewardsRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"42"}, resp.Distributed)
	require.Empty(t, resp.SkippedItems)

	// The clause carries 10 * 10^18 for submission 42.
	wei, _ := new(big.Int).SetString("10000000000000000000", 10)
	expected, err := rewards_contract.PackDistributeStreaksReward(
		[]*big.Int{big.NewInt(42)}, []*big.Int{wei})
	require.NoError(t, err)
	require.Len(t, f.sender.Clauses, 1)
	require.Equal(t, expected, f.sender.Clauses[0].Data)

	// The cart survives until the transaction confirms.
	require.Len(t, f.items(t), 1)

	f.sender.Confirm(f.ctx, resp.TxHash, true)
	require.Empty(t, f.items(t))

	// A confirmed distribution leaves an audit row behind.
	records, err := repository.NewDistributionRecordRepository().GetList(f.ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, resp.TxHash, records[0].TxHash)
	require.Equal(t, []string{"42"}, []string(records[0].SubmissionIDs))
	require.Equal(t, []string{"10"}, []string(records[0].Amounts))
}

func TestDistributeExcludesInvalidItems(t *testing.T) {
	f := newRewardFixture(t)

	for _, id := range []string{"1", "2", "3"} {
		_, err := f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: id})
		require.NoError(t, err)
	}

	// "2" becomes unparsable, "3" becomes zero; only "1" stays valid.
	_, err := f.domain.UpdateCartAmount(f.ctx, &model.UpdateCartAmountRequest{
		SubmissionID: "2", Amount: "abc",
	})
	require.NoError(t, err)
	_, err = f.domain.UpdateCartAmount(f.ctx, &model.UpdateCartAmountRequest{
		SubmissionID: "3", Amount: "0",
	})
	require.NoError(t, err)

	resp, err := f.domain.DistributeStreakRewards(f.ctx, &model.DistributeStreakRewardsRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, resp.Distributed)
	require.ElementsMatch(t, []string{"2", "3"}, resp.SkippedItems)
}

func TestDistributeNoValidItems(t *testing.T) {
	f := newRewardFixture(t)

	_, err := f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: "7"})
	require.NoError(t, err)
	_, err = f.domain.UpdateCartAmount(f.ctx, &model.UpdateCartAmountRequest{
		SubmissionID: "7", Amount: "0",
	})
	require.NoError(t, err)

	// A cart with zero valid items never reaches the transaction sender.
	_, err = f.domain.DistributeStreakRewards(f.ctx, &model.DistributeStreakRewardsRequest{})
	require.Error(t, err)
	require.Empty(t, f.sender.Clauses)

	// An empty cart behaves the same.
	_, err = f.domain.ClearCart(f.ctx, &model.ClearCartRequest{})
	require.NoError(t, err)
	_, err = f.domain.DistributeStreakRewards(f.ctx, &model.DistributeStreakRewardsRequest{})
	require.Error(t, err)
	require.Empty(t, f.sender.Clauses)
}

func TestDistributeKeepsCartOnFailure(t *testing.T) {
	f := newRewardFixture(t)

	_, err := f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: "42"})
	require.NoError(t, err)

	resp, err := f.domain.DistributeStreakRewards(f.ctx, &model.DistributeStreakRewardsRequest{})
	require.NoError(t, err)

	// A reverted transaction leaves the cart untouched for a retry.
	f.sender.Confirm(f.ctx, resp.TxHash, false)
	require.Len(t, f.items(t), 1)
}

func TestDistributeWithoutWallet(t *testing.T) {
	f := newRewardFixture(t)
	f.sender.NotConfigured = true

	_, err := f.domain.AddToCart(f.ctx, &model.AddToCartRequest{SubmissionID: "42"})
	require.NoError(t, err)

	_, err = f.domain.DistributeStreakRewards(f.ctx, &model.DistributeStreakRewardsRequest{})
	require.ErrorIs(t, err, errWalletNotConnected)
}

func TestSendRewardsValidation(t *testing.T) {
	f := newRewardFixture(t)

	// Parallel arrays are required.
	_, err := f.domain.SendRewards(f.ctx, &model.SendRewardsRequest{
		Recipients:  []string{"0x00000000000000000000000000000000000000aa"},
		Amounts:     []string{"1", "2"},
		RewardTypes: []int{0},
	})
	require.Error(t, err)

	_, err = f.domain.SendRewards(f.ctx, &model.SendRewardsRequest{
		Recipients:  []string{"not-an-address"},
		Amounts:     []string{"1"},
		RewardTypes: []int{0},
	})
	require.Error(t, err)

	_, err = f.domain.SendRewards(f.ctx, &model.SendRewardsRequest{
		Recipients:  []string{"0x00000000000000000000000000000000000000aa"},
		Amounts:     []string{"1"},
		RewardTypes: []int{9},
	})
	require.Error(t, err)
	require.Empty(t, f.sender.Clauses)

	resp, err := f.domain.SendRewards(f.ctx, &model.SendRewardsRequest{
		Recipients:  []string{"0x00000000000000000000000000000000000000aa"},
		Amounts:     []string{"1"},
		RewardTypes: []int{rewards_contract.RewardTypeBonus},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.TxHash)
	require.Len(t, f.sender.Clauses, 1)
}
