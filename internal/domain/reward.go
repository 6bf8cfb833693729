package domain

import (
	"context"
	"errors"
	"math/big"

	"github.com/cleanmate-lab/admin-backend/contract/rewards_contract"
	"github.com/cleanmate-lab/admin-backend/internal/cart"
	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/numberutil"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

type RewardDomain interface {
	GetCart(context.Context, *model.GetCartRequest) (*model.GetCartResponse, error)
	AddToCart(context.Context, *model.AddToCartRequest) (*model.AddToCartResponse, error)
	RemoveFromCart(context.Context, *model.RemoveFromCartRequest) (*model.RemoveFromCartResponse, error)
	UpdateCartAmount(context.Context, *model.UpdateCartAmountRequest) (*model.UpdateCartAmountResponse, error)
	ClearCart(context.Context, *model.ClearCartRequest) (*model.ClearCartResponse, error)
	DistributeStreakRewards(context.Context, *model.DistributeStreakRewardsRequest) (*model.DistributeStreakRewardsResponse, error)
	SendRewards(context.Context, *model.SendRewardsRequest) (*model.SendRewardsResponse, error)
}

var rewardTypes = []int{
	rewards_contract.RewardTypeReferral,
	rewards_contract.RewardTypeBonus,
	rewards_contract.RewardTypeOthers,
}

type rewardDomain struct {
	cart             *cart.Container
	subgraphClient   client.SubgraphClient
	dispatcher       *dispatcher
	distributionRepo repository.DistributionRecordRepository
	cache            *common.QueryCache
}

func NewRewardDomain(
	cartContainer *cart.Container,
	subgraphClient client.SubgraphClient,
	dispatcher *dispatcher,
	distributionRepo repository.DistributionRecordRepository,
	cache *common.QueryCache,
) *rewardDomain {
	return &rewardDomain{
		cart:             cartContainer,
		subgraphClient:   subgraphClient,
		dispatcher:       dispatcher,
		distributionRepo: distributionRepo,
		cache:            cache,
	}
}

func (d *rewardDomain) GetCart(
	ctx context.Context, req *model.GetCartRequest,
) (*model.GetCartResponse, error) {
	items := d.cart.Items(ctx, xcontext.RequestUserID(ctx))
	return &model.GetCartResponse{Items: items}, nil
}

// AddToCart queues an approved submission for the next batched
// distribution. The default amount comes from the submission's on-chain
// reward, falling back to "0" when it cannot be read.
func (d *rewardDomain) AddToCart(
	ctx context.Context, req *model.AddToCartRequest,
) (*model.AddToCartResponse, error) {
	if req.SubmissionID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty submission id")
	}

	submission, err := d.subgraphClient.GetStreakSubmission(ctx, req.SubmissionID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission %s", req.SubmissionID)
		}

		xcontext.Logger(ctx).Errorf("Cannot query streak submission %s: %v", req.SubmissionID, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the subgraph")
	}

	if submission.Status != model.StreakStatusApproved {
		return nil, errorx.New(errorx.Unavailable, "Only allow to distribute approved submissions")
	}

	amount := "0"
	if wei, ok := new(big.Int).SetString(submission.RewardAmount, 10); ok {
		amount = numberutil.FormatUnits(wei, numberutil.TokenDecimals)
	}

	items := d.cart.Add(ctx, xcontext.RequestUserID(ctx), model.CartItem{
		SubmissionID: submission.ID,
		Amount:       amount,
		User:         submission.User,
		Metadata:     submission.Metadata,
		SubmittedAt:  submission.SubmittedAt,
	})

	return &model.AddToCartResponse{Items: items}, nil
}

func (d *rewardDomain) RemoveFromCart(
	ctx context.Context, req *model.RemoveFromCartRequest,
) (*model.RemoveFromCartResponse, error) {
	items := d.cart.Remove(ctx, xcontext.RequestUserID(ctx), req.SubmissionID)
	return &model.RemoveFromCartResponse{Items: items}, nil
}

func (d *rewardDomain) UpdateCartAmount(
	ctx context.Context, req *model.UpdateCartAmountRequest,
) (*model.UpdateCartAmountResponse, error) {
	// No validation here: the amount is checked at distribution time, so
	// the operator can type through intermediate states.
	items := d.cart.UpdateAmount(ctx, xcontext.RequestUserID(ctx), req.SubmissionID, req.Amount)
	return &model.UpdateCartAmountResponse{Items: items}, nil
}

func (d *rewardDomain) ClearCart(
	ctx context.Context, req *model.ClearCartRequest,
) (*model.ClearCartResponse, error) {
	d.cart.Clear(ctx, xcontext.RequestUserID(ctx))
	return &model.ClearCartResponse{}, nil
}

// DistributeStreakRewards converts the operator's cart into one
// distributeStreaksReward call. Items failing validation are excluded from
// the batch; an all-invalid cart aborts before anything is sent. The cart
// is cleared only when the transaction confirms, so a failed batch can be
// retried without re-selecting items.
func (d *rewardDomain) DistributeStreakRewards(
	ctx context.Context, req *model.DistributeStreakRewardsRequest,
) (*model.DistributeStreakRewardsResponse, error) {
	if !d.dispatcher.configured() {
		return nil, errWalletNotConnected
	}

	operatorID := xcontext.RequestUserID(ctx)
	items := d.cart.Items(ctx, operatorID)

	var ids []*big.Int
	var amounts []*big.Int
	var distributed, skipped []string
	var displayAmounts []string
	for _, item := range items {
		id, okID := parseSubmissionID(item.SubmissionID)
		amount, okAmount := parsePositiveAmount(item.Amount)
		if !okID || !okAmount {
			skipped = append(skipped, item.SubmissionID)
			continue
		}

		ids = append(ids, id)
		amounts = append(amounts, amount)
		distributed = append(distributed, item.SubmissionID)
		displayAmounts = append(displayAmounts, item.Amount)
	}

	if len(ids) == 0 {
		return nil, errorx.New(errorx.BadRequest, "No valid items in the cart")
	}

	// The contract is the arbiter of double payouts; an identical confirmed
	// batch only raises a warning here.
	count, err := d.distributionRepo.CountWithSameBatch(ctx, entity.Array[string](distributed))
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check for duplicated batches: %v", err)
	} else if count > 0 {
		xcontext.Logger(ctx).Warnf(
			"Operator %s resubmits an already distributed batch of %d items",
			operatorID, len(distributed))
	}

	data, err := rewards_contract.PackDistributeStreaksReward(ids, amounts)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pack the distribution call: %v", err)
		return nil, errorx.Unknown
	}

	to, err := contractAddress(xcontext.Configs(ctx).Chain.Contracts.RewardsManager)
	if err != nil {
		return nil, err
	}

	invalidates := []string{common.KeyStreakList, common.KeyRewards, common.KeyUserList}
	txHash, err := d.dispatcher.dispatch(ctx, entity.TransactionPurposeDistributeStreaks,
		blockchain.Clause{To: to, Data: data}, invalidates,
		func(ctx context.Context, txHash string) {
			d.recordDistribution(ctx, txHash, operatorID, distributed, displayAmounts)
			d.cart.Clear(ctx, operatorID)
		})
	if err != nil {
		return nil, err
	}

	return &model.DistributeStreakRewardsResponse{
		TxHash:       txHash,
		Distributed:  distributed,
		SkippedItems: skipped,
	}, nil
}

func (d *rewardDomain) recordDistribution(
	ctx context.Context, txHash, operatorID string, submissionIDs, amounts []string,
) {
	err := d.distributionRepo.Create(ctx, &entity.DistributionRecord{
		Base:          entity.Base{ID: uuid.NewString()},
		TxHash:        txHash,
		OperatorID:    operatorID,
		SubmissionIDs: entity.Array[string](submissionIDs),
		Amounts:       entity.Array[string](amounts),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the distribution record: %v", err)
	}
}

// SendRewards dispatches an ad-hoc sendRewards call outside the cart flow.
func (d *rewardDomain) SendRewards(
	ctx context.Context, req *model.SendRewardsRequest,
) (*model.SendRewardsResponse, error) {
	if !d.dispatcher.configured() {
		return nil, errWalletNotConnected
	}

	if len(req.Recipients) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty recipient list")
	}

	if len(req.Recipients) != len(req.Amounts) || len(req.Recipients) != len(req.RewardTypes) {
		return nil, errorx.New(errorx.BadRequest,
			"Recipients, amounts and reward types must be parallel")
	}

	recipients := make([]ethcommon.Address, 0, len(req.Recipients))
	amounts := make([]*big.Int, 0, len(req.Amounts))
	types := make([]uint8, 0, len(req.RewardTypes))
	for i := range req.Recipients {
		if !ethcommon.IsHexAddress(req.Recipients[i]) {
			return nil, errorx.New(errorx.BadRequest, "Invalid address %s", req.Recipients[i])
		}

		amount, ok := parsePositiveAmount(req.Amounts[i])
		if !ok {
			return nil, errorx.New(errorx.BadRequest, "The amount must be a positive number")
		}

		if !slices.Contains(rewardTypes, req.RewardTypes[i]) {
			return nil, errorx.New(errorx.BadRequest, "Unknown reward type %d", req.RewardTypes[i])
		}

		recipients = append(recipients, ethcommon.HexToAddress(req.Recipients[i]))
		amounts = append(amounts, amount)
		types = append(types, uint8(req.RewardTypes[i]))
	}

	data, err := rewards_contract.PackSendRewards(recipients, amounts, types)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pack the send rewards call: %v", err)
		return nil, errorx.Unknown
	}

	to, err := contractAddress(xcontext.Configs(ctx).Chain.Contracts.RewardsManager)
	if err != nil {
		return nil, err
	}

	txHash, err := d.dispatcher.dispatch(ctx, entity.TransactionPurposeSendRewards,
		blockchain.Clause{To: to, Data: data},
		[]string{common.KeyRewards, common.KeyUserList}, nil)
	if err != nil {
		return nil, err
	}

	return &model.SendRewardsResponse{TxHash: txHash}, nil
}
