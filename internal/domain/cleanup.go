package domain

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/cleanmate-lab/admin-backend/contract/cleanup_contract"
	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

type CleanupDomain interface {
	GetCleanups(context.Context, *model.GetCleanupsRequest) (*model.GetCleanupsResponse, error)
	GetCleanup(context.Context, *model.GetCleanupRequest) (*model.GetCleanupResponse, error)
	GetCleanupUpdates(context.Context, *model.GetCleanupUpdatesRequest) (*model.GetCleanupUpdatesResponse, error)
	Publish(context.Context, *model.PublishCleanupRequest) (*model.PublishCleanupResponse, error)
	Unpublish(context.Context, *model.UnpublishCleanupRequest) (*model.UnpublishCleanupResponse, error)
	UpdateStatus(context.Context, *model.UpdateCleanupStatusRequest) (*model.UpdateCleanupStatusResponse, error)
	DistributeRewards(context.Context, *model.DistributeCleanupRewardsRequest) (*model.DistributeCleanupRewardsResponse, error)
}

type cleanupDomain struct {
	subgraphClient client.SubgraphClient
	dispatcher     *dispatcher
	cache          *common.QueryCache
}

func NewCleanupDomain(
	subgraphClient client.SubgraphClient,
	dispatcher *dispatcher,
	cache *common.QueryCache,
) *cleanupDomain {
	return &cleanupDomain{
		subgraphClient: subgraphClient,
		dispatcher:     dispatcher,
		cache:          cache,
	}
}

func cleanupStatusFilter(status string) (*int, error) {
	var value int
	switch strings.ToLower(status) {
	case "":
		return nil, nil
	case "unpublished":
		value = model.CleanupStatusUnpublished
	case "published":
		value = model.CleanupStatusPublished
	case "active":
		value = model.CleanupStatusActive
	case "completed":
		value = model.CleanupStatusCompleted
	case "rewarded":
		value = model.CleanupStatusRewarded
	default:
		return nil, errorx.New(errorx.BadRequest, "Unknown status %s", status)
	}

	return &value, nil
}

func (d *cleanupDomain) GetCleanups(
	ctx context.Context, req *model.GetCleanupsRequest,
) (*model.GetCleanupsResponse, error) {
	status, err := cleanupStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	skip, first, err := paging(ctx, req.Skip, req.First)
	if err != nil {
		return nil, err
	}

	cacheKey := common.ListKey(common.KeyCleanupList, req.Status, req.Organizer, first, skip)
	var cached model.GetCleanupsResponse
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	cleanups, hasMore, err := d.subgraphClient.GetCleanups(ctx, client.CleanupFilter{
		Status:    status,
		Organizer: req.Organizer,
		First:     first,
		Skip:      skip,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot query cleanups: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the subgraph")
	}

	resp := &model.GetCleanupsResponse{Cleanups: cleanups, HasMore: hasMore}
	d.cache.Set(ctx, cacheKey, resp)
	return resp, nil
}

func (d *cleanupDomain) GetCleanup(
	ctx context.Context, req *model.GetCleanupRequest,
) (*model.GetCleanupResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	cacheKey := common.ListKey(common.KeyCleanup, req.ID)
	var cached model.GetCleanupResponse
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	cleanup, err := d.loadCleanup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.GetCleanupResponse(*cleanup)
	d.cache.Set(ctx, cacheKey, resp)
	return &resp, nil
}

func (d *cleanupDomain) GetCleanupUpdates(
	ctx context.Context, req *model.GetCleanupUpdatesRequest,
) (*model.GetCleanupUpdatesResponse, error) {
	if req.CleanupID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty cleanup id")
	}

	skip, first, err := paging(ctx, req.Skip, req.First)
	if err != nil {
		return nil, err
	}

	cacheKey := common.ListKey(common.KeyCleanupUpdates, req.CleanupID, first, skip)
	var cached model.GetCleanupUpdatesResponse
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	updates, hasMore, err := d.subgraphClient.GetCleanupUpdates(ctx, req.CleanupID, first, skip)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot query cleanup updates: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the subgraph")
	}

	resp := &model.GetCleanupUpdatesResponse{Updates: updates, HasMore: hasMore}
	d.cache.Set(ctx, cacheKey, resp)
	return resp, nil
}

func (d *cleanupDomain) Publish(
	ctx context.Context, req *model.PublishCleanupRequest,
) (*model.PublishCleanupResponse, error) {
	txHash, err := d.transition(ctx, req.ID, model.CleanupStatusUnpublished,
		entity.TransactionPurposePublishCleanup, cleanup_contract.PackPublishCleanup)
	if err != nil {
		return nil, err
	}

	return &model.PublishCleanupResponse{TxHash: txHash}, nil
}

func (d *cleanupDomain) Unpublish(
	ctx context.Context, req *model.UnpublishCleanupRequest,
) (*model.UnpublishCleanupResponse, error) {
	txHash, err := d.transition(ctx, req.ID, model.CleanupStatusPublished,
		entity.TransactionPurposeUnpublishCleanup, cleanup_contract.PackUnpublishCleanup)
	if err != nil {
		return nil, err
	}

	return &model.UnpublishCleanupResponse{TxHash: txHash}, nil
}

// transition dispatches a single-argument lifecycle call after checking the
// cleanup is currently in the expected status.
func (d *cleanupDomain) transition(
	ctx context.Context,
	id string,
	expectedStatus int,
	purpose entity.TransactionPurposeType,
	pack func(*big.Int) ([]byte, error),
) (string, error) {
	if !d.dispatcher.configured() {
		return "", errWalletNotConnected
	}

	cleanupID, ok := parseSubmissionID(id)
	if !ok {
		return "", errorx.New(errorx.BadRequest, "Invalid cleanup id")
	}

	cleanup, err := d.loadCleanup(ctx, id)
	if err != nil {
		return "", err
	}

	if cleanup.Status != expectedStatus {
		return "", errorx.New(errorx.Unavailable, "The cleanup does not allow this transition")
	}

	data, err := pack(cleanupID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pack the cleanup call: %v", err)
		return "", errorx.Unknown
	}

	return d.dispatchCleanupCall(ctx, id, purpose, data)
}

func (d *cleanupDomain) UpdateStatus(
	ctx context.Context, req *model.UpdateCleanupStatusRequest,
) (*model.UpdateCleanupStatusResponse, error) {
	if !d.dispatcher.configured() {
		return nil, errWalletNotConnected
	}

	cleanupID, ok := parseSubmissionID(req.ID)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Invalid cleanup id")
	}

	if req.Status < model.CleanupStatusUnpublished || req.Status > model.CleanupStatusRewarded {
		return nil, errorx.New(errorx.BadRequest, "Unknown status %d", req.Status)
	}

	data, err := cleanup_contract.PackUpdateCleanupStatus(cleanupID, uint8(req.Status))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pack the cleanup call: %v", err)
		return nil, errorx.Unknown
	}

	txHash, err := d.dispatchCleanupCall(ctx, req.ID, entity.TransactionPurposeUpdateCleanup, data)
	if err != nil {
		return nil, err
	}

	return &model.UpdateCleanupStatusResponse{TxHash: txHash}, nil
}

// DistributeRewards pays the participants of one completed cleanup. Unlike
// the streak cart, the participant list arrives in full with the request
// and any invalid entry rejects the whole batch.
func (d *cleanupDomain) DistributeRewards(
	ctx context.Context, req *model.DistributeCleanupRewardsRequest,
) (*model.DistributeCleanupRewardsResponse, error) {
	if !d.dispatcher.configured() {
		return nil, errWalletNotConnected
	}

	cleanupID, ok := parseSubmissionID(req.ID)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Invalid cleanup id")
	}

	if len(req.Participants) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty participant list")
	}

	if len(req.Participants) != len(req.Amounts) {
		return nil, errorx.New(errorx.BadRequest, "Participants and amounts must be parallel")
	}

	cleanup, err := d.loadCleanup(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if cleanup.Status != model.CleanupStatusCompleted {
		return nil, errorx.New(errorx.Unavailable, "Only allow to reward completed cleanups")
	}

	participants := make([]ethcommon.Address, 0, len(req.Participants))
	amounts := make([]*big.Int, 0, len(req.Amounts))
	for i := range req.Participants {
		if !ethcommon.IsHexAddress(req.Participants[i]) {
			return nil, errorx.New(errorx.BadRequest, "Invalid address %s", req.Participants[i])
		}

		amount, ok := parsePositiveAmount(req.Amounts[i])
		if !ok {
			return nil, errorx.New(errorx.BadRequest, "The amount must be a positive number")
		}

		participants = append(participants, ethcommon.HexToAddress(req.Participants[i]))
		amounts = append(amounts, amount)
	}

	data, err := cleanup_contract.PackDistributeRewards(cleanupID, participants, amounts)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pack the cleanup call: %v", err)
		return nil, errorx.Unknown
	}

	txHash, err := d.dispatchCleanupCall(ctx, req.ID,
		entity.TransactionPurposeDistributeCleanup, data)
	if err != nil {
		return nil, err
	}

	return &model.DistributeCleanupRewardsResponse{TxHash: txHash}, nil
}

func (d *cleanupDomain) loadCleanup(ctx context.Context, id string) (*model.Cleanup, error) {
	cleanup, err := d.subgraphClient.GetCleanup(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found cleanup %s", id)
		}

		xcontext.Logger(ctx).Errorf("Cannot query cleanup %s: %v", id, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the subgraph")
	}

	return cleanup, nil
}

func (d *cleanupDomain) dispatchCleanupCall(
	ctx context.Context, id string, purpose entity.TransactionPurposeType, data []byte,
) (string, error) {
	to, err := contractAddress(xcontext.Configs(ctx).Chain.Contracts.Cleanup)
	if err != nil {
		return "", err
	}

	invalidates := []string{
		common.KeyCleanupList,
		common.ListKey(common.KeyCleanup, id),
		common.KeyUserList,
	}
	return d.dispatcher.dispatch(ctx, purpose, blockchain.Clause{To: to, Data: data}, invalidates, nil)
}
