package domain

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/cleanmate-lab/admin-backend/contract/streak_contract"
	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
)

type StreakDomain interface {
	GetSubmissions(context.Context, *model.GetStreakSubmissionsRequest) (*model.GetStreakSubmissionsResponse, error)
	GetSubmission(context.Context, *model.GetStreakSubmissionRequest) (*model.GetStreakSubmissionResponse, error)
	Review(context.Context, *model.ReviewStreakRequest) (*model.ReviewStreakResponse, error)
}

type streakDomain struct {
	subgraphClient client.SubgraphClient
	dispatcher     *dispatcher
	cache          *common.QueryCache
}

func NewStreakDomain(
	subgraphClient client.SubgraphClient,
	dispatcher *dispatcher,
	cache *common.QueryCache,
) *streakDomain {
	return &streakDomain{
		subgraphClient: subgraphClient,
		dispatcher:     dispatcher,
		cache:          cache,
	}
}

// streakStatusFilter maps the request's status word to the subgraph's
// numeric status. An empty word means no filter.
func streakStatusFilter(status string) (*int, error) {
	var value int
	switch strings.ToLower(status) {
	case "":
		return nil, nil
	case "pending":
		value = model.StreakStatusPending
	case "approved":
		value = model.StreakStatusApproved
	case "rejected":
		value = model.StreakStatusRejected
	default:
		return nil, errorx.New(errorx.BadRequest, "Unknown status %s", status)
	}

	return &value, nil
}

func (d *streakDomain) GetSubmissions(
	ctx context.Context, req *model.GetStreakSubmissionsRequest,
) (*model.GetStreakSubmissionsResponse, error) {
	status, err := streakStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	skip, first, err := paging(ctx, req.Skip, req.First)
	if err != nil {
		return nil, err
	}

	cacheKey := common.ListKey(common.KeyStreakList, req.Status, req.User, first, skip)
	var cached model.GetStreakSubmissionsResponse
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	submissions, hasMore, err := d.subgraphClient.GetStreakSubmissions(ctx, client.StreakSubmissionFilter{
		Status: status,
		User:   req.User,
		First:  first,
		Skip:   skip,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot query streak submissions: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the subgraph")
	}

	resp := &model.GetStreakSubmissionsResponse{Submissions: submissions, HasMore: hasMore}
	d.cache.Set(ctx, cacheKey, resp)
	return resp, nil
}

func (d *streakDomain) GetSubmission(
	ctx context.Context, req *model.GetStreakSubmissionRequest,
) (*model.GetStreakSubmissionResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	cacheKey := common.ListKey(common.KeyStreakSubmission, req.ID)
	var cached model.GetStreakSubmissionResponse
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	submission, err := d.subgraphClient.GetStreakSubmission(ctx, req.ID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission %s", req.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot query streak submission %s: %v", req.ID, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the subgraph")
	}

	resp := model.GetStreakSubmissionResponse(*submission)
	d.cache.Set(ctx, cacheKey, resp)
	return &resp, nil
}

// Review approves or rejects one pending submission with a single signed
// contract call. The decision is one-shot: a failed transaction leaves the
// submission pending and the operator must trigger the action again.
func (d *streakDomain) Review(
	ctx context.Context, req *model.ReviewStreakRequest,
) (*model.ReviewStreakResponse, error) {
	if !d.dispatcher.configured() {
		return nil, errWalletNotConnected
	}

	submissionID, ok := parseSubmissionID(req.ID)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Invalid submission id")
	}

	submission, err := d.subgraphClient.GetStreakSubmission(ctx, req.ID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission %s", req.ID)
		}

		xcontext.Logger(ctx).Errorf("Cannot query streak submission %s: %v", req.ID, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the subgraph")
	}

	if submission.Status != model.StreakStatusPending {
		return nil, errorx.New(errorx.Unavailable, "Only allow to review pending submissions")
	}

	var data []byte
	var purpose entity.TransactionPurposeType
	switch req.Action {
	case model.ReviewActionApprove:
		amount, ok := parsePositiveAmount(req.Amount)
		if !ok {
			return nil, errorx.New(errorx.BadRequest, "The amount must be a positive number")
		}

		data, err = streak_contract.PackApproveStreaks(
			[]*big.Int{submissionID}, []*big.Int{amount})
		purpose = entity.TransactionPurposeApproveStreak

	case model.ReviewActionReject:
		reason := strings.TrimSpace(req.Reason)
		if reason == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow an empty rejection reason")
		}

		data, err = streak_contract.PackRejectStreaks([]*big.Int{submissionID}, []string{reason})
		purpose = entity.TransactionPurposeRejectStreak

	default:
		return nil, errorx.New(errorx.BadRequest, "Unknown review action %s", req.Action)
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pack the review call: %v", err)
		return nil, errorx.Unknown
	}

	to, err := contractAddress(xcontext.Configs(ctx).Chain.Contracts.Streak)
	if err != nil {
		return nil, err
	}

	txHash, err := d.dispatcher.dispatch(ctx, purpose, blockchain.Clause{To: to, Data: data},
		[]string{common.KeyStreakList, common.ListKey(common.KeyStreakSubmission, req.ID)}, nil)
	if err != nil {
		return nil, err
	}

	return &model.ReviewStreakResponse{TxHash: txHash}, nil
}
