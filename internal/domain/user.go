package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/cleanmate-lab/admin-backend/contract/registry_contract"
	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

type UserDomain interface {
	GetUsers(context.Context, *model.GetUsersRequest) (*model.GetUsersResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	SetReferralCode(context.Context, *model.SetUserReferralCodeRequest) (*model.SetUserReferralCodeResponse, error)
}

type userDomain struct {
	subgraphClient client.SubgraphClient
	dispatcher     *dispatcher
	cache          *common.QueryCache
}

func NewUserDomain(
	subgraphClient client.SubgraphClient,
	dispatcher *dispatcher,
	cache *common.QueryCache,
) *userDomain {
	return &userDomain{
		subgraphClient: subgraphClient,
		dispatcher:     dispatcher,
		cache:          cache,
	}
}

func (d *userDomain) GetUsers(
	ctx context.Context, req *model.GetUsersRequest,
) (*model.GetUsersResponse, error) {
	skip, first, err := paging(ctx, req.Skip, req.First)
	if err != nil {
		return nil, err
	}

	cacheKey := common.ListKey(common.KeyUserList, req.Search, first, skip)
	var cached model.GetUsersResponse
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	users, hasMore, err := d.subgraphClient.GetUsers(ctx, req.Search, first, skip)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot query users: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the subgraph")
	}

	resp := &model.GetUsersResponse{Users: users, HasMore: hasMore}
	d.cache.Set(ctx, cacheKey, resp)
	return resp, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	if !ethcommon.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address %s", req.Address)
	}

	address := strings.ToLower(req.Address)
	cacheKey := common.ListKey(common.KeyUser, address)
	var cached model.GetUserResponse
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	user, err := d.subgraphClient.GetUser(ctx, address)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user %s", address)
		}

		xcontext.Logger(ctx).Errorf("Cannot query user %s: %v", address, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the subgraph")
	}

	resp := model.GetUserResponse(*user)
	d.cache.Set(ctx, cacheKey, resp)
	return &resp, nil
}

func (d *userDomain) SetReferralCode(
	ctx context.Context, req *model.SetUserReferralCodeRequest,
) (*model.SetUserReferralCodeResponse, error) {
	if !d.dispatcher.configured() {
		return nil, errWalletNotConnected
	}

	if !ethcommon.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid address %s", req.Address)
	}

	code := strings.TrimSpace(req.ReferralCode)
	if code == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty referral code")
	}

	data, err := registry_contract.PackSetUserReferralCode(ethcommon.HexToAddress(req.Address), code)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pack the registry call: %v", err)
		return nil, errorx.Unknown
	}

	to, err := contractAddress(xcontext.Configs(ctx).Chain.Contracts.UserRegistry)
	if err != nil {
		return nil, err
	}

	invalidates := []string{
		common.KeyUserList,
		common.ListKey(common.KeyUser, strings.ToLower(req.Address)),
	}
	txHash, err := d.dispatcher.dispatch(ctx, entity.TransactionPurposeSetReferralCode,
		blockchain.Clause{To: to, Data: data}, invalidates, nil)
	if err != nil {
		return nil, err
	}

	return &model.SetUserReferralCodeResponse{TxHash: txHash}, nil
}
