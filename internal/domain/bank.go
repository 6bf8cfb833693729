package domain

import (
	"context"
	"strings"

	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/shopspring/decimal"
)

type BankDomain interface {
	GetTransactions(context.Context, *model.GetBankTransactionsRequest) (*model.GetBankTransactionsResponse, error)
	GetExchangeRates(context.Context, *model.GetExchangeRatesRequest) (*model.GetExchangeRatesResponse, error)
	SetExchangeRate(context.Context, *model.SetExchangeRateRequest) (*model.SetExchangeRateResponse, error)
	DeleteExchangeRate(context.Context, *model.DeleteExchangeRateRequest) (*model.DeleteExchangeRateResponse, error)
}

type bankDomain struct {
	bankClient client.BankClient
	cache      *common.QueryCache
}

func NewBankDomain(bankClient client.BankClient, cache *common.QueryCache) *bankDomain {
	return &bankDomain{bankClient: bankClient, cache: cache}
}

func (d *bankDomain) GetTransactions(
	ctx context.Context, req *model.GetBankTransactionsRequest,
) (*model.GetBankTransactionsResponse, error) {
	offset, limit, err := paging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	cacheKey := common.ListKey(common.KeyBankTransactions, req.Status, offset, limit)
	var cached model.GetBankTransactionsResponse
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	transactions, err := d.bankClient.GetTransactions(ctx, req.Status, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &model.GetBankTransactionsResponse{Transactions: transactions}
	d.cache.Set(ctx, cacheKey, resp)
	return resp, nil
}

func (d *bankDomain) GetExchangeRates(
	ctx context.Context, req *model.GetExchangeRatesRequest,
) (*model.GetExchangeRatesResponse, error) {
	var cached model.GetExchangeRatesResponse
	if d.cache.Get(ctx, common.KeyExchangeRates, &cached) {
		return &cached, nil
	}

	rates, err := d.bankClient.GetExchangeRates(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.GetExchangeRatesResponse{Rates: rates}
	d.cache.Set(ctx, common.KeyExchangeRates, resp)
	return resp, nil
}

func (d *bankDomain) SetExchangeRate(
	ctx context.Context, req *model.SetExchangeRateRequest,
) (*model.SetExchangeRateResponse, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty currency")
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil || !rate.IsPositive() {
		return nil, errorx.New(errorx.BadRequest, "The rate must be a positive number")
	}

	if err := d.bankClient.SetExchangeRate(ctx, currency, rate.String()); err != nil {
		return nil, err
	}

	d.cache.Invalidate(ctx, common.KeyExchangeRates)
	return &model.SetExchangeRateResponse{}, nil
}

func (d *bankDomain) DeleteExchangeRate(
	ctx context.Context, req *model.DeleteExchangeRateRequest,
) (*model.DeleteExchangeRateResponse, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty currency")
	}

	if err := d.bankClient.DeleteExchangeRate(ctx, currency); err != nil {
		return nil, err
	}

	d.cache.Invalidate(ctx, common.KeyExchangeRates)
	return &model.DeleteExchangeRateResponse{}, nil
}
