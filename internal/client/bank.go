package client

import (
	"context"
	"strconv"

	"github.com/cleanmate-lab/admin-backend/config"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/api"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
)

type BankClient interface {
	GetTransactions(ctx context.Context, status string, offset, limit int) ([]model.BankTransaction, error)
	GetExchangeRates(ctx context.Context) ([]model.ExchangeRate, error)
	SetExchangeRate(ctx context.Context, currency, rate string) error
	DeleteExchangeRate(ctx context.Context, currency string) error
}

// bankClient talks to the bank payout service. Every response is wrapped in
// a {success, data} envelope; a false success carries the error in message.
type bankClient struct {
	cfg            config.ServiceConfigs
	credentialRepo repository.ServiceCredentialRepository
}

func NewBankClient(
	cfg config.ServiceConfigs, credentialRepo repository.ServiceCredentialRepository,
) *bankClient {
	return &bankClient{cfg: cfg, credentialRepo: credentialRepo}
}

func (c *bankClient) call(ctx context.Context, path string, args ...any) (api.Client, api.Opt, error) {
	baseURL, apiKey, err := serviceCredential(ctx, c.credentialRepo, entity.ServiceBank, c.cfg.BankURL)
	if err != nil {
		return nil, nil, err
	}

	return api.NewGenerator(baseURL).New(path, args...), api.APIKey(apiKeyHeader, apiKey), nil
}

// unwrap opens the bank's {success, data} envelope.
func (c *bankClient) unwrap(ctx context.Context, resp *api.Response) (any, error) {
	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, errorx.New(errorx.BadResponse, "The bank service returned an unexpected body")
	}

	success, err := body.GetBool("success")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Bank envelope has no success field: %v", err)
		return nil, errorx.New(errorx.BadResponse, "The bank service returned an unexpected body")
	}

	if !success {
		if msg, err := body.GetString("message"); err == nil && msg != "" {
			return nil, errorx.New(errorx.BadResponse, "%s", msg)
		}

		return nil, errorx.New(errorx.BadResponse, "The bank service rejected the request")
	}

	return body["data"], nil
}

func (c *bankClient) GetTransactions(
	ctx context.Context, status string, offset, limit int,
) ([]model.BankTransaction, error) {
	caller, auth, err := c.call(ctx, "/admin/transactions")
	if err != nil {
		return nil, err
	}

	query := api.Parameter{
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}
	if status != "" {
		query["status"] = status
	}

	resp, err := checkResponse(entity.ServiceBank, caller.Query(query).GET(ctx, auth))
	if err != nil {
		return nil, err
	}

	data, err := c.unwrap(ctx, resp)
	if err != nil {
		return nil, err
	}

	var transactions []model.BankTransaction
	if err := decodeRecord(data, &transactions); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode bank transactions: %v", err)
		return nil, errorx.New(errorx.BadResponse, "The bank service returned an unexpected body")
	}

	return transactions, nil
}

func (c *bankClient) GetExchangeRates(ctx context.Context) ([]model.ExchangeRate, error) {
	caller, auth, err := c.call(ctx, "/admin/exchange-rates")
	if err != nil {
		return nil, err
	}

	resp, err := checkResponse(entity.ServiceBank, caller.GET(ctx, auth))
	if err != nil {
		return nil, err
	}

	data, err := c.unwrap(ctx, resp)
	if err != nil {
		return nil, err
	}

	var rates []model.ExchangeRate
	if err := decodeRecord(data, &rates); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode exchange rates: %v", err)
		return nil, errorx.New(errorx.BadResponse, "The bank service returned an unexpected body")
	}

	return rates, nil
}

func (c *bankClient) SetExchangeRate(ctx context.Context, currency, rate string) error {
	caller, auth, err := c.call(ctx, "/admin/exchange-rates")
	if err != nil {
		return err
	}

	resp, err := checkResponse(entity.ServiceBank,
		caller.Body(api.JSON{"currency": currency, "rate": rate}).POST(ctx, auth))
	if err != nil {
		return err
	}

	_, err = c.unwrap(ctx, resp)
	return err
}

func (c *bankClient) DeleteExchangeRate(ctx context.Context, currency string) error {
	caller, auth, err := c.call(ctx, "/admin/exchange-rates/%s", currency)
	if err != nil {
		return err
	}

	resp, err := checkResponse(entity.ServiceBank, caller.DELETE(ctx, auth))
	if err != nil {
		return err
	}

	_, err = c.unwrap(ctx, resp)
	return err
}
