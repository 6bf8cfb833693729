package domain

import (
	"context"
	"testing"

	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/testutil"
	"github.com/cleanmate-lab/admin-backend/pkg/xredis"
	"github.com/stretchr/testify/require"
)

func TestSetExchangeRateValidation(t *testing.T) {
	ctx := testutil.MockContext()
	var set map[string]string
	bankClient := &client.MockBankClient{
		SetExchangeRateFunc: func(ctx context.Context, currency, rate string) error {
			set = map[string]string{currency: rate}
			return nil
		},
	}
	domain := NewBankDomain(bankClient, common.NewQueryCache(xredis.NewMockClient()))

	// The currency is normalized before it reaches the service.
	_, err := domain.SetExchangeRate(ctx, &model.SetExchangeRateRequest{
		Currency: " vnd ", Rate: "24500.5",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"VND": "24500.5"}, set)

	for _, rate := range []string{"", "abc", "0", "-1"} {
		_, err := domain.SetExchangeRate(ctx, &model.SetExchangeRateRequest{
			Currency: "USD", Rate: rate,
		})
		require.Error(t, err)
	}

	_, err = domain.SetExchangeRate(ctx, &model.SetExchangeRateRequest{Rate: "1"})
	require.Error(t, err)
}

func TestExchangeRatesCacheInvalidation(t *testing.T) {
	ctx := testutil.MockContext()
	calls := 0
	bankClient := &client.MockBankClient{
		GetExchangeRatesFunc: func(ctx context.Context) ([]model.ExchangeRate, error) {
			calls++
			return []model.ExchangeRate{{Currency: "USD", Rate: "1"}}, nil
		},
	}
	domain := NewBankDomain(bankClient, common.NewQueryCache(xredis.NewMockClient()))

	for i := 0; i < 2; i++ {
		resp, err := domain.GetExchangeRates(ctx, &model.GetExchangeRatesRequest{})
		require.NoError(t, err)
		require.Len(t, resp.Rates, 1)
	}
	require.Equal(t, 1, calls)

	// Both mutations drop the cached list.
	_, err := domain.SetExchangeRate(ctx, &model.SetExchangeRateRequest{Currency: "EUR", Rate: "0.9"})
	require.NoError(t, err)
	_, err = domain.GetExchangeRates(ctx, &model.GetExchangeRatesRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	_, err = domain.DeleteExchangeRate(ctx, &model.DeleteExchangeRateRequest{Currency: "EUR"})
	require.NoError(t, err)
	_, err = domain.GetExchangeRates(ctx, &model.GetExchangeRatesRequest{})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestGetBankTransactionsPaging(t *testing.T) {
	ctx := testutil.MockContext()
	var windows [][2]int
	bankClient := &client.MockBankClient{
		GetTransactionsFunc: func(ctx context.Context, status string, offset, limit int) ([]model.BankTransaction, error) {
			windows = append(windows, [2]int{offset, limit})
			return nil, nil
		},
	}
	domain := NewBankDomain(bankClient, common.NewQueryCache(xredis.NewMockClient()))

	// A zero limit falls back to the configured default.
	_, err := domain.GetTransactions(ctx, &model.GetBankTransactionsRequest{})
	require.NoError(t, err)
	require.Equal(t, [][2]int{{0, 10}}, windows)

	_, err = domain.GetTransactions(ctx, &model.GetBankTransactionsRequest{Limit: 51})
	require.Error(t, err)

	_, err = domain.GetTransactions(ctx, &model.GetBankTransactionsRequest{Offset: -1})
	require.Error(t, err)
}
