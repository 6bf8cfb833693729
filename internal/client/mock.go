package client

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/internal/model"
)

// MockSubgraphClient implements SubgraphClient with overridable functions.
type MockSubgraphClient struct {
	GetStreakSubmissionsFunc func(ctx context.Context, filter StreakSubmissionFilter) ([]model.StreakSubmission, bool, error)
	GetStreakSubmissionFunc  func(ctx context.Context, id string) (*model.StreakSubmission, error)
	GetCleanupsFunc          func(ctx context.Context, filter CleanupFilter) ([]model.Cleanup, bool, error)
	GetCleanupFunc           func(ctx context.Context, id string) (*model.Cleanup, error)
	GetCleanupUpdatesFunc    func(ctx context.Context, cleanupID string, first, skip int) ([]model.CleanupUpdate, bool, error)
	GetUsersFunc             func(ctx context.Context, search string, first, skip int) ([]model.User, bool, error)
	GetUserFunc              func(ctx context.Context, address string) (*model.User, error)
}

func (m *MockSubgraphClient) GetStreakSubmissions(
	ctx context.Context, filter StreakSubmissionFilter,
) ([]model.StreakSubmission, bool, error) {
	if m.GetStreakSubmissionsFunc != nil {
		return m.GetStreakSubmissionsFunc(ctx, filter)
	}

	return nil, false, nil
}

func (m *MockSubgraphClient) GetStreakSubmission(
	ctx context.Context, id string,
) (*model.StreakSubmission, error) {
	if m.GetStreakSubmissionFunc != nil {
		return m.GetStreakSubmissionFunc(ctx, id)
	}

	return nil, ErrNotFound
}

func (m *MockSubgraphClient) GetCleanups(
	ctx context.Context, filter CleanupFilter,
) ([]model.Cleanup, bool, error) {
	if m.GetCleanupsFunc != nil {
		return m.GetCleanupsFunc(ctx, filter)
	}

	return nil, false, nil
}

func (m *MockSubgraphClient) GetCleanup(ctx context.Context, id string) (*model.Cleanup, error) {
	if m.GetCleanupFunc != nil {
		return m.GetCleanupFunc(ctx, id)
	}

	return nil, ErrNotFound
}

func (m *MockSubgraphClient) GetCleanupUpdates(
	ctx context.Context, cleanupID string, first, skip int,
) ([]model.CleanupUpdate, bool, error) {
	if m.GetCleanupUpdatesFunc != nil {
		return m.GetCleanupUpdatesFunc(ctx, cleanupID, first, skip)
	}

	return nil, false, nil
}

func (m *MockSubgraphClient) GetUsers(
	ctx context.Context, search string, first, skip int,
) ([]model.User, bool, error) {
	if m.GetUsersFunc != nil {
		return m.GetUsersFunc(ctx, search, first, skip)
	}

	return nil, false, nil
}

func (m *MockSubgraphClient) GetUser(ctx context.Context, address string) (*model.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, address)
	}

	return nil, ErrNotFound
}

// MockKycClient implements KycClient with overridable functions.
type MockKycClient struct {
	GetSubmissionsFunc     func(ctx context.Context, status string, offset, limit int) ([]model.KycSubmission, error)
	GetSubmissionFunc      func(ctx context.Context, id string) (*model.KycSubmission, error)
	UpdateStatusFunc       func(ctx context.Context, id string, status int) error
	SetOrganizerStatusFunc func(ctx context.Context, id string, isOrganizer bool) error
}

func (m *MockKycClient) GetSubmissions(
	ctx context.Context, status string, offset, limit int,
) ([]model.KycSubmission, error) {
	if m.GetSubmissionsFunc != nil {
		return m.GetSubmissionsFunc(ctx, status, offset, limit)
	}

	return nil, nil
}

func (m *MockKycClient) GetSubmission(ctx context.Context, id string) (*model.KycSubmission, error) {
	if m.GetSubmissionFunc != nil {
		return m.GetSubmissionFunc(ctx, id)
	}

	return nil, ErrNotFound
}

func (m *MockKycClient) UpdateStatus(ctx context.Context, id string, status int) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}

	return nil
}

func (m *MockKycClient) SetOrganizerStatus(ctx context.Context, id string, isOrganizer bool) error {
	if m.SetOrganizerStatusFunc != nil {
		return m.SetOrganizerStatusFunc(ctx, id, isOrganizer)
	}

	return nil
}

// MockBankClient implements BankClient with overridable functions.
type MockBankClient struct {
	GetTransactionsFunc    func(ctx context.Context, status string, offset, limit int) ([]model.BankTransaction, error)
	GetExchangeRatesFunc   func(ctx context.Context) ([]model.ExchangeRate, error)
	SetExchangeRateFunc    func(ctx context.Context, currency, rate string) error
	DeleteExchangeRateFunc func(ctx context.Context, currency string) error
}

func (m *MockBankClient) GetTransactions(
	ctx context.Context, status string, offset, limit int,
) ([]model.BankTransaction, error) {
	if m.GetTransactionsFunc != nil {
		return m.GetTransactionsFunc(ctx, status, offset, limit)
	}

	return nil, nil
}

func (m *MockBankClient) GetExchangeRates(ctx context.Context) ([]model.ExchangeRate, error) {
	if m.GetExchangeRatesFunc != nil {
		return m.GetExchangeRatesFunc(ctx)
	}

	return nil, nil
}

func (m *MockBankClient) SetExchangeRate(ctx context.Context, currency, rate string) error {
	if m.SetExchangeRateFunc != nil {
		return m.SetExchangeRateFunc(ctx, currency, rate)
	}

	return nil
}

func (m *MockBankClient) DeleteExchangeRate(ctx context.Context, currency string) error {
	if m.DeleteExchangeRateFunc != nil {
		return m.DeleteExchangeRateFunc(ctx, currency)
	}

	return nil
}

// MockEmailClient implements EmailClient with an overridable function.
type MockEmailClient struct {
	GetStatusFunc func(ctx context.Context) (*model.EmailStatus, error)
}

func (m *MockEmailClient) GetStatus(ctx context.Context) (*model.EmailStatus, error) {
	if m.GetStatusFunc != nil {
		return m.GetStatusFunc(ctx)
	}

	return &model.EmailStatus{Status: "ok"}, nil
}
