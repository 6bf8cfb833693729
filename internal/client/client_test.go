package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cleanmate-lab/admin-backend/config"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupCredential(
	t *testing.T, ctx context.Context, service entity.ServiceType, baseURL string,
) repository.ServiceCredentialRepository {
	repo := repository.NewServiceCredentialRepository()
	err := repo.Upsert(ctx, &entity.ServiceCredential{
		Base:    entity.Base{ID: uuid.NewString()},
		Service: service,
		BaseURL: baseURL,
		APIKey:  "test-key",
	})
	require.NoError(t, err)
	return repo
}

func TestKycClientGetSubmissions(t *testing.T) {
	ctx := testutil.MockContext()

	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		// The kyc service answers a bare array.
		w.Write([]byte(`[
			{"id": "k1", "userAddress": "0xAA", "fullName": "Alice", "status": 1, "isOrganizer": false},
			{"id": "k2", "userAddress": "0xBB", "fullName": "Bob", "status": 2, "isOrganizer": true}
		]`))
	}))
	defer server.Close()

	repo := setupCredential(t, ctx, entity.ServiceKyc, server.URL)
	kyc := NewKycClient(config.ServiceConfigs{}, repo)

	submissions, err := kyc.GetSubmissions(ctx, "", 0, 10)
	require.NoError(t, err)
	require.Len(t, submissions, 2)
	require.Equal(t, "test-key", gotKey)
	require.Equal(t, "Alice", submissions[0].FullName)
	require.Equal(t, 1, submissions[0].Status)
	require.True(t, submissions[1].IsOrganizer)
}

func TestKycClientMissingCredential(t *testing.T) {
	ctx := testutil.MockContext()
	kyc := NewKycClient(config.ServiceConfigs{}, repository.NewServiceCredentialRepository())

	_, err := kyc.GetSubmissions(ctx, "", 0, 10)
	require.Error(t, err)

	errx, ok := err.(errorx.Error)
	require.True(t, ok)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

func TestBankClientEnvelope(t *testing.T) {
	ctx := testutil.MockContext()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": [
			{"id": "t1", "userAddress": "0xaa", "amount": "15.5", "currency": "USD", "status": "done"}
		]}`))
	}))
	defer server.Close()

	repo := setupCredential(t, ctx, entity.ServiceBank, server.URL)
	bank := NewBankClient(config.ServiceConfigs{}, repo)

	transactions, err := bank.GetTransactions(ctx, "", 0, 10)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	require.Equal(t, "15.5", transactions[0].Amount)
}

func TestBankClientEnvelopeFailure(t *testing.T) {
	ctx := testutil.MockContext()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "message": "rate is locked"}`))
	}))
	defer server.Close()

	repo := setupCredential(t, ctx, entity.ServiceBank, server.URL)
	bank := NewBankClient(config.ServiceConfigs{}, repo)

	err := bank.SetExchangeRate(ctx, "USD", "1.0")
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate is locked")
}

func TestBankClientErrorMessagePassthrough(t *testing.T) {
	ctx := testutil.MockContext()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "unknown currency XYZ"}`))
	}))
	defer server.Close()

	repo := setupCredential(t, ctx, entity.ServiceBank, server.URL)
	bank := NewBankClient(config.ServiceConfigs{}, repo)

	err := bank.DeleteExchangeRate(ctx, "XYZ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown currency XYZ")
}

func TestEmailClientFlatBody(t *testing.T) {
	ctx := testutil.MockContext()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "healthy", "queueSize": 3, "lastSentAt": "2024-05-01T10:00:00Z"}`))
	}))
	defer server.Close()

	repo := setupCredential(t, ctx, entity.ServiceEmail, server.URL)
	email := NewEmailClient(config.ServiceConfigs{}, repo)

	status, err := email.GetStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, "healthy", status.Status)
	require.Equal(t, 3, status.QueueSize)
}

func TestSubgraphNormalization(t *testing.T) {
	ctx := testutil.MockContext()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// rewardAmount arrives as a bare bigint, submittedAt as a number,
		// user as a checksummed address.
		w.Write([]byte(`{"data": {"streakSubmissions": [{
			"id": "42",
			"user": "0xAbCd000000000000000000000000000000000001",
			"status": "0",
			"rewardAmount": 10000000000000000000,
			"submittedAt": 1714558800
		}]}}`))
	}))
	defer server.Close()

	subgraph := NewSubgraphClient(config.SubgraphConfigs{URL: server.URL, PageSize: 10})

	submissions, hasMore, err := subgraph.GetStreakSubmissions(ctx, StreakSubmissionFilter{First: 5})
	require.NoError(t, err)
	require.False(t, hasMore)
	require.Len(t, submissions, 1)
	require.Equal(t, "42", submissions[0].ID)
	require.Equal(t, "0xabcd000000000000000000000000000000000001", submissions[0].User)
	require.Equal(t, 0, submissions[0].Status)
	require.Equal(t, "10000000000000000000", submissions[0].RewardAmount)
	require.Equal(t, "1714558800", submissions[0].SubmittedAt)
}
