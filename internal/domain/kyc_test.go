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

func TestGetKycSubmissionsCachesTheWindow(t *testing.T) {
	ctx := testutil.MockContext()
	calls := 0
	kycClient := &client.MockKycClient{
		GetSubmissionsFunc: func(ctx context.Context, status string, offset, limit int) ([]model.KycSubmission, error) {
			calls++
			return []model.KycSubmission{{ID: "kyc-1", Status: model.KycStatusPending}}, nil
		},
	}
	domain := NewKycDomain(kycClient, common.NewQueryCache(xredis.NewMockClient()))

	for i := 0; i < 3; i++ {
		resp, err := domain.GetSubmissions(ctx, &model.GetKycSubmissionsRequest{Status: "pending"})
		require.NoError(t, err)
		require.Len(t, resp.Submissions, 1)
	}
	require.Equal(t, 1, calls)

	// A different window misses the cache.
	_, err := domain.GetSubmissions(ctx, &model.GetKycSubmissionsRequest{
		Status: "pending", Offset: 10,
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestUpdateKycStatusInvalidatesCache(t *testing.T) {
	ctx := testutil.MockContext()
	calls := 0
	var updated []int
	kycClient := &client.MockKycClient{
		GetSubmissionsFunc: func(ctx context.Context, status string, offset, limit int) ([]model.KycSubmission, error) {
			calls++
			return nil, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id string, status int) error {
			updated = append(updated, status)
			return nil
		},
	}
	domain := NewKycDomain(kycClient, common.NewQueryCache(xredis.NewMockClient()))

	_, err := domain.GetSubmissions(ctx, &model.GetKycSubmissionsRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	_, err = domain.UpdateStatus(ctx, &model.UpdateKycStatusRequest{
		ID: "kyc-1", Status: model.KycStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, []int{model.KycStatusApproved}, updated)

	_, err = domain.GetSubmissions(ctx, &model.GetKycSubmissionsRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestUpdateKycStatusValidation(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewKycDomain(&client.MockKycClient{}, common.NewQueryCache(xredis.NewMockClient()))

	_, err := domain.UpdateStatus(ctx, &model.UpdateKycStatusRequest{Status: model.KycStatusApproved})
	require.Error(t, err)

	for _, status := range []int{-1, model.KycStatusRejected + 1} {
		_, err := domain.UpdateStatus(ctx, &model.UpdateKycStatusRequest{ID: "kyc-1", Status: status})
		require.Error(t, err)
	}
}

func TestSetOrganizerStatus(t *testing.T) {
	ctx := testutil.MockContext()
	var flagged map[string]bool
	kycClient := &client.MockKycClient{
		SetOrganizerStatusFunc: func(ctx context.Context, id string, isOrganizer bool) error {
			flagged = map[string]bool{id: isOrganizer}
			return nil
		},
	}
	domain := NewKycDomain(kycClient, common.NewQueryCache(xredis.NewMockClient()))

	_, err := domain.SetOrganizerStatus(ctx, &model.SetOrganizerStatusRequest{
		ID: "kyc-1", IsOrganizer: true,
	})
	require.NoError(t, err)
	require.Equal(t, map[string]bool{"kyc-1": true}, flagged)

	_, err = domain.SetOrganizerStatus(ctx, &model.SetOrganizerStatusRequest{IsOrganizer: true})
	require.Error(t, err)
}
