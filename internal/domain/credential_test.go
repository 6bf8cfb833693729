package domain

import (
	"testing"

	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestSetServiceCredential(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewCredentialDomain(repository.NewServiceCredentialRepository())

	resp, err := domain.Set(ctx, &model.SetServiceCredentialRequest{
		Service: "KYC",
		BaseURL: "https://kyc.example.com/",
		APIKey:  " secret-api-key ",
	})
	require.NoError(t, err)

	// Set echoes the key unmasked, with inputs normalized.
	require.Equal(t, "kyc", resp.Service)
	require.Equal(t, "https://kyc.example.com", resp.BaseURL)
	require.Equal(t, "secret-api-key", resp.APIKey)

	_, err = domain.Set(ctx, &model.SetServiceCredentialRequest{
		Service: "unknown", APIKey: "key",
	})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)

	_, err = domain.Set(ctx, &model.SetServiceCredentialRequest{
		Service: "kyc", APIKey: "   ",
	})
	require.Error(t, err)
}

func TestGetServiceCredentialsMasksKeys(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewCredentialDomain(repository.NewServiceCredentialRepository())

	_, err := domain.Set(ctx, &model.SetServiceCredentialRequest{
		Service: "kyc", BaseURL: "https://kyc.example.com", APIKey: "secret-api-key",
	})
	require.NoError(t, err)
	_, err = domain.Set(ctx, &model.SetServiceCredentialRequest{
		Service: "bank", BaseURL: "https://bank.example.com", APIKey: "abcd",
	})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetServiceCredentialsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Credentials, 2)

	// Sorted by service name, keys never returned in full.
	require.Equal(t, "bank", resp.Credentials[0].Service)
	require.Equal(t, "****", resp.Credentials[0].APIKey)
	require.Equal(t, "kyc", resp.Credentials[1].Service)
	require.Equal(t, "secr**********", resp.Credentials[1].APIKey)
}

func TestSetServiceCredentialOverwrites(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewCredentialDomain(repository.NewServiceCredentialRepository())

	for _, key := range []string{"first-key", "second-key"} {
		_, err := domain.Set(ctx, &model.SetServiceCredentialRequest{
			Service: "email", APIKey: key,
		})
		require.NoError(t, err)
	}

	resp, err := domain.GetList(ctx, &model.GetServiceCredentialsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Credentials, 1)
	require.Equal(t, "seco******", resp.Credentials[0].APIKey)
}

func TestDeleteServiceCredential(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewCredentialDomain(repository.NewServiceCredentialRepository())

	_, err := domain.Delete(ctx, &model.DeleteServiceCredentialRequest{Service: "bank"})
	require.Error(t, err)
	require.Equal(t, errorx.NotFound, err.(errorx.Error).Code)

	_, err = domain.Set(ctx, &model.SetServiceCredentialRequest{
		Service: "bank", APIKey: "key-to-delete",
	})
	require.NoError(t, err)

	_, err = domain.Delete(ctx, &model.DeleteServiceCredentialRequest{Service: "bank"})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetServiceCredentialsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.Credentials)
}
