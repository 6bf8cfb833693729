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

type KycClient interface {
	GetSubmissions(ctx context.Context, status string, offset, limit int) ([]model.KycSubmission, error)
	GetSubmission(ctx context.Context, id string) (*model.KycSubmission, error)
	UpdateStatus(ctx context.Context, id string, status int) error
	SetOrganizerStatus(ctx context.Context, id string, isOrganizer bool) error
}

// kycClient talks to the KYC review service. That service answers list
// endpoints with a bare JSON array, no envelope.
type kycClient struct {
	cfg            config.ServiceConfigs
	credentialRepo repository.ServiceCredentialRepository
}

func NewKycClient(
	cfg config.ServiceConfigs, credentialRepo repository.ServiceCredentialRepository,
) *kycClient {
	return &kycClient{cfg: cfg, credentialRepo: credentialRepo}
}

func (c *kycClient) call(ctx context.Context, path string, args ...any) (api.Client, api.Opt, error) {
	baseURL, apiKey, err := serviceCredential(ctx, c.credentialRepo, entity.ServiceKyc, c.cfg.KycURL)
	if err != nil {
		return nil, nil, err
	}

	return api.NewGenerator(baseURL).New(path, args...), api.APIKey(apiKeyHeader, apiKey), nil
}

func (c *kycClient) GetSubmissions(
	ctx context.Context, status string, offset, limit int,
) ([]model.KycSubmission, error) {
	caller, auth, err := c.call(ctx, "/admin/submissions")
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

	resp, err := checkResponse(entity.ServiceKyc, caller.Query(query).GET(ctx, auth))
	if err != nil {
		return nil, err
	}

	array, ok := resp.Body.(api.Array)
	if !ok {
		xcontext.Logger(ctx).Errorf("Unexpected kyc submissions body: %T", resp.Body)
		return nil, errorx.New(errorx.BadResponse, "The kyc service returned an unexpected body")
	}

	submissions := make([]model.KycSubmission, 0, len(array))
	for _, item := range array {
		var submission model.KycSubmission
		if err := decodeRecord(map[string]any(item), &submission); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decode kyc submission: %v", err)
			return nil, errorx.New(errorx.BadResponse, "The kyc service returned an unexpected body")
		}

		submissions = append(submissions, submission)
	}

	return submissions, nil
}

func (c *kycClient) GetSubmission(ctx context.Context, id string) (*model.KycSubmission, error) {
	caller, auth, err := c.call(ctx, "/admin/submissions/%s", id)
	if err != nil {
		return nil, err
	}

	resp, err := checkResponse(entity.ServiceKyc, caller.GET(ctx, auth))
	if err != nil {
		return nil, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, errorx.New(errorx.BadResponse, "The kyc service returned an unexpected body")
	}

	var submission model.KycSubmission
	if err := decodeRecord(map[string]any(body), &submission); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode kyc submission: %v", err)
		return nil, errorx.New(errorx.BadResponse, "The kyc service returned an unexpected body")
	}

	return &submission, nil
}

func (c *kycClient) UpdateStatus(ctx context.Context, id string, status int) error {
	caller, auth, err := c.call(ctx, "/admin/submissions/%s/status", id)
	if err != nil {
		return err
	}

	_, err = checkResponse(entity.ServiceKyc,
		caller.Body(api.JSON{"status": status}).POST(ctx, auth))
	return err
}

func (c *kycClient) SetOrganizerStatus(ctx context.Context, id string, isOrganizer bool) error {
	caller, auth, err := c.call(ctx, "/admin/submissions/%s/organizer", id)
	if err != nil {
		return err
	}

	_, err = checkResponse(entity.ServiceKyc,
		caller.Body(api.JSON{"isOrganizer": isOrganizer}).POST(ctx, auth))
	return err
}
