package client

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/config"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/api"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
)

type EmailClient interface {
	GetStatus(ctx context.Context) (*model.EmailStatus, error)
}

// emailClient talks to the notification mailer. Its status endpoint answers
// a flat JSON object without any envelope.
type emailClient struct {
	cfg            config.ServiceConfigs
	credentialRepo repository.ServiceCredentialRepository
}

func NewEmailClient(
	cfg config.ServiceConfigs, credentialRepo repository.ServiceCredentialRepository,
) *emailClient {
	return &emailClient{cfg: cfg, credentialRepo: credentialRepo}
}

func (c *emailClient) GetStatus(ctx context.Context) (*model.EmailStatus, error) {
	baseURL, apiKey, err := serviceCredential(ctx, c.credentialRepo, entity.ServiceEmail, c.cfg.EmailURL)
	if err != nil {
		return nil, err
	}

	resp, err := checkResponse(entity.ServiceEmail,
		api.NewGenerator(baseURL).New("/admin/status").GET(ctx, api.APIKey(apiKeyHeader, apiKey)))
	if err != nil {
		return nil, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, errorx.New(errorx.BadResponse, "The email service returned an unexpected body")
	}

	var status model.EmailStatus
	if err := decodeRecord(map[string]any(body), &status); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode email status: %v", err)
		return nil, errorx.New(errorx.BadResponse, "The email service returned an unexpected body")
	}

	return &status, nil
}
