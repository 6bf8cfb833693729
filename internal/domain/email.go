package domain

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/model"
)

type EmailDomain interface {
	GetStatus(context.Context, *model.GetEmailStatusRequest) (*model.GetEmailStatusResponse, error)
}

type emailDomain struct {
	emailClient client.EmailClient
}

func NewEmailDomain(emailClient client.EmailClient) *emailDomain {
	return &emailDomain{emailClient: emailClient}
}

// GetStatus polls the mailer, never caching: the dashboard refreshes this
// endpoint to watch the queue drain.
func (d *emailDomain) GetStatus(
	ctx context.Context, req *model.GetEmailStatusRequest,
) (*model.GetEmailStatusResponse, error) {
	status, err := d.emailClient.GetStatus(ctx)
	if err != nil {
		return nil, err
	}

	resp := model.GetEmailStatusResponse(*status)
	return &resp, nil
}
