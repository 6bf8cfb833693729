package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type CredentialDomain interface {
	GetList(context.Context, *model.GetServiceCredentialsRequest) (*model.GetServiceCredentialsResponse, error)
	Set(context.Context, *model.SetServiceCredentialRequest) (*model.SetServiceCredentialResponse, error)
	Delete(context.Context, *model.DeleteServiceCredentialRequest) (*model.DeleteServiceCredentialResponse, error)
}

type credentialDomain struct {
	credentialRepo repository.ServiceCredentialRepository
}

func NewCredentialDomain(credentialRepo repository.ServiceCredentialRepository) *credentialDomain {
	return &credentialDomain{credentialRepo: credentialRepo}
}

func parseService(service string) (entity.ServiceType, error) {
	parsed := entity.ServiceType(strings.ToLower(strings.TrimSpace(service)))
	switch parsed {
	case entity.ServiceKyc, entity.ServiceBank, entity.ServiceEmail:
		return parsed, nil
	}

	return "", errorx.New(errorx.BadRequest, "Unknown service %s", service)
}

// maskAPIKey hides everything but a short prefix, enough for the operator
// to recognize which key is registered.
func maskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}

	return key[:4] + strings.Repeat("*", len(key)-4)
}

func (d *credentialDomain) GetList(
	ctx context.Context, req *model.GetServiceCredentialsRequest,
) (*model.GetServiceCredentialsResponse, error) {
	credentials, err := d.credentialRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load service credentials: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetServiceCredentialsResponse{}
	for _, credential := range credentials {
		resp.Credentials = append(resp.Credentials, model.ServiceCredential{
			Service: string(credential.Service),
			BaseURL: credential.BaseURL,
			APIKey:  maskAPIKey(credential.APIKey),
		})
	}

	slices.SortFunc(resp.Credentials, func(a, b model.ServiceCredential) bool {
		return a.Service < b.Service
	})

	return resp, nil
}

// Set is the only endpoint that ever echoes the key back unmasked, so the
// operator can verify what was stored.
func (d *credentialDomain) Set(
	ctx context.Context, req *model.SetServiceCredentialRequest,
) (*model.SetServiceCredentialResponse, error) {
	service, err := parseService(req.Service)
	if err != nil {
		return nil, err
	}

	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty API key")
	}

	credential := &entity.ServiceCredential{
		Base:    entity.Base{ID: uuid.NewString()},
		Service: service,
		BaseURL: strings.TrimSuffix(strings.TrimSpace(req.BaseURL), "/"),
		APIKey:  apiKey,
	}
	if err := d.credentialRepo.Upsert(ctx, credential); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store the %s credential: %v", service, err)
		return nil, errorx.Unknown
	}

	return &model.SetServiceCredentialResponse{
		Service: string(service),
		BaseURL: credential.BaseURL,
		APIKey:  apiKey,
	}, nil
}

func (d *credentialDomain) Delete(
	ctx context.Context, req *model.DeleteServiceCredentialRequest,
) (*model.DeleteServiceCredentialResponse, error) {
	service, err := parseService(req.Service)
	if err != nil {
		return nil, err
	}

	if err := d.credentialRepo.Delete(ctx, service); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found a credential for %s", service)
		}

		xcontext.Logger(ctx).Errorf("Cannot delete the %s credential: %v", service, err)
		return nil, errorx.Unknown
	}

	return &model.DeleteServiceCredentialResponse{}, nil
}
