package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/api"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// apiKeyHeader is the header every external admin service authenticates on.
const apiKeyHeader = "x-api-key"

// serviceCredential resolves the stored credential of a service, falling
// back to the configured base URL when the stored one is empty. A missing
// credential is an operator-facing setup error, not an internal one.
func serviceCredential(
	ctx context.Context,
	credentialRepo repository.ServiceCredentialRepository,
	service entity.ServiceType,
	defaultURL string,
) (string, string, error) {
	credential, err := credentialRepo.Get(ctx, service)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", errorx.New(errorx.Unauthenticated,
				"Please register an API key for the %s service first", service)
		}

		xcontext.Logger(ctx).Errorf("Cannot load the %s credential: %v", service, err)
		return "", "", errorx.Unknown
	}

	baseURL := credential.BaseURL
	if baseURL == "" {
		baseURL = defaultURL
	}

	return baseURL, credential.APIKey, nil
}

// checkResponse applies the uniform error translation: no response means a
// connectivity problem, a non-2xx response surfaces the service's own
// message verbatim when it has one.
func checkResponse(service entity.ServiceType, resp *api.Response, err error) (*api.Response, error) {
	if err != nil {
		return nil, errorx.New(errorx.Unavailable, "Cannot reach the %s service", service)
	}

	if resp.Code < 200 || resp.Code > 299 {
		if body, ok := resp.Body.(api.JSON); ok {
			if msg, err := body.GetString("message"); err == nil && msg != "" {
				return nil, errorx.New(errorx.BadResponse, "%s", msg)
			}
		}

		return nil, errorx.New(errorx.BadResponse,
			"The %s service returned %s", service, http.StatusText(resp.Code))
	}

	return resp, nil
}

// decodeRecord maps a loosely-typed JSON body into a canonical record.
func decodeRecord(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           output,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
