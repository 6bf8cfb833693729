package domain

import (
	"context"

	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
)

type KycDomain interface {
	GetSubmissions(context.Context, *model.GetKycSubmissionsRequest) (*model.GetKycSubmissionsResponse, error)
	GetSubmission(context.Context, *model.GetKycSubmissionRequest) (*model.GetKycSubmissionResponse, error)
	UpdateStatus(context.Context, *model.UpdateKycStatusRequest) (*model.UpdateKycStatusResponse, error)
	SetOrganizerStatus(context.Context, *model.SetOrganizerStatusRequest) (*model.SetOrganizerStatusResponse, error)
}

type kycDomain struct {
	kycClient client.KycClient
	cache     *common.QueryCache
}

func NewKycDomain(kycClient client.KycClient, cache *common.QueryCache) *kycDomain {
	return &kycDomain{kycClient: kycClient, cache: cache}
}

func (d *kycDomain) GetSubmissions(
	ctx context.Context, req *model.GetKycSubmissionsRequest,
) (*model.GetKycSubmissionsResponse, error) {
	offset, limit, err := paging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	cacheKey := common.ListKey(common.KeyKycSubmissions, req.Status, offset, limit)
	var cached model.GetKycSubmissionsResponse
	if d.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	submissions, err := d.kycClient.GetSubmissions(ctx, req.Status, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &model.GetKycSubmissionsResponse{Submissions: submissions}
	d.cache.Set(ctx, cacheKey, resp)
	return resp, nil
}

func (d *kycDomain) GetSubmission(
	ctx context.Context, req *model.GetKycSubmissionRequest,
) (*model.GetKycSubmissionResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	submission, err := d.kycClient.GetSubmission(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	resp := model.GetKycSubmissionResponse(*submission)
	return &resp, nil
}

func (d *kycDomain) UpdateStatus(
	ctx context.Context, req *model.UpdateKycStatusRequest,
) (*model.UpdateKycStatusResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	if req.Status < model.KycStatusNotStarted || req.Status > model.KycStatusRejected {
		return nil, errorx.New(errorx.BadRequest, "Unknown status %d", req.Status)
	}

	if err := d.kycClient.UpdateStatus(ctx, req.ID, req.Status); err != nil {
		return nil, err
	}

	d.cache.Invalidate(ctx, common.KeyKycSubmissions)
	return &model.UpdateKycStatusResponse{}, nil
}

func (d *kycDomain) SetOrganizerStatus(
	ctx context.Context, req *model.SetOrganizerStatusRequest,
) (*model.SetOrganizerStatusResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty id")
	}

	if err := d.kycClient.SetOrganizerStatus(ctx, req.ID, req.IsOrganizer); err != nil {
		return nil, err
	}

	d.cache.Invalidate(ctx, common.KeyKycSubmissions)
	return &model.SetOrganizerStatusResponse{}, nil
}
