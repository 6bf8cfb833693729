package model

type GetEmailStatusRequest struct{}

type GetEmailStatusResponse EmailStatus
