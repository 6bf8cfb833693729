package model

type GetKycSubmissionsRequest struct {
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetKycSubmissionsResponse struct {
	Submissions []KycSubmission `json:"submissions"`
}

type GetKycSubmissionRequest struct {
	ID string `json:"id"`
}

type GetKycSubmissionResponse KycSubmission

type UpdateKycStatusRequest struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
}

type UpdateKycStatusResponse struct{}

type SetOrganizerStatusRequest struct {
	ID          string `json:"id"`
	IsOrganizer bool   `json:"is_organizer"`
}

type SetOrganizerStatusResponse struct{}
