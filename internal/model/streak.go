package model

// Review actions accepted by /reviewStreak.
const (
	ReviewActionApprove = "approve"
	ReviewActionReject  = "reject"
)

type GetStreakSubmissionsRequest struct {
	Status string `json:"status"` // pending | approved | rejected | empty for all
	User   string `json:"user"`
	First  int    `json:"first"`
	Skip   int    `json:"skip"`
}

type GetStreakSubmissionsResponse struct {
	Submissions []StreakSubmission `json:"submissions"`
	HasMore     bool               `json:"has_more"`
}

type GetStreakSubmissionRequest struct {
	ID string `json:"id"`
}

type GetStreakSubmissionResponse StreakSubmission

type ReviewStreakRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Amount string `json:"amount"` // approve only, human-readable decimal
	Reason string `json:"reason"` // reject only
}

type ReviewStreakResponse struct {
	TxHash string `json:"tx_hash"`
}
