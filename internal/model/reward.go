package model

type CartItem struct {
	SubmissionID string `json:"submission_id"`
	Amount       string `json:"amount"` // human-readable, editable before distribution
	User         string `json:"user"`
	Metadata     string `json:"metadata"`
	SubmittedAt  string `json:"submitted_at"`
}

type GetCartRequest struct{}

type GetCartResponse struct {
	Items []CartItem `json:"items"`
}

type AddToCartRequest struct {
	SubmissionID string `json:"submission_id"`
}

type AddToCartResponse struct {
	Items []CartItem `json:"items"`
}

type RemoveFromCartRequest struct {
	SubmissionID string `json:"submission_id"`
}

type RemoveFromCartResponse struct {
	Items []CartItem `json:"items"`
}

type UpdateCartAmountRequest struct {
	SubmissionID string `json:"submission_id"`
	Amount       string `json:"amount"`
}

type UpdateCartAmountResponse struct {
	Items []CartItem `json:"items"`
}

type ClearCartRequest struct{}

type ClearCartResponse struct{}

type DistributeStreakRewardsRequest struct{}

type DistributeStreakRewardsResponse struct {
	TxHash       string   `json:"tx_hash"`
	Distributed  []string `json:"distributed"`
	SkippedItems []string `json:"skipped_items,omitempty"`
}

type SendRewardsRequest struct {
	Recipients  []string `json:"recipients"`
	Amounts     []string `json:"amounts"` // human-readable, parallel to recipients
	RewardTypes []int    `json:"reward_types"`
}

type SendRewardsResponse struct {
	TxHash string `json:"tx_hash"`
}
