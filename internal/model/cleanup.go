package model

type GetCleanupsRequest struct {
	Status    string `json:"status"`
	Organizer string `json:"organizer"`
	First     int    `json:"first"`
	Skip      int    `json:"skip"`
}

type GetCleanupsResponse struct {
	Cleanups []Cleanup `json:"cleanups"`
	HasMore  bool      `json:"has_more"`
}

type GetCleanupRequest struct {
	ID string `json:"id"`
}

type GetCleanupResponse Cleanup

type GetCleanupUpdatesRequest struct {
	CleanupID string `json:"cleanup_id"`
	First     int    `json:"first"`
	Skip      int    `json:"skip"`
}

type GetCleanupUpdatesResponse struct {
	Updates []CleanupUpdate `json:"updates"`
	HasMore bool            `json:"has_more"`
}

type PublishCleanupRequest struct {
	ID string `json:"id"`
}

type PublishCleanupResponse struct {
	TxHash string `json:"tx_hash"`
}

type UnpublishCleanupRequest struct {
	ID string `json:"id"`
}

type UnpublishCleanupResponse struct {
	TxHash string `json:"tx_hash"`
}

type UpdateCleanupStatusRequest struct {
	ID     string `json:"id"`
	Status int    `json:"status"`
}

type UpdateCleanupStatusResponse struct {
	TxHash string `json:"tx_hash"`
}

type DistributeCleanupRewardsRequest struct {
	ID           string   `json:"id"`
	Participants []string `json:"participants"`
	Amounts      []string `json:"amounts"` // human-readable, parallel to participants
}

type DistributeCleanupRewardsResponse struct {
	TxHash string `json:"tx_hash"`
}
