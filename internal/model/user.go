package model

type GetUsersRequest struct {
	Search string `json:"search"` // address prefix filter
	First  int    `json:"first"`
	Skip   int    `json:"skip"`
}

type GetUsersResponse struct {
	Users   []User `json:"users"`
	HasMore bool   `json:"has_more"`
}

type GetUserRequest struct {
	Address string `json:"address"`
}

type GetUserResponse User

type SetUserReferralCodeRequest struct {
	Address      string `json:"address"`
	ReferralCode string `json:"referral_code"`
}

type SetUserReferralCodeResponse struct {
	TxHash string `json:"tx_hash"`
}
