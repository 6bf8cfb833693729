package model

import "time"

type BlockchainTransaction struct {
	TxHash    string    `json:"tx_hash"`
	Chain     string    `json:"chain"`
	Purpose   string    `json:"purpose"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type GetTransactionsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetTransactionsResponse struct {
	Transactions []BlockchainTransaction `json:"transactions"`
}
