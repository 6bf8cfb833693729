package model

type GetBankTransactionsRequest struct {
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetBankTransactionsResponse struct {
	Transactions []BankTransaction `json:"transactions"`
}

type GetExchangeRatesRequest struct{}

type GetExchangeRatesResponse struct {
	Rates []ExchangeRate `json:"rates"`
}

type SetExchangeRateRequest struct {
	Currency string `json:"currency"`
	Rate     string `json:"rate"`
}

type SetExchangeRateResponse struct{}

type DeleteExchangeRateRequest struct {
	Currency string `json:"currency"`
}

type DeleteExchangeRateResponse struct{}
