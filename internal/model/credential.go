package model

type ServiceCredential struct {
	Service string `json:"service"`
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"` // masked everywhere except right after Set
}

type GetServiceCredentialsRequest struct{}

type GetServiceCredentialsResponse struct {
	Credentials []ServiceCredential `json:"credentials"`
}

type SetServiceCredentialRequest struct {
	Service string `json:"service"`
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

type SetServiceCredentialResponse ServiceCredential

type DeleteServiceCredentialRequest struct {
	Service string `json:"service"`
}

type DeleteServiceCredentialResponse struct{}
