package entity

import "github.com/cleanmate-lab/admin-backend/pkg/enum"

type ServiceType string

var (
	ServiceKyc   = enum.New(ServiceType("kyc"))
	ServiceBank  = enum.New(ServiceType("bank"))
	ServiceEmail = enum.New(ServiceType("email"))
)

// ServiceCredential holds the API key and base URL an operator registered
// for one external service. One row per service.
type ServiceCredential struct {
	Base

	Service ServiceType `gorm:"unique"`
	BaseURL string
	APIKey  string
}
