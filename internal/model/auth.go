package model

// AccessToken is the JWT payload identifying an operator.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
