package model

// TokenResponse represents an issued bearer credential.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Message is a simple informational response body.
type Message struct {
	Message string `json:"message"`
}
