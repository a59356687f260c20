package validatesession

type Input struct {
	// Token is the raw bearer token; Authorization ("Bearer ...") is accepted as well.
	Token         string `json:"token"`
	Authorization string `json:"authorization"`
}

type Output struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Name          string `json:"name,omitempty"`
	ExpiresAt     string `json:"expiresAt,omitempty"` // ISO 8601
}
