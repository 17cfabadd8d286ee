package entity

// ExchangeInfo describes a supported exchange for presentation layers.
type ExchangeInfo struct {
	ID       ExchangeID `json:"id"`
	Name     string     `json:"name"`
	DocsURL  string     `json:"docsUrl"`
	Features []string   `json:"features"`
}

// Credential is a copy of an exchange key pair handed out by the session store.
type Credential struct {
	APIKey    string
	APISecret string
}

// SessionInfo summarises the credential session without exposing secrets.
type SessionInfo struct {
	Active           bool    `json:"active"`
	SessionIDPrefix  string  `json:"sessionIdPrefix,omitempty"`
	ElapsedMinutes   float64 `json:"elapsedMinutes"`
	RemainingMinutes float64 `json:"remainingMinutes"`
	CredentialCount  int     `json:"credentialCount"`
}
