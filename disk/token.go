package disk

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Credentials is the application registration, loaded from a JSON file of
// the form {"clientId": "...", "clientSecret": "..."}.
type Credentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// LoadCredentials reads an application registration from a JSON file.
func LoadCredentials(path string) (Credentials, error) {
	credentials := Credentials{}

	b, err := os.ReadFile(path)
	if err != nil {
		return credentials, err
	}

	if err := json.Unmarshal(b, &credentials); err != nil {
		return credentials, fmt.Errorf("invalid credentials file %s (%v)", path, err)
	}

	if credentials.ClientID == "" || credentials.ClientSecret == "" {
		return credentials, fmt.Errorf("credentials file %s is missing the client id/secret", path)
	}

	return credentials, nil
}

// Token is a short-lived access credential, persisted between runs as a
// JSON token cache.
type Token struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Valid returns true if the token can still be used to authorize API calls.
// A token past its expiry triggers re-authentication before use.
func (t Token) Valid() bool {
	return t.AccessToken != "" && time.Now().Before(t.ExpiresAt)
}

func readToken(path string) (Token, error) {
	token := Token{}

	f, err := os.Open(path)
	if err != nil {
		return token, err
	}

	defer f.Close()

	err = json.NewDecoder(f).Decode(&token)

	return token, err
}

func writeToken(path string, token Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache token to %s (%v)", path, err)
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
