package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.sheets")

	token := oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}

	saveToken(path, &token)

	cached, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("Unexpected error reading cached token (%v)", err)
	}

	if cached.AccessToken != token.AccessToken || cached.RefreshToken != token.RefreshToken {
		t.Errorf("Incorrect cached token\n   expected: %v\n   got:      %v", token, *cached)
	}

	if !cached.Expiry.Equal(token.Expiry) {
		t.Errorf("Incorrect cached expiry\n   expected: %v\n   got:      %v", token.Expiry, cached.Expiry)
	}
}

func TestTokenFromFileWithTruncatedCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.sheets")

	if err := os.WriteFile(path, []byte(`{"access_token": "acc`), 0600); err != nil {
		t.Fatalf("Unexpected error writing token cache (%v)", err)
	}

	if _, err := tokenFromFile(path); err == nil {
		t.Errorf("Expected error reading truncated token cache, got %v", err)
	}
}
