package disk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValid(t *testing.T) {
	assert.False(t, Token{}.Valid())
	assert.False(t, Token{AccessToken: "tok"}.Valid())
	assert.False(t, Token{AccessToken: "tok", ExpiresAt: time.Now().Add(-time.Minute)}.Valid())
	assert.True(t, Token{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}.Valid())
}

func TestTokenCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")

	token := Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second),
	}

	require.NoError(t, writeToken(path, token))

	cached, err := readToken(path)
	require.NoError(t, err)

	assert.Equal(t, token.AccessToken, cached.AccessToken)
	assert.Equal(t, token.RefreshToken, cached.RefreshToken)
	assert.True(t, token.ExpiresAt.Equal(cached.ExpiresAt))
	assert.True(t, cached.Valid())
}

func TestReadTokenWithMissingFile(t *testing.T) {
	_, err := readToken(filepath.Join(t.TempDir(), "no-such-file.json"))
	assert.Error(t, err)
}

func TestLoadCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"clientId": "id", "clientSecret": "secret"}`), 0600))

	credentials, err := LoadCredentials(path)
	require.NoError(t, err)

	assert.Equal(t, "id", credentials.ClientID)
	assert.Equal(t, "secret", credentials.ClientSecret)
}

func TestLoadCredentialsWithMissingSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"clientId": "id"}`), 0600))

	_, err := LoadCredentials(path)
	assert.Error(t, err)
}

func TestLoadCredentialsWithInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0600))

	_, err := LoadCredentials(path)
	assert.Error(t, err)
}
