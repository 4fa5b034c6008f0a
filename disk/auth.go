package disk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Authenticate runs the interactive authorisation flow: a listener is
// started on the local redirect address, the system browser is pointed at
// the authorize endpoint, and the flow suspends until the redirect delivers
// an authorization code, which is then exchanged for tokens. The resulting
// token is persisted to the token cache. The listener lives only for the
// duration of the call.
//
// There is no timeout on the wait - cancel ctx to abandon the flow.
func (c *Client) Authenticate(ctx context.Context) error {
	state := uuid.NewString()
	authorised := make(chan string, 1)

	listener, err := net.Listen("tcp", c.listen)
	if err != nil {
		return fmt.Errorf("unable to listen for the authorisation redirect on %s (%v)", c.listen, err)
	}

	redirect := fmt.Sprintf("http://%s/", listener.Addr().String())

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		if rq.FormValue("state") != state {
			http.Error(w, "invalid state", http.StatusBadRequest)
			return
		}

		if code := rq.FormValue("code"); code != "" {
			fmt.Fprintln(w, "Authorised - you can close this window")

			// a refresh of the authorised page must not block shutdown
			select {
			case authorised <- code:
			default:
			}
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		srv.Serve(listener)
	}()

	defer srv.Shutdown(context.Background())

	authURL := fmt.Sprintf("%s?response_type=code&client_id=%s&redirect_uri=%s&state=%s",
		c.authURL,
		url.QueryEscape(c.credentials.ClientID),
		url.QueryEscape(redirect),
		url.QueryEscape(state))

	if err := c.browse(authURL); err != nil {
		fmt.Printf("Could not open the authorisation page in your browser - please open %s manually\n", authURL)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()

	case code := <-authorised:
		token, err := c.exchange(ctx, code, redirect)
		if err != nil {
			return err
		}

		c.token = token

		return writeToken(c.tokens, token)
	}
}

// exchange trades an authorization code for access+refresh tokens at the
// token endpoint, authenticating with the client id/secret.
func (c *Client) exchange(ctx context.Context, code, redirect string) (Token, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirect)

	rq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, err
	}

	rq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rq.SetBasicAuth(c.credentials.ClientID, c.credentials.ClientSecret)

	response, err := c.client.Do(rq)
	if err != nil {
		return Token{}, err
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return Token{}, err
	}

	if response.StatusCode != http.StatusOK {
		return Token{}, fmt.Errorf("token exchange failed with status %v (%s)", response.StatusCode, string(body))
	}

	reply := struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}{}

	if err := json.Unmarshal(body, &reply); err != nil {
		return Token{}, fmt.Errorf("invalid token response (%v)", err)
	}

	return Token{
		AccessToken:  reply.AccessToken,
		RefreshToken: reply.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(reply.ExpiresIn) * time.Second),
	}, nil
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()

	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()

	default:
		return exec.Command("xdg-open", url).Start()
	}
}
