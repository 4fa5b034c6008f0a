package commands

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	SHEETS = "https://www.googleapis.com/auth/spreadsheets"
	DRIVE  = "https://www.googleapis.com/auth/drive.metadata.readonly"
)

// authorize builds an authenticated HTTP client for the given scope,
// reusing the token cached under the tokens directory and falling back to
// the interactive browser flow.
func authorize(credentials, scope, tokens string) (*http.Client, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	config, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(tokens, 0770); err != nil {
		return nil, err
	}

	// ... per-scope tokens file, named after the credentials file
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	cache := ""

	switch {
	case strings.HasPrefix(scope, SHEETS):
		cache = filepath.Join(tokens, fmt.Sprintf("%s.sheets", name))

	case strings.HasPrefix(scope, DRIVE):
		cache = filepath.Join(tokens, fmt.Sprintf("%s.drive", name))

	default:
		cache = filepath.Join(tokens, fmt.Sprintf("%s.tokens", name))
	}

	return getClient(cache, config)
}

// getClient retrieves a cached token (or gets one from the web), saves it,
// and returns the generated client.
func getClient(tokens string, config *oauth2.Config) (*http.Client, error) {
	token, err := tokenFromFile(tokens)
	if err != nil {
		if token, err = getTokenFromWeb(config); err != nil {
			return nil, err
		}

		saveToken(tokens, token)
	}

	return config.Client(context.Background(), token), nil
}

// getTokenFromWeb runs the interactive flow: a listener on localhost
// captures the redirect, the browser is pointed at the consent page and the
// returned code is exchanged for a token. Ctrl-C abandons the wait.
func getTokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	state := uuid.NewString()
	authorised := make(chan string, 1)

	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return nil, err
	}

	config.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())

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

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	url := config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	if err := browse(url); err != nil {
		fmt.Printf("Could not open the authorisation page in your browser - please open %s manually\n", url)
	}

	select {
	case <-interrupt:
		return nil, fmt.Errorf("authorisation cancelled")

	case code := <-authorised:
		return config.Exchange(context.TODO(), code)
	}
}

// tokenFromFile retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)

	return token, err
}

// saveToken caches a token to a file path.
func saveToken(path string, token *oauth2.Token) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		warnf("unable to cache oauth token (%v)", err)
		return
	}

	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		warnf("unable to cache oauth token (%v)", err)
	}
}

func browse(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()

	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()

	default:
		return exec.Command("xdg-open", url).Start()
	}
}
