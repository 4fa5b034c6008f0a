// Package disk is a client for the cloud drive's REST API: it authenticates
// once per process (reusing a file-backed token cache between runs),
// downloads a file at a disk path into memory and uploads it back. Transfers
// go through temporary signed links resolved with one API call each.
package disk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/deptworks/sheetkit/xlsx"
)

const (
	DefaultAPI      = "https://cloud-api.yandex.net/v1/disk"
	DefaultAuthURL  = "https://oauth.yandex.ru/authorize"
	DefaultTokenURL = "https://oauth.yandex.ru/token"
	DefaultListen   = "localhost:8099"
)

// ServerError is returned when the service responds with something that is
// not a usable link - a transient service problem rather than a caller
// error. It carries the raw response body.
type ServerError struct {
	Op   string
	Body string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server communication error on %s: %s", e.Op, e.Body)
}

// link is the service's temporary signed link response.
type link struct {
	Href      string `json:"href"`
	Method    string `json:"method"`
	Templated bool   `json:"templated"`
}

// Client carries the authentication state for a single storage account.
// State is explicit and per-instance - there are no process-wide tokens.
// A Client serializes its own calls and is not safe for concurrent use.
type Client struct {
	credentials Credentials
	tokens      string
	token       Token

	client   *http.Client
	api      string
	authURL  string
	tokenURL string
	listen   string
	browse   func(string) error
}

type Option func(*Client)

// WithHTTPClient replaces the transport used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.client = c }
}

// WithAPI overrides the REST API base URL.
func WithAPI(api string) Option {
	return func(client *Client) { client.api = api }
}

// WithAuthEndpoints overrides the OAuth authorize and token endpoints.
func WithAuthEndpoints(authURL, tokenURL string) Option {
	return func(client *Client) {
		client.authURL = authURL
		client.tokenURL = tokenURL
	}
}

// WithListener overrides the local address used to capture the OAuth
// redirect.
func WithListener(addr string) Option {
	return func(client *Client) { client.listen = addr }
}

// WithToken seeds the in-memory token, bypassing the token cache and the
// interactive flow for as long as the token stays valid.
func WithToken(token Token) Option {
	return func(client *Client) { client.token = token }
}

// WithBrowser replaces the system-browser launcher used during the
// interactive authorisation flow.
func WithBrowser(browse func(string) error) Option {
	return func(client *Client) { client.browse = browse }
}

// NewClient creates a storage client. tokens is the path of the JSON token
// cache consulted (and written) by the authentication flow.
func NewClient(credentials Credentials, tokens string, opts ...Option) *Client {
	client := Client{
		credentials: credentials,
		tokens:      tokens,
		client:      http.DefaultClient,
		api:         DefaultAPI,
		authURL:     DefaultAuthURL,
		tokenURL:    DefaultTokenURL,
		listen:      DefaultListen,
		browse:      openBrowser,
	}

	for _, opt := range opts {
		opt(&client)
	}

	return &client
}

// Download fetches the file at the given disk path into memory.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("path", path)

	l, err := c.resolveLink(ctx, "download", query)
	if err != nil {
		return nil, err
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, l.Href, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.client.Do(rq)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("download of %s failed with status %v", path, response.StatusCode)
	}

	return io.ReadAll(response.Body)
}

// Upload stores the byte stream at the given disk path, overwriting any
// existing file.
func (c *Client) Upload(ctx context.Context, path string, r io.Reader) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}

	query := url.Values{}
	query.Set("path", path)
	query.Set("overwrite", "true")

	l, err := c.resolveLink(ctx, "upload", query)
	if err != nil {
		return err
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodPut, l.Href, r)
	if err != nil {
		return err
	}

	response, err := c.client.Do(rq)
	if err != nil {
		return err
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("upload of %s failed with status %v", path, response.StatusCode)
	}

	return nil
}

// DownloadDocument fetches a spreadsheet from the drive and opens it as an
// in-memory document.
func (c *Client) DownloadDocument(ctx context.Context, path string) (*xlsx.Document, error) {
	b, err := c.Download(ctx, path)
	if err != nil {
		return nil, err
	}

	return xlsx.OpenBytes(b)
}

// UploadDocument serializes a document and stores it at the given disk path.
func (c *Client) UploadDocument(ctx context.Context, path string, document *xlsx.Document) error {
	b, err := document.Bytes()
	if err != nil {
		return err
	}

	return c.Upload(ctx, path, bytes.NewReader(b))
}

// resolveLink asks the API for a temporary signed link for the operation.
func (c *Client) resolveLink(ctx context.Context, op string, query url.Values) (*link, error) {
	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/resources/%s?%s", c.api, op, query.Encode()), nil)
	if err != nil {
		return nil, err
	}

	rq.Header.Set("Authorization", fmt.Sprintf("OAuth %s", c.token.AccessToken))

	response, err := c.client.Do(rq)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s link request failed with status %v (%s)", op, response.StatusCode, string(body))
	}

	l := link{}
	if err := json.Unmarshal(body, &l); err != nil || l.Href == "" {
		return nil, &ServerError{Op: op, Body: string(body)}
	}

	return &l, nil
}

// ensureToken makes sure the client is authenticated: a valid in-memory
// token is reused, an unexpired cached token is loaded from file, and
// failing both the interactive authorisation flow runs.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token.Valid() {
		return nil
	}

	if token, err := readToken(c.tokens); err == nil && token.Valid() {
		c.token = token
		return nil
	}

	return c.Authenticate(ctx)
}
