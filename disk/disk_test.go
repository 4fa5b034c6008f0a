package disk

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deptworks/sheetkit/xlsx"
)

func validToken() Token {
	return Token{
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func TestDownload(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/resources/download", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OAuth tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/reports/marks.xlsx", r.URL.Query().Get("path"))

		fmt.Fprintf(w, `{"href": "%s/file", "method": "GET", "templated": false}`, ts.URL)
	})

	mux.HandleFunc("/file", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("file contents"))
	})

	client := NewClient(Credentials{ClientID: "id", ClientSecret: "secret"},
		filepath.Join(t.TempDir(), "tokens.json"),
		WithAPI(ts.URL),
		WithToken(validToken()))

	b, err := client.Download(context.Background(), "/reports/marks.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("file contents"), b)
}

func TestUpload(t *testing.T) {
	uploaded := []byte{}

	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/resources/upload", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OAuth tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/reports/marks.xlsx", r.URL.Query().Get("path"))
		assert.Equal(t, "true", r.URL.Query().Get("overwrite"))

		fmt.Fprintf(w, `{"href": "%s/put"}`, ts.URL)
	})

	mux.HandleFunc("/put", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)

		uploaded, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	})

	client := NewClient(Credentials{ClientID: "id", ClientSecret: "secret"},
		filepath.Join(t.TempDir(), "tokens.json"),
		WithAPI(ts.URL),
		WithToken(validToken()))

	err := client.Upload(context.Background(), "/reports/marks.xlsx", bytes.NewReader([]byte("payload")))
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), uploaded)
}

func TestMalformedLinkIsAServerError(t *testing.T) {
	tests := []string{
		`<html>gateway timeout</html>`,
		`{"method": "GET"}`,
		`null`,
	}

	for _, body := range tests {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		}))

		client := NewClient(Credentials{ClientID: "id", ClientSecret: "secret"},
			filepath.Join(t.TempDir(), "tokens.json"),
			WithAPI(ts.URL),
			WithToken(validToken()))

		_, err := client.Download(context.Background(), "/x")

		var serverErr *ServerError
		require.ErrorAs(t, err, &serverErr, "body %q", body)
		assert.Equal(t, "download", serverErr.Op)
		assert.Equal(t, body, serverErr.Body)

		ts.Close()
	}
}

func TestAPIErrorStatusIsNotAServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "DiskNotFoundError"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClient(Credentials{ClientID: "id", ClientSecret: "secret"},
		filepath.Join(t.TempDir(), "tokens.json"),
		WithAPI(ts.URL),
		WithToken(validToken()))

	_, err := client.Download(context.Background(), "/x")
	require.Error(t, err)

	var serverErr *ServerError
	assert.False(t, errors.As(err, &serverErr))
}

func TestCachedTokenIsLoadedImplicitly(t *testing.T) {
	tokens := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, writeToken(tokens, Token{
		AccessToken: "cached",
		ExpiresAt:   time.Now().Add(time.Hour),
	}))

	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/resources/download", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OAuth cached", r.Header.Get("Authorization"))
		fmt.Fprintf(w, `{"href": "%s/file"}`, ts.URL)
	})

	mux.HandleFunc("/file", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	})

	client := NewClient(Credentials{ClientID: "id", ClientSecret: "secret"}, tokens, WithAPI(ts.URL))

	_, err := client.Download(context.Background(), "/x")
	require.NoError(t, err)
}

func TestDocumentRoundTrip(t *testing.T) {
	stored := []byte{}

	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("/resources/upload", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"href": "%s/put"}`, ts.URL)
	})

	mux.HandleFunc("/put", func(w http.ResponseWriter, r *http.Request) {
		stored, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("/resources/download", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"href": "%s/file"}`, ts.URL)
	})

	mux.HandleFunc("/file", func(w http.ResponseWriter, r *http.Request) {
		w.Write(stored)
	})

	client := NewClient(Credentials{ClientID: "id", ClientSecret: "secret"},
		filepath.Join(t.TempDir(), "tokens.json"),
		WithAPI(ts.URL),
		WithToken(validToken()))

	document := xlsx.New()
	defer document.Close()

	require.NoError(t, document.WriteRow("Sheet1", []string{"Name", "Mark"}))
	require.NoError(t, document.WriteRow("Sheet1", []string{"ann", "7"}))
	require.NoError(t, client.UploadDocument(context.Background(), "/marks.xlsx", document))

	reloaded, err := client.DownloadDocument(context.Background(), "/marks.xlsx")
	require.NoError(t, err)

	defer reloaded.Close()

	column, err := reloaded.ColumnByHeader("Sheet1", "Mark")
	require.NoError(t, err)
	assert.Equal(t, []string{"7"}, column)
}
