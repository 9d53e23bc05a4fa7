package myflix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flixops/flixctl/session"
)

func newTestSession(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return store
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()
	sess := newTestSession(t)

	tests := []struct {
		name    string
		baseURL string
		sess    SessionSource
		wantErr bool
	}{
		{
			name:    "valid config",
			baseURL: "http://localhost:8080",
			sess:    sess,
			wantErr: false,
		},
		{
			name:    "missing URL",
			baseURL: "",
			sess:    sess,
			wantErr: true,
		},
		{
			name:    "missing session store",
			baseURL: "http://localhost:8080",
			sess:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.baseURL, tt.sess, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client, err := NewClient("http://localhost:8080/", newTestSession(t), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
}

func TestClientOptions(t *testing.T) {
	sess := newTestSession(t)

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost:8080", sess, zerolog.Nop(), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		customClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:8080", sess, zerolog.Nop(), WithHTTPClient(customClient))
		require.NoError(t, err)
		assert.Equal(t, customClient, client.httpClient)
	})
}

func TestBuildRequestAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		authenticated bool
		wantHeader    string
		wantPresent   bool
	}{
		{
			name:          "token attached verbatim",
			token:         "abc123",
			authenticated: true,
			wantHeader:    "Bearer abc123",
			wantPresent:   true,
		},
		{
			name:          "empty token still yields a syntactically valid header",
			token:         "",
			authenticated: true,
			wantHeader:    "Bearer ",
			wantPresent:   true,
		},
		{
			name:          "unauthenticated request carries no header",
			token:         "abc123",
			authenticated: false,
			wantPresent:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := newTestSession(t)
			if tt.token != "" {
				require.NoError(t, sess.Set("alice", tt.token))
			}

			client, err := NewClient("http://localhost:8080", sess, zerolog.Nop())
			require.NoError(t, err)

			req, err := client.buildRequest(context.Background(), http.MethodGet, "/movies", nil, tt.authenticated)
			require.NoError(t, err)

			if !tt.wantPresent {
				_, ok := req.Header["Authorization"]
				assert.False(t, ok)
				return
			}
			assert.Equal(t, tt.wantHeader, req.Header.Get("Authorization"))
		})
	}
}

func TestBuildRequestBody(t *testing.T) {
	client, err := NewClient("http://localhost:8080", newTestSession(t), zerolog.Nop())
	require.NoError(t, err)

	t.Run("json body and content type", func(t *testing.T) {
		req, err := client.buildRequest(context.Background(), http.MethodPost, "/login",
			Credentials{Username: "alice", Password: "pw"}, false)
		require.NoError(t, err)

		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

		var decoded Credentials
		require.NoError(t, json.NewDecoder(req.Body).Decode(&decoded))
		assert.Equal(t, "alice", decoded.Username)
		assert.Equal(t, "pw", decoded.Password)
	})

	t.Run("no body means no content type", func(t *testing.T) {
		req, err := client.buildRequest(context.Background(), http.MethodGet, "/movies", nil, true)
		require.NoError(t, err)
		assert.Empty(t, req.Header.Get("Content-Type"))
		assert.Nil(t, req.Body)
	})

	t.Run("base url prefix", func(t *testing.T) {
		req, err := client.buildRequest(context.Background(), http.MethodGet, "/movies", nil, true)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/movies", req.URL.String())
	})
}

func TestDoNormalizesHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal error"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, newTestSession(t), zerolog.Nop())
	require.NoError(t, err)

	_, err = client.do(context.Background(), http.MethodGet, "/movies", nil, true)
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, KindHTTP, clientErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, clientErr.StatusCode)
	assert.Equal(t, "Internal error", clientErr.Body)
	// The user-facing message is the fixed generic string.
	assert.Equal(t, UserMessage, clientErr.Error())
	assert.Contains(t, clientErr.Detail(), "500")
}

func TestDoNormalizesTransportFailure(t *testing.T) {
	// A server that is immediately closed guarantees a connection error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL, newTestSession(t), zerolog.Nop())
	require.NoError(t, err)

	_, err = client.do(context.Background(), http.MethodGet, "/movies", nil, true)
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, KindTransport, clientErr.Kind)
	assert.Zero(t, clientErr.StatusCode)
	assert.Equal(t, UserMessage, clientErr.Error())
	assert.Error(t, clientErr.Unwrap())
}

func TestDoNormalizesEmptySuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, newTestSession(t), zerolog.Nop())
	require.NoError(t, err)

	raw, err := client.do(context.Background(), http.MethodGet, "/movies", nil, true)
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("{}"), raw)
}

func TestNormalizeBody(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "nil body", in: nil, want: "{}"},
		{name: "empty body", in: []byte{}, want: "{}"},
		{name: "whitespace body", in: []byte("  \n"), want: "{}"},
		{name: "truthy body passes through", in: []byte(`{"Title":"Alien"}`), want: `{"Title":"Alien"}`},
		{name: "array body passes through", in: []byte(`[1,2]`), want: `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeBody(tt.in)
			assert.Equal(t, tt.want, string(got))
			// Idempotent: normalizing twice yields the same value.
			assert.Equal(t, got, normalizeBody(got))
		})
	}
}

func TestErrorClassification(t *testing.T) {
	unauthorized := &ClientError{Kind: KindHTTP, StatusCode: http.StatusUnauthorized}
	assert.True(t, unauthorized.IsUnauthorized())
	assert.False(t, unauthorized.IsNotFound())

	notFound := &ClientError{Kind: KindHTTP, StatusCode: http.StatusNotFound}
	assert.True(t, notFound.IsNotFound())
	assert.False(t, notFound.IsUnauthorized())

	transport := &ClientError{Kind: KindTransport}
	assert.False(t, transport.IsUnauthorized())
	assert.False(t, transport.IsNotFound())
}
