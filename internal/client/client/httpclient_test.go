package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nexuspost/internal/client/models"
)

type staticToken struct {
	token string
	err   error
}

func (s staticToken) Token(context.Context) (string, error) { return s.token, s.err }

type captured struct {
	method string
	path   string
	auth   string
	ctype  string
	reqID  string
	ngrok  string
	body   []byte
	hits   int
}

func newServer(t *testing.T, status int, respBody string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.hits++
		c.method = r.Method
		c.path = r.URL.EscapedPath()
		c.auth = r.Header.Get("Authorization")
		c.ctype = r.Header.Get("Content-Type")
		c.reqID = r.Header.Get("X-Request-ID")
		c.ngrok = r.Header.Get("ngrok-skip-browser-warning")
		c.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(ts.Close)
	return ts, c
}

func TestLogin_PostsCredentialsAndDecodes(t *testing.T) {
	ts, got := newServer(t, http.StatusOK, `{"token":"tok","user":{"name":"Ada","email":"ada@example.com"},"api_keys":{"hf_api_key":"hf","gemini_api_key":"gm"},"warning":"keys expire soon"}`)
	c := NewHTTPClient(ts.URL+"/", nil, ts.Client(), nil)

	resp, err := c.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/auth/login", got.path)
	assert.Empty(t, got.auth, "no token source -> no Authorization header")
	assert.Equal(t, "application/json", got.ctype)
	assert.Equal(t, "69420", got.ngrok)
	_, uuidErr := uuid.Parse(got.reqID)
	assert.NoError(t, uuidErr, "X-Request-ID must be a uuid")
	assert.JSONEq(t, `{"email":"ada@example.com","password":"pw"}`, string(got.body))

	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, &models.User{Name: "Ada", Email: "ada@example.com"}, resp.User)
	require.NotNil(t, resp.APIKeys)
	assert.Equal(t, "hf", resp.APIKeys.HuggingFace)
	assert.Equal(t, "keys expire soon", resp.Warning)
}

func TestRegister_PostsBody(t *testing.T) {
	ts, got := newServer(t, http.StatusCreated, `{"token":"tok","user":{"name":"Bo","email":"bo@example.com"}}`)
	c := NewHTTPClient(ts.URL, staticToken{}, ts.Client(), nil)

	resp, err := c.Register(context.Background(), "Bo", "bo@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "/auth/register", got.path)
	assert.JSONEq(t, `{"name":"Bo","email":"bo@example.com","password":"pw"}`, string(got.body))
	assert.Equal(t, "tok", resp.Token)
}

func TestInitialize_SendsKeysWithBearer(t *testing.T) {
	ts, got := newServer(t, http.StatusOK, ``)
	c := NewHTTPClient(ts.URL, staticToken{token: "tok"}, ts.Client(), nil)

	err := c.Initialize(context.Background(), models.ProviderKeys{HuggingFace: "hf", Gemini: "gm"})
	require.NoError(t, err)
	assert.Equal(t, "/initialize", got.path)
	assert.Equal(t, "Bearer tok", got.auth)
	assert.JSONEq(t, `{"hf_api_key":"hf","gemini_api_key":"gm"}`, string(got.body))
}

func TestGeneratePost_RoundTrip(t *testing.T) {
	ts, got := newServer(t, http.StatusOK, `{"text":"Coffee...","images":["a.jpg","b.jpg"],"engagement_score":82}`)
	c := NewHTTPClient(ts.URL, staticToken{token: "tok"}, ts.Client(), nil)

	req := models.GenerationRequest{Topic: "coffee", Platform: models.PlatformLinkedIn, ImageCount: 2, PostLength: models.PostLengthMedium, Temperature: 0.7}
	res, err := c.GeneratePost(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/generate_post", got.path)
	assert.Equal(t, "Bearer tok", got.auth)
	var sent models.GenerationRequest
	require.NoError(t, json.Unmarshal(got.body, &sent))
	assert.Equal(t, req, sent)

	assert.Len(t, res.Images, req.ImageCount)
	assert.Equal(t, 82.0, res.EngagementScore)
}

func TestAuthenticatedCalls_WithoutToken_SendNothing(t *testing.T) {
	ts, got := newServer(t, http.StatusOK, `{}`)
	c := NewHTTPClient(ts.URL, staticToken{}, ts.Client(), nil)
	ctx := context.Background()

	_, err := c.GeneratePost(ctx, models.GenerationRequest{Topic: "x"})
	require.ErrorIs(t, err, ErrNoToken)
	require.ErrorIs(t, c.Initialize(ctx, models.ProviderKeys{HuggingFace: "a", Gemini: "b"}), ErrNoToken)
	_, err = c.ListPosts(ctx)
	require.ErrorIs(t, err, ErrNoToken)
	require.ErrorIs(t, c.DeletePost(ctx, "1"), ErrNoToken)

	assert.Zero(t, got.hits, "no request may reach the server without a token")
}

func TestTokenSourceError_IsReturned(t *testing.T) {
	ts, got := newServer(t, http.StatusOK, `{}`)
	c := NewHTTPClient(ts.URL, staticToken{err: errors.New("disk gone")}, ts.Client(), nil)

	_, err := c.ListPosts(context.Background())
	require.ErrorContains(t, err, "disk gone")
	assert.Zero(t, got.hits)
}

func TestListPosts_Decodes(t *testing.T) {
	ts, got := newServer(t, http.StatusOK, `{"posts":[{"_id":{"$oid":"65f0c0ffee0123456789abcd"},"topic":"a"},{"_id":"p2","topic":"b"}]}`)
	c := NewHTTPClient(ts.URL, staticToken{token: "tok"}, ts.Client(), nil)

	posts, err := c.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/user/posts", got.path)
	assert.Empty(t, got.body)
	require.Len(t, posts, 2)
	assert.Equal(t, models.PostID("65f0c0ffee0123456789abcd"), posts[0].ID)
	assert.Equal(t, models.PostID("p2"), posts[1].ID)
}

func TestDeletePost_EscapesID(t *testing.T) {
	ts, got := newServer(t, http.StatusOK, `{"message":"deleted"}`)
	c := NewHTTPClient(ts.URL, staticToken{token: "tok"}, ts.Client(), nil)

	require.NoError(t, c.DeletePost(context.Background(), "a b/c"))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/user/posts/a%20b%2Fc", got.path)
}

func TestRequestError_Messages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field", http.StatusUnauthorized, `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"message field", http.StatusBadRequest, `{"message":"topic required"}`, "topic required"},
		{"detail field", http.StatusUnprocessableEntity, `{"detail":"bad temperature"}`, "bad temperature"},
		{"no message", http.StatusInternalServerError, `{}`, GenericErrorMessage},
		{"non-json body", http.StatusBadGateway, `<html>bad gateway</html>`, GenericErrorMessage},
		{"non-string error", http.StatusBadRequest, `{"error":{"code":1}}`, GenericErrorMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := newServer(t, tt.status, tt.body)
			c := NewHTTPClient(ts.URL, staticToken{token: "tok"}, ts.Client(), nil)

			_, err := c.ListPosts(context.Background())
			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tt.status, reqErr.StatusCode)
			assert.Equal(t, tt.want, reqErr.Message)
			assert.Equal(t, tt.want, err.Error())
			assert.False(t, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestNetworkError_NoResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := NewHTTPClient(url, staticToken{token: "tok"}, nil, nil)
	_, err := c.Login(context.Background(), "a", "b")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, GenericErrorMessage, err.Error())
	assert.NotEmpty(t, netErr.Detail())
}

func TestSuccess_BadJSON(t *testing.T) {
	ts, _ := newServer(t, http.StatusOK, `{"text":`)
	c := NewHTTPClient(ts.URL, staticToken{token: "tok"}, ts.Client(), nil)

	_, err := c.GeneratePost(context.Background(), models.GenerationRequest{Topic: "x"})
	require.ErrorContains(t, err, "failed to decode response")
}

func TestBaseURL_TrimsSlash(t *testing.T) {
	assert.Equal(t, "http://localhost:5000", NewHTTPClient("http://localhost:5000///", nil, nil, nil).BaseURL())
}
