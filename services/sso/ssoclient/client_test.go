package ssoclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const exampleScope = "esi-location.read_location.v1 esi-skills.read_skills.v1"

func TestComposeAuthURL(t *testing.T) {

	t.Run("Compose auth url", func(t *testing.T) {
		ssoClient := NewSSOClient("123", "456", "https://login.eveonline.com", "https://login.eveonline.com", true)
		url, err := ssoClient.ComposeAuthURL(context.TODO(), ComposeAuthURLRequest{
			CompletionURL: "http://localhost:8888/sso/callback",
			Scope:         exampleScope,
			State:         "abcdef",
		})
		assert.NoError(t, err)
		assert.Equal(t, "https://login.eveonline.com/oauth/authorize?client_id=123&redirect_uri=http%3A%2F%2Flocalhost%3A8888%2Fsso%2Fcallback&response_type=code&scope=esi-location.read_location.v1+esi-skills.read_skills.v1&state=abcdef", url)
	})

	t.Run("Compose auth url without state", func(t *testing.T) {
		ssoClient := NewSSOClient("123", "456", "https://login.eveonline.com", "https://login.eveonline.com", true)
		url, err := ssoClient.ComposeAuthURL(context.TODO(), ComposeAuthURLRequest{
			CompletionURL: "http://localhost:8888/sso/callback",
			Scope:         "publicData",
		})
		assert.NoError(t, err)
		assert.Equal(t, "https://login.eveonline.com/oauth/authorize?client_id=123&redirect_uri=http%3A%2F%2Flocalhost%3A8888%2Fsso%2Fcallback&response_type=code&scope=publicData", url)
		assert.NotContains(t, url, "state=")
	})

	t.Run("Compose auth url without redirect uri", func(t *testing.T) {
		ssoClient := NewSSOClient("123", "456", "https://login.eveonline.com", "https://login.eveonline.com", false)
		url, err := ssoClient.ComposeAuthURL(context.TODO(), ComposeAuthURLRequest{
			CompletionURL: "http://localhost:8888/sso/callback",
			Scope:         "publicData",
			State:         "abcdef",
		})
		assert.NoError(t, err)
		assert.Equal(t, "https://login.eveonline.com/oauth/authorize?client_id=123&response_type=code&scope=publicData&state=abcdef", url)
	})

	t.Run("Compose auth url is deterministic", func(t *testing.T) {
		req := ComposeAuthURLRequest{
			CompletionURL: "http://localhost:8888/sso/callback",
			Scope:         exampleScope,
			State:         "abcdef",
		}
		first, err := NewSSOClient("123", "456", "https://login.eveonline.com", "https://login.eveonline.com", true).ComposeAuthURL(context.TODO(), req)
		assert.NoError(t, err)
		second, err := NewSSOClient("123", "456", "https://login.eveonline.com", "https://login.eveonline.com", true).ComposeAuthURL(context.TODO(), req)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestGetAccessToken(t *testing.T) {

	t.Run("Get access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/oauth/token", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))

			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "123", username)
			assert.Equal(t, "456", password)

			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			assert.Equal(t, "789", r.PostForm.Get("code"))
			assert.Equal(t, "http://localhost:8888/sso/callback", r.PostForm.Get("redirect_uri"))
			// the client id travels in the Basic-auth header only
			assert.NotContains(t, r.PostForm, "client_id")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"abc123","token_type":"Bearer","expires_in":1200,"refresh_token":"rst456","scope":"publicData"}`))
		}))
		defer server.Close()

		ssoClient := NewSSOClient("123", "456", server.URL, server.URL, true)
		resp, err := ssoClient.GetAccessToken(context.TODO(), GetTokenRequest{
			RedirectURI: "http://localhost:8888/sso/callback",
			Code:        "789",
		})
		assert.NoError(t, err)
		assert.Equal(t, "abc123", resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, 1200, resp.ExpiresIn)
		assert.Equal(t, "rst456", resp.RefreshToken)
		assert.Equal(t, "publicData", resp.Scope)
		assert.Empty(t, resp.Extra)
	})

	t.Run("Provider error embedded in 200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error":"invalid_grant","error_description":"bad code"}`))
		}))
		defer server.Close()

		ssoClient := NewSSOClient("123", "456", server.URL, server.URL, true)
		resp, err := ssoClient.GetAccessToken(context.TODO(), GetTokenRequest{
			RedirectURI: "http://localhost:8888/sso/callback",
			Code:        "789",
		})
		assert.NoError(t, err)
		assert.Empty(t, resp.AccessToken)
		assert.Equal(t, "invalid_grant", resp.Extra["error"])
		assert.Equal(t, "bad code", resp.Extra["error_description"])
	})

	t.Run("Non-success status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadRequest)
		}))
		defer server.Close()

		ssoClient := NewSSOClient("123", "456", server.URL, server.URL, true)
		_, err := ssoClient.GetAccessToken(context.TODO(), GetTokenRequest{
			RedirectURI: "http://localhost:8888/sso/callback",
			Code:        "789",
		})
		assert.Error(t, err)

		exchangeErr := &TokenExchangeError{}
		assert.True(t, errors.As(err, &exchangeErr))
		assert.Equal(t, 400, exchangeErr.StatusCode)
	})
}

func TestRefreshAccessToken(t *testing.T) {

	t.Run("Refresh access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
			assert.Equal(t, "rst456", r.PostForm.Get("refresh_token"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"def789","token_type":"Bearer","expires_in":1200,"refresh_token":"uvw012"}`))
		}))
		defer server.Close()

		ssoClient := NewSSOClient("123", "456", server.URL, server.URL, true)
		resp, err := ssoClient.RefreshAccessToken(context.TODO(), RefreshTokenRequest{
			RefreshToken: "rst456",
		})
		assert.NoError(t, err)
		assert.Equal(t, "def789", resp.AccessToken)
		assert.Equal(t, "uvw012", resp.RefreshToken)
	})
}
