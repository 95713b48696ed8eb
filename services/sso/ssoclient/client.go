package ssoclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	authPath  = "/oauth/authorize"
	tokenPath = "/oauth/token"
)

type ComposeAuthURLRequest struct {
	CompletionURL string
	Scope         string
	State         string
}

type GetTokenRequest struct {
	RedirectURI string
	Code        string
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type GetTokenResponse struct {
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	AccessToken  string `json:"access_token"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token"`

	// Extra holds the remaining top-level string fields of the token
	// response. The SSO reports some failures inside an otherwise-200
	// response as "error"/"error_description"; they end up here.
	Extra map[string]string `json:"-"`
}

// TokenExchangeError indicates the code-for-token exchange itself failed, on
// transport or with a non-success status.
type TokenExchangeError struct {
	StatusCode int
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token exchange failed with status %d: %s", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("token exchange failed: %s", e.Err)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

//go:generate mockgen -source=client.go -package ssoclient -destination client_mock.go SSOClient
type SSOClient interface {
	ComposeAuthURL(c context.Context, req ComposeAuthURLRequest) (string, error)
	GetAccessToken(c context.Context, req GetTokenRequest) (GetTokenResponse, error)
	RefreshAccessToken(c context.Context, req RefreshTokenRequest) (GetTokenResponse, error)
}

type ssoClient struct {
	clientID        string
	clientSecret    string
	authHostname    string
	tokenHostname   string
	sendRedirectURI bool
}

func NewSSOClient(clientID string, clientSecret string, authHostname string, tokenHostname string, sendRedirectURI bool) SSOClient {
	return &ssoClient{
		clientID:        clientID,
		clientSecret:    clientSecret,
		authHostname:    authHostname,
		tokenHostname:   tokenHostname,
		sendRedirectURI: sendRedirectURI,
	}
}

func (sc ssoClient) ComposeAuthURL(c context.Context, req ComposeAuthURLRequest) (string, error) {
	u, err := url.Parse(sc.authHostname + authPath)
	if err != nil {
		return "", err
	}

	/*  Example:
	https://login.eveonline.com/oauth/authorize
		?client_id=3rdpartyClientId
		&redirect_uri=https%3A%2F%2Fexample.com%2Fsso%2Fcallback
		&response_type=code
		&scope=esi-location.read_location.v1
		&state=892f0b86-daca-4272-89e7-1a0d49a3ad71
	*/

	params := url.Values{
		"response_type": []string{"code"},
		"client_id":     []string{sc.clientID},
		"scope":         []string{req.Scope},
	}
	if sc.sendRedirectURI {
		params.Set("redirect_uri", req.CompletionURL)
	}
	if req.State != "" {
		params.Set("state", req.State)
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

func (sc ssoClient) GetAccessToken(c context.Context, req GetTokenRequest) (GetTokenResponse, error) {
	requestBody := url.Values{
		"grant_type": {"authorization_code"},
		"code":       {req.Code},
		"client_id":  {sc.clientID},
	}
	if sc.sendRedirectURI {
		requestBody.Set("redirect_uri", req.RedirectURI)
	}
	// The SSO rejects requests that carry the client id in both the
	// Basic-auth header and the body, so strip it from the body again.
	requestBody.Del("client_id")

	return sc.postTokenRequest(c, requestBody)
}

func (sc ssoClient) RefreshAccessToken(c context.Context, req RefreshTokenRequest) (GetTokenResponse, error) {
	requestBody := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {req.RefreshToken},
	}

	return sc.postTokenRequest(c, requestBody)
}

func (sc ssoClient) postTokenRequest(c context.Context, requestBody url.Values) (GetTokenResponse, error) {
	httpClient := newHTTPClient(sc.clientID, sc.clientSecret)
	httpRespCode, respBody, err := httpClient.Send(c, http.MethodPost, sc.tokenHostname+tokenPath, []byte(requestBody.Encode()))
	if err != nil {
		return GetTokenResponse{}, &TokenExchangeError{Err: err}
	}

	if httpRespCode != 200 {
		return GetTokenResponse{}, &TokenExchangeError{StatusCode: httpRespCode, Err: fmt.Errorf("unexpected http response %d", httpRespCode)}
	}

	resp, err := parseTokenResponse(respBody)
	if err != nil {
		return GetTokenResponse{}, &TokenExchangeError{Err: fmt.Errorf("error parsing response: %s", err)}
	}

	return resp, nil
}

func parseTokenResponse(body []byte) (GetTokenResponse, error) {
	resp := GetTokenResponse{}
	err := json.Unmarshal(body, &resp)
	if err != nil {
		return GetTokenResponse{}, err
	}

	// Collect unrecognized string fields such as "error" and
	// "error_description".
	all := map[string]any{}
	err = json.Unmarshal(body, &all)
	if err != nil {
		return GetTokenResponse{}, err
	}
	for _, known := range []string{"token_type", "expires_in", "access_token", "scope", "refresh_token"} {
		delete(all, known)
	}
	for key, value := range all {
		text, ok := value.(string)
		if !ok {
			continue
		}
		if resp.Extra == nil {
			resp.Extra = map[string]string{}
		}
		resp.Extra[key] = text
	}

	return resp, nil
}
