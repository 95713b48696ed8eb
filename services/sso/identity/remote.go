package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const verifyPath = "/oauth/verify"

type remoteIntrospector struct {
	tokenHostname string
	httpClient    *http.Client
}

// NewRemoteIntrospector returns a resolver that asks the SSO verify endpoint
// who owns the access token.
func NewRemoteIntrospector(tokenHostname string) Resolver {
	return &remoteIntrospector{
		tokenHostname: tokenHostname,
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
	}
}

func (i *remoteIntrospector) Resolve(c context.Context, accessToken string) (Identity, error) {
	url := i.tokenHostname + verifyPath

	httpReq, err := http.NewRequestWithContext(c, http.MethodGet, url, nil)
	if err != nil {
		return Identity{}, newError(KindTransport, "error creating verify request: %s", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := i.httpClient.Do(httpReq)
	if err != nil {
		return Identity{}, newError(KindTransport, "error performing verify request: %s", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusUnauthorized {
		return Identity{}, newError(KindUnauthorized, "access token was rejected by %s", url)
	}
	if httpResp.StatusCode != http.StatusOK {
		return Identity{}, newError(KindTransport, "unexpected status %d from %s", httpResp.StatusCode, url)
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Identity{}, newError(KindTransport, "error reading verify response: %s", err)
	}

	var verifyResp struct {
		CharacterID        int64  `json:"CharacterID"`
		CharacterName      string `json:"CharacterName"`
		CharacterOwnerHash string `json:"CharacterOwnerHash"`
	}
	err = json.Unmarshal(body, &verifyResp)
	if err != nil {
		return Identity{}, newError(KindDecode, "error parsing verify response: %s", err)
	}

	raw := map[string]interface{}{}
	// best effort: keep whatever else the verify endpoint returned
	json.Unmarshal(body, &raw)

	return Identity{
		Subject:       fmt.Sprintf("CHARACTER:EVE:%d", verifyResp.CharacterID),
		CharacterID:   verifyResp.CharacterID,
		CharacterName: verifyResp.CharacterName,
		OwnerHash:     verifyResp.CharacterOwnerHash,
		Raw:           raw,
	}, nil
}
