package sso

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evefleet/ssobackend/lib/mytime"
	"github.com/evefleet/ssobackend/services/sso/ssoclient"
	"github.com/evefleet/ssobackend/services/sso/ssoconfig"
)

func TestBuildAuthResult(t *testing.T) {

	tokenResp := ssoclient.GetTokenResponse{
		TokenType:    "Bearer",
		ExpiresIn:    1200,
		AccessToken:  "abc123",
		Scope:        "esi-location.read_location.v1 esi-skills.read_skills.v1",
		RefreshToken: "rst456",
	}

	t.Run("Build result", func(t *testing.T) {
		result := buildAuthResult(ssoconfig.UIDFieldOwnerHash, mytime.ExampleTime, tokenResp, exampleIdentity)

		assert.Equal(t, "8PmzCeTKb4VFUDrHLc/AeZXDSWM=", result.UID)
		assert.Equal(t, "abc123", result.Credentials.Token)
		assert.Equal(t, "rst456", result.Credentials.RefreshToken)
		assert.Equal(t, "Bearer", result.Credentials.TokenType)
		assert.True(t, result.Credentials.Expires)
		assert.Equal(t, 1200, result.Credentials.ExpiresIn)
		assert.Equal(t, mytime.ExampleTime.Add(1200*time.Second), *result.Credentials.ExpiresAt)
		assert.Equal(t, []string{"esi-location.read_location.v1", "esi-skills.read_skills.v1"}, result.Credentials.Scopes)
		assert.Equal(t, "Rens Stormbringer", result.Info.Name)
		assert.Equal(t, int64(2112625428), result.Info.CharacterID)
		assert.Equal(t, tokenResp, result.Extra.RawToken)
		assert.Equal(t, exampleIdentity.Raw, result.Extra.RawIdentity)
	})

	t.Run("Uid follows configured field", func(t *testing.T) {
		tests := []struct {
			uidField ssoconfig.UIDField
			expected string
		}{
			{ssoconfig.UIDFieldOwnerHash, "8PmzCeTKb4VFUDrHLc/AeZXDSWM="},
			{ssoconfig.UIDFieldCharacterID, "2112625428"},
			{ssoconfig.UIDFieldCharacterName, "Rens Stormbringer"},
		}
		for _, tc := range tests {
			result := buildAuthResult(tc.uidField, mytime.ExampleTime, tokenResp, exampleIdentity)
			assert.Equal(t, tc.expected, result.UID, "uid-field %s", tc.uidField)
		}
	})

	t.Run("No expiry without expires_in", func(t *testing.T) {
		withoutExpiry := tokenResp
		withoutExpiry.ExpiresIn = 0
		result := buildAuthResult(ssoconfig.UIDFieldOwnerHash, mytime.ExampleTime, withoutExpiry, exampleIdentity)

		assert.False(t, result.Credentials.Expires)
		assert.Nil(t, result.Credentials.ExpiresAt)
	})

	t.Run("Empty scope yields single empty element", func(t *testing.T) {
		withoutScope := tokenResp
		withoutScope.Scope = ""
		result := buildAuthResult(ssoconfig.UIDFieldOwnerHash, mytime.ExampleTime, withoutScope, exampleIdentity)

		assert.Equal(t, []string{""}, result.Credentials.Scopes)
	})
}
