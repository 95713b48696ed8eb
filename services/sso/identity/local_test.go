package identity

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalDecoder(t *testing.T) {

	t.Run("Decode access token", func(t *testing.T) {
		token := composeToken(t, map[string]interface{}{
			"sub":   "CHARACTER:EVE:2112625428",
			"name":  "Rens Stormbringer",
			"owner": "8PmzCeTKb4VFUDrHLc/AeZXDSWM=",
		})

		identity, err := NewLocalDecoder().Resolve(context.TODO(), token)
		assert.NoError(t, err)
		assert.Equal(t, "CHARACTER:EVE:2112625428", identity.Subject)
		assert.Equal(t, int64(2112625428), identity.CharacterID)
		assert.Equal(t, "Rens Stormbringer", identity.CharacterName)
		assert.Equal(t, "8PmzCeTKb4VFUDrHLc/AeZXDSWM=", identity.OwnerHash)
		assert.Equal(t, "Rens Stormbringer", identity.Raw["name"])
	})

	t.Run("Token with wrong segment count", func(t *testing.T) {
		_, err := NewLocalDecoder().Resolve(context.TODO(), "onlyonesegment")
		assert.Error(t, err)
		assert.Equal(t, KindFormat, KindOf(err))
	})

	t.Run("Token with undecodable payload", func(t *testing.T) {
		header := encodeSegment(t, map[string]interface{}{"alg": "none", "typ": "JWT"})

		_, err := NewLocalDecoder().Resolve(context.TODO(), header+".!!!not-base64!!!.sig")
		assert.Error(t, err)
		assert.Equal(t, KindDecode, KindOf(err))
	})

	t.Run("Token with non-json payload", func(t *testing.T) {
		header := encodeSegment(t, map[string]interface{}{"alg": "none", "typ": "JWT"})
		payload := base64.RawURLEncoding.EncodeToString([]byte("this is not json"))

		_, err := NewLocalDecoder().Resolve(context.TODO(), header+"."+payload+".sig")
		assert.Error(t, err)
		assert.Equal(t, KindDecode, KindOf(err))
	})

	t.Run("Token without subject claim", func(t *testing.T) {
		token := composeToken(t, map[string]interface{}{
			"name":  "Rens Stormbringer",
			"owner": "8PmzCeTKb4VFUDrHLc/AeZXDSWM=",
		})

		_, err := NewLocalDecoder().Resolve(context.TODO(), token)
		assert.Error(t, err)
		assert.Equal(t, KindDecode, KindOf(err))
	})

	t.Run("Token without owner claim", func(t *testing.T) {
		token := composeToken(t, map[string]interface{}{
			"sub":  "CHARACTER:EVE:2112625428",
			"name": "Rens Stormbringer",
		})

		_, err := NewLocalDecoder().Resolve(context.TODO(), token)
		assert.Error(t, err)
		assert.Equal(t, KindDecode, KindOf(err))
	})

	t.Run("Token with non-numeric subject", func(t *testing.T) {
		token := composeToken(t, map[string]interface{}{
			"sub": "CHARACTER:EVE:notanumber",
		})

		_, err := NewLocalDecoder().Resolve(context.TODO(), token)
		assert.Error(t, err)
		assert.Equal(t, KindDecode, KindOf(err))
	})
}

func composeToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	header := encodeSegment(t, map[string]interface{}{"alg": "none", "typ": "JWT"})
	payload := encodeSegment(t, claims)
	return header + "." + payload + ".signature"
}

func encodeSegment(t *testing.T, fields map[string]interface{}) string {
	t.Helper()
	asJSON, err := json.Marshal(fields)
	assert.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(asJSON)
}
