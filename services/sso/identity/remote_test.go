package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteIntrospector(t *testing.T) {

	t.Run("Verify access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/oauth/verify", r.URL.Path)
			assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"CharacterID":2112625428,"CharacterName":"Rens Stormbringer","CharacterOwnerHash":"8PmzCeTKb4VFUDrHLc/AeZXDSWM=","ExpiresOn":"2026-08-31T12:00:00"}`))
		}))
		defer server.Close()

		identity, err := NewRemoteIntrospector(server.URL).Resolve(context.TODO(), "abc123")
		assert.NoError(t, err)
		assert.Equal(t, "CHARACTER:EVE:2112625428", identity.Subject)
		assert.Equal(t, int64(2112625428), identity.CharacterID)
		assert.Equal(t, "Rens Stormbringer", identity.CharacterName)
		assert.Equal(t, "8PmzCeTKb4VFUDrHLc/AeZXDSWM=", identity.OwnerHash)
		assert.Equal(t, "2026-08-31T12:00:00", identity.Raw["ExpiresOn"])
	})

	t.Run("Rejected access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "expired", http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := NewRemoteIntrospector(server.URL).Resolve(context.TODO(), "abc123")
		assert.Error(t, err)
		assert.Equal(t, KindUnauthorized, KindOf(err))
	})

	t.Run("Verify endpoint failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewRemoteIntrospector(server.URL).Resolve(context.TODO(), "abc123")
		assert.Error(t, err)
		assert.Equal(t, KindTransport, KindOf(err))
	})

	t.Run("Verify endpoint unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := NewRemoteIntrospector(server.URL).Resolve(context.TODO(), "abc123")
		assert.Error(t, err)
		assert.Equal(t, KindTransport, KindOf(err))
	})

	t.Run("Malformed verify response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`this is not json`))
		}))
		defer server.Close()

		_, err := NewRemoteIntrospector(server.URL).Resolve(context.TODO(), "abc123")
		assert.Error(t, err)
		assert.Equal(t, KindDecode, KindOf(err))
	})
}
