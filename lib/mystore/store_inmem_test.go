package mystore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	UID  string
	Name string
	Done bool
}

var (
	exampleRecord = record{UID: "123", Name: "alpha", Done: false}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	store, cleanup, err := NewInMemoryStore[record](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := store.Get(c, exampleRecord.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = store.Put(c, exampleRecord.UID, exampleRecord)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		got, found, err := store.Get(c, exampleRecord.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, exampleRecord, got)
	})

	t.Run("List", func(t *testing.T) {
		all, err := store.List(c)
		assert.NoError(t, err)
		assert.Equal(t, []record{exampleRecord}, all)
	})

	t.Run("Query on equality filter", func(t *testing.T) {
		err = store.Put(c, "456", record{UID: "456", Name: "beta", Done: true})
		assert.NoError(t, err)

		matching, err := store.Query(c, []Filter{{Field: "Done", Compare: "=", Value: false}}, "UID")
		assert.NoError(t, err)
		assert.Equal(t, []record{exampleRecord}, matching)
	})

	t.Run("Query on unsupported operator", func(t *testing.T) {
		_, err := store.Query(c, []Filter{{Field: "Done", Compare: ">", Value: false}}, "UID")
		assert.Error(t, err)
	})
}
