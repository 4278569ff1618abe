package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(group string) Session {
	return Session{
		ConnID:    uuid.New(),
		Username:  "alice",
		GroupID:   uuid.New(),
		GroupName: group,
		JoinedAt:  time.Now(),
	}
}

func TestRegistryPutGet(t *testing.T) {
	r := NewRegistry()
	s := newSession("team")

	_, ok := r.Get(s.ConnID)
	assert.False(t, ok)

	r.Put(s)

	got, ok := r.Get(s.ConnID)
	require.True(t, ok)
	assert.Equal(t, s.Username, got.Username)
	assert.Equal(t, s.GroupName, got.GroupName)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	s := newSession("team")
	r.Put(s)

	removed, ok := r.Remove(s.ConnID)
	require.True(t, ok)
	assert.Equal(t, s.ConnID, removed.ConnID)

	_, ok = r.Remove(s.ConnID)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryRename(t *testing.T) {
	r := NewRegistry()
	a := newSession("team")
	b := newSession("team")
	other := newSession("other")
	r.Put(a)
	r.Put(b)
	r.Put(other)

	n := r.Rename("team", "squad")
	assert.Equal(t, 2, n)

	got, ok := r.Get(a.ConnID)
	require.True(t, ok)
	assert.Equal(t, "squad", got.GroupName)

	got, ok = r.Get(other.ConnID)
	require.True(t, ok)
	assert.Equal(t, "other", got.GroupName)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := newSession("team")
			r.Put(s)
			r.Get(s.ConnID)
			r.Remove(s.ConnID)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, r.Len())
}
