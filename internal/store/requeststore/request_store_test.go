package requeststore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack"
	"github.com/ykhdr/hash-bruteforce/internal/messages/request"
)

func TestRequestStoreLifecycle(t *testing.T) {
	s := NewRequestStore()

	_, err := s.Get("missing")
	require.ErrorIs(t, err, NotFoundErr)

	info := &request.Info{ID: "1", Status: request.StatusNew, CreatedAt: time.Now()}
	s.Save(info)

	// The store keeps its own copy.
	info.Status = request.StatusError
	got, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, request.StatusNew, got.Status)
	assert.False(t, got.UpdatedAt.IsZero())

	require.NoError(t, s.UpdateStatus("1", request.StatusInProgress))
	got, err = s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, request.StatusInProgress, got.Status)

	got.Complete(&hashcrack.SearchResult{Found: true, Candidate: "ab"})
	s.Save(got)
	got, err = s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "ab", got.Result.Candidate)

	require.NoError(t, s.Delete("1"))
	require.ErrorIs(t, s.Delete("1"), NotFoundErr)
	require.ErrorIs(t, s.UpdateStatus("1", request.StatusReady), NotFoundErr)
}

func TestRequestStoreListOrdered(t *testing.T) {
	s := NewRequestStore()
	base := time.Now()
	s.Save(&request.Info{ID: "b", CreatedAt: base.Add(time.Second)})
	s.Save(&request.Info{ID: "a", CreatedAt: base})
	s.Save(&request.Info{ID: "c", CreatedAt: base.Add(2 * time.Second)})

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, request.Id("a"), list[0].ID)
	assert.Equal(t, request.Id("c"), list[2].ID)
}
