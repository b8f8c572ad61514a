package viewcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_InvalidateMarksStaleAndBumpsVersion(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.IsStale(ViewVenueList))
	assert.Equal(t, uint64(0), r.Version(ViewVenueList))

	r.Invalidate(ViewVenueList, ViewVenueDetail("v1"))

	assert.True(t, r.IsStale(ViewVenueList))
	assert.True(t, r.IsStale(ViewVenueDetail("v1")))
	assert.Equal(t, uint64(1), r.Version(ViewVenueList))

	r.Invalidate(ViewVenueList)
	assert.Equal(t, uint64(2), r.Version(ViewVenueList))
}

func TestRegistry_FreshClearsStaleButKeepsVersion(t *testing.T) {
	r := NewRegistry()
	r.Invalidate(ViewFavorites("u1"))

	r.Fresh(ViewFavorites("u1"))
	assert.False(t, r.IsStale(ViewFavorites("u1")))
	assert.Equal(t, uint64(1), r.Version(ViewFavorites("u1")))
}

func TestRegistry_NotifiesListeners(t *testing.T) {
	r := NewRegistry()

	var got []string
	r.Subscribe(func(view string) { got = append(got, view) })

	r.Invalidate(ViewVenueList, ViewVenueDetail("v2"))

	assert.Equal(t, []string{ViewVenueList, ViewVenueDetail("v2")}, got)
}
