package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/internal/store"
)

func TestBookingStore(t *testing.T) {
	s := NewBookingStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Create(ctx, &models.Booking{Reference: "B", CreatedAt: now.Add(time.Second)}))
	require.NoError(t, s.Create(ctx, &models.Booking{Reference: "A", CreatedAt: now}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Reference)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrBookingNotFound)
}
