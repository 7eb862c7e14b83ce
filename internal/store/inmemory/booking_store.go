package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/internal/store"
)

// BookingStore is an in-memory implementation of the booking store.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*models.Booking
}

// NewBookingStore creates a new instance of the BookingStore.
func NewBookingStore() *BookingStore {
	return &BookingStore{
		bookings: make(map[string]*models.Booking),
	}
}

func (s *BookingStore) Create(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[booking.Reference] = booking
	return nil
}

func (s *BookingStore) Get(_ context.Context, reference string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	booking, ok := s.bookings[reference]
	if !ok {
		return nil, store.ErrBookingNotFound
	}
	return booking, nil
}

// List returns all bookings, oldest first.
func (s *BookingStore) List(_ context.Context) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := make([]*models.Booking, 0, len(s.bookings))
	for _, booking := range s.bookings {
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings, nil
}
