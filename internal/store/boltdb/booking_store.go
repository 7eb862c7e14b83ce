package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/boltdb/bolt"

	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/internal/store"
)

// BookingStore implements the booking store using BoltDB.
type BookingStore struct {
	boltDB *bolt.DB
}

// NewBookingStore creates a new BookingStore instance.
func NewBookingStore(db *DB) *BookingStore {
	return &BookingStore{boltDB: db.Bolt()}
}

func (s *BookingStore) Create(_ context.Context, booking *models.Booking) error {
	return s.boltDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketBookings)
		data, err := json.Marshal(booking)
		if err != nil {
			return fmt.Errorf("failed to marshal booking: %w", err)
		}
		return b.Put([]byte(booking.Reference), data)
	})
}

func (s *BookingStore) Get(_ context.Context, reference string) (*models.Booking, error) {
	var booking models.Booking
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketBookings).Get([]byte(reference))
		if data == nil {
			return store.ErrBookingNotFound
		}
		return json.Unmarshal(data, &booking)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %q: %w", reference, err)
	}
	return &booking, nil
}

// List returns all bookings, oldest first.
func (s *BookingStore) List(_ context.Context) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := s.boltDB.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketBookings).ForEach(func(k, v []byte) error {
			var booking models.Booking
			if err := json.Unmarshal(v, &booking); err != nil {
				return fmt.Errorf("failed to unmarshal booking: %w", err)
			}
			bookings = append(bookings, &booking)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings, nil
}
