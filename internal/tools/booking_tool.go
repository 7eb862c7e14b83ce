package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/Rorical/flightai/internal/models"
)

const BookingToolName = "make_a_booking"

// BookingStore persists bookings made by the booking tool
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	List(ctx context.Context) ([]*models.Booking, error)
}

// BookingResult is the structured answer of the booking tool
type BookingResult struct {
	DestinationCity string `json:"destination_city" mapstructure:"destination_city"`
	CustomerName    string `json:"customer_name" mapstructure:"customer_name"`
	CustomerID      string `json:"customer_id" mapstructure:"customer_id"`
	BookingResult   string `json:"booking_result" mapstructure:"booking_result"`
}

type bookingArgs struct {
	DestinationCity string `mapstructure:"destination_city"`
	CustomerName    string `mapstructure:"customer_name"`
	CustomerID      string `mapstructure:"customer_id"`
}

// BookingTool records a booking for a customer
type BookingTool struct {
	store  BookingStore
	prices *PriceTool
	now    func() time.Time
}

func NewBookingTool(store BookingStore, prices *PriceTool) *BookingTool {
	if prices == nil {
		prices = NewPriceTool(nil)
	}
	return &BookingTool{store: store, prices: prices, now: time.Now}
}

func (b *BookingTool) Name() string {
	return BookingToolName
}

func (b *BookingTool) Description() string {
	return "Book a return ticket to the destination city for a customer. Call this when the customer confirms they want to book, once you know their name and customer ID"
}

func (b *BookingTool) Parameters() map[string]jsonschema.Definition {
	return map[string]jsonschema.Definition{
		"destination_city": {
			Type:        jsonschema.String,
			Description: "The city that the customer wants to travel to",
		},
		"customer_name": {
			Type:        jsonschema.String,
			Description: "The full name of the customer",
		},
		"customer_id": {
			Type:        jsonschema.String,
			Description: "The customer's loyalty or account identifier",
		},
	}
}

func (b *BookingTool) RequiredParameters() []string {
	return []string{"destination_city", "customer_name", "customer_id"}
}

func (b *BookingTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var in bookingArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	for _, field := range []struct{ name, value string }{
		{"destination_city", in.DestinationCity},
		{"customer_name", in.CustomerName},
		{"customer_id", in.CustomerID},
	} {
		if strings.TrimSpace(field.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidArguments, field.name)
		}
	}

	booking := &models.Booking{
		Reference:       newBookingReference(),
		DestinationCity: in.DestinationCity,
		CustomerName:    in.CustomerName,
		CustomerID:      in.CustomerID,
		Price:           b.prices.Lookup(in.DestinationCity),
		CreatedAt:       b.now(),
	}
	if b.store != nil {
		if err := b.store.Create(ctx, booking); err != nil {
			return nil, fmt.Errorf("failed to record booking: %w", err)
		}
	}

	return BookingResult{
		DestinationCity: in.DestinationCity,
		CustomerName:    in.CustomerName,
		CustomerID:      in.CustomerID,
		BookingResult: fmt.Sprintf("Booking confirmed for %s (%s) to %s. Reference: %s",
			in.CustomerName, in.CustomerID, titleCity(in.DestinationCity), booking.Reference),
	}, nil
}

func newBookingReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:8])
}

func titleCity(city string) string {
	words := strings.Fields(strings.ToLower(city))
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
