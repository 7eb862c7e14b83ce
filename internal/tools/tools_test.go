package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/internal/store/inmemory"
)

func newTestRegistry(t *testing.T) (*Registry, *inmemory.BookingStore) {
	t.Helper()
	bookings := inmemory.NewBookingStore()
	registry := NewRegistry()
	RegisterBuiltinTools(registry, bookings)
	return registry, bookings
}

func TestPriceLookup(t *testing.T) {
	prices := NewPriceTool(nil)

	cases := map[string]string{
		"London":   "$799",
		"LONDON":   "$799",
		" paris ":  "$899",
		"Tokyo":    "$1400",
		"berlin":   "$499",
		"Atlantis": UnknownPrice,
		"":         UnknownPrice,
		"New York": UnknownPrice,
	}
	for city, want := range cases {
		assert.Equal(t, want, prices.Lookup(city), "city %q", city)
	}
}

func TestPriceToolExecute(t *testing.T) {
	prices := NewPriceTool(nil)

	out, err := prices.Execute(context.Background(), map[string]interface{}{"destination_city": "London"})
	require.NoError(t, err)
	assert.Equal(t, PriceResult{DestinationCity: "London", Price: "$799"}, out)

	_, err = prices.Execute(context.Background(), map[string]interface{}{})
	require.ErrorIs(t, err, ErrInvalidArguments)

	_, err = prices.Execute(context.Background(), map[string]interface{}{"destination_city": []int{1}})
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestRegistryDeclaresToolsInOrder(t *testing.T) {
	registry, _ := newTestRegistry(t)

	specs := registry.OpenAITools()
	require.Len(t, specs, 2)
	assert.Equal(t, PriceToolName, specs[0].Function.Name)
	assert.Equal(t, BookingToolName, specs[1].Function.Name)
	assert.NotEmpty(t, specs[0].Function.Description)
}

func TestDispatchPrice(t *testing.T) {
	registry, _ := newTestRegistry(t)

	call, err := ParseToolCall(models.ToolCallRequest{
		ID:        "call_1",
		Name:      PriceToolName,
		Arguments: `{"destination_city": "Paris"}`,
	})
	require.NoError(t, err)

	result, err := registry.Dispatch(context.Background(), call)
	require.NoError(t, err)
	assert.Equal(t, "call_1", result.CallID)
	assert.Equal(t, PriceResult{DestinationCity: "Paris", Price: "$899"}, result.Result)
}

func TestDispatchUnknownTool(t *testing.T) {
	registry, _ := newTestRegistry(t)

	_, err := registry.Dispatch(context.Background(), ToolCall{ID: "call_1", Name: "cancel_flight"})
	require.ErrorIs(t, err, ErrUnknownTool)
	assert.Contains(t, err.Error(), "cancel_flight")
}

func TestParseToolCallMalformed(t *testing.T) {
	_, err := ParseToolCall(models.ToolCallRequest{
		ID:        "call_1",
		Name:      PriceToolName,
		Arguments: `{"destination_city": `,
	})
	require.ErrorIs(t, err, ErrMalformedArguments)
}

func TestParseToolCallEmptyObject(t *testing.T) {
	call, err := ParseToolCall(models.ToolCallRequest{Name: PriceToolName, Arguments: `null`})
	require.NoError(t, err)
	assert.NotNil(t, call.Args)
}

func TestBookingToolRecordsBooking(t *testing.T) {
	registry, bookings := newTestRegistry(t)

	call, err := ParseToolCall(models.ToolCallRequest{
		ID:        "call_2",
		Name:      BookingToolName,
		Arguments: `{"destination_city": "tokyo", "customer_name": "Ana Silva", "customer_id": 4521}`,
	})
	require.NoError(t, err)

	result, err := registry.Dispatch(context.Background(), call)
	require.NoError(t, err)

	booked, ok := result.Result.(BookingResult)
	require.True(t, ok)
	assert.Equal(t, "4521", booked.CustomerID)
	assert.Contains(t, booked.BookingResult, "Booking confirmed for Ana Silva (4521) to Tokyo")

	stored, err := bookings.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "$1400", stored[0].Price)
	assert.Len(t, stored[0].Reference, 8)
	assert.Contains(t, booked.BookingResult, stored[0].Reference)
}

func TestBookingToolKeepsLongNumericCustomerID(t *testing.T) {
	registry, bookings := newTestRegistry(t)

	call, err := ParseToolCall(models.ToolCallRequest{
		ID:        "call_3",
		Name:      BookingToolName,
		Arguments: `{"destination_city": "London", "customer_name": "Sam Lee", "customer_id": 9007199254740993}`,
	})
	require.NoError(t, err)

	result, err := registry.Dispatch(context.Background(), call)
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", result.Result.(BookingResult).CustomerID)

	stored, err := bookings.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "9007199254740993", stored[0].CustomerID)
}

func TestBookingToolRequiresAllFields(t *testing.T) {
	tool := NewBookingTool(inmemory.NewBookingStore(), nil)

	_, err := tool.Execute(context.Background(), map[string]interface{}{
		"destination_city": "Berlin",
		"customer_id":      "C-1",
	})
	require.ErrorIs(t, err, ErrInvalidArguments)
	assert.Contains(t, err.Error(), "customer_name")
}

func TestTitleCity(t *testing.T) {
	assert.Equal(t, "New York", titleCity("new york"))
	assert.Equal(t, "Zürich", titleCity("zürich"))
	assert.Equal(t, "Éze", titleCity("ÉZE"))
}

func TestResultCodec(t *testing.T) {
	content, err := EncodeResult(PriceResult{DestinationCity: "Berlin", Price: "$499"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"destination_city": "Berlin", "price": "$499"}`, content)

	decoded, err := DecodeResult(PriceToolName, content)
	require.NoError(t, err)
	assert.Equal(t, PriceResult{DestinationCity: "Berlin", Price: "$499"}, decoded)

	booking := BookingResult{
		DestinationCity: "Tokyo",
		CustomerName:    "Ana Silva",
		CustomerID:      "C-4521",
		BookingResult:   "Booking confirmed for Ana Silva (C-4521) to Tokyo. Reference: ABCD1234",
	}
	content, err = EncodeResult(booking)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"destination_city": "Tokyo",
		"customer_name": "Ana Silva",
		"customer_id": "C-4521",
		"booking_result": "Booking confirmed for Ana Silva (C-4521) to Tokyo. Reference: ABCD1234"
	}`, content)

	decoded, err = DecodeResult(BookingToolName, content)
	require.NoError(t, err)
	assert.Equal(t, booking, decoded)

	generic, err := DecodeResult("something_else", `{"ok": true}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"ok": true}, generic)

	_, err = DecodeResult(BookingToolName, `not json`)
	require.Error(t, err)
}
