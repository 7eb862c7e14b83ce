package tools

// RegisterBuiltinTools registers the airline tools: price lookup and booking.
// The booking tool shares the price table so bookings record the quoted fare.
func RegisterBuiltinTools(registry *Registry, bookings BookingStore) {
	prices := NewPriceTool(nil)
	registry.Register(prices)
	registry.Register(NewBookingTool(bookings, prices))
}
