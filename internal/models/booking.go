package models

import "time"

// Booking is a confirmed (simulated) reservation made through the booking tool.
type Booking struct {
	Reference       string    `json:"reference"`
	DestinationCity string    `json:"destination_city"`
	CustomerName    string    `json:"customer_name"`
	CustomerID      string    `json:"customer_id"`
	Price           string    `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
}
