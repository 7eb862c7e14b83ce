package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	PriceToolName = "get_ticket_price"
	// UnknownPrice is returned for destinations missing from the price table
	UnknownPrice = "Unknown"
)

// DefaultTicketPrices is the return-ticket price table, keyed by lower-case city
var DefaultTicketPrices = map[string]string{
	"london": "$799",
	"paris":  "$899",
	"tokyo":  "$1400",
	"berlin": "$499",
}

// PriceResult is the structured answer of the price lookup tool
type PriceResult struct {
	DestinationCity string `json:"destination_city" mapstructure:"destination_city"`
	Price           string `json:"price" mapstructure:"price"`
}

type priceArgs struct {
	DestinationCity string `mapstructure:"destination_city"`
}

// PriceTool looks up return ticket prices in a fixed table
type PriceTool struct {
	prices map[string]string
}

// NewPriceTool creates a price tool over the given table. A nil table uses DefaultTicketPrices.
func NewPriceTool(prices map[string]string) *PriceTool {
	if prices == nil {
		prices = DefaultTicketPrices
	}
	normalized := make(map[string]string, len(prices))
	for city, price := range prices {
		normalized[strings.ToLower(strings.TrimSpace(city))] = price
	}
	return &PriceTool{prices: normalized}
}

func (p *PriceTool) Name() string {
	return PriceToolName
}

func (p *PriceTool) Description() string {
	return "Get the price of a return ticket to the destination city. Call this whenever you need to know the ticket price, for example when a customer asks 'How much is a ticket to this city'"
}

func (p *PriceTool) Parameters() map[string]jsonschema.Definition {
	return map[string]jsonschema.Definition{
		"destination_city": {
			Type:        jsonschema.String,
			Description: "The city that the customer wants to travel to",
		},
	}
}

func (p *PriceTool) RequiredParameters() []string {
	return []string{"destination_city"}
}

// Lookup returns the ticket price for city, or UnknownPrice. Matching is case-insensitive.
func (p *PriceTool) Lookup(city string) string {
	if price, ok := p.prices[strings.ToLower(strings.TrimSpace(city))]; ok {
		return price
	}
	return UnknownPrice
}

func (p *PriceTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	var in priceArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.DestinationCity) == "" {
		return nil, fmt.Errorf("%w: destination_city is required", ErrInvalidArguments)
	}

	return PriceResult{
		DestinationCity: in.DestinationCity,
		Price:           p.Lookup(in.DestinationCity),
	}, nil
}

// decodeArgs maps loosely typed model arguments onto a tool's argument struct
func decodeArgs(args map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}
