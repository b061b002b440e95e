package services

import "fmt"

// PriceError represents an unknown selection in a quote request
type PriceError struct {
	Field   string
	Value   string
	Message string
}

func (e *PriceError) Error() string {
	return e.Message
}

// The price table mirrors the options offered on the order form. Every
// selected line contributes its configured price to the total; a price
// of 0 is a valid entry (e.g. pickup costs nothing).
var (
	SizePrices = map[string]int64{
		"16cm": 12000,
		"20cm": 18000,
		"24cm": 26000,
		"two_tier":   48000,
		"three_tier": 85000,
	}

	FlavorPrices = map[string]int64{
		"vanilla":     0,
		"chocolate":   1500,
		"red_velvet":  2500,
		"lemon":       1500,
		"matcha":      3000,
	}

	SupplementPrices = map[string]int64{
		"fresh_fruit":     2000,
		"chocolate_drip":  1500,
		"macarons":        3000,
		"edible_flowers":  2500,
		"custom_figurine": 5000,
	}

	ToppingPrices = map[string]int64{
		"none":            0,
		"buttercream":     1000,
		"fondant":         2500,
		"whipped_cream":   800,
	}

	PackagingPrices = map[string]int64{
		"standard_box": 0,
		"gift_box":     1200,
		"window_box":   800,
	}

	DeliveryPrices = map[string]int64{
		"pickup":        0,
		"city_center":   1000,
		"suburbs":       2000,
		"out_of_town":   4500,
	}
)

// QuoteSelection is one priced line of the quote
type QuoteSelection struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Price int64  `json:"price"`
}

// Quote is the computed price breakdown for a cake selection
type Quote struct {
	Lines []QuoteSelection `json:"lines"`
	Total int64            `json:"total"`
}

// ComputeQuote prices a cake selection against the static table.
// Size and flavor are required; supplements are a multi-select;
// topping, packaging and delivery location are optional single picks.
func ComputeQuote(size, flavor string, supplements []string, topping, packaging, deliveryLocation string) (*Quote, error) {
	quote := &Quote{}

	addLine := func(field, value string, table map[string]int64) error {
		price, ok := table[value]
		if !ok {
			return &PriceError{
				Field:   field,
				Value:   value,
				Message: fmt.Sprintf("unknown %s option: %s", field, value),
			}
		}
		quote.Lines = append(quote.Lines, QuoteSelection{Field: field, Value: value, Price: price})
		quote.Total += price
		return nil
	}

	if err := addLine("size", size, SizePrices); err != nil {
		return nil, err
	}
	if err := addLine("flavor", flavor, FlavorPrices); err != nil {
		return nil, err
	}
	for _, s := range supplements {
		if err := addLine("supplement", s, SupplementPrices); err != nil {
			return nil, err
		}
	}
	if topping != "" {
		if err := addLine("topping", topping, ToppingPrices); err != nil {
			return nil, err
		}
	}
	if packaging != "" {
		if err := addLine("packaging", packaging, PackagingPrices); err != nil {
			return nil, err
		}
	}
	if deliveryLocation != "" {
		if err := addLine("delivery_location", deliveryLocation, DeliveryPrices); err != nil {
			return nil, err
		}
	}

	return quote, nil
}
