package upstream

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text accepts a JSON string, number or null and keeps its textual form.
// Upstream feeds are inconsistent about quoting ids and amounts.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	if b[0] == '{' || b[0] == '[' {
		// Not a scalar; treat as missing rather than failing the whole payload.
		*t = ""
		return nil
	}
	*t = Text(b)
	return nil
}

func (t Text) String() string { return string(t) }

type RawUser struct {
	ID       Text   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

type RawOrderItem struct {
	ID       Text   `json:"id"`
	Name     string `json:"name"`
	Quantity Text   `json:"quantity"`
	Price    Text   `json:"price"`
}

// RawOrder is one element of GET {base}/orders.
type RawOrder struct {
	ID           Text           `json:"id"`
	ExternalID   Text           `json:"external_id"`
	User         *RawUser       `json:"user"`
	BankCard     string         `json:"bank_card"`
	Status       string         `json:"status"`
	TotalAmount  Text           `json:"total_amount"`
	Bonus        Text           `json:"bonus"`
	DeliveryCost Text           `json:"delivery_cost"`
	CreatedAt    Text           `json:"created_at"`
	PaidAt       Text           `json:"paid_at"`
	ShippedAt    Text           `json:"shipped_at"`
	Items        []RawOrderItem `json:"order_items"`
}

// RawRate is one currency entry of the daily rates feed: Value roubles per
// Nominal units of the currency.
type RawRate struct {
	CharCode string  `json:"CharCode"`
	Nominal  float64 `json:"Nominal"`
	Value    float64 `json:"Value"`
	Previous float64 `json:"Previous"`
}

type rawDaily struct {
	Date   string             `json:"Date"`
	Valute map[string]RawRate `json:"Valute"`
}
