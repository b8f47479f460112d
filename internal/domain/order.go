package domain

import "time"

// OrderRecord is the canonical order mirrored from the commerce feed.
type OrderRecord struct {
	ID            string      `json:"id"`
	ExternalID    string      `json:"external_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	CustomerCity  string      `json:"customer_city"`
	BankCard      string      `json:"bank_card"`
	Status        string      `json:"status"`
	Total         string      `json:"total"`
	Bonus         string      `json:"bonus"`
	DeliveryCost  string      `json:"delivery_cost"`
	OrderDate     *time.Time  `json:"order_date"`
	PaidAt        *time.Time  `json:"paid_at"`
	ShippedAt     *time.Time  `json:"shipped_at"`
	Items         []OrderItem `json:"items"`
}

type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

// SyncResult is reported by an explicit order sync.
type SyncResult struct {
	Imported int       `json:"imported"`
	LastSync time.Time `json:"last_sync"`
	Stale    bool      `json:"stale"`
}
