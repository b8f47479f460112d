package purchase

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type Purchase struct {
	ID        int64     `json:"id"`
	Supplier  string    `json:"supplier"`
	Status    Status    `json:"status"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReceiveInput describes what actually arrived. Lines not listed are
// received in full.
type ReceiveInput struct {
	Items         []ReceivedItem  `json:"received_items"`
	LogisticsCost decimal.Decimal `json:"logistics_cost"`
}

type ReceivedItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type StockIncrement struct {
	ProductID int64
	Quantity  int
}

type Expense struct {
	PurchaseID  int64
	Category    string
	Amount      decimal.Decimal
	Description string
	At          time.Time
}

// Change is one status transition and every side effect it carries. A Store
// applies all of it or none of it.
type Change struct {
	PurchaseID int64
	From       Status
	To         Status
	At         time.Time
	Stock      []StockIncrement
	Expense    *Expense
}
