package transform

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TemirB/opsboard/internal/domain"
	"github.com/TemirB/opsboard/internal/upstream"
)

const (
	unknownCustomer = "Not specified"
	defaultStatus   = "processing"
	emailDomain     = "customer.com"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Orders maps a raw feed snapshot preserving its order.
func Orders(raw []upstream.RawOrder) []domain.OrderRecord {
	out := make([]domain.OrderRecord, 0, len(raw))
	for i := range raw {
		out = append(out, Order(raw[i]))
	}
	return out
}

// Order maps one raw order into the canonical record. Missing or malformed
// fields are replaced with defaults, item totals are always recomputed.
func Order(raw upstream.RawOrder) domain.OrderRecord {
	id := raw.ID.String()

	rec := domain.OrderRecord{
		ID:           id,
		ExternalID:   raw.ExternalID.String(),
		CustomerName: unknownCustomer,
		BankCard:     strings.TrimSpace(raw.BankCard),
		Status:       strings.TrimSpace(raw.Status),
		Total:        money(raw.TotalAmount),
		Bonus:        money(raw.Bonus),
		DeliveryCost: money(raw.DeliveryCost),
		OrderDate:    date(raw.CreatedAt),
		PaidAt:       date(raw.PaidAt),
		ShippedAt:    date(raw.ShippedAt),
		Items:        make([]domain.OrderItem, 0, len(raw.Items)),
	}
	if rec.ExternalID == "" {
		rec.ExternalID = id
	}
	if rec.Status == "" {
		rec.Status = defaultStatus
	}

	userID := id
	if u := raw.User; u != nil {
		if name := strings.TrimSpace(u.FullName); name != "" {
			rec.CustomerName = name
		}
		rec.CustomerEmail = strings.TrimSpace(u.Email)
		rec.CustomerPhone = strings.TrimSpace(u.Phone)
		rec.CustomerCity = strings.TrimSpace(u.City)
		if uid := u.ID.String(); uid != "" {
			userID = uid
		}
	}
	if rec.CustomerEmail == "" {
		rec.CustomerEmail = "user" + userID + "@" + emailDomain
	}

	for i, it := range raw.Items {
		rec.Items = append(rec.Items, item(id, i, it))
	}
	return rec
}

func item(orderID string, idx int, raw upstream.RawOrderItem) domain.OrderItem {
	id := raw.ID.String()
	if id == "" {
		id = orderID + "_" + strconv.Itoa(idx)
	}
	qty := quantity(raw.Quantity)
	price := amount(raw.Price)

	return domain.OrderItem{
		ID:       id,
		Name:     strings.TrimSpace(raw.Name),
		Quantity: qty,
		Price:    price.String(),
		Total:    price.Mul(decimal.NewFromInt(int64(qty))).String(),
	}
}

// quantity defaults to 1 for anything that is not a positive whole number.
func quantity(t upstream.Text) int {
	d, err := decimal.NewFromString(t.String())
	if err != nil || !d.IsInteger() || !d.IsPositive() {
		return 1
	}
	return int(d.IntPart())
}

func amount(t upstream.Text) decimal.Decimal {
	d, err := decimal.NewFromString(t.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func money(t upstream.Text) string {
	return amount(t).String()
}

func date(t upstream.Text) *time.Time {
	s := t.String()
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			ts = ts.UTC()
			return &ts
		}
	}
	return nil
}
