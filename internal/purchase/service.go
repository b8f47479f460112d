package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/TemirB/opsboard/internal/domain"
)

//go:generate mockgen -source internal/purchase/service.go -destination=internal/purchase/service_mock_test.go -package=purchase

const ExpenseCategoryLogistics = "logistics"

type Store interface {
	Get(ctx context.Context, id int64) (*Purchase, error)
	// Apply must fail with domain.ErrConflict when the purchase is no longer
	// in change.From.
	Apply(ctx context.Context, change Change) error
}

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, logger *zap.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    now,
	}
}

// Transition moves purchase id to status to. Moving to the current status is
// a no-op. Reaching received increments stock and records the logistics
// expense in the same unit of work as the status change.
func (s *Service) Transition(ctx context.Context, id int64, to Status, in ReceiveInput) (*Purchase, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, to)
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == to {
		return p, nil
	}
	if !p.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, p.Status, to)
	}

	change := Change{
		PurchaseID: p.ID,
		From:       p.Status,
		To:         to,
		At:         s.now(),
	}
	if to == StatusReceived {
		if change.Stock, err = stockIncrements(p.Items, in.Items); err != nil {
			return nil, err
		}
		if change.Expense, err = logisticsExpense(p, in.LogisticsCost, change.At); err != nil {
			return nil, err
		}
	}

	if err := s.store.Apply(ctx, change); err != nil {
		s.logger.Error("Purchase transition failed",
			zap.Int64("purchase_id", id),
			zap.String("from", string(change.From)),
			zap.String("to", string(to)),
			zap.Error(err),
		)
		return nil, err
	}

	p.Status = to
	p.UpdatedAt = change.At
	s.logger.Info("Purchase transitioned",
		zap.Int64("purchase_id", id),
		zap.String("from", string(change.From)),
		zap.String("to", string(to)),
		zap.Int("stock_lines", len(change.Stock)),
		zap.Bool("expense", change.Expense != nil),
	)
	return p, nil
}

func stockIncrements(items []Item, received []ReceivedItem) ([]StockIncrement, error) {
	qty := make(map[int64]int, len(items))
	order := make([]int64, 0, len(items))
	for _, it := range items {
		if _, seen := qty[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		qty[it.ProductID] += it.Quantity
	}

	overridden := make(map[int64]bool, len(received))
	for _, r := range received {
		if _, ok := qty[r.ProductID]; !ok {
			return nil, fmt.Errorf("%w: product %d is not part of the purchase", domain.ErrValidation, r.ProductID)
		}
		if r.Quantity < 0 {
			return nil, fmt.Errorf("%w: negative quantity for product %d", domain.ErrValidation, r.ProductID)
		}
		if overridden[r.ProductID] {
			return nil, fmt.Errorf("%w: product %d listed twice", domain.ErrValidation, r.ProductID)
		}
		overridden[r.ProductID] = true
		qty[r.ProductID] = r.Quantity
	}

	out := make([]StockIncrement, 0, len(order))
	for _, id := range order {
		if qty[id] == 0 {
			continue
		}
		out = append(out, StockIncrement{ProductID: id, Quantity: qty[id]})
	}
	return out, nil
}

func logisticsExpense(p *Purchase, cost decimal.Decimal, at time.Time) (*Expense, error) {
	if cost.IsNegative() {
		return nil, fmt.Errorf("%w: negative logistics cost", domain.ErrValidation)
	}
	if cost.IsZero() {
		return nil, nil
	}
	return &Expense{
		PurchaseID:  p.ID,
		Category:    ExpenseCategoryLogistics,
		Amount:      cost,
		Description: fmt.Sprintf("Logistics for purchase #%d (%s)", p.ID, p.Supplier),
		At:          at,
	}, nil
}
