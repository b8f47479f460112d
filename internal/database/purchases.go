package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TemirB/opsboard/internal/config"
	"github.com/TemirB/opsboard/internal/domain"
	"github.com/TemirB/opsboard/internal/purchase"
)

// DB is the part of *pgxpool.Pool the repository uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Repo struct {
	pool   DB
	tables config.Tables
}

func New(pool DB, t config.Tables) *Repo { return &Repo{pool: pool, tables: t} }

func (r *Repo) qt(tbl string) string { return pgx.Identifier{r.tables.Schema, tbl}.Sanitize() }

func (r *Repo) Get(ctx context.Context, id int64) (*purchase.Purchase, error) {
	var p purchase.Purchase
	var status string
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, supplier, status, updated_at
		FROM %s WHERE id=$1
	`, r.qt(r.tables.Purchase)), id).Scan(&p.ID, &p.Supplier, &status, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Status = purchase.Status(status)

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT product_id, quantity, unit_cost::text
		FROM %s WHERE purchase_id=$1
		ORDER BY id
	`, r.qt(r.tables.PurchaseItem)), id)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (purchase.Item, error) {
		var it purchase.Item
		var cost string
		if err := row.Scan(&it.ProductID, &it.Quantity, &cost); err != nil {
			return it, err
		}
		return it, it.UnitCost.UnmarshalText([]byte(cost))
	})
	if err != nil {
		return nil, err
	}
	p.Items = items
	return &p, nil
}

// Apply writes the status change, stock increments and expense in one
// transaction. The status update is guarded by the expected previous status.
func (r *Repo) Apply(ctx context.Context, c purchase.Change) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET status=$1, updated_at=$2
		WHERE id=$3 AND status=$4
	`, r.qt(r.tables.Purchase)), string(c.To), c.At, c.PurchaseID, string(c.From))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase %d is no longer %s", domain.ErrConflict, c.PurchaseID, c.From)
	}

	for _, st := range c.Stock {
		tag, err := tx.Exec(ctx, fmt.Sprintf(`
			UPDATE %s SET stock_quantity = stock_quantity + $1
			WHERE id=$2
		`, r.qt(r.tables.Stock)), st.Quantity, st.ProductID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: product %d", domain.ErrNotFound, st.ProductID)
		}
	}

	if e := c.Expense; e != nil {
		_, err = tx.Exec(ctx, fmt.Sprintf(`
			INSERT INTO %s (purchase_id, category, amount, description, spent_at)
			VALUES ($1,$2,$3::numeric,$4,$5)
		`, r.qt(r.tables.Expense)), e.PurchaseID, e.Category, e.Amount.String(), e.Description, e.At)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
