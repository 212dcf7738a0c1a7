package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tenderdesk/procurement-service/internal/domain"
)

// ItemFilter narrows item listings. Nil fields are not applied.
type ItemFilter struct {
	UserID *int64
	Status *domain.ItemStatus
}

// ItemRepository encapsulates item persistence.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]domain.Item, error)
	UpdateStatus(ctx context.Context, item *domain.Item) error
}

type itemRepository struct {
	db DBTX
}

// NewItemRepository instantiates repository.
func NewItemRepository(db DBTX) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, user_id, name, description, category, url, quantity, price, total, due_date, status, created_at, updated_at`

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (user_id, name, description, category, url, quantity, price, total, due_date, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		item.UserID,
		item.Name,
		item.Description,
		item.Category,
		item.URL,
		item.Quantity,
		item.Price,
		item.Total,
		item.DueDate,
		item.Status,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	const query = `SELECT ` + itemColumns + ` FROM items WHERE id=$1`
	return scanItem(r.db.QueryRow(ctx, query, id))
}

// UpdateStatus writes only the status column; concurrent writers are last-write-wins.
func (r *itemRepository) UpdateStatus(ctx context.Context, item *domain.Item) error {
	const query = `
        UPDATE items SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query, item.Status, item.ID).Scan(&item.UpdatedAt)
}

func (r *itemRepository) List(ctx context.Context, filter ItemFilter) ([]domain.Item, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM items WHERE %s ORDER BY id`,
		itemColumns, strings.Join(clauses, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.URL,
		&item.Quantity,
		&item.Price,
		&item.Total,
		&item.DueDate,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
