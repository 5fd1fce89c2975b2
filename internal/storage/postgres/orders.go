package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
)

const orderColumns = `id, user_id, user_name, name, comment, phone_number, location, category_name,
    product_id, service_id, COALESCE(item_image, ''), COALESCE(gender_preference, ''), status,
    created_at, status_updated_at, in_progress_at, completed_at, volunteer_id`

const selectOrders = `SELECT ` + orderColumns + ` FROM orders`

type orderRepository struct {
	storage *Storage
}

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order     model.Order
		productID *int64
		serviceID *int64
	)
	err := row.Scan(
		&order.ID, &order.RequesterID, &order.RequesterName, &order.Name, &order.Comment,
		&order.PhoneNumber, &order.Location, &order.Category,
		&productID, &serviceID, &order.ItemImage, &order.GenderPreference, &order.Status,
		&order.CreatedAt, &order.StatusUpdatedAt, &order.InProgressAt, &order.CompletedAt, &order.VolunteerID,
	)
	if err != nil {
		return nil, err
	}
	order.Item = model.ItemFromColumns(productID, serviceID)
	return &order, nil
}

func queryOrders(ctx context.Context, q querier, sql string, args ...any) ([]model.Order, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	query := `INSERT INTO orders (user_id, user_name, name, comment, phone_number, location, category_name,
            product_id, service_id, item_image, gender_preference, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''), $12)
        RETURNING id, created_at, status_updated_at`

	created := *order
	created.Status = model.OrderStatusPending
	created.VolunteerID = nil
	created.InProgressAt = nil
	created.CompletedAt = nil

	err := r.storage.pool.QueryRow(ctx, query,
		created.RequesterID, created.RequesterName, created.Name, created.Comment, created.PhoneNumber,
		created.Location, created.Category, created.Item.ProductID(), created.Item.ServiceID(),
		created.ItemImage, created.GenderPreference, string(created.Status),
	).Scan(&created.ID, &created.CreatedAt, &created.StatusUpdatedAt)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, selectOrders+` WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	return queryOrders(ctx, r.storage.pool, selectOrders+` ORDER BY created_at DESC, id DESC`)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return queryOrders(ctx, r.storage.pool, selectOrders+` WHERE status=$1 ORDER BY created_at DESC, id DESC`, string(status))
}

func (r *orderRepository) ListAvailable(ctx context.Context) ([]model.Order, error) {
	return queryOrders(ctx, r.storage.pool, selectOrders+` WHERE status='Pending' AND volunteer_id IS NULL ORDER BY created_at, id`)
}

func (r *orderRepository) ListByVolunteer(ctx context.Context, volunteerID int64) ([]model.Order, error) {
	return queryOrders(ctx, r.storage.pool, selectOrders+` WHERE volunteer_id=$1 AND status <> 'Done' ORDER BY status_updated_at DESC, id DESC`, volunteerID)
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64, status model.OrderStatus, exclude bool) ([]model.Order, error) {
	switch {
	case status == "":
		return queryOrders(ctx, r.storage.pool, selectOrders+` WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	case exclude:
		return queryOrders(ctx, r.storage.pool, selectOrders+` WHERE user_id=$1 AND status <> $2 ORDER BY created_at DESC, id DESC`, userID, string(status))
	default:
		return queryOrders(ctx, r.storage.pool, selectOrders+` WHERE user_id=$1 AND status = $2 ORDER BY created_at DESC, id DESC`, userID, string(status))
	}
}

func (r *orderRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int64
	if err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id=$1`, userID).Scan(&count); err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *orderRepository) Assign(ctx context.Context, orderID, volunteerID int64) (*model.Order, error) {
	query := `UPDATE orders SET volunteer_id=$1, status='Accepted', status_updated_at=NOW()
        WHERE id=$2 AND status='Pending' AND volunteer_id IS NULL
        RETURNING ` + orderColumns

	var assigned *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		limit, err := lockVolunteer(ctx, tx, volunteerID)
		if err != nil {
			return err
		}

		active, err := countActiveOrders(ctx, tx, volunteerID)
		if err != nil {
			return err
		}
		if active >= limit {
			return domainErrors.ErrCapacityReached
		}

		assigned, err = scanOrder(tx.QueryRow(ctx, query, volunteerID, orderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotAvailable
			}
			return err
		}

		_, err = tx.Exec(ctx, `UPDATE volunteers SET current_active_orders=$2, last_order_accepted_at=NOW(), updated_at=NOW() WHERE id=$1`,
			volunteerID, active+1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return assigned, nil
}

func (r *orderRepository) Release(ctx context.Context, orderID, volunteerID int64) (*model.Order, error) {
	query := `UPDATE orders SET volunteer_id=NULL, status='Pending', in_progress_at=NULL, status_updated_at=NOW()
        WHERE id=$1
        RETURNING ` + orderColumns

	var released *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Volunteer row first, same lock order as Assign.
		_, lockErr := lockVolunteer(ctx, tx, volunteerID)
		if lockErr != nil && !errors.Is(lockErr, domainErrors.ErrNotFound) {
			return lockErr
		}

		var (
			holder *int64
			status model.OrderStatus
		)
		err := tx.QueryRow(ctx, `SELECT volunteer_id, status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&holder, &status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if lockErr != nil || holder == nil || *holder != volunteerID {
			return domainErrors.ErrForbidden
		}
		if !status.Active() {
			return domainErrors.ErrConflict
		}

		released, err = scanOrder(tx.QueryRow(ctx, query, orderID))
		if err != nil {
			return err
		}
		return refreshActiveOrders(ctx, tx, volunteerID)
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}

func (r *orderRepository) Transition(ctx context.Context, orderID int64, from, to model.OrderStatus) (*model.Order, error) {
	query := `UPDATE orders SET status=$3, status_updated_at=NOW(),
            in_progress_at = CASE WHEN $3 = 'InProgress' THEN NOW() ELSE in_progress_at END,
            completed_at = CASE WHEN $3 = 'Done' THEN NOW() ELSE completed_at END
        WHERE id=$1 AND status=$2
        RETURNING ` + orderColumns

	var moved *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		holder, err := orderHolder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if holder != nil {
			if _, err := lockVolunteer(ctx, tx, *holder); err != nil {
				return err
			}
		}

		moved, err = scanOrder(tx.QueryRow(ctx, query, orderID, string(from), string(to)))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrConflict
			}
			return err
		}

		if moved.VolunteerID != nil && from.Active() != to.Active() {
			return refreshActiveOrders(ctx, tx, *moved.VolunteerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

func (r *orderRepository) DeleteIfStatus(ctx context.Context, orderID int64, statuses ...model.OrderStatus) error {
	allowed := make([]string, 0, len(statuses))
	for _, status := range statuses {
		allowed = append(allowed, string(status))
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		holder, err := orderHolder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if holder != nil {
			if _, err := lockVolunteer(ctx, tx, *holder); err != nil {
				return err
			}
		}

		var removedHolder *int64
		err = tx.QueryRow(ctx, `DELETE FROM orders WHERE id=$1 AND status = ANY($2) RETURNING volunteer_id`, orderID, allowed).Scan(&removedHolder)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrConflict
			}
			return err
		}

		if removedHolder != nil {
			return refreshActiveOrders(ctx, tx, *removedHolder)
		}
		return nil
	})
}

func (r *orderRepository) PurgeDone(ctx context.Context, userID int64) ([]int64, error) {
	var removed []int64
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id FROM orders WHERE user_id=$1 AND status='Done'
            ORDER BY COALESCE(completed_at, status_updated_at), id FOR UPDATE`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			removed = append(removed, id)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		rows.Close()

		if len(removed) == 0 {
			return nil
		}
		_, err = tx.Exec(ctx, `DELETE FROM orders WHERE id = ANY($1)`, removed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *orderRepository) UsersForCleanup(ctx context.Context, minOrders, limit int) ([]int64, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT user_id FROM orders GROUP BY user_id
        HAVING COUNT(*) >= $1 AND COUNT(*) FILTER (WHERE status = 'Done') > 0
        ORDER BY user_id LIMIT $2`, minOrders, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func orderHolder(ctx context.Context, tx pgx.Tx, orderID int64) (*int64, error) {
	var holder *int64
	if err := tx.QueryRow(ctx, `SELECT volunteer_id FROM orders WHERE id=$1`, orderID).Scan(&holder); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return holder, nil
}

// lockVolunteer takes the volunteer row lock that serializes every change to its active orders.
func lockVolunteer(ctx context.Context, tx pgx.Tx, volunteerID int64) (int, error) {
	var limit int
	err := tx.QueryRow(ctx, `SELECT max_active_orders FROM volunteers WHERE id=$1 FOR UPDATE`, volunteerID).Scan(&limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, err
	}
	return limit, nil
}

func countActiveOrders(ctx context.Context, tx pgx.Tx, volunteerID int64) (int, error) {
	var count int64
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE volunteer_id=$1 AND status IN ('Accepted', 'InProgress')`, volunteerID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func refreshActiveOrders(ctx context.Context, tx pgx.Tx, volunteerID int64) error {
	_, err := tx.Exec(ctx, `UPDATE volunteers SET current_active_orders=(
            SELECT COUNT(*) FROM orders WHERE volunteer_id=$1 AND status IN ('Accepted', 'InProgress')
        ), updated_at=NOW() WHERE id=$1`, volunteerID)
	return err
}
