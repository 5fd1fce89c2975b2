package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	domainErrors "github.com/polkiloo/sanda/internal/domain/errors"
	"github.com/polkiloo/sanda/internal/domain/model"
)

const volunteerColumns = `id, first_name, last_name, phone_number, email, national_id, age, gender, address,
    password_hash, nursing, physical_therapy, max_active_orders, current_active_orders,
    last_order_accepted_at, balance, created_at, updated_at`

type volunteerRepository struct {
	storage *Storage
}

func scanVolunteer(row pgx.Row) (*model.Volunteer, error) {
	var v model.Volunteer
	err := row.Scan(
		&v.ID, &v.FirstName, &v.LastName, &v.PhoneNumber, &v.Email, &v.NationalID, &v.Age, &v.Gender, &v.Address,
		&v.PasswordHash, &v.Nursing, &v.PhysicalTherapy, &v.MaxActiveOrders, &v.CurrentActiveOrders,
		&v.LastOrderAcceptedAt, &v.Balance, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *volunteerRepository) Create(ctx context.Context, v *model.Volunteer) (*model.Volunteer, error) {
	query := `INSERT INTO volunteers (first_name, last_name, phone_number, email, national_id, age, gender, address,
            password_hash, nursing, physical_therapy, max_active_orders)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING ` + volunteerColumns

	created, err := scanVolunteer(r.storage.pool.QueryRow(ctx, query,
		v.FirstName, v.LastName, v.PhoneNumber, v.Email, v.NationalID, v.Age, v.Gender, v.Address,
		v.PasswordHash, v.Nursing, v.PhysicalTherapy, v.MaxActiveOrders,
	))
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (r *volunteerRepository) GetByID(ctx context.Context, id int64) (*model.Volunteer, error) {
	v, err := scanVolunteer(r.storage.pool.QueryRow(ctx, `SELECT `+volunteerColumns+` FROM volunteers WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *volunteerRepository) List(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+volunteerColumns+` FROM volunteers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var volunteers []model.Volunteer
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, err
		}
		volunteers = append(volunteers, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return volunteers, nil
}

func (r *volunteerRepository) Update(ctx context.Context, v *model.Volunteer) (*model.Volunteer, error) {
	query := `UPDATE volunteers SET first_name=$2, last_name=$3, phone_number=$4, email=$5, national_id=$6,
            age=$7, gender=$8, address=$9, password_hash=$10, nursing=$11, physical_therapy=$12,
            max_active_orders=$13, updated_at=NOW()
        WHERE id=$1
        RETURNING ` + volunteerColumns

	updated, err := scanVolunteer(r.storage.pool.QueryRow(ctx, query,
		v.ID, v.FirstName, v.LastName, v.PhoneNumber, v.Email, v.NationalID,
		v.Age, v.Gender, v.Address, v.PasswordHash, v.Nursing, v.PhysicalTherapy,
		v.MaxActiveOrders,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, domainErrors.ErrNotFound
		case pgCode(err) == pgUniqueViolation:
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return updated, nil
}

func (r *volunteerRepository) Delete(ctx context.Context, id int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := lockVolunteer(ctx, tx, id); err != nil {
			return err
		}

		released, err := tx.Exec(ctx, `UPDATE orders SET volunteer_id=NULL, status='Pending', in_progress_at=NULL, status_updated_at=NOW()
            WHERE volunteer_id=$1 AND status IN ('Accepted', 'InProgress')`, id)
		if err != nil {
			return err
		}
		if released.RowsAffected() > 0 {
			r.storage.logger.Info("released orders of deleted volunteer", zap.Int64("volunteer_id", id), zap.Int64("orders", released.RowsAffected()))
		}

		_, err = tx.Exec(ctx, `DELETE FROM volunteers WHERE id=$1`, id)
		return err
	})
}
