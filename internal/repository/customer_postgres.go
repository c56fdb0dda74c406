package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

const pgUniqueViolationCode = "23505"

const pgCustomersSchema = `CREATE TABLE IF NOT EXISTS customers (
	id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL UNIQUE,
	phone      TEXT NOT NULL DEFAULT '',
	company    TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`

type postgresCustomerRepository struct {
	trx      transactor.PgxTransactor
	executor transactor.PgxWithinTransactionExecutor
}

// NewPostgresCustomerRepository builds customer repository over postgres pool
func NewPostgresCustomerRepository(p *pgxpool.Pool) CustomerRepository {
	return &postgresCustomerRepository{
		trx:      transactor.NewPgxTransactor(p),
		executor: transactor.NewPgxWithinTransactionExecutor(p),
	}
}

func (r *postgresCustomerRepository) Init(ctx context.Context) error {
	if _, err := r.executor.Executor(ctx).Exec(ctx, pgCustomersSchema); err != nil {
		return fmt.Errorf("failed to create customers table - %w", err)
	}
	return nil
}

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	q := "SELECT id, name, email, phone, company, created_at FROM customers WHERE id = $1"

	row := r.executor.Executor(ctx).QueryRow(ctx, q, id)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *postgresCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	q := "SELECT id, name, email, phone, company, created_at FROM customers ORDER BY id"

	rows, err := r.executor.Executor(ctx).Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.CreatedAt); err != nil {
			return nil, err
		}

		c.CreatedAt = c.CreatedAt.UTC()
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := `INSERT INTO customers(name, email, phone, company, created_at)
		  VALUES($1, $2, $3, $4, $5) RETURNING id`

	row := r.executor.Executor(ctx).QueryRow(ctx, q, c.Name, c.Email, c.Phone, c.Company, c.CreatedAt)
	if err := row.Scan(&c.ID); err != nil {
		if isPgUniqueViolation(err) {
			return apperrors.NewDuplicateEmailErr(c.Email)
		}
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) Update(ctx context.Context, id int64, patch model.CustomerPatch) (*model.Customer, error) {
	q := `UPDATE customers SET name = COALESCE($1, name), email = COALESCE($2, email),
		  phone = COALESCE($3, phone), company = COALESCE($4, company)
		  WHERE id = $5`

	var updated *model.Customer
	err := r.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		comm, err := r.executor.Executor(ctx).Exec(ctx, q, patch.Name, patch.Email, patch.Phone, patch.Company, id)
		if err != nil {
			if isPgUniqueViolation(err) {
				return apperrors.NewDuplicateEmailErr(patch.EmailValue())
			}
			return err
		}

		if comm.RowsAffected() == 0 {
			return nil
		}

		updated, err = r.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *postgresCustomerRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	q := "DELETE FROM customers WHERE id = $1"

	comm, err := r.executor.Executor(ctx).Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}
	return false
}
