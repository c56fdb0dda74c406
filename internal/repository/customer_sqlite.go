package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

// legacy rows may carry naive timestamps without zone, they are UTC
const sqliteNaiveTimeLayout = "2006-01-02T15:04:05.999999999"

const sqliteCustomersSchema = `CREATE TABLE IF NOT EXISTS customers (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	email      TEXT UNIQUE NOT NULL,
	phone      TEXT,
	company    TEXT,
	created_at TEXT
)`

const sqliteSelectCustomer = `SELECT id, name, email, COALESCE(phone, '') AS phone, COALESCE(company, '') AS company,
	COALESCE(created_at, '') AS created_at FROM customers`

type sqliteCustomer struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Company   string `db:"company"`
	CreatedAt string `db:"created_at"`
}

func (r sqliteCustomer) toModel() (*model.Customer, error) {
	createdAt, err := parseSqliteTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("customer %d has malformed created_at %q - %w", r.ID, r.CreatedAt, err)
	}

	return &model.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		CreatedAt: createdAt,
	}, nil
}

func parseSqliteTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	return time.ParseInLocation(sqliteNaiveTimeLayout, s, time.UTC)
}

type sqliteCustomerRepository struct {
	trx      transactor.SqlxTransactor
	executor transactor.SqlxWithinTransactionExecutor
}

// NewSqliteCustomerRepository builds customer repository over embedded sqlite database
func NewSqliteCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &sqliteCustomerRepository{
		trx:      transactor.NewSqlxTransactor(db),
		executor: transactor.NewSqlxWithinTransactionExecutor(db),
	}
}

func (r *sqliteCustomerRepository) Init(ctx context.Context) error {
	if _, err := r.executor.Executor(ctx).ExecContext(ctx, sqliteCustomersSchema); err != nil {
		return fmt.Errorf("failed to create customers table - %w", err)
	}
	return nil
}

func (r *sqliteCustomerRepository) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	var row sqliteCustomer
	q := sqliteSelectCustomer + " WHERE id = ?"

	if err := r.executor.Executor(ctx).GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.toModel()
}

func (r *sqliteCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	rows := make([]sqliteCustomer, 0)
	q := sqliteSelectCustomer + " ORDER BY id"

	if err := r.executor.Executor(ctx).SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}

	customers := make([]*model.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := row.toModel()
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func (r *sqliteCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := "INSERT INTO customers(name, email, phone, company, created_at) VALUES(?, ?, ?, ?, ?)"

	res, err := r.executor.Executor(ctx).ExecContext(ctx, q, c.Name, c.Email, c.Phone, c.Company, c.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		if isSqliteUniqueViolation(err) {
			return apperrors.NewDuplicateEmailErr(c.Email)
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	c.ID = id
	return nil
}

func (r *sqliteCustomerRepository) Update(ctx context.Context, id int64, patch model.CustomerPatch) (*model.Customer, error) {
	q := `UPDATE customers SET name = COALESCE(?, name), email = COALESCE(?, email),
		  phone = COALESCE(?, phone), company = COALESCE(?, company)
		  WHERE id = ?`

	var updated *model.Customer
	err := r.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		res, err := r.executor.Executor(ctx).ExecContext(ctx, q, patch.Name, patch.Email, patch.Phone, patch.Company, id)
		if err != nil {
			if isSqliteUniqueViolation(err) {
				return apperrors.NewDuplicateEmailErr(patch.EmailValue())
			}
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if affected == 0 {
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

func (r *sqliteCustomerRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	q := "DELETE FROM customers WHERE id = ?"

	res, err := r.executor.Executor(ctx).ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func isSqliteUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
