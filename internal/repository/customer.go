package repository

import (
	"context"

	"github.com/umalmyha/crm/internal/model"
)

const customersTable = "customers"

//go:generate mockery --name CustomerRepository --output ./mocks

// CustomerRepository is persistence of customers.
// Missing entries are reported as nil result without error.
type CustomerRepository interface {
	Init(context.Context) error
	FindByID(context.Context, int64) (*model.Customer, error)
	FindAll(context.Context) ([]*model.Customer, error)
	Create(context.Context, *model.Customer) error
	Update(context.Context, int64, model.CustomerPatch) (*model.Customer, error)
	DeleteByID(context.Context, int64) (bool, error)
}
