package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
)

func strPtr(s string) *string {
	return &s
}

func applyPatch(c model.Customer, p model.CustomerPatch) model.Customer {
	if p.Name != nil {
		c.Name = *p.Name
	}

	if p.Email != nil {
		c.Email = *p.Email
	}

	if p.Phone != nil {
		c.Phone = *p.Phone
	}

	if p.Company != nil {
		c.Company = *p.Company
	}
	return c
}

// testCustomerRps checks behavior every CustomerRepository implementation must share
func testCustomerRps(t *testing.T, customerRps CustomerRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	createdAt := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)

	customers := []*model.Customer{
		{Name: "John Norman", Email: "johnnorman@somemail.com", Phone: "555-0001", Company: "Norman Ltd", CreatedAt: createdAt},
		{Name: "Albert Peers", Email: "albertpeers@somemail.com", CreatedAt: createdAt.Add(time.Minute)},
		{Name: "Andrew Wallet", Email: "andrewallet@somemail.com", Company: "Wallet Inc", CreatedAt: createdAt.Add(2 * time.Minute)},
		{Name: "Oliver Jefferson", Email: "oliverjeff@somemail.com", Phone: "555-0004", CreatedAt: createdAt.Add(3 * time.Minute)},
	}

	customerJohn := customers[0]

	t.Log("initialization is idempotent")
	{
		require.NoError(t, customerRps.Init(ctx), "failed to initialize storage")
		require.NoError(t, customerRps.Init(ctx), "second initialization failed")
	}

	t.Logf("create %d customers", len(customers))
	{
		var lastID int64
		for _, c := range customers {
			err := customerRps.Create(ctx, c)
			require.NoError(t, err, "failed to create customer")
			require.Greater(t, c.ID, lastID, "ids must be assigned monotonically")
			lastID = c.ID
		}
	}

	t.Log("create customer with duplicate email")
	{
		err := customerRps.Create(ctx, &model.Customer{Name: "John Twin", Email: customerJohn.Email, CreatedAt: createdAt})
		var dupErr *apperrors.DuplicateEmailErr
		require.ErrorAs(t, err, &dupErr, "duplicate email must be reported")
	}

	t.Logf("verify %d customers in insertion order", len(customers))
	{
		dbCustomers, err := customerRps.FindAll(ctx)
		require.NoError(t, err, "failed to read customers")
		require.Equal(t, customers, dbCustomers, "customers must be returned in insertion order")
	}

	t.Logf("find customer by id %d", customerJohn.ID)
	{
		dbCustomer, err := customerRps.FindByID(ctx, customerJohn.ID)
		require.NoError(t, err, "failed to read customer")
		require.Equal(t, customerJohn, dbCustomer, "customer in database is not the same it was passed")
	}

	t.Logf("update customer %d partially", customerJohn.ID)
	{
		patch := model.CustomerPatch{Email: strPtr("newjohn@somemail.com"), Company: strPtr("John & Sons")}
		dbCustomer, err := customerRps.Update(ctx, customerJohn.ID, patch)
		require.NoError(t, err, "failed to update customer")

		expected := applyPatch(*customerJohn, patch)
		require.Equal(t, &expected, dbCustomer, "customer wasn't updated correctly")
		customerJohn = dbCustomer
	}

	t.Log("update email to existing one")
	{
		_, err := customerRps.Update(ctx, customers[1].ID, model.CustomerPatch{Email: strPtr(customers[2].Email)})
		var dupErr *apperrors.DuplicateEmailErr
		require.ErrorAs(t, err, &dupErr, "duplicate email must be reported on update")
	}

	t.Log("update missing customer")
	{
		dbCustomer, err := customerRps.Update(ctx, 100500, model.CustomerPatch{Name: strPtr("Nobody")})
		require.NoError(t, err, "missing customer must not raise error")
		require.Nil(t, dbCustomer, "missing customer must not be returned")
	}

	t.Logf("delete customer by id %d", customerJohn.ID)
	{
		deleted, err := customerRps.DeleteByID(ctx, customerJohn.ID)
		require.NoError(t, err, "failed to delete customer")
		require.True(t, deleted, "customer must be deleted")
	}

	t.Logf("verify customer %d is deleted", customerJohn.ID)
	{
		dbCustomer, err := customerRps.FindByID(ctx, customerJohn.ID)
		require.NoError(t, err, "failed to read customer by id")
		require.Nil(t, dbCustomer, "customer was deleted, but still present in database")

		deleted, err := customerRps.DeleteByID(ctx, customerJohn.ID)
		require.NoError(t, err, "failed to delete customer")
		require.False(t, deleted, "customer can't be deleted twice")
	}

	t.Logf("verify %d entries left", len(customers)-1)
	{
		dbCustomers, err := customerRps.FindAll(ctx)
		require.NoError(t, err, "failed to read customers")
		require.Len(t, dbCustomers, len(customers)-1, "there must be %d customers in database", len(customers)-1)
	}

	t.Log("ids are not reused")
	{
		c := &model.Customer{Name: "John Norman", Email: "johnnorman@somemail.com", CreatedAt: createdAt}
		require.NoError(t, customerRps.Create(ctx, c), "failed to create customer")
		require.Greater(t, c.ID, customers[len(customers)-1].ID, "new id must be greater than any previous one")
	}
}
