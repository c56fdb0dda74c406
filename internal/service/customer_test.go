package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	rpsMocks "github.com/umalmyha/crm/internal/repository/mocks"
)

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

type customerTestData struct {
	ctx      context.Context
	now      time.Time
	customer *model.Customer
}

type customerServiceTestSuite struct {
	suite.Suite
	customerSvc     *customerService
	customerRpsMock *rpsMocks.CustomerRepository
	testData        *customerTestData
}

func (s *customerServiceTestSuite) SetupSuite() {
	now := time.Date(2026, time.October, 17, 10, 30, 0, 123456789, time.UTC)
	s.testData = &customerTestData{
		ctx: context.Background(),
		now: now,
		customer: &model.Customer{
			ID:        1,
			Name:      "Ada Lovelace",
			Email:     "ada@example.com",
			Phone:     "",
			Company:   "",
			CreatedAt: now.Truncate(time.Millisecond),
		},
	}
}

func (s *customerServiceTestSuite) SetupTest() {
	s.customerRpsMock = rpsMocks.NewCustomerRepository(s.T())
	s.customerSvc = NewCustomerService(s.customerRpsMock).(*customerService)
	s.customerSvc.now = func() time.Time { return s.testData.now }
}

func (s *customerServiceTestSuite) TestCreateSuccessfully() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Customer).ID = 1
		}).
		Return(nil).Once()

	s.T().Log("customer must be created with trimmed fields, id and creation time")
	{
		c, err := s.customerSvc.Create(ctx, model.NewCustomer{Name: "  Ada Lovelace ", Email: " ada@example.com"})
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Equal(s.testData.customer, c, "created customer differs from expected")
	}
}

func (s *customerServiceTestSuite) TestCreateBlankRequiredFields() {
	ctx := s.testData.ctx

	cases := []struct {
		name     string
		customer model.NewCustomer
		fields   []string
	}{
		{name: "blank name", customer: model.NewCustomer{Name: "   ", Email: "ada@example.com"}, fields: []string{"name"}},
		{name: "blank email", customer: model.NewCustomer{Name: "Ada", Email: "\t"}, fields: []string{"email"}},
		{name: "both blank", customer: model.NewCustomer{Phone: "555-1234"}, fields: []string{"name", "email"}},
	}

	for _, tc := range cases {
		s.T().Logf("create with %s must fail validation", tc.name)
		{
			_, err := s.customerSvc.Create(ctx, tc.customer)
			var validationErr *apperrors.ValidationErr
			s.Require().ErrorAs(err, &validationErr, "validation error must be raised")
			s.Assert().Equal(tc.fields, validationErr.Fields, "missing fields are reported incorrectly")
		}
	}

	s.customerRpsMock.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *customerServiceTestSuite) TestCreateDuplicateEmail() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).
		Return(apperrors.NewDuplicateEmailErr("ada@example.com")).Once()

	s.T().Log("duplicate email must be reported as is")
	{
		_, err := s.customerSvc.Create(ctx, model.NewCustomer{Name: "Ada", Email: "ada@example.com"})
		var dupErr *apperrors.DuplicateEmailErr
		s.Require().ErrorAs(err, &dupErr, "duplicate email error must be raised")
		s.Assert().Equal("Email already exists", err.Error())
	}
}

func (s *customerServiceTestSuite) TestCreateStorageFailed() {
	ctx := s.testData.ctx
	cause := errors.New("disk I/O error")

	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(cause).Once()

	s.T().Log("storage failure must be wrapped")
	{
		_, err := s.customerSvc.Create(ctx, model.NewCustomer{Name: "Ada", Email: "ada@example.com"})
		var storageErr *apperrors.StorageErr
		s.Require().ErrorAs(err, &storageErr, "storage error must be raised")
		s.Assert().ErrorIs(err, cause, "cause must be preserved")
		s.Assert().Equal("create", storageErr.Op)
	}
}

func (s *customerServiceTestSuite) TestFindByIDNotFound() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindByID", ctx, int64(42)).Return(nil, nil).Once()

	s.T().Log("missing customer must be reported as not found")
	{
		c, err := s.customerSvc.FindByID(ctx, 42)
		var notFoundErr *apperrors.EntryNotFoundErr
		s.Require().ErrorAs(err, &notFoundErr, "not found error must be raised")
		s.Assert().Nil(c, "no customer must be returned")
		s.Assert().Equal(int64(42), notFoundErr.ID)
	}
}

func (s *customerServiceTestSuite) TestFindByIDSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()

	s.T().Log("customer must be found")
	{
		c, err := s.customerSvc.FindByID(ctx, customer.ID)
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Equal(customer, c)
	}
}

func (s *customerServiceTestSuite) TestFindAllEmpty() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindAll", ctx).Return(nil, nil).Once()

	s.T().Log("no customers must result in empty, non-nil slice")
	{
		customers, err := s.customerSvc.FindAll(ctx)
		s.Require().NoError(err, "no error must be raised")
		s.Assert().NotNil(customers)
		s.Assert().Empty(customers)
	}
}

func (s *customerServiceTestSuite) TestUpdateOnlySuppliedFields() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	phone := "  555-1234 "
	blank := "   "
	trimmedPhone := "555-1234"
	expectedPatch := model.CustomerPatch{Phone: &trimmedPhone}
	updated := applyPatch(*customer, expectedPatch)

	s.customerRpsMock.On("Update", ctx, customer.ID, expectedPatch).Return(&updated, nil).Once()

	s.T().Log("blank values must be dropped and supplied ones trimmed")
	{
		c, err := s.customerSvc.Update(ctx, customer.ID, model.CustomerPatch{Phone: &phone, Name: &blank})
		s.Require().NoError(err, "no error must be raised")
		s.Assert().Equal("555-1234", c.Phone)
		s.Assert().Equal(customer.Name, c.Name)
		s.Assert().Equal(customer.CreatedAt, c.CreatedAt)
	}
}

func (s *customerServiceTestSuite) TestUpdateNoFieldsProvided() {
	ctx := s.testData.ctx
	customer := s.testData.customer
	blank := " "

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()

	s.T().Log("patch with blank values only must be rejected")
	{
		_, err := s.customerSvc.Update(ctx, customer.ID, model.CustomerPatch{Email: &blank})
		var noFieldsErr *apperrors.NoFieldsProvidedErr
		s.Require().ErrorAs(err, &noFieldsErr, "no fields error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
	}
}

func (s *customerServiceTestSuite) TestUpdateNotFound() {
	ctx := s.testData.ctx
	name := "X"

	s.customerRpsMock.On("Update", ctx, int64(7), model.CustomerPatch{Name: &name}).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, int64(7)).Return(nil, nil).Once()

	s.T().Log("update of missing customer must fail with not found")
	{
		_, err := s.customerSvc.Update(ctx, 7, model.CustomerPatch{Name: &name})
		var notFoundErr *apperrors.EntryNotFoundErr
		s.Require().ErrorAs(err, &notFoundErr, "not found error must be raised")
	}

	s.T().Log("update of missing customer with empty patch must fail with not found too")
	{
		_, err := s.customerSvc.Update(ctx, 7, model.CustomerPatch{})
		var notFoundErr *apperrors.EntryNotFoundErr
		s.Require().ErrorAs(err, &notFoundErr, "not found error must be raised")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDNotFound() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("DeleteByID", ctx, int64(3)).Return(false, nil).Once()

	s.T().Log("deletion of missing customer must fail")
	{
		err := s.customerSvc.DeleteByID(ctx, 3)
		var notFoundErr *apperrors.EntryNotFoundErr
		s.Require().ErrorAs(err, &notFoundErr, "not found error must be raised")
	}
}

func (s *customerServiceTestSuite) TestDeleteByIDSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("DeleteByID", ctx, customer.ID).Return(true, nil).Once()

	s.T().Log("deleted successfully")
	{
		err := s.customerSvc.DeleteByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
	}
}

func (s *customerServiceTestSuite) TestInitStorageFailed() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Init", ctx).Return(errors.New("database is locked")).Once()

	s.T().Log("initialization failure must be wrapped as storage error")
	{
		err := s.customerSvc.Init(ctx)
		var storageErr *apperrors.StorageErr
		s.Require().ErrorAs(err, &storageErr, "storage error must be raised")
	}
}

// start customer service test suite
func TestCustomerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(customerServiceTestSuite))
}
