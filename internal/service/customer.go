package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
)

// CustomerService owns validation and update rules of customers.
// Every failure is returned as one of the types from internal/errors.
type CustomerService interface {
	Init(context.Context) error
	FindAll(context.Context) ([]*model.Customer, error)
	FindByID(context.Context, int64) (*model.Customer, error)
	Create(context.Context, model.NewCustomer) (*model.Customer, error)
	Update(context.Context, int64, model.CustomerPatch) (*model.Customer, error)
	DeleteByID(context.Context, int64) error
}

type customerService struct {
	customerRps repository.CustomerRepository
	validate    *validator.Validate
	now         func() time.Time
}

// NewCustomerService builds CustomerService on top of repository
func NewCustomerService(customerRps repository.CustomerRepository) CustomerService {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	return &customerService{
		customerRps: customerRps,
		validate:    validate,
		now:         time.Now,
	}
}

func (s *customerService) Init(ctx context.Context) error {
	if err := s.customerRps.Init(ctx); err != nil {
		return s.storageErr("initialize", err)
	}
	return nil
}

func (s *customerService) FindAll(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.customerRps.FindAll(ctx)
	if err != nil {
		return nil, s.storageErr("list", err)
	}

	if customers == nil {
		customers = make([]*model.Customer, 0)
	}
	return customers, nil
}

func (s *customerService) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.customerRps.FindByID(ctx, id)
	if err != nil {
		return nil, s.storageErr("read", err)
	}

	if c == nil {
		return nil, apperrors.NewEntryNotFoundErr(id)
	}
	return c, nil
}

func (s *customerService) Create(ctx context.Context, nc model.NewCustomer) (*model.Customer, error) {
	nc = nc.Trimmed()
	if err := s.validateNewCustomer(nc); err != nil {
		return nil, err
	}

	// mongo keeps milliseconds only, stamp with the coarsest precision of all storages
	c := &model.Customer{
		Name:      nc.Name,
		Email:     nc.Email,
		Phone:     nc.Phone,
		Company:   nc.Company,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.customerRps.Create(ctx, c); err != nil {
		return nil, s.storageErr("create", err)
	}
	return c, nil
}

func (s *customerService) Update(ctx context.Context, id int64, patch model.CustomerPatch) (*model.Customer, error) {
	patch = patch.Usable()
	if patch.IsEmpty() {
		if _, err := s.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperrors.NewNoFieldsProvidedErr()
	}

	c, err := s.customerRps.Update(ctx, id, patch)
	if err != nil {
		return nil, s.storageErr("update", err)
	}

	if c == nil {
		return nil, apperrors.NewEntryNotFoundErr(id)
	}
	return c, nil
}

func (s *customerService) DeleteByID(ctx context.Context, id int64) error {
	deleted, err := s.customerRps.DeleteByID(ctx, id)
	if err != nil {
		return s.storageErr("delete", err)
	}

	if !deleted {
		return apperrors.NewEntryNotFoundErr(id)
	}
	return nil
}

func (s *customerService) validateNewCustomer(nc model.NewCustomer) error {
	err := s.validate.Struct(&nc)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := lo.Map(ve, func(fe validator.FieldError, _ int) string {
			return fe.Field()
		})
		return apperrors.NewValidationErr(fields...)
	}
	return err
}

func (s *customerService) storageErr(op string, err error) error {
	var dupErr *apperrors.DuplicateEmailErr
	if errors.As(err, &dupErr) {
		return dupErr
	}

	logrus.WithError(err).Errorf("storage failed to %s customer", op)
	return apperrors.NewStorageErr(op, err)
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}
