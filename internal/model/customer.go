package model

import (
	"strings"
	"time"
)

// Customer is customer model entity
type Customer struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Company   string    `json:"company" bson:"company"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewCustomer holds data required to create customer
type NewCustomer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// Trimmed returns copy with surrounding whitespace removed from every field
func (nc NewCustomer) Trimmed() NewCustomer {
	return NewCustomer{
		Name:    strings.TrimSpace(nc.Name),
		Email:   strings.TrimSpace(nc.Email),
		Phone:   strings.TrimSpace(nc.Phone),
		Company: strings.TrimSpace(nc.Company),
	}
}

// CustomerPatch is a partial customer update.
// Nil field means the field was not supplied.
type CustomerPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

// Usable trims supplied values and drops blank ones, so that blank value is treated as not supplied
func (p CustomerPatch) Usable() CustomerPatch {
	return CustomerPatch{
		Name:    nonBlank(p.Name),
		Email:   nonBlank(p.Email),
		Phone:   nonBlank(p.Phone),
		Company: nonBlank(p.Company),
	}
}

// IsEmpty reports whether no field is supplied
func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Company == nil
}

// EmailValue returns supplied email or empty string
func (p CustomerPatch) EmailValue() string {
	if p.Email == nil {
		return ""
	}
	return *p.Email
}

func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
