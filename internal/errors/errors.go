package errors

import (
	"encoding/json"
	"fmt"
)

const (
	validationMsg       = "Name and email are required"
	duplicateEmailMsg   = "Email already exists"
	notFoundMsg         = "Customer not found"
	noFieldsProvidedMsg = "At least one field must be provided"
)

// ValidationErr is raised when required customer fields are missing
type ValidationErr struct {
	Fields []string
}

func (e *ValidationErr) Error() string {
	return validationMsg
}

// MarshalJSON renders error together with the missing fields
func (e *ValidationErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}{Error: e.Error(), Fields: e.Fields})
}

// NewValidationErr builds ValidationErr for provided missing fields
func NewValidationErr(fields ...string) *ValidationErr {
	return &ValidationErr{Fields: fields}
}

// DuplicateEmailErr is raised when email is already taken by another customer
type DuplicateEmailErr struct {
	Email string
}

func (e *DuplicateEmailErr) Error() string {
	return duplicateEmailMsg
}

// NewDuplicateEmailErr builds DuplicateEmailErr
func NewDuplicateEmailErr(email string) *DuplicateEmailErr {
	return &DuplicateEmailErr{Email: email}
}

// EntryNotFoundErr is raised when customer with requested id doesn't exist
type EntryNotFoundErr struct {
	ID int64
}

func (e *EntryNotFoundErr) Error() string {
	return notFoundMsg
}

// NewEntryNotFoundErr builds EntryNotFoundErr
func NewEntryNotFoundErr(id int64) *EntryNotFoundErr {
	return &EntryNotFoundErr{ID: id}
}

// NoFieldsProvidedErr is raised when update has nothing to change
type NoFieldsProvidedErr struct{}

func (e *NoFieldsProvidedErr) Error() string {
	return noFieldsProvidedMsg
}

// NewNoFieldsProvidedErr builds NoFieldsProvidedErr
func NewNoFieldsProvidedErr() *NoFieldsProvidedErr {
	return &NoFieldsProvidedErr{}
}

// StorageErr wraps any failure of underlying persistence
type StorageErr struct {
	Op  string
	Err error
}

func (e *StorageErr) Error() string {
	return fmt.Sprintf("failed to %s customer - %v", e.Op, e.Err)
}

func (e *StorageErr) Unwrap() error {
	return e.Err
}

// NewStorageErr builds StorageErr for operation op
func NewStorageErr(op string, err error) *StorageErr {
	return &StorageErr{Op: op, Err: err}
}
