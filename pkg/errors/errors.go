package errors

import (
	"errors"
	"fmt"
)

type ResourceNotFoundError struct {
	Kind string
	ID   string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func NewExecutorNotFoundError(name string) error {
	return &ResourceNotFoundError{Kind: "executor", ID: name}
}

func NewWorkerNotFoundError(name string) error {
	return &ResourceNotFoundError{Kind: "worker", ID: name}
}

func NewRunNotFoundError(id string) error {
	return &ResourceNotFoundError{Kind: "run", ID: id}
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

type DuplicateResourceError struct {
	Kind string
	ID   string
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.ID)
}

func NewDuplicateResourceError(kind, id string) error {
	return &DuplicateResourceError{Kind: kind, ID: id}
}

func IsDuplicateResourceError(err error) bool {
	var e *DuplicateResourceError
	return errors.As(err, &e)
}

type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func NewInvalidConfigurationError(field, reason string) error {
	return &InvalidConfigurationError{Field: field, Reason: reason}
}

func IsInvalidConfigurationError(err error) bool {
	var e *InvalidConfigurationError
	return errors.As(err, &e)
}
