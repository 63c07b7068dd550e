package models

import "fmt"

// Validation errors carry the offending field or tag so handlers can report
// it; they are matched with errors.As, never by message.

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is a required field", e.Field)
}

type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s is already in use", e.Field)
}

type UnknownItemTypeError struct {
	Type string
}

func (e *UnknownItemTypeError) Error() string {
	return fmt.Sprintf("unknown item type: %s", e.Type)
}
