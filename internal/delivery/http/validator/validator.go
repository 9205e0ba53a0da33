// Package validator bridges the domain schema onto echo's Validator
// contract so handlers can validate bound payloads with c.Validate.
package validator

import (
	"addrbook/internal/domain/validation"

	"github.com/labstack/echo/v4"
)

type schemaValidator struct {
	schema *validation.Schema
}

// New wraps the domain schema as an echo.Validator.
func New(schema *validation.Schema) echo.Validator {
	return &schemaValidator{schema: schema}
}

// Validate implements echo.Validator. The raw schema error is returned so
// handlers decide the response shape.
func (v *schemaValidator) Validate(i any) error {
	return v.schema.Struct(i)
}
