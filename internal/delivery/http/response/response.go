// Package response defines the wire shapes every handler replies with.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the error response shape. The machine-readable code is only
// present for errors that define one.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// CreatedBody is the response to a successful address creation.
type CreatedBody struct {
	Message   string `json:"message"`
	AddressID string `json:"addressId"`
	Address   any    `json:"address"`
}

// ListBody is the response to an address listing.
type ListBody struct {
	Message   string `json:"message"`
	Addresses any    `json:"addresses"`
}

// UpdatedBody is the response to a successful partial update.
type UpdatedBody struct {
	Message   string `json:"message"`
	Address   any    `json:"address"`
	AddressID string `json:"addressId"`
}

// Created writes a 201 with the created record.
func Created(c echo.Context, message, addressID string, address any) error {
	return c.JSON(http.StatusCreated, CreatedBody{
		Message:   message,
		AddressID: addressID,
		Address:   address,
	})
}

// List writes a 200 with the full result set.
func List(c echo.Context, message string, addresses any) error {
	return c.JSON(http.StatusOK, ListBody{
		Message:   message,
		Addresses: addresses,
	})
}

// Updated writes a 200 with the post-update record.
func Updated(c echo.Context, message, addressID string, address any) error {
	return c.JSON(http.StatusOK, UpdatedBody{
		Message:   message,
		Address:   address,
		AddressID: addressID,
	})
}

// NoContent writes an empty 204.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error writes an error body. An empty errorCode omits the error field.
func Error(c echo.Context, statusCode int, errorCode, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorBody{
		Message: message,
		Error:   errorCode,
	})
}

// Unauthorized writes the uniform authentication failure body. Every
// authentication failure produces exactly this response.
func Unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorBody{Message: "Unauthorized"})
}

// BadRequest writes a 400 error.
func BadRequest(c echo.Context, errorCode, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message)
}
