// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"

	"addrbook/internal/delivery/http/response"
	"addrbook/internal/domain/entity"
	"addrbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AddressHandlerParams holds dependencies for AddressHandler, injected by Fx.
type AddressHandlerParams struct {
	fx.In

	AddressUC usecase.AddressUsecase
	Logger    *slog.Logger
}

// AddressHandler holds dependencies for address-related handlers.
type AddressHandler struct {
	addressUC usecase.AddressUsecase
	logger    *slog.Logger
}

// NewAddressHandler is the constructor for AddressHandler.
func NewAddressHandler(params AddressHandlerParams) *AddressHandler {
	return &AddressHandler{
		addressUC: params.AddressUC,
		logger:    params.Logger,
	}
}

// CreateAddress handles POST /v1/users/:userId/addresses.
func (h *AddressHandler) CreateAddress(c echo.Context) error {
	var input usecase.CreateAddressInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "BAD_REQUEST", "Invalid request body")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	address, err := h.addressUC.CreateAddress(c.Request().Context(), c.Param("userId"), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, "Address created successfully", address.AddressID.String(), address)
}

// ListAddresses handles GET /v1/users/:userId/addresses with optional
// suburb and postcode query filters.
func (h *AddressHandler) ListAddresses(c echo.Context) error {
	filter := &usecase.AddressFilter{
		Suburb:   c.QueryParam("suburb"),
		Postcode: c.QueryParam("postcode"),
	}

	addresses, err := h.addressUC.ListAddresses(c.Request().Context(), c.Param("userId"), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	if addresses == nil {
		addresses = []*entity.Address{}
	}

	return response.List(c, "Addresses retrieved successfully", addresses)
}

// UpdateAddress handles PATCH /v1/users/:userId/addresses/:addressId.
func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	var input usecase.UpdateAddressInput
	if err := c.Bind(&input); err != nil {
		return response.BadRequest(c, "BAD_REQUEST", "Invalid request body")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	addressID := c.Param("addressId")

	address, err := h.addressUC.UpdateAddress(c.Request().Context(), c.Param("userId"), addressID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Updated(c, "Address updated successfully", addressID, address)
}

// DeleteAddress handles DELETE /v1/users/:userId/addresses/:addressId.
func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	err := h.addressUC.DeleteAddress(c.Request().Context(), c.Param("userId"), c.Param("addressId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
