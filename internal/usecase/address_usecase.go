package usecase

import (
	"context"

	"addrbook/internal/domain/entity"
)

// AddressUsecase groups the address engines: create, list with optional
// filters, partial update and delete, all scoped to a single user.
type AddressUsecase interface {
	CreateAddress(ctx context.Context, userID string, input *CreateAddressInput) (*entity.Address, error)
	ListAddresses(ctx context.Context, userID string, filter *AddressFilter) ([]*entity.Address, error)
	UpdateAddress(ctx context.Context, userID, addressID string, input *UpdateAddressInput) (*entity.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

// --- Input DTOs ---

// CreateAddressInput defines the address creation payload. Country defaults
// when omitted; addressType is optional but must be a member of the closed
// set when present.
type CreateAddressInput struct {
	StreetAddress string  `json:"streetAddress" validate:"required,street_address"`
	Suburb        string  `json:"suburb" validate:"required,suburb_name"`
	State         string  `json:"state" validate:"required,region_code"`
	Postcode      string  `json:"postcode" validate:"required,postcode"`
	Country       string  `json:"country" validate:"omitempty,country_name"`
	AddressType   *string `json:"addressType" validate:"omitnil,address_type"`
}

// UpdateAddressInput defines the partial update payload. Every field is
// optional, but a present field must satisfy the same predicate as on
// creation, and at least one recognized field must be present.
type UpdateAddressInput struct {
	StreetAddress *string `json:"streetAddress" validate:"omitnil,street_address"`
	Suburb        *string `json:"suburb" validate:"omitnil,suburb_name"`
	State         *string `json:"state" validate:"omitnil,region_code"`
	Postcode      *string `json:"postcode" validate:"omitnil,postcode"`
	Country       *string `json:"country" validate:"omitnil,country_name"`
	AddressType   *string `json:"addressType" validate:"omitnil,address_type"`
}

// AddressFilter carries the optional list filters. Empty values mean the
// filter is absent.
type AddressFilter struct {
	Suburb   string
	Postcode string
}
